package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/dto"
	"schoolcash/internal/model"
	"schoolcash/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService is the authorization policy store: a single admins table
// keyed by email, with membership as the only predicate gating destructive
// operations. No address is hardcoded anywhere.
type AdminService interface {
	// IsAuthorized reports whether the identity may perform destructive
	// operations. A storage failure denies (and reports) rather than grants.
	IsAuthorized(ctx context.Context, email string) bool
	Add(ctx context.Context, addedBy string, req dto.AddAdminRequest) (*dto.AdminResponse, error)
	Remove(ctx context.Context, email string) error
	List(ctx context.Context) ([]dto.AdminResponse, error)
	// EnsureBootstrapAdmin seeds the configured email when the table is
	// empty, so a fresh deployment always has one authorized identity.
	EnsureBootstrapAdmin(ctx context.Context, email string) error
}

type adminService struct {
	repo     repository.AdminRepository
	reporter *audit.Reporter
}

func NewAdminService(repo repository.AdminRepository, reporter *audit.Reporter) AdminService {
	return &adminService{repo: repo, reporter: reporter}
}

func (s *adminService) IsAuthorized(ctx context.Context, email string) bool {
	ok, err := s.repo.Exists(ctx, normalizeEmail(email))
	if err != nil {
		s.reporter.Report(ctx, "admins/"+email, audit.OpGet, nil, err)
		return false
	}
	return ok
}

func (s *adminService) Add(ctx context.Context, addedBy string, req dto.AddAdminRequest) (*dto.AdminResponse, error) {
	admin := &model.Admin{
		Email:   normalizeEmail(req.Email),
		AddedBy: normalizeEmail(addedBy),
	}
	err := s.repo.Add(ctx, admin)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, errors.New("this email is already an admin")
	default:
		s.reporter.Report(ctx, "admins", audit.OpCreate, req, err)
		return nil, errors.New("failed to add admin")
	}
	resp := toAdminResponse(admin)
	return &resp, nil
}

func (s *adminService) Remove(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.reporter.Report(ctx, "admins", audit.OpList, nil, err)
		return errors.New("failed to remove admin")
	}
	// Removing the last admin would lock everyone out of destructive
	// operations permanently.
	if count <= 1 {
		return errors.New("cannot remove the last admin")
	}
	if err := s.repo.Remove(ctx, email); err != nil {
		s.reporter.Report(ctx, "admins/"+email, audit.OpDelete, nil, err)
		return errors.New("failed to remove admin")
	}
	return nil
}

func (s *adminService) List(ctx context.Context) ([]dto.AdminResponse, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		s.reporter.Report(ctx, "admins", audit.OpList, nil, err)
		return nil, errors.New("failed to load admins")
	}
	resp := make([]dto.AdminResponse, len(admins))
	for i := range admins {
		resp[i] = toAdminResponse(&admins[i])
	}
	return resp, nil
}

func (s *adminService) EnsureBootstrapAdmin(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := &model.Admin{Email: normalizeEmail(email), AddedBy: "bootstrap"}
	if err := s.repo.Add(ctx, admin); err != nil {
		return err
	}
	log.Info().Str("email", admin.Email).Msg("bootstrap admin seeded")
	return nil
}

func toAdminResponse(admin *model.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		Email:   admin.Email,
		AddedBy: admin.AddedBy,
		AddedAt: admin.CreatedAt.Format(time.RFC3339),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
