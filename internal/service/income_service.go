package service

import (
	"context"
	"errors"
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/dto"
	"schoolcash/internal/event"
	"schoolcash/internal/model"
	"schoolcash/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IncomeService interface {
	Create(ctx context.Context, collectedBy uuid.UUID, req dto.CreateIncomeRequest) (*dto.IncomeResponse, error)
	// ListByDate returns records for one calendar day; empty date means today.
	ListByDate(ctx context.Context, date string) ([]dto.IncomeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type incomeService struct {
	repo     repository.IncomeRepository
	bus      *event.Bus
	reporter *audit.Reporter
	loc      *time.Location
	now      func() time.Time
}

func NewIncomeService(repo repository.IncomeRepository, bus *event.Bus, reporter *audit.Reporter, loc *time.Location) IncomeService {
	return &incomeService{repo: repo, bus: bus, reporter: reporter, loc: loc, now: time.Now}
}

// Create appends an income record. The date key and the collecting user are
// stamped server-side; the breakdown invariant (totalAmount == sum of fees,
// each fee > 0) is enforced here, before anything reaches storage.
func (s *incomeService) Create(ctx context.Context, collectedBy uuid.UUID, req dto.CreateIncomeRequest) (*dto.IncomeResponse, error) {
	if err := req.Fees.Validate(); err != nil {
		return nil, err
	}
	if !req.TotalAmount.Equal(req.Fees.Total()) {
		return nil, errors.New("total amount does not match the fee breakdown")
	}

	income := &model.Income{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		Class:       req.Class,
		Section:     req.Section,
		Fees:        datatypes.NewJSONType(req.Fees),
		TotalAmount: req.TotalAmount,
		Date:        s.now().In(s.loc).Format(dateKeyLayout),
		CollectedBy: collectedBy,
	}
	if err := s.repo.Create(ctx, income); err != nil {
		s.reporter.Report(ctx, "incomes", audit.OpCreate, req, err)
		return nil, errors.New("failed to record collection")
	}

	s.bus.Publish(ctx, event.TransactionEvent{Type: event.IncomeCreated, Date: income.Date})

	resp := toIncomeResponse(income)
	return &resp, nil
}

func (s *incomeService) ListByDate(ctx context.Context, date string) ([]dto.IncomeResponse, error) {
	if date == "" {
		date = s.now().In(s.loc).Format(dateKeyLayout)
	}
	incomes, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		s.reporter.Report(ctx, "incomes", audit.OpList, nil, err)
		return nil, errors.New("failed to load collections")
	}
	resp := make([]dto.IncomeResponse, len(incomes))
	for i := range incomes {
		resp[i] = toIncomeResponse(&incomes[i])
	}
	return resp, nil
}

func (s *incomeService) Delete(ctx context.Context, id uuid.UUID) error {
	income, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("income record not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.reporter.Report(ctx, "incomes/"+id.String(), audit.OpDelete, nil, err)
		return errors.New("failed to delete income record")
	}
	s.bus.Publish(ctx, event.TransactionEvent{Type: event.IncomeDeleted, Date: income.Date})
	return nil
}

func toIncomeResponse(income *model.Income) dto.IncomeResponse {
	return dto.IncomeResponse{
		ID:          income.ID.String(),
		StudentID:   income.StudentID,
		StudentName: income.StudentName,
		Class:       income.Class,
		Section:     income.Section,
		Fees:        income.Fees.Data(),
		TotalAmount: income.TotalAmount,
		Date:        income.Date,
		CollectedBy: income.CollectedBy.String(),
		Timestamp:   income.CreatedAt.Format(time.RFC3339),
	}
}
