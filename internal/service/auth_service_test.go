package service

import (
	"context"
	"testing"

	"schoolcash/internal/config"
	"schoolcash/internal/dto"
	"schoolcash/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := r.users[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Active = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestAuthService(repo *stubUserRepo) AuthService {
	return NewAuthService(repo, &config.Config{
		JWTSecret:          "test_jwt_secret_32_chars_minimum!",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	})
}

func seedActiveUser(t *testing.T, repo *stubUserRepo, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		Active:       true,
	}
	repo.users[email] = user
	return user
}

func TestLoginWithValidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedActiveUser(t, repo, "clerk@school.local", "secret123")
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "Clerk@School.Local", Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "clerk@school.local", resp.User.Email)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
}

func TestLoginWithWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedActiveUser(t, repo, "clerk@school.local", "secret123")
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "clerk@school.local", Password: "wrong",
	})

	assert.Error(t, err)
}

func TestLoginWithDeactivatedUser(t *testing.T) {
	repo := newStubUserRepo()
	user := seedActiveUser(t, repo, "clerk@school.local", "secret123")
	user.Active = false
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "clerk@school.local", Password: "secret123",
	})

	assert.Error(t, err)
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	repo := newStubUserRepo()
	seedActiveUser(t, repo, "clerk@school.local", "secret123")
	svc := newTestAuthService(repo)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "clerk@school.local", Password: "secret123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "clerk@school.local", refreshed.User.Email)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, err := svc.Refresh(context.Background(), "not.a.token")

	assert.Error(t, err)
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "New@School.Local", Name: "New Clerk", Password: "longenough",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@school.local", resp.Email)

	stored := repo.users["new@school.local"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "longenough", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")))
}

func TestDeactivatedUserCannotRefresh(t *testing.T) {
	repo := newStubUserRepo()
	user := seedActiveUser(t, repo, "clerk@school.local", "secret123")
	svc := newTestAuthService(repo)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "clerk@school.local", Password: "secret123",
	})
	require.NoError(t, err)

	user.Active = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)

	assert.Error(t, err)
}
