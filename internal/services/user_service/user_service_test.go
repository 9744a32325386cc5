package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"taxblog/internal/domain/models"
	services "taxblog/internal/services/user_service"
	"taxblog/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) UserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(repo *MockUserRepository) *services.UserService {
	return services.NewUserService(testLogger(), repo, "test-secret", time.Hour)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("UserByUsername", mock.Anything, "admin").Return(models.User{
		ID:       uuid.New(),
		Username: "admin",
		Password: hash,
		IsAdmin:  true,
	}, nil)

	svc := newService(repo)

	token, err := svc.Login(context.Background(), "admin", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("UserByUsername", mock.Anything, "admin").Return(models.User{
		Username: "admin",
		Password: hash,
	}, nil)

	svc := newService(repo)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	repo := new(MockUserRepository)

	repo.On("UserByUsername", mock.Anything, "nobody").Return(models.User{}, storage.ErrUserNotFound)

	svc := newService(repo)

	// an unknown username must be indistinguishable from a wrong password
	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRegisterNewUser_Success(t *testing.T) {
	repo := new(MockUserRepository)

	userID := uuid.New()

	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// the password must be stored hashed
		return u.Username == "editor" &&
			bcrypt.CompareHashAndPassword(u.Password, []byte("long enough pass")) == nil
	})).Return(userID, nil)

	svc := newService(repo)

	id, err := svc.RegisterNewUser(context.Background(), "editor", "long enough pass", false)
	require.NoError(t, err)
	assert.Equal(t, userID, id)

	repo.AssertExpectations(t)
}

func TestRegisterNewUser_Duplicate(t *testing.T) {
	repo := new(MockUserRepository)

	repo.On("SaveUser", mock.Anything, mock.Anything).Return(uuid.Nil, storage.ErrUserExists)

	svc := newService(repo)

	_, err := svc.RegisterNewUser(context.Background(), "editor", "long enough pass", false)
	assert.ErrorIs(t, err, services.ErrUserExist)
}

func TestIsAdmin(t *testing.T) {
	repo := new(MockUserRepository)

	adminID := uuid.New()

	repo.On("GetUserByID", mock.Anything, adminID).Return(models.User{ID: adminID, IsAdmin: true}, nil)

	svc := newService(repo)

	isAdmin, err := svc.IsAdmin(context.Background(), adminID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}
