package auth

import (
	"context"
	"testing"

	"fitlink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role, name string) (string, error) {
	return "token-stub", nil
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "new@fitlink.app").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(users, stubJWT{})
	result, err := service.Register(context.Background(), RegisterRequest{
		Email:    "New@FitLink.app",
		Password: "correct-horse",
		Name:     "Dana",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.User.ID)
	assert.Equal(t, "new@fitlink.app", result.User.Email)
	assert.Equal(t, domain.RoleMember, result.User.Role)
	assert.Equal(t, "token-stub", result.AccessToken)
	assert.NotEqual(t, "correct-horse", result.User.PasswordHash)
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "dupe@fitlink.app").
		Return(&domain.User{ID: 7, Email: "dupe@fitlink.app"}, nil)

	service := NewService(users, stubJWT{})
	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "dupe@fitlink.app",
		Password: "correct-horse",
		Name:     "Dana",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_ShortPassword(t *testing.T) {
	service := NewService(new(MockUserRepository), stubJWT{})
	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "a@b.c",
		Password: "short",
		Name:     "Dana",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "dana@fitlink.app").Return(&domain.User{
		ID:           7,
		Email:        "dana@fitlink.app",
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		Name:         "Dana",
	}, nil)

	service := NewService(users, stubJWT{})
	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "dana@fitlink.app",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.User.ID)
	assert.Equal(t, "token-stub", result.AccessToken)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "dana@fitlink.app").Return(&domain.User{
		ID:           7,
		PasswordHash: string(hash),
	}, nil)

	service := NewService(users, stubJWT{})
	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "dana@fitlink.app",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ghost@fitlink.app").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(users, stubJWT{})
	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@fitlink.app",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
