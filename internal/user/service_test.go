package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/fuazim/fitcamp/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpsertCustomer(ctx context.Context, name, email, phone string) (*User, error) {
	args := m.Called(ctx, name, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpsertAdmin(ctx context.Context, name, email, passwordHash string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestService_Login(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	admin := &User{ID: "a-1", Email: "admin@fitcamp.id", Role: auth.RoleAdmin, PasswordHash: strPtr(hash)}
	customer := &User{ID: "u-1", Email: "budi@example.com", Role: auth.RoleUser}

	tests := []struct {
		name          string
		req           LoginRequest
		setupMock     func(*MockRepository)
		expectedError error
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: " Admin@FitCamp.id ", Password: "correct-horse"},
			setupMock: func(m *MockRepository) {
				m.On("FindByEmail", mock.Anything, "admin@fitcamp.id").Return(admin, nil)
			},
		},
		{
			name: "wrong password",
			req:  LoginRequest{Email: "admin@fitcamp.id", Password: "nope"},
			setupMock: func(m *MockRepository) {
				m.On("FindByEmail", mock.Anything, "admin@fitcamp.id").Return(admin, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "customer cannot login",
			req:  LoginRequest{Email: "budi@example.com", Password: "whatever"},
			setupMock: func(m *MockRepository) {
				m.On("FindByEmail", mock.Anything, "budi@example.com").Return(customer, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name: "unknown email",
			req:  LoginRequest{Email: "ghost@example.com", Password: "whatever"},
			setupMock: func(m *MockRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)
			svc := NewService(repo, "test-secret")

			resp, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, "a-1", resp.User.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_GetByID(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)
	repo.On("FindByID", mock.Anything, "broken").Return(nil, errors.New("db down"))

	svc := NewService(repo, "test-secret")

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetByID(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestService_CreateAdmin(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpsertAdmin", mock.Anything, "Admin", "admin@fitcamp.id", mock.MatchedBy(func(h string) bool {
		return auth.CheckPassword(h, "supersecret")
	})).Return(&User{ID: "a-1", Role: auth.RoleAdmin}, nil)

	svc := NewService(repo, "test-secret")

	u, err := svc.CreateAdmin(context.Background(), "Admin", "ADMIN@fitcamp.id", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, u.Role)

	_, err = svc.CreateAdmin(context.Background(), "Admin", "admin@fitcamp.id", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
	repo.AssertExpectations(t)
}
