package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCodeStore struct {
	mock.Mock
}

func (m *MockCodeStore) LatestBookingCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCodeStore) BookingCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// memoryCodes hands out codes the way the orders table would.
type memoryCodes struct {
	codes []string
}

func (m *memoryCodes) LatestBookingCode(context.Context) (string, error) {
	if len(m.codes) == 0 {
		return "", sql.ErrNoRows
	}
	return m.codes[len(m.codes)-1], nil
}

func (m *memoryCodes) BookingCodeExists(_ context.Context, code string) (bool, error) {
	for _, c := range m.codes {
		if c == code {
			return true, nil
		}
	}
	return false, nil
}

var allocatorNow = time.UnixMilli(1767225600123)

func TestAllocator_Allocate(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockCodeStore)
		expected  string
	}{
		{
			name: "first order",
			setupMock: func(m *MockCodeStore) {
				m.On("LatestBookingCode", mock.Anything).Return("", sql.ErrNoRows)
				m.On("BookingCodeExists", mock.Anything, "FITCAMP-001").Return(false, nil)
			},
			expected: "FITCAMP-001",
		},
		{
			name: "next in sequence",
			setupMock: func(m *MockCodeStore) {
				m.On("LatestBookingCode", mock.Anything).Return("FITCAMP-007", nil)
				m.On("BookingCodeExists", mock.Anything, "FITCAMP-008").Return(false, nil)
			},
			expected: "FITCAMP-008",
		},
		{
			name: "grows past three digits",
			setupMock: func(m *MockCodeStore) {
				m.On("LatestBookingCode", mock.Anything).Return("FITCAMP-999", nil)
				m.On("BookingCodeExists", mock.Anything, "FITCAMP-1000").Return(false, nil)
			},
			expected: "FITCAMP-1000",
		},
		{
			name: "skips taken code",
			setupMock: func(m *MockCodeStore) {
				m.On("LatestBookingCode", mock.Anything).Return("FITCAMP-007", nil)
				m.On("BookingCodeExists", mock.Anything, "FITCAMP-008").Return(true, nil)
				m.On("BookingCodeExists", mock.Anything, "FITCAMP-009").Return(false, nil)
			},
			expected: "FITCAMP-009",
		},
		{
			name: "unparseable latest code restarts at one",
			setupMock: func(m *MockCodeStore) {
				m.On("LatestBookingCode", mock.Anything).Return("FITCAMP-ABC", nil)
				m.On("BookingCodeExists", mock.Anything, "FITCAMP-001").Return(false, nil)
			},
			expected: "FITCAMP-001",
		},
		{
			name: "falls back after ten collisions",
			setupMock: func(m *MockCodeStore) {
				m.On("LatestBookingCode", mock.Anything).Return("FITCAMP-010", nil)
				m.On("BookingCodeExists", mock.Anything, mock.Anything).Return(true, nil).Times(10)
			},
			expected: "FITCAMP-600123",
		},
		{
			name: "falls back when lookup fails",
			setupMock: func(m *MockCodeStore) {
				m.On("LatestBookingCode", mock.Anything).Return("", errors.New("connection reset"))
			},
			expected: "FITCAMP-600123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockCodeStore)
			tt.setupMock(store)

			code := NewAllocator(store, func() time.Time { return allocatorNow }).Allocate(context.Background())

			assert.Equal(t, tt.expected, code)
			store.AssertExpectations(t)
		})
	}
}

func TestAllocator_SequentialCodesIncrease(t *testing.T) {
	store := &memoryCodes{}
	alloc := NewAllocator(store, nil)

	for i := 0; i < 12; i++ {
		store.codes = append(store.codes, alloc.Allocate(context.Background()))
	}

	assert.Equal(t, "FITCAMP-001", store.codes[0])
	assert.Equal(t, "FITCAMP-012", store.codes[11])
	for i := 1; i < len(store.codes); i++ {
		assert.Regexp(t, `^FITCAMP-\d{3,}$`, store.codes[i])
		assert.Greater(t, store.codes[i], store.codes[i-1])
	}
}

func TestFormatBookingCode(t *testing.T) {
	assert.Equal(t, "FITCAMP-007", FormatBookingCode(7))
	assert.Equal(t, "FITCAMP-1234", FormatBookingCode(1234))
}
