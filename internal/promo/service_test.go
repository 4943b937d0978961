package promo

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]PromoCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PromoCode), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PromoCode), args.Error(1)
}

func (m *MockRepository) FindByCode(ctx context.Context, code string) (*PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PromoCode), args.Error(1)
}

func (m *MockRepository) FindByCodeForUpdate(ctx context.Context, code string) (*PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PromoCode), args.Error(1)
}

func (m *MockRepository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *PromoCode) (*PromoCode, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PromoCode), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *PromoCode) (*PromoCode, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PromoCode), args.Error(1)
}

func (m *MockRepository) IncrementUsage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestService_Apply(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		subtotal  int64
		setupMock func(*MockRepository)
		wantValid bool
		wantCents int64
		wantWhy   Reason
	}{
		{
			name:     "valid percent code consumes one use",
			code:     " welcome10 ",
			subtotal: 199000,
			setupMock: func(m *MockRepository) {
				m.On("FindByCodeForUpdate", mock.Anything, "WELCOME10").
					Return(&PromoCode{ID: "p-1", Code: "WELCOME10", DiscountPercent: 10, IsActive: true}, nil)
				m.On("IncrementUsage", mock.Anything, "p-1").Return(nil)
			},
			wantValid: true,
			wantCents: 19900,
		},
		{
			name:     "minimum purchase soft-fails without usage",
			code:     "BIG50",
			subtotal: 80000,
			setupMock: func(m *MockRepository) {
				m.On("FindByCodeForUpdate", mock.Anything, "BIG50").
					Return(&PromoCode{ID: "p-2", DiscountCents: 50000, MinPurchaseCents: 100000, IsActive: true}, nil)
			},
			wantWhy: ReasonMinPurchase,
		},
		{
			name:     "unknown code",
			code:     "GHOST",
			subtotal: 80000,
			setupMock: func(m *MockRepository) {
				m.On("FindByCodeForUpdate", mock.Anything, "GHOST").Return(nil, sql.ErrNoRows)
			},
			wantWhy: ReasonNotFound,
		},
		{
			name:      "blank code",
			code:      "  ",
			subtotal:  80000,
			setupMock: func(m *MockRepository) {},
			wantWhy:   ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			_, res, err := NewService(repo, clock).Apply(context.Background(), tt.code, tt.subtotal)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantCents, res.DiscountCents)
			assert.Equal(t, tt.wantWhy, res.Reason)
			repo.AssertExpectations(t)
			if !tt.wantValid {
				repo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_Apply_UsageLimit(t *testing.T) {
	repo := new(MockRepository)
	p := &PromoCode{ID: "p-1", DiscountPercent: 10, IsActive: true, UsageLimit: intPtr(1)}
	repo.On("FindByCodeForUpdate", mock.Anything, "ONCE").Return(p, nil)
	repo.On("IncrementUsage", mock.Anything, "p-1").Return(nil).Once()

	svc := NewService(repo, clock)

	_, first, err := svc.Apply(context.Background(), "ONCE", 100000)
	require.NoError(t, err)
	assert.True(t, first.Valid)

	_, second, err := svc.Apply(context.Background(), "ONCE", 100000)
	require.NoError(t, err)
	assert.False(t, second.Valid)
	assert.Equal(t, ReasonUsageLimit, second.Reason)
	repo.AssertExpectations(t)
}

func TestService_Validate_DoesNotConsume(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByCode", mock.Anything, "WELCOME10").
		Return(&PromoCode{ID: "p-1", DiscountPercent: 10, IsActive: true}, nil)

	_, res, err := NewService(repo, clock).Validate(context.Background(), "welcome10", int64Ptr(199000))
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, int64(19900), res.DiscountCents)
	repo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
}

func TestService_Validate_CodeRequired(t *testing.T) {
	_, _, err := NewService(new(MockRepository), clock).Validate(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrCodeRequired)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       PromoRequest
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name: "uppercases and drops zero limits",
			req:  PromoRequest{Code: "summer", DiscountPercent: 20, MaxDiscountCents: int64Ptr(0), UsageLimit: intPtr(0)},
			setupMock: func(m *MockRepository) {
				m.On("CodeExists", mock.Anything, "SUMMER", "").Return(false, nil)
				m.On("Create", mock.Anything, mock.MatchedBy(func(p *PromoCode) bool {
					return p.Code == "SUMMER" && p.MaxDiscountCents == nil && p.UsageLimit == nil && p.IsActive
				})).Return(&PromoCode{ID: "p-1", Code: "SUMMER"}, nil)
			},
		},
		{
			name:      "missing code",
			req:       PromoRequest{DiscountPercent: 20},
			setupMock: func(m *MockRepository) {},
			wantErr:   ErrCodeRequired,
		},
		{
			name: "duplicate code",
			req:  PromoRequest{Code: "SUMMER", DiscountPercent: 20},
			setupMock: func(m *MockRepository) {
				m.On("CodeExists", mock.Anything, "SUMMER", "").Return(true, nil)
			},
			wantErr: ErrDuplicateCode,
		},
		{
			name: "inverted window",
			req: PromoRequest{
				Code:       "SUMMER",
				ValidFrom:  &fixedNow,
				ValidUntil: func() *time.Time { t := fixedNow.Add(-time.Hour); return &t }(),
			},
			setupMock: func(m *MockRepository) {},
			wantErr:   ErrInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			_, err := NewService(repo, clock).Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, "p-404").Return(sql.ErrNoRows)

	err := NewService(repo, clock).Delete(context.Background(), "p-404")
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestHandler_Validate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockRepository)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "valid",
			body: `{"code":"welcome10","subtotalCents":19900000}`,
			setupMock: func(m *MockRepository) {
				m.On("FindByCode", mock.Anything, "WELCOME10").
					Return(&PromoCode{ID: "p-1", Code: "WELCOME10", DiscountPercent: 10, IsActive: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"valid":true,"promoCode":{"id":"p-1","code":"WELCOME10","description":null,"discountCents":1990000,"discountPercent":10}}`,
		},
		{
			name: "unknown",
			body: `{"code":"ghost"}`,
			setupMock: func(m *MockRepository) {
				m.On("FindByCode", mock.Anything, "GHOST").Return(nil, sql.ErrNoRows)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"valid":false,"error":"Promo code not found"}`,
		},
		{
			name: "expired",
			body: `{"code":"OLD"}`,
			setupMock: func(m *MockRepository) {
				past := fixedNow.Add(-time.Hour)
				m.On("FindByCode", mock.Anything, "OLD").
					Return(&PromoCode{Code: "OLD", DiscountCents: 1000, IsActive: true, ValidUntil: &past}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"valid":false,"error":"Promo code has expired"}`,
		},
		{
			name:           "missing code",
			body:           `{}`,
			setupMock:      func(m *MockRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Promo code is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			router := gin.New()
			router.POST("/api/promo-codes/validate", NewHandler(NewService(repo, clock)).Validate)

			req := httptest.NewRequest(http.MethodPost, "/api/promo-codes/validate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, "p-1").Return(nil)

	router := gin.New()
	router.DELETE("/api/admin/promo-codes/:id", NewHandler(NewService(repo, clock)).Delete)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/promo-codes/p-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Promo code deleted successfully"}`, w.Body.String())
}
