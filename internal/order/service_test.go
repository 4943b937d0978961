package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fuazim/fitcamp/internal/plan"
	"github.com/fuazim/fitcamp/internal/promo"
	"github.com/fuazim/fitcamp/internal/ticket"
	"github.com/fuazim/fitcamp/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LatestBookingCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) BookingCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, o *Order) (*Order, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(context.Context, *Order) *Order); ok {
		return fn(ctx, o), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) FindByBookingCode(ctx context.Context, code string) (*Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status Status) ([]Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	return m.Called(ctx, id, paidAt).Error(0)
}

type MockPlans struct {
	mock.Mock
}

func (m *MockPlans) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) UpsertCustomer(ctx context.Context, name, email, phone string) (*user.User, error) {
	args := m.Called(ctx, name, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockPromos struct {
	mock.Mock
}

func (m *MockPromos) Apply(ctx context.Context, code string, subtotalCents int64) (*promo.PromoCode, promo.Result, error) {
	args := m.Called(ctx, code, subtotalCents)
	p, _ := args.Get(0).(*promo.PromoCode)
	return p, args.Get(1).(promo.Result), args.Error(2)
}

type MockTickets struct {
	mock.Mock
}

func (m *MockTickets) ListByOrderIDs(ctx context.Context, ids []string) ([]ticket.Ticket, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticket.Ticket), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOrderCreated(ctx context.Context, to, name, bookingCode, planName string, totalCents int64) error {
	return m.Called(ctx, to, name, bookingCode, planName, totalCents).Error(0)
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedCode string

func (c fixedCode) Allocate(context.Context) string { return string(c) }

func strPtr(s string) *string { return &s }

var serviceNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *MockRepository
	plans   *MockPlans
	users   *MockUsers
	promos  *MockPromos
	tickets *MockTickets
	mailer  *MockMailer
	tx      *fakeTx
}

func newFixture() *fixture {
	return &fixture{
		repo:    new(MockRepository),
		plans:   new(MockPlans),
		users:   new(MockUsers),
		promos:  new(MockPromos),
		tickets: new(MockTickets),
		mailer:  new(MockMailer),
		tx:      &fakeTx{},
	}
}

func (f *fixture) service() Service {
	return NewService(f.repo, Deps{
		Codes:   fixedCode("FITCAMP-001"),
		Plans:   f.plans,
		Users:   f.users,
		Promos:  f.promos,
		Tickets: f.tickets,
		Tx:      f.tx,
		Mailer:  f.mailer,
		Now:     func() time.Time { return serviceNow },
	})
}

var monthly = &plan.Plan{ID: "p-1", Name: "Monthly", PriceCents: 19900000, Currency: "IDR", PeriodMonths: 1}

var budi = &user.User{ID: "u-1", Name: "Budi", Email: "budi@example.com", Phone: strPtr("08123")}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name         string
		req          CreateRequest
		promoResult  promo.Result
		promoCode    *promo.PromoCode
		wantDiscount int64
		wantPromoID  bool
	}{
		{
			name: "without promo",
			req:  CreateRequest{FullName: " Budi ", PhoneNumber: "08123", Email: "Budi@Example.com", PlanID: "p-1"},
		},
		{
			name:         "percent promo applied",
			req:          CreateRequest{FullName: "Budi", PhoneNumber: "08123", Email: "budi@example.com", PlanID: "p-1", PromoCode: "welcome10"},
			promoCode:    &promo.PromoCode{ID: "promo-1", Code: "WELCOME10"},
			promoResult:  promo.Result{Valid: true, DiscountCents: 1990000},
			wantDiscount: 1990000,
			wantPromoID:  true,
		},
		{
			name:        "ineligible promo is dropped",
			req:         CreateRequest{FullName: "Budi", PhoneNumber: "08123", Email: "budi@example.com", PlanID: "p-1", PromoCode: "BIG50"},
			promoCode:   &promo.PromoCode{ID: "promo-2", Code: "BIG50"},
			promoResult: promo.Result{Reason: promo.ReasonMinPurchase},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.plans.On("GetByID", mock.Anything, "p-1").Return(monthly, nil)
			f.users.On("UpsertCustomer", mock.Anything, "Budi", "budi@example.com", "08123").Return(budi, nil)
			if tt.req.PromoCode != "" {
				f.promos.On("Apply", mock.Anything, tt.req.PromoCode, int64(19900000)).Return(tt.promoCode, tt.promoResult, nil)
			}
			f.repo.On("Create", mock.Anything, mock.MatchedBy(func(o *Order) bool {
				return o.BookingCode == "FITCAMP-001" &&
					o.Status == StatusPending &&
					o.PaymentMethod == PaymentMethodManual &&
					o.DiscountCents == tt.wantDiscount &&
					o.TotalCents == o.SubtotalCents-o.DiscountCents &&
					(o.PromoCodeID != nil) == tt.wantPromoID
			})).Return(func(_ context.Context, o *Order) *Order {
				created := *o
				created.ID = "o-1"
				return &created
			}, nil)
			f.mailer.On("SendOrderCreated", mock.Anything, "budi@example.com", "Budi", "FITCAMP-001", "Monthly", 19900000-tt.wantDiscount).Return(nil)

			o, err := f.service().Create(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, "o-1", o.ID)
			assert.Equal(t, int64(19900000)-tt.wantDiscount, o.TotalCents)
			assert.GreaterOrEqual(t, o.TotalCents, int64(0))
			assert.Equal(t, "Budi", o.User.Name)
			assert.Equal(t, 1, f.tx.calls)
			f.repo.AssertExpectations(t)
			f.promos.AssertExpectations(t)
			f.mailer.AssertExpectations(t)
		})
	}
}

func TestService_Create_Errors(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		f := newFixture()
		_, err := f.service().Create(context.Background(), CreateRequest{FullName: "Budi", Email: "budi@example.com", PlanID: "p-1", PhoneNumber: "   "})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("plan not found", func(t *testing.T) {
		f := newFixture()
		f.plans.On("GetByID", mock.Anything, "p-404").Return(nil, plan.ErrPlanNotFound)

		_, err := f.service().Create(context.Background(), CreateRequest{FullName: "Budi", PhoneNumber: "08123", Email: "budi@example.com", PlanID: "p-404"})
		assert.ErrorIs(t, err, ErrPlanNotFound)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("promo lookup failure aborts", func(t *testing.T) {
		f := newFixture()
		f.plans.On("GetByID", mock.Anything, "p-1").Return(monthly, nil)
		f.users.On("UpsertCustomer", mock.Anything, "Budi", "budi@example.com", "08123").Return(budi, nil)
		f.promos.On("Apply", mock.Anything, "WELCOME10", int64(19900000)).Return(nil, promo.Result{}, errors.New("db down"))

		_, err := f.service().Create(context.Background(), CreateRequest{FullName: "Budi", PhoneNumber: "08123", Email: "budi@example.com", PlanID: "p-1", PromoCode: "WELCOME10"})
		assert.Error(t, err)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.mailer.AssertNotCalled(t, "SendOrderCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Lookup(t *testing.T) {
	order := &Order{ID: "o-1", BookingCode: "FITCAMP-001", User: &Customer{ID: "u-1", Phone: strPtr("08123")}}

	tests := []struct {
		name      string
		req       LookupRequest
		setupMock func(*fixture)
		wantErr   error
	}{
		{
			name: "match",
			req:  LookupRequest{BookingCode: " fitcamp-001 ", PhoneNumber: " 08123 "},
			setupMock: func(f *fixture) {
				f.repo.On("FindByBookingCode", mock.Anything, "FITCAMP-001").Return(order, nil)
				f.tickets.On("ListByOrderIDs", mock.Anything, []string{"o-1"}).Return([]ticket.Ticket{}, nil)
			},
		},
		{
			name: "phone mismatch",
			req:  LookupRequest{BookingCode: "FITCAMP-001", PhoneNumber: "+628123"},
			setupMock: func(f *fixture) {
				f.repo.On("FindByBookingCode", mock.Anything, "FITCAMP-001").Return(order, nil)
			},
			wantErr: ErrInvalidLookup,
		},
		{
			name: "missing user",
			req:  LookupRequest{BookingCode: "FITCAMP-002", PhoneNumber: "08123"},
			setupMock: func(f *fixture) {
				f.repo.On("FindByBookingCode", mock.Anything, "FITCAMP-002").Return(&Order{ID: "o-2"}, nil)
			},
			wantErr: ErrInvalidLookup,
		},
		{
			name: "unknown code",
			req:  LookupRequest{BookingCode: "FITCAMP-404", PhoneNumber: "08123"},
			setupMock: func(f *fixture) {
				f.repo.On("FindByBookingCode", mock.Anything, "FITCAMP-404").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
		{
			name:      "missing phone",
			req:       LookupRequest{BookingCode: "FITCAMP-001"},
			setupMock: func(f *fixture) {},
			wantErr:   ErrLookupFieldsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setupMock(f)

			o, err := f.service().Lookup(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "FITCAMP-001", o.BookingCode)
		})
	}
}

func TestService_Get_TicketExpiredOnRead(t *testing.T) {
	f := newFixture()
	f.repo.On("FindByID", mock.Anything, "o-1").Return(&Order{ID: "o-1", Status: StatusPaid}, nil)
	f.tickets.On("ListByOrderIDs", mock.Anything, []string{"o-1"}).Return([]ticket.Ticket{{
		ID:       "t-1",
		OrderID:  "o-1",
		StartsAt: serviceNow.AddDate(0, -2, 0),
		EndsAt:   serviceNow.AddDate(0, -1, 0),
		Status:   ticket.StatusActive,
	}}, nil)

	o, err := f.service().Get(context.Background(), "o-1")
	require.NoError(t, err)
	require.NotNil(t, o.Ticket)
	assert.Equal(t, ticket.StatusExpired, o.Ticket.Status)
}

func TestService_List_InvalidStatus(t *testing.T) {
	_, err := newFixture().service().List(context.Background(), "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_List(t *testing.T) {
	f := newFixture()
	f.repo.On("List", mock.Anything, StatusPending).Return([]Order{{ID: "o-1"}, {ID: "o-2"}}, nil)
	f.tickets.On("ListByOrderIDs", mock.Anything, []string{"o-1", "o-2"}).Return([]ticket.Ticket{}, nil)

	orders, err := f.service().List(context.Background(), "pending")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestService_QR(t *testing.T) {
	f := newFixture()
	f.repo.On("FindByID", mock.Anything, "o-1").Return(&Order{ID: "o-1", BookingCode: "FITCAMP-001"}, nil)

	png, err := f.service().QR(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
