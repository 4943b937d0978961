package testimonial

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Testimonial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Testimonial), args.Error(1)
}

func (m *MockRepository) ListActiveByGymSlug(ctx context.Context, gymSlug string) ([]Testimonial, error) {
	args := m.Called(ctx, gymSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Testimonial), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Testimonial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Testimonial), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, t *Testimonial) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, t *Testimonial) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var testimonialCols = []string{"id", "name", "role", "text", "image_url", "gym_id", "is_active", "sort_order",
	"created_at", "updated_at", "gym_name", "gym_slug"}

func TestRepository_List_AttachesGym(t *testing.T) {
	sqlDB, sm, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	now := time.Now()
	sm.ExpectQuery(`LEFT JOIN gyms g ON g.id = t.gym_id ORDER BY t.sort_order ASC, t.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(testimonialCols).
			AddRow("t-1", "Rina", "Member", "Great", nil, "g-1", true, 0, now, now, "Iron Temple", "iron-temple").
			AddRow("t-2", "Budi", "Member", "Nice", nil, nil, true, 1, now, now, nil, nil))

	items, err := NewRepository(sqlx.NewDb(sqlDB, "sqlmock")).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, &GymRef{ID: "g-1", Name: "Iron Temple", Slug: "iron-temple"}, items[0].Gym)
	assert.Nil(t, items[1].Gym)
}

func TestService_Create(t *testing.T) {
	inactive := false

	tests := []struct {
		name          string
		req           TestimonialRequest
		setupMock     func(*MockRepository)
		expectedError error
	}{
		{
			name: "defaults",
			req:  TestimonialRequest{Name: "Rina", Role: "Member", Text: "Great", ImageURL: " ", GymID: ""},
			setupMock: func(m *MockRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(t *Testimonial) bool {
					return t.IsActive && t.ImageURL == nil && t.GymID == nil
				})).Return("t-1", nil)
				m.On("FindByID", mock.Anything, "t-1").Return(&Testimonial{ID: "t-1"}, nil)
			},
		},
		{
			name: "explicit inactive",
			req:  TestimonialRequest{Name: "Rina", Role: "Member", Text: "Great", IsActive: &inactive, GymID: " g-1 "},
			setupMock: func(m *MockRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(t *Testimonial) bool {
					return !t.IsActive && *t.GymID == "g-1"
				})).Return("t-2", nil)
				m.On("FindByID", mock.Anything, "t-2").Return(&Testimonial{ID: "t-2"}, nil)
			},
		},
		{name: "name required", req: TestimonialRequest{Role: "r", Text: "t"}, setupMock: func(*MockRepository) {}, expectedError: ErrNameRequired},
		{name: "role required", req: TestimonialRequest{Name: "n", Text: "t"}, setupMock: func(*MockRepository) {}, expectedError: ErrRoleRequired},
		{name: "text required", req: TestimonialRequest{Name: "n", Role: "r"}, setupMock: func(*MockRepository) {}, expectedError: ErrTextRequired},
		{
			name: "unknown gym",
			req:  TestimonialRequest{Name: "n", Role: "r", Text: "t", GymID: "ghost"},
			setupMock: func(m *MockRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return("", &pq.Error{Code: "23503"})
			},
			expectedError: ErrGymNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			_, err := NewService(repo).Create(context.Background(), tt.req)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestHandler_ListForGym(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := new(MockRepository)
	repo.On("ListActiveByGymSlug", mock.Anything, "ghost").Return([]Testimonial{}, nil)

	router := gin.New()
	router.GET("/api/testimonials/:gymSlug", NewHandler(NewService(repo)).ListForGym)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/testimonials/ghost", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"testimonials":[]}`, w.Body.String())
}

func TestHandler_Create_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/admin/testimonials", NewHandler(NewService(new(MockRepository))).Create)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/testimonials", bytes.NewBufferString(`{"name":"Rina","role":"Member"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Testimonial text is required"}`, w.Body.String())
}
