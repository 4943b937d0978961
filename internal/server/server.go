package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fuazim/fitcamp/internal/auth"
	"github.com/fuazim/fitcamp/internal/city"
	"github.com/fuazim/fitcamp/internal/config"
	"github.com/fuazim/fitcamp/internal/dashboard"
	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/email"
	"github.com/fuazim/fitcamp/internal/facility"
	"github.com/fuazim/fitcamp/internal/gym"
	"github.com/fuazim/fitcamp/internal/notify"
	"github.com/fuazim/fitcamp/internal/order"
	"github.com/fuazim/fitcamp/internal/payment"
	"github.com/fuazim/fitcamp/internal/plan"
	"github.com/fuazim/fitcamp/internal/promo"
	"github.com/fuazim/fitcamp/internal/storage"
	"github.com/fuazim/fitcamp/internal/testimonial"
	"github.com/fuazim/fitcamp/internal/ticket"
	"github.com/fuazim/fitcamp/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

const (
	proofFolder       = "proofs"
	testimonialFolder = "testimonials"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	DB                 Pinger
	Users              *user.Handler
	Cities             *city.Handler
	Gyms               *gym.Handler
	Facilities         *facility.Handler
	Plans              *plan.Handler
	Testimonials       *testimonial.Handler
	Promos             *promo.Handler
	Orders             *order.Handler
	Payments           *payment.Handler
	Dashboard          *dashboard.Handler
	ProofUploads       *storage.Handler
	TestimonialUploads *storage.Handler
}

type Server struct {
	http *http.Server
}

// New builds every repository, service and handler on top of database and
// mounts them on a fresh router.
func New(database *sqlx.DB, cfg *config.Config, emailService *email.Service, uploader storage.Uploader, notifier notify.Notifier) *Server {
	tx := db.NewTransactor(database)

	userRepo := user.NewRepository(database)
	cityService := city.NewService(city.NewRepository(database))
	promoService := promo.NewService(promo.NewRepository(database), time.Now)
	planService := plan.NewService(plan.NewRepository(database))
	ticketRepo := ticket.NewRepository(database)
	orderRepo := order.NewRepository(database)

	orderService := order.NewService(orderRepo, order.Deps{
		Codes:   order.NewAllocator(orderRepo, time.Now),
		Plans:   planService,
		Users:   userRepo,
		Promos:  promoService,
		Tickets: ticketRepo,
		Tx:      tx,
		Mailer:  emailService,
	})

	paymentService := payment.NewService(payment.NewRepository(database), payment.Deps{
		Orders:   orderRepo,
		Tickets:  ticketRepo,
		Tx:       tx,
		Mailer:   emailService,
		Notifier: notifier,
	})

	h := Handlers{
		DB:                 database,
		Users:              user.NewHandler(user.NewService(userRepo, cfg.JWTSecret)),
		Cities:             city.NewHandler(cityService),
		Gyms:               gym.NewHandler(gym.NewService(gym.NewRepository(database), cityService, tx)),
		Facilities:         facility.NewHandler(facility.NewService(facility.NewRepository(database))),
		Plans:              plan.NewHandler(planService),
		Testimonials:       testimonial.NewHandler(testimonial.NewService(testimonial.NewRepository(database))),
		Promos:             promo.NewHandler(promoService),
		Orders:             order.NewHandler(orderService),
		Payments:           payment.NewHandler(paymentService),
		Dashboard:          dashboard.NewHandler(dashboard.NewRepository(database)),
		ProofUploads:       storage.NewHandler(uploader, proofFolder),
		TestimonialUploads: storage.NewHandler(uploader, testimonialFolder),
	}

	return &Server{
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, h),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter mounts h under /api and the system endpoints at the root.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware(), MetricsMiddleware(), corsMiddleware(cfg.CORSOrigins))

	router.GET("/health", Health(h.DB))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	limited := RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	public := router.Group("/api")
	{
		public.GET("/cities", h.Cities.ListPublic)
		public.GET("/gyms", h.Gyms.Search)
		public.GET("/gyms/:slug", h.Gyms.GetBySlug)
		public.GET("/plans", h.Plans.List)
		public.GET("/testimonials/:gymSlug", h.Testimonials.ListForGym)

		public.POST("/orders", limited, h.Orders.Create)
		public.POST("/orders/lookup", limited, h.Orders.Lookup)
		public.GET("/orders/:id", h.Orders.Get)
		public.GET("/orders/:id/qr", h.Orders.QR)

		public.POST("/payments", limited, h.Payments.Submit)
		public.POST("/payments/upload", limited, h.ProofUploads.Upload)

		public.POST("/promo-codes/validate", limited, h.Promos.Validate)
	}

	router.POST("/api/admin/login", limited, h.Users.Login)

	admin := router.Group("/api/admin")
	admin.Use(auth.AdminOnly(cfg.JWTSecret)...)
	{
		admin.GET("/me", h.Users.Me)
		admin.GET("/dashboard", h.Dashboard.Get)

		admin.GET("/cities", h.Cities.List)
		admin.POST("/cities", h.Cities.Create)
		admin.GET("/cities/:id", h.Cities.Get)
		admin.PUT("/cities/:id", h.Cities.Update)
		admin.DELETE("/cities/:id", h.Cities.Delete)

		admin.GET("/gyms", h.Gyms.List)
		admin.POST("/gyms", h.Gyms.Create)
		admin.GET("/gyms/:id", h.Gyms.Get)
		admin.PUT("/gyms/:id", h.Gyms.Update)
		admin.DELETE("/gyms/:id", h.Gyms.Delete)

		admin.GET("/facilities", h.Facilities.List)
		admin.POST("/facilities", h.Facilities.Create)
		admin.GET("/facilities/:id", h.Facilities.Get)
		admin.PUT("/facilities/:id", h.Facilities.Update)
		admin.DELETE("/facilities/:id", h.Facilities.Delete)

		admin.GET("/testimonials", h.Testimonials.List)
		admin.POST("/testimonials", h.Testimonials.Create)
		admin.POST("/testimonials/upload", h.TestimonialUploads.Upload)
		admin.GET("/testimonials/:id", h.Testimonials.Get)
		admin.PUT("/testimonials/:id", h.Testimonials.Update)
		admin.DELETE("/testimonials/:id", h.Testimonials.Delete)

		admin.GET("/promo-codes", h.Promos.List)
		admin.POST("/promo-codes", h.Promos.Create)
		admin.GET("/promo-codes/:id", h.Promos.Get)
		admin.PUT("/promo-codes/:id", h.Promos.Update)
		admin.DELETE("/promo-codes/:id", h.Promos.Delete)

		admin.GET("/orders", h.Orders.List)

		admin.GET("/payments", h.Payments.List)
		admin.POST("/payments/:id/approve", h.Payments.Approve)
		admin.POST("/payments/:id/reject", h.Payments.Reject)
	}

	return router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// corsMiddleware allows every origin when origins is empty or contains "*".
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "Cache-Control", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || lo.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
