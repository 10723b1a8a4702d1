package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/talentbridge/marketplace/internal/api/handler"
	"github.com/talentbridge/marketplace/internal/api/middleware"
	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Services are wired by main.
type Deps struct {
	Log      zerolog.Logger
	Resolver ports.PrincipalResolver

	Auth         ports.AuthService
	Users        ports.UserService
	Jobs         ports.JobService
	Applications ports.ApplicationService
	Bookings     ports.BookingService
	Profiles     ports.ProfileService
	Likes        ports.LikeService
	Testimonials ports.TestimonialService

	Limiter    middleware.Limiter
	RateLimit  int
	RateWindow time.Duration

	HealthChecks map[string]handler.PingFunc

	// Registerer receives the HTTP request metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	jobHandler := handler.NewJobHandler(d.Jobs)
	appHandler := handler.NewApplicationHandler(d.Applications)
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	profileHandler := handler.NewProfileHandler(d.Profiles)
	likeHandler := handler.NewLikeHandler(d.Likes)
	testimonialHandler := handler.NewTestimonialHandler(d.Testimonials)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	authed := middleware.Auth(d.Resolver)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	limited := middleware.RateLimit(d.Limiter, d.RateLimit, d.RateWindow, d.Log)

	// --- Operations (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register, limited)
	e.POST("/auth/login", authHandler.Login, limited)
	e.GET("/auth/profile", authHandler.Profile, authed)

	// --- Users ---
	users := e.Group("/users", authed)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id/role", userHandler.ChangeRole, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Jobs (listing and detail are public) ---
	e.GET("/jobs", jobHandler.List)
	e.GET("/jobs/mine", jobHandler.Mine, authed)
	e.GET("/jobs/:id", jobHandler.Get)
	jobs := e.Group("/jobs", authed)
	jobs.POST("", jobHandler.Create)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Delete)
	jobs.GET("/:id/applications", appHandler.ListForJob)
	jobs.POST("/:id/apply", appHandler.Apply)
	jobs.GET("/:id/like", likeHandler.Status)
	jobs.POST("/:id/like", likeHandler.Like)
	jobs.DELETE("/:id/like", likeHandler.Unlike)

	// --- Applications ---
	apps := e.Group("/applications", authed)
	apps.GET("", appHandler.List)
	apps.PUT("/:id/status", appHandler.SetStatus)
	apps.GET("/:id/history", appHandler.History)

	// --- Bookings ---
	bookings := e.Group("/bookings", authed)
	bookings.GET("", bookingHandler.List)
	bookings.POST("", bookingHandler.Create)
	bookings.PUT("/:id", bookingHandler.Update)
	bookings.DELETE("/:id", bookingHandler.Delete)

	// --- Profiles ---
	e.GET("/profile", profileHandler.Get, authed)
	e.PUT("/profile", profileHandler.Update, authed)
	e.GET("/profiles/:user_id", profileHandler.GetForUser, authed)
	e.GET("/talents", profileHandler.ListTalents)

	// --- Testimonials ---
	e.GET("/testimonials", testimonialHandler.List)
	e.POST("/testimonials", testimonialHandler.Submit, authed)
	e.PUT("/testimonials/:id/approve", testimonialHandler.Approve, authed, adminOnly)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error()
			}
			evt.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
