package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/askstack/qa-platform/internal/api/handler"
	"github.com/askstack/qa-platform/internal/api/middleware"
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// Deps carries everything the router needs. Handlers for infrastructure
// routes (health, websocket) are passed in already built.
type Deps struct {
	JWTSecret string
	// RateLimit is requests per second per client IP on mutating routes.
	// Zero disables limiting.
	RateLimit float64
	Log       zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry

	Auth          ports.AuthService
	Questions     ports.QuestionService
	Answers       ports.AnswerService
	Notifications ports.NotificationService
	Users         ports.UserService
	Moderation    ports.ModerationService
	Bans          middleware.BanChecker
	// Directory is read when the ban cache cannot answer and on admin routes.
	Directory middleware.UserLookup

	Liveness  echo.HandlerFunc
	Readiness echo.HandlerFunc
	Websocket echo.HandlerFunc
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
	if d.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "qa",
			Registerer: d.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry}))
	} else {
		e.Use(echoprometheus.NewMiddleware("qa"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Infrastructure routes ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.Liveness != nil {
		e.GET("/health", d.Liveness)
	}
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness)
	}
	if d.Websocket != nil {
		e.GET("/ws", d.Websocket)
	}

	authHandler := handler.NewAuthHandler(d.Auth)
	questionHandler := handler.NewQuestionHandler(d.Questions, d.Answers)
	answerHandler := handler.NewAnswerHandler(d.Answers)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	userHandler := handler.NewUserHandler(d.Users)
	adminHandler := handler.NewAdminHandler(d.Moderation)

	requireAuth := middleware.Auth(d.JWTSecret)
	optionalAuth := middleware.OptionalAuth(d.JWTSecret)
	active := middleware.ActiveUser(d.Bans, d.Directory, d.Log)
	adminOnly := middleware.RBAC(d.Directory, domain.RoleAdmin)

	// write applies to every mutating route: authenticated, not banned, rate limited.
	write := []echo.MiddlewareFunc{requireAuth, active}
	if d.RateLimit > 0 {
		limiter := echomiddleware.RateLimiter(
			echomiddleware.NewRateLimiterMemoryStore(rate.Limit(d.RateLimit)),
		)
		write = append(write, limiter)
	}

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Questions ---
	questions := api.Group("/questions")
	questions.GET("", questionHandler.List)
	questions.GET("/tags/popular", questionHandler.PopularTags)
	questions.GET("/:id", questionHandler.Get, optionalAuth)
	questions.GET("/:id/answers", questionHandler.Answers)
	questions.POST("", questionHandler.Create, write...)
	questions.PUT("/:id", questionHandler.Update, write...)
	questions.DELETE("/:id", questionHandler.Delete, write...)
	questions.POST("/:id/vote", questionHandler.Vote, write...)

	// --- Answers ---
	answers := api.Group("/answers", write...)
	answers.POST("", answerHandler.Post)
	answers.PUT("/:id", answerHandler.Update)
	answers.DELETE("/:id", answerHandler.Delete)
	answers.POST("/:id/vote", answerHandler.Vote)
	answers.POST("/:id/accept", answerHandler.Accept)
	answers.POST("/:id/comments", answerHandler.Comment)

	// --- Notifications ---
	notifications := api.Group("/notifications", requireAuth)
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)
	notifications.PUT("/read-multiple", notificationHandler.MarkMany)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/clear-all", notificationHandler.ClearAll)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// --- Users ---
	users := api.Group("/users")
	users.GET("/search", userHandler.Search)
	users.GET("/leaderboard", userHandler.Leaderboard)
	users.GET("/:id", userHandler.Profile)
	users.GET("/:id/questions", userHandler.Questions)
	users.GET("/:id/answers", userHandler.Answers)
	users.GET("/:id/activity", userHandler.Activity)

	// --- Admin ---
	admin := api.Group("/admin", requireAuth, adminOnly)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/ban", adminHandler.SetBan)
	admin.PUT("/users/:id/role", adminHandler.SetRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/questions", adminHandler.ListQuestions)
	admin.PUT("/questions/:id/restore", adminHandler.RestoreQuestion)
	admin.POST("/notifications/broadcast", adminHandler.Broadcast)
	admin.GET("/reports", adminHandler.Report)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
