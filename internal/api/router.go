package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportmeet/backend/internal/api/handler"
	"github.com/sportmeet/backend/internal/api/middleware"
	"github.com/sportmeet/backend/internal/core/service"
	mongostore "github.com/sportmeet/backend/internal/infrastructure/db/mongo"
	redisstore "github.com/sportmeet/backend/internal/infrastructure/db/redis"
	"github.com/sportmeet/backend/internal/infrastructure/mail"
	"github.com/sportmeet/backend/internal/notification"
	"github.com/sportmeet/backend/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with the full dependency
// graph wired and all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sportmeet"))

	// --- Repositories ---
	accountRepo := mongostore.NewAccountRepository(db)
	tokenRepo := mongostore.NewTokenRepository(db)
	eventRepo := mongostore.NewEventRepository(db)
	chatRepo := mongostore.NewChatRepository(db)
	inbox := redisstore.NewInbox(rdb)

	// --- Notification pipeline ---
	hub := notification.NewHub(log)
	manager := notification.NewManager(hub, inbox, log)
	bridge := notification.NewBridge(
		notification.NewRestNotificationCreator(),
		notification.NewSocketNotificationCreator(),
		manager,
		log,
	)

	// --- Services ---
	mailer, err := mail.NewService(mail.Config{
		APIKey:  cfg.Mail.APIKey,
		From:    cfg.Mail.From,
		BaseURL: cfg.Mail.BaseURL,
		Enabled: cfg.Mail.Enabled,
	}, log)
	if err != nil {
		return nil, err
	}

	registerService := service.NewRegisterService(accountRepo, tokenRepo, mailer, cfg.ConfirmationTTL, log)
	authService := service.NewAuthService(accountRepo, bridge, cfg.JWTSecret, cfg.SessionTTL, log)
	eventService := service.NewEventService(eventRepo, accountRepo, log)
	chatService := service.NewChatStorage(chatRepo, eventRepo, accountRepo, bridge, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(registerService, authService)
	eventHandler := handler.NewEventHandler(eventService)
	chatHandler := handler.NewChatHandler(chatService)
	notificationHandler := handler.NewNotificationHandler(hub, inbox)

	// --- Public routes ---
	e.POST("/public/users/register", authHandler.Register)
	e.GET("/public/users/confirm/:token", authHandler.Confirm)
	e.POST("/public/users/confirm/resend", authHandler.Resend)
	e.POST("/public/users/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.POST("/events", eventHandler.Create)
	v1.GET("/events", eventHandler.List)
	v1.GET("/events/:id", eventHandler.Get)
	v1.DELETE("/events/:id", eventHandler.Delete)
	v1.PUT("/events/:id/participants/:accountId", eventHandler.AddParticipant)
	v1.DELETE("/events/:id/participants/:accountId", eventHandler.RemoveParticipant)
	v1.POST("/events/:id/photos", eventHandler.AddPhoto)
	v1.DELETE("/events/:id/photos/:photoId", eventHandler.RemovePhoto)

	v1.POST("/chats/private", chatHandler.CreatePrivate)
	v1.GET("/chats/event/:id", chatHandler.GetEvent)
	v1.GET("/chats/private/:id", chatHandler.GetPrivate)
	v1.DELETE("/chats/private/:id", chatHandler.DeletePrivate)
	v1.PUT("/chats/private/:id/participants/:accountId", chatHandler.AddParticipant)
	v1.DELETE("/chats/private/:id/participants/:accountId", chatHandler.RemoveParticipant)
	v1.POST("/chats/event/:id/messages", chatHandler.PostEventMessage)
	v1.POST("/chats/private/:id/messages", chatHandler.PostPrivateMessage)
	v1.GET("/chats/:id/messages", chatHandler.ListMessages)

	v1.GET("/notifications", notificationHandler.Poll)
	v1.GET("/notifications/stream", notificationHandler.Stream)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
