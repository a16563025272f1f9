package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Siddhant0227/Custom-Chatbot-Builder/docs"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/api/handler"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/api/middleware"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/service"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/infrastructure/ai"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/infrastructure/config"
	mongodb "github.com/Siddhant0227/Custom-Chatbot-Builder/internal/infrastructure/db/mongo"
	redisdb "github.com/Siddhant0227/Custom-Chatbot-Builder/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chatbot_builder"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	chatbotRepo := mongodb.NewChatbotRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, sessions, cfg.JWTSecret, cfg.TokenTTL)
	chatbotService := service.NewChatbotService(chatbotRepo, log)
	assistantService := service.NewAssistantService(ai.NewClient(ai.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}), log)

	authHandler := handler.NewAuthHandler(authService)
	chatbotHandler := handler.NewChatbotHandler(chatbotService)
	assistantHandler := handler.NewAssistantHandler(assistantService)
	authRequired := middleware.Auth(cfg.JWTSecret, sessions)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, authRequired)

	// --- Chatbot record routes (owner-scoped) ---
	bots := e.Group("/chatbots", authRequired)
	bots.GET("", chatbotHandler.List)
	bots.POST("", chatbotHandler.Create)
	bots.POST("/create_empty", chatbotHandler.CreateEmpty)
	bots.POST("/config", chatbotHandler.SaveConfig)
	bots.GET("/config/:botName", chatbotHandler.GetConfig)
	bots.GET("/:id", chatbotHandler.Get)
	bots.PUT("/:id", chatbotHandler.Update)
	bots.DELETE("/:id", chatbotHandler.Delete)

	// --- AI passthrough (no record access, no auth) ---
	e.POST("/ai/response", assistantHandler.Respond)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/", healthHandler.Welcome)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
