package router

import (
	"fmt"
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/reelspro/backend/internal/handlers"
	"github.com/reelspro/backend/internal/imagekit"
	"github.com/reelspro/backend/internal/middleware"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
	"github.com/reelspro/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = errorHandler
	log.Println("Global middleware configured.")
}

// errorHandler renders failures as {"error": ...}, the envelope clients read.
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = fmt.Sprintf("%v", he.Message)
		}
	}
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": message})
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil; social login then answers 503.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.SavedReel{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	reelRepo := repositories.NewMongoReelRepository(mgClient.Database(cfg.MongoDBName))
	savedReelRepo := repositories.NewPostgresSavedReelRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	public := e.Group("/api/v1")
	reelHandler := handlers.NewReelHandler(reelRepo)
	reelHandler.RegisterPublicReelRoutes(public)

	// The feed is public; a bearer token, when present, personalizes the
	// is_liked/is_saved flags.
	feed := e.Group("/api/v1")
	feed.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret))
	feedHandler := handlers.NewFeedHandler(reelRepo, userRepo, savedReelRepo)
	feedHandler.RegisterFeedRoutes(feed)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	reelHandler.RegisterReelRoutes(api)

	likeHandler := handlers.NewLikeHandler(reelRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(reelRepo, userRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)

	savedReelHandler := handlers.NewSavedReelHandler(savedReelRepo, reelRepo, userRepo)
	savedReelHandler.RegisterSavedReelRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, reelRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	uploadHandler := handlers.NewUploadHandler(imagekit.NewSigner(cfg.ImageKitPrivateKey))
	uploadHandler.RegisterUploadRoutes(api)

	log.Println("All routes configured.")
}
