package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mindbloom/internal/handlers"
	"mindbloom/internal/middleware"
	"mindbloom/internal/models"
	"mindbloom/internal/repositories"
	"mindbloom/internal/services"
	"mindbloom/pkg/genai"
	"mindbloom/pkg/googleauth"
	"mindbloom/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "mindbloom.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("YOUTUBE_API_KEY", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("BOOKS_DIR", "books")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.JournalEntry{},
		&models.MoodEntry{},
		&models.CommunityPost{},
		&models.PostLike{},
		&models.PostComment{},
		&models.AIConversation{},
		&models.BookReading{},
		&models.BookBookmark{},
		&models.BookHighlight{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// With no URL configured the event stream is disabled; services treat a
	// nil client as "skip publish".
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, wellness event publishing disabled")
	}

	// --- External Clients ---
	genaiClient := genai.NewClient(genai.Config{
		APIKey: viper.GetString("GEMINI_API_KEY"),
	})
	googleVerifier := googleauth.NewVerifier(googleauth.Config{
		ClientID: viper.GetString("GOOGLE_CLIENT_ID"),
	})

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	journalRepo := repositories.NewGORMJournalRepository(db)
	moodRepo := repositories.NewGORMMoodRepository(db)
	communityRepo := repositories.NewGORMCommunityRepository(db)
	convRepo := repositories.NewGORMConversationRepository(db)
	bookRepo := repositories.NewGORMBookRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, googleVerifier, viper.GetString("JWT_SECRET"))
	journalService := services.NewJournalService(journalRepo, moodRepo, genaiClient, mqClient)
	moodService := services.NewMoodService(moodRepo, mqClient)
	communityService := services.NewCommunityService(communityRepo, mqClient)
	convService := services.NewConversationService(convRepo, genaiClient)
	bookService := services.NewBookService(bookRepo)
	mediaService := services.NewMediaService(services.MediaConfig{
		YouTubeAPIKey: viper.GetString("YOUTUBE_API_KEY"),
		BooksDir:      viper.GetString("BOOKS_DIR"),
	})

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	journalHandler := handlers.NewJournalHandler(journalService)
	moodHandler := handlers.NewMoodHandler(moodService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	genieHandler := handlers.NewGenieHandler(convService)
	bookHandler := handlers.NewBookHandler(bookService)
	mediaHandler := handlers.NewMediaHandler(mediaService, genaiClient)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")

	// Public routes.
	authHandler.RegisterRoutes(apiV1)

	// Public reads with optional caller resolution, so caller-relative fields
	// like userLiked resolve when a token is present.
	publicReads := apiV1.Group("", middleware.OptionalAuth(authService))
	communityHandler.RegisterPublicRoutes(publicReads)
	mediaHandler.RegisterRoutes(publicReads)

	// Routes requiring an authenticated caller.
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	journalHandler.RegisterRoutes(protected)
	moodHandler.RegisterRoutes(protected)
	communityHandler.RegisterProtectedRoutes(protected)
	genieHandler.RegisterRoutes(protected)
	bookHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Wellness Event Consumer ---
	// The consumer currently just logs the events it drains; downstream
	// processing (weekly digests, insight jobs) plugs in here.
	if mqClient != nil {
		go func() {
			log.Println("Starting wellness event consumer...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Wellness event %s: %s", msg.Type, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeWellnessEvents(handler); consumerErr != nil {
				log.Printf("Failed to start wellness event consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens PostgreSQL for postgres:// URLs and falls back to a
// SQLite file otherwise, which keeps local development dependency-free.
func openDatabase(url string) (*gorm.DB, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return gorm.Open(postgres.Open(url), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(url), &gorm.Config{})
}
