package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel_reservation/internal/config"
	"hotel_reservation/internal/handler"
	"hotel_reservation/internal/repository"
	"hotel_reservation/internal/service"
	"hotel_reservation/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	mailCfg := config.LoadMailConfig()
	if !mailCfg.Configured() {
		log.Println("Mail credentials not set; account recovery mail is disabled")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Schema Bootstrap ---
	// Any failure here is fatal: the service must not start against a
	// database it could not prepare.
	if err := bootstrap(dbPool); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)

	// --- Initialize Services ---
	accountService := service.NewAccountService(userRepo)

	// --- Initialize Handlers ---
	accountHandler := handler.NewAccountHandler(accountService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// --- Register Routes ---
	accountHandler.RegisterAccountRoutes(&router.RouterGroup)

	// Health check endpoint
	router.GET("/", func(c *gin.Context) {
		// Check DB connection
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// Re-runs the idempotent schema bootstrap on demand
	router.POST("/init_db", func(c *gin.Context) {
		if err := bootstrap(dbPool); err != nil {
			log.Printf("Error initializing database: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Database initialized successfully"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

// bootstrap ensures the tables exist and the default admin account is
// seeded. Both steps are idempotent.
func bootstrap(dbPool *pgxpool.Pool) error {
	ctx := context.Background()
	if err := config.InitSchema(ctx, dbPool); err != nil {
		return err
	}
	adminHash, err := utils.HashPassword("admin")
	if err != nil {
		return err
	}
	return config.SeedAdmin(ctx, dbPool, adminHash)
}
