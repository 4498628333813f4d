package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alessandrolsdev/clutch/handlers"
	"github.com/alessandrolsdev/clutch/middleware"
	"github.com/alessandrolsdev/clutch/models"
	"github.com/alessandrolsdev/clutch/services"
	"github.com/alessandrolsdev/clutch/utils"
	"github.com/alessandrolsdev/clutch/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 6 * 1024 * 1024, // achievement screenshots cap at 5MB
	})

	app.Use(middleware.ServiceAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:5173")
		allowedOriginsEnv = "http://localhost:5173"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserStats{},
		&models.Post{},
		&models.Comment{},
		&models.Interaction{},
		&models.GameLog{},
		&models.PlatformIntegration{},
		&models.XpLog{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if os.Getenv("SEED_DEMO") == "true" {
		if err := services.SeedDemoData(db); err != nil {
			log.Fatal("failed to seed demo data:", err)
		}
	}

	authService := services.NewAuthService(db)
	profileService := services.NewProfileService(db)
	feedService := services.NewFeedService(db)
	diaryService := services.NewDiaryService(db)
	leaderboardService := services.NewLeaderboardService(db)
	integrationService := services.NewIntegrationService(db)
	steamService := services.NewSteamService(db, services.NewSteamClient())
	imageService := services.NewImageService(db, utils.NewTesseractEngine(os.Getenv("OCR_LANGUAGES")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.PollEnergy(ctx, db, 5*time.Minute, 1)
	steamService.StartResyncScheduler()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupProfileRoutes(app, profileService)
	handlers.SetupFeedRoutes(app, feedService, imageService)
	handlers.SetupDiaryRoutes(app, diaryService)
	handlers.SetupLeaderboardRoutes(app, leaderboardService)
	handlers.SetupIntegrationRoutes(app, integrationService, steamService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ CLUTCH running on http://localhost:%s", port)
	log.Println("✅ Steam re-sync scheduler running (hourly, stale > 24h)")
	log.Println("✅ Social energy regeneration running (every 5m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
