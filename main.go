package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gamification-system/handlers"
	"gamification-system/middleware"
	"gamification-system/models"
	"gamification-system/services"
	"gamification-system/utils"
	"gamification-system/workers"

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

	utils.Preflight()

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — largest payload is an icon upload
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserProgress{},
		&models.WeeklyChallengeSet{},
		&models.DailyActivity{},
		&models.TwitchLink{},
		&models.RewardNotification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	ledgerService := services.NewLedgerService(db)
	activityService := services.NewActivityService(db)
	statsService := services.NewStatsService(db, ledgerService)
	achievementService := services.NewAchievementService(db, ledgerService)
	notificationService := services.NewNotificationService(db)
	challengeService := services.NewChallengeService(db, ledgerService, notificationService)
	actionService := services.NewActionService(ledgerService, activityService, achievementService,
		challengeService, statsService, notificationService)

	profileClient := services.NewProfileClient(
		requireEnv("PROFILE_SERVICE_URL"),
		requireEnv("GAMIFICATION_SERVICE_TOKEN"),
	)
	billingClient := services.NewBillingClient(
		requireEnv("BILLING_SERVICE_URL"),
		requireEnv("GAMIFICATION_SERVICE_TOKEN"),
	)
	twitchClient := services.NewTwitchClient(
		os.Getenv("TWITCH_CLIENT_ID"),
		os.Getenv("TWITCH_CLIENT_SECRET"),
		os.Getenv("TWITCH_REDIRECT_URI"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers.NewResetWorker(db).Start()
	workers.NewTwitchSyncWorker(db, twitchClient, ledgerService).Start(ctx)
	go workers.PollPremium(ctx, db, billingClient, ledgerService, 30*time.Second)

	// ✅ Setup routes — enforced Gateway auth + consistent /s/ prefix
	handlers.SetupProgressionRoutes(app, ledgerService, statsService, actionService, profileClient)
	handlers.SetupAdminRoutes(app, ledgerService)
	handlers.SetupChallengeRoutes(app, challengeService)
	handlers.SetupActivityRoutes(app, activityService)
	handlers.SetupTitleRoutes(app, ledgerService)
	handlers.SetupNotificationRoutes(app, notificationService)
	handlers.SetupLeaderboardRoutes(app, db)
	handlers.SetupBillingRoutes(app, billingClient, ledgerService)
	handlers.SetupTwitchRoutes(app, db, twitchClient)
	handlers.SetupCatalogRoutes(app)

	// EventSource cannot send headers, so the stream authenticates via query token.
	app.Get("/s/user/progress/stream", middleware.SSEAuthMiddleware(profileClient), ledgerService.StreamUserProgressSSE)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Reset worker running (weekly/monthly XP counters)")
	log.Println("✅ Twitch sync worker running (every 5m)")
	log.Println("✅ Premium polling running (every 30s)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s environment variable not set", key)
	}
	return v
}
