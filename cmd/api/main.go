package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"supplier-management-api-server/config"
	"supplier-management-api-server/internal/api/routes"
	"supplier-management-api-server/internal/blob"
	"supplier-management-api-server/internal/database"
	"supplier-management-api-server/internal/logger"
	"supplier-management-api-server/internal/mailer"
	"supplier-management-api-server/internal/queue/nats"
	"supplier-management-api-server/internal/repositories"
	"supplier-management-api-server/internal/services"
	"supplier-management-api-server/internal/socket"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment, "supplier-api"); err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer zap.L().Sync()

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		zap.L().Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer db.Client().Disconnect(context.Background())

	if err := database.SeedAdmin(db); err != nil {
		zap.L().Fatal("failed to seed admin account", zap.Error(err))
	}

	uploader, err := blob.NewUploader(cfg.S3)
	if err != nil {
		zap.L().Fatal("failed to initialize blob storage", zap.Error(err))
	}

	queue, err := nats.New(cfg.NATS)
	if err != nil {
		zap.L().Fatal("failed to connect to nats", zap.Error(err))
	}
	defer queue.Close()

	supplierRepo := repositories.NewSupplierRepository(db)
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	workOrderRepo := repositories.NewWorkOrderRepository(db)
	resetTokenRepo := repositories.NewResetTokenRepository(db)

	smtpMailer := mailer.New(cfg.SMTP)
	wsHub := socket.NewHub()

	// Approval events originate in the worker process; relay them to the
	// websocket clients this instance holds.
	if err := queue.SubscribeApprovalEvents(wsHub.SendToOrganization); err != nil {
		zap.L().Fatal("failed to subscribe to approval events", zap.Error(err))
	}

	onboardingService := services.NewOnboardingService(supplierRepo, userRepo, uploader, queue, blob.ObjectKey)
	supplierService := services.NewSupplierService(supplierRepo, uploader)
	clientService := services.NewClientService(clientRepo, supplierRepo, userRepo)
	workOrderService := services.NewWorkOrderService(workOrderRepo, clientRepo)
	dashboardService := services.NewDashboardService(supplierRepo, workOrderRepo)
	accountService := services.NewAccountService(userRepo, resetTokenRepo, smtpMailer, cfg.JWT)

	router := routes.SetupRouter(
		cfg,
		onboardingService,
		supplierService,
		clientService,
		workOrderService,
		dashboardService,
		accountService,
		wsHub,
	)

	zap.L().Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
