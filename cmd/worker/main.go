package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"supplier-management-api-server/config"
	"supplier-management-api-server/internal/database"
	"supplier-management-api-server/internal/docintel"
	"supplier-management-api-server/internal/ledger"
	"supplier-management-api-server/internal/logger"
	"supplier-management-api-server/internal/mailer"
	"supplier-management-api-server/internal/queue/nats"
	"supplier-management-api-server/internal/repositories"
	"supplier-management-api-server/internal/services"
)

// taskTimeout bounds one document analysis end to end, polling included.
const taskTimeout = 5 * time.Minute

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment, "supplier-worker"); err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer zap.L().Sync()

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		zap.L().Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer db.Client().Disconnect(context.Background())

	queue, err := nats.New(cfg.NATS)
	if err != nil {
		zap.L().Fatal("failed to connect to nats", zap.Error(err))
	}
	defer queue.Close()

	auditLedger, err := ledger.Initialize(cfg.Fabric)
	if err != nil {
		zap.L().Fatal("failed to initialize compliance ledger", zap.Error(err))
	}
	defer auditLedger.Close()

	validationService := services.NewValidationService(
		repositories.NewSupplierRepository(db),
		docintel.NewClient(cfg.DocIntel),
		queue,
		mailer.New(cfg.SMTP),
		auditLedger,
	)

	maxConcurrent := int64(cfg.NATS.MaxConcurrent)
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	sem := semaphore.NewWeighted(maxConcurrent)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zap.L().Info("validation worker started",
		zap.String("subject", cfg.NATS.Subject),
		zap.Int64("maxConcurrent", maxConcurrent))

	err = queue.SubscribeValidationTasks(ctx, func(ctx context.Context, task nats.ValidationTask) {
		if err := sem.Acquire(ctx, 1); err != nil {
			return
		}
		go func() {
			defer sem.Release(1)

			taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
			defer cancel()

			outcome, err := validationService.AnalyzeAndValidate(taskCtx, task)
			if err != nil {
				zap.L().Error("validation task failed",
					zap.String("supplierId", task.SupplierID),
					zap.String("documentUrl", task.DocumentURL),
					zap.Error(err))
				return
			}
			zap.L().Info("validation task finished",
				zap.String("supplierId", task.SupplierID),
				zap.String("outcome", outcome))
		}()
	})
	if err != nil {
		zap.L().Fatal("subscription ended", zap.Error(err))
	}

	// Let in-flight tasks finish before exiting.
	drainCtx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()
	if err := sem.Acquire(drainCtx, maxConcurrent); err != nil {
		zap.L().Warn("shutdown before all tasks finished", zap.Error(err))
	}
	zap.L().Info("validation worker stopped")
}
