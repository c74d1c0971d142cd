package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"civicboard/internal/config"
	"civicboard/internal/models"
	"civicboard/internal/queue"
	"civicboard/internal/repository"
	"civicboard/internal/service"
)

func main() {
	// Load .env file (ignore error in production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The worker persists sync outcomes, so both backends are required
	if !cfg.Database.Enabled {
		log.Fatal("POSTGRES_HOST is required for the sync worker")
	}
	if !cfg.RabbitMQ.Enabled {
		log.Fatal("RABBITMQ_HOST is required for the sync worker")
	}

	// Connect to database
	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Connected to database")

	integrationRepo := repository.NewIntegrationRepository(db)
	syncSvc := service.NewSyncService()
	log.Println("✅ Services initialized")

	// Connect to RabbitMQ
	conn, err := queue.NewConnection(cfg.GetRabbitMQURL())
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()
	log.Println("✅ Connected to RabbitMQ")

	// Start consumer
	handler := createSyncHandler(integrationRepo, syncSvc)
	consumer, err := queue.NewConsumer(conn, queue.DefaultQueueName, handler)
	if err != nil {
		log.Fatalf("Failed to create consumer: %v", err)
	}

	if err := consumer.Start(); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}
	log.Printf("✅ Worker started, consuming from queue: %s", queue.DefaultQueueName)

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("🛑 Shutting down gracefully...")

	if err := consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	conn.Close()
	db.Close()

	log.Println("✅ Worker stopped")
}

// createSyncHandler creates the sync job processing handler
func createSyncHandler(repo repository.IntegrationRepository, syncSvc *service.SyncService) queue.SyncHandler {
	return func(job *queue.SyncJob) error {
		ctx := context.Background()

		log.Printf("📨 Processing sync for integration ID: %d (%s)", job.IntegrationID, job.System)

		result, syncErr := syncSvc.Run(ctx, job.IntegrationID, job.System)
		if syncErr != nil {
			log.Printf("❌ Sync failed for %s: %v", job.System, syncErr)
			if err := repo.UpdateSyncResult(ctx, job.IntegrationID, models.IntegrationStatusError, syncErr.Error()); err != nil {
				log.Printf("❌ Failed to record sync failure: %v", err)
				return err
			}
			// The failure is recorded; ACK so the job is not retried forever
			return nil
		}

		log.Printf("✅ Synced %d records with %s in %v", result.Records, job.System, result.Duration)
		if err := repo.UpdateSyncResult(ctx, job.IntegrationID, models.IntegrationStatusActive, ""); err != nil {
			log.Printf("❌ Failed to record sync success: %v", err)
			return err
		}
		return nil
	}
}
