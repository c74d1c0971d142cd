package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"civicboard/internal/activity"
	"civicboard/internal/config"
	"civicboard/internal/handler"
	"civicboard/internal/loader"
	"civicboard/internal/middleware"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/queue"
	"civicboard/internal/render"
	"civicboard/internal/repository"
	"civicboard/internal/seed"
	"civicboard/internal/service"
	"civicboard/internal/snapshot"
	"civicboard/internal/store"
)

const version = "1.0.0"

// snapshotVersion is the current on-disk snapshot format
const snapshotVersion = 1

func main() {
	// Load .env file (ignore error in production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database when configured; demo mode runs without one
	var db *sql.DB
	if cfg.Database.Enabled {
		db, err = sql.Open("postgres", cfg.GetDatabaseDSN())
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Printf("WARNING: Database configured but unreachable: %v", err)
		} else {
			log.Println("✅ Connected to database")
		}
	} else {
		log.Println("No database configured, running in demo mode")
	}

	// Shared ambient pieces
	notifier := notify.NewNotifier(cfg.Data.NotificationBuffer, cfg.Data.NotificationTTL)
	feed := activity.NewFeed(100)
	hub := activity.NewHub()
	feed.SetBroadcast(hub.Broadcast)
	defer hub.Close()

	// Per-module stores, loaded database-first with snapshot and seed fallbacks
	ctx := context.Background()
	demo := cfg.DemoMode()

	snapFile := func(name string) string {
		return filepath.Join(cfg.Data.Dir, name+".json")
	}

	campaignFile := snapshot.NewFile[[]*models.Campaign](snapFile("campaigns"), snapshotVersion)
	contentFile := snapshot.NewFile[[]*models.ContentItem](snapFile("content"), snapshotVersion)
	segmentFile := snapshot.NewFile[[]*models.Segment](snapFile("segments"), snapshotVersion)
	eventFile := snapshot.NewFile[[]*models.Event](snapFile("events"), snapshotVersion)
	attendeeFile := snapshot.NewFile[[]*models.Attendee](snapFile("attendees"), snapshotVersion)
	surveyFile := snapshot.NewFile[[]*models.Survey](snapFile("surveys"), snapshotVersion)
	responseFile := snapshot.NewFile[[]*models.SurveyResponse](snapFile("responses"), snapshotVersion)
	integrationFile := snapshot.NewFile[[]*models.Integration](snapFile("integrations"), snapshotVersion)
	chatFile := snapshot.NewFile[[]*models.ChatMessage](snapFile("chat"), snapshotVersion)
	prefsFile := snapshot.NewFile[models.Preferences](snapFile("preferences"), snapshotVersion)

	campaigns := store.New("campaigns", campaignFile)
	contents := store.New("content", contentFile)
	segments := store.New("segments", segmentFile)
	events := store.New("events", eventFile)
	attendees := store.New("attendees", attendeeFile)
	surveys := store.New("surveys", surveyFile)
	responses := store.New("responses", responseFile)
	integrations := store.New("integrations", integrationFile)
	chat := store.New("chat", chatFile)

	// Database readers feed the loaders when a backend is configured
	var (
		campaignRepo    repository.CampaignRepository
		contentRepo     repository.ContentRepository
		segmentRepo     repository.SegmentRepository
		eventRepo       repository.EventRepository
		surveyRepo      repository.SurveyRepository
		integrationRepo repository.IntegrationRepository
	)
	if db != nil {
		campaignRepo = repository.NewCampaignRepository(db)
		contentRepo = repository.NewContentRepository(db)
		segmentRepo = repository.NewSegmentRepository(db)
		eventRepo = repository.NewEventRepository(db)
		surveyRepo = repository.NewSurveyRepository(db)
		integrationRepo = repository.NewIntegrationRepository(db)
	}

	campaignSource := loader.Source[*models.Campaign]{Module: "campaigns", File: campaignFile, Seed: seed.Campaigns, Notifier: notifier, Demo: demo}
	contentSource := loader.Source[*models.ContentItem]{Module: "content", File: contentFile, Seed: seed.Contents, Notifier: notifier, Demo: demo}
	segmentSource := loader.Source[*models.Segment]{Module: "segments", File: segmentFile, Seed: seed.Segments, Notifier: notifier, Demo: demo}
	eventSource := loader.Source[*models.Event]{Module: "events", File: eventFile, Seed: seed.Events, Notifier: notifier, Demo: demo}
	attendeeSource := loader.Source[*models.Attendee]{Module: "attendees", File: attendeeFile, Seed: seed.Attendees, Notifier: notifier, Demo: demo}
	surveySource := loader.Source[*models.Survey]{Module: "surveys", File: surveyFile, Seed: seed.Surveys, Notifier: notifier, Demo: demo}
	responseSource := loader.Source[*models.SurveyResponse]{Module: "responses", File: responseFile, Seed: seed.Responses, Notifier: notifier, Demo: demo}
	integrationSource := loader.Source[*models.Integration]{Module: "integrations", File: integrationFile, Seed: seed.Integrations, Notifier: notifier, Demo: demo}
	chatSource := loader.Source[*models.ChatMessage]{Module: "chat", File: chatFile, Seed: seed.ChatHistory, Notifier: notifier, Demo: demo}

	if db != nil {
		campaignSource.FromDB = campaignRepo.List
		contentSource.FromDB = contentRepo.List
		segmentSource.FromDB = segmentRepo.List
		eventSource.FromDB = eventRepo.ListEvents
		attendeeSource.FromDB = eventRepo.ListAttendees
		surveySource.FromDB = surveyRepo.List
		integrationSource.FromDB = integrationRepo.List
	}

	campaigns.Adopt(campaignSource.Load(ctx))
	contents.Adopt(contentSource.Load(ctx))
	segments.Adopt(segmentSource.Load(ctx))
	events.Adopt(eventSource.Load(ctx))
	attendees.Adopt(attendeeSource.Load(ctx))
	surveys.Adopt(surveySource.Load(ctx))
	responses.Adopt(responseSource.Load(ctx))
	integrations.Adopt(integrationSource.Load(ctx))
	chat.Adopt(chatSource.Load(ctx))

	// Sync queue is optional; without it syncs run inline
	var publisher service.SyncPublisher
	var queueURL string
	if cfg.RabbitMQ.Enabled {
		queueURL = cfg.GetRabbitMQURL()
		conn, err := queue.NewConnection(queueURL)
		if err != nil {
			log.Printf("WARNING: RabbitMQ unavailable, syncs will run inline: %v", err)
		} else {
			defer conn.Close()
			pub, err := queue.NewPublisher(conn, queue.DefaultQueueName)
			if err != nil {
				log.Printf("WARNING: Failed to set up sync queue, syncs will run inline: %v", err)
			} else {
				publisher = pub
				log.Println("✅ Connected to RabbitMQ")
			}
		}
	}

	// HTML fragment renderer
	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to parse view templates: %v", err)
	}

	// Services
	campaignService := service.NewCampaignService(campaigns, notifier, feed)
	contentService := service.NewContentService(contents, notifier, feed)
	segmentService := service.NewSegmentService(segments, notifier, feed)
	eventService := service.NewEventService(events, attendees, notifier, feed)
	surveyService := service.NewSurveyService(surveys, responses, notifier, feed)
	syncService := service.NewSyncService()
	integrationService := service.NewIntegrationService(integrations, publisher, syncService, notifier, feed)
	workspaceService := service.NewWorkspaceService(chat, prefsFile, notifier)
	searchService := service.NewSearchService(campaigns, contents, segments, events, surveys, integrations)
	healthChecker := service.NewHealthService(db, queueURL, cfg.Data.Dir, version)

	// Router
	router := mux.NewRouter()
	handler.NewCampaignHandler(campaignService).RegisterRoutes(router)
	handler.NewContentHandler(contentService).RegisterRoutes(router)
	handler.NewSegmentHandler(segmentService).RegisterRoutes(router)
	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewSurveyHandler(surveyService).RegisterRoutes(router)
	handler.NewIntegrationHandler(integrationService).RegisterRoutes(router)
	handler.NewWorkspaceHandler(workspaceService).RegisterRoutes(router)
	handler.NewDashboardHandler(searchService, healthChecker, notifier, feed, hub).RegisterRoutes(router)
	handler.NewViewHandler(renderer, campaignService, contentService, segmentService, eventService, surveyService, integrationService).RegisterRoutes(router)

	// Background activity simulator, stopped with the server
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	simulator := activity.NewSimulator(feed, cfg.Data.SimulatorInterval)
	go simulator.Run(runCtx)

	// No blanket read/write timeouts: the activity WebSocket holds its
	// connection open for the life of the dashboard tab
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           middleware.Recovery(middleware.Logging(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 API Server starting on port :%s", cfg.Server.Port)
		log.Printf("📍 Health check: http://localhost:%s/health", cfg.Server.Port)
		log.Printf("🌍 Environment: %s", cfg.Env)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-runCtx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Shutdown did not finish cleanly: %v", err)
	}
	log.Println("✓ Server stopped")
}
