package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"civicboard/internal/config"
	"civicboard/internal/repository"
	"civicboard/internal/seed"
)

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Command-line flags
var (
	clearData = flag.Bool("clear", false, "Clear existing data before inserting")
	showHelp  = flag.Bool("help", false, "Show usage information")
)

func main() {
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// Load .env file (ignore error if not present)
	_ = godotenv.Load()

	printInfo("=== CivicBoard Database Seeder ===\n")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}
	if !cfg.Database.Enabled {
		printError("POSTGRES_HOST is required to seed the database")
		os.Exit(1)
	}

	// Connect to database
	printInfo("Connecting to database...")
	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		printError(fmt.Sprintf("Failed to open database connection: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		printError(fmt.Sprintf("Failed to ping database: %v", err))
		os.Exit(1)
	}
	printSuccess("✓ Connected to database\n")

	ctx := context.Background()

	// Create any missing tables
	if err := repository.EnsureSchema(ctx, db); err != nil {
		printError(fmt.Sprintf("Failed to ensure schema: %v", err))
		os.Exit(1)
	}
	printSuccess("✓ Schema ready\n")

	if *clearData {
		if err := clearTables(db); err != nil {
			printError(fmt.Sprintf("Failed to clear data: %v", err))
			os.Exit(1)
		}
	}

	counts, err := seedAll(ctx, db)
	if err != nil {
		printError(fmt.Sprintf("Seeding failed: %v", err))
		os.Exit(1)
	}

	// Print summary
	printInfo("\n=== Seeding Summary ===")
	for _, line := range counts {
		printSuccess("✓ " + line)
	}
	printInfo("\nSeeding completed successfully!")
}

// clearTables empties every module table, children first
func clearTables(db *sql.DB) error {
	printWarning("Clearing existing data...")

	tables := []string{
		"attendees", "events", "campaigns", "content_items",
		"segments", "surveys", "integrations",
	}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	printSuccess("✓ Data cleared\n")
	return nil
}

// seedAll inserts the full demo dataset and returns summary lines
func seedAll(ctx context.Context, db *sql.DB) ([]string, error) {
	var summary []string

	campaignRepo := repository.NewCampaignRepository(db)
	printInfo("Seeding campaigns...")
	for _, campaign := range seed.Campaigns() {
		if err := campaignRepo.Create(ctx, campaign); err != nil {
			return nil, fmt.Errorf("campaign %q: %w", campaign.Name, err)
		}
	}
	summary = append(summary, fmt.Sprintf("Campaigns created: %d", len(seed.Campaigns())))

	contentRepo := repository.NewContentRepository(db)
	printInfo("Seeding content...")
	for _, item := range seed.Contents() {
		if err := contentRepo.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("content %q: %w", item.Name, err)
		}
	}
	summary = append(summary, fmt.Sprintf("Content items created: %d", len(seed.Contents())))

	segmentRepo := repository.NewSegmentRepository(db)
	printInfo("Seeding segments...")
	for _, segment := range seed.Segments() {
		if err := segmentRepo.Create(ctx, segment); err != nil {
			return nil, fmt.Errorf("segment %q: %w", segment.Name, err)
		}
	}
	summary = append(summary, fmt.Sprintf("Segments created: %d", len(seed.Segments())))

	eventRepo := repository.NewEventRepository(db)
	printInfo("Seeding events and attendees...")
	// Serial IDs differ from the fixed seed IDs, so remap attendees
	eventIDs := make(map[int]int)
	for _, event := range seed.Events() {
		seedID := event.ID
		if err := eventRepo.CreateEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("event %q: %w", event.Title, err)
		}
		eventIDs[seedID] = event.ID
	}
	attendeeCount := 0
	for _, attendee := range seed.Attendees() {
		newID, ok := eventIDs[attendee.EventID]
		if !ok {
			continue
		}
		attendee.EventID = newID
		if err := eventRepo.CreateAttendee(ctx, attendee); err != nil {
			return nil, fmt.Errorf("attendee %q: %w", attendee.Name, err)
		}
		attendeeCount++
	}
	summary = append(summary, fmt.Sprintf("Events created: %d", len(seed.Events())))
	summary = append(summary, fmt.Sprintf("Attendees created: %d", attendeeCount))

	surveyRepo := repository.NewSurveyRepository(db)
	printInfo("Seeding surveys...")
	for _, survey := range seed.Surveys() {
		if err := surveyRepo.Create(ctx, survey); err != nil {
			return nil, fmt.Errorf("survey %q: %w", survey.Name, err)
		}
	}
	summary = append(summary, fmt.Sprintf("Surveys created: %d", len(seed.Surveys())))

	integrationRepo := repository.NewIntegrationRepository(db)
	printInfo("Seeding integrations...")
	for _, integration := range seed.Integrations() {
		if err := integrationRepo.Create(ctx, integration); err != nil {
			return nil, fmt.Errorf("integration %q: %w", integration.Name, err)
		}
	}
	summary = append(summary, fmt.Sprintf("Integrations created: %d", len(seed.Integrations())))

	return summary, nil
}

// printSuccess prints a success message in green
func printSuccess(msg string) {
	fmt.Println(colorGreen + msg + colorReset)
}

// printError prints an error message in red
func printError(msg string) {
	fmt.Println(colorRed + msg + colorReset)
}

// printInfo prints an info message in cyan
func printInfo(msg string) {
	fmt.Println(colorCyan + msg + colorReset)
}

// printWarning prints a warning message in yellow
func printWarning(msg string) {
	fmt.Println(colorYellow + msg + colorReset)
}

// printUsage shows command-line usage
func printUsage() {
	printInfo("=== CivicBoard Database Seeder ===\n")
	fmt.Println("Usage: go run scripts/seed.go [flags]")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
