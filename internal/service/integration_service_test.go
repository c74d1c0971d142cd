package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"civicboard/internal/activity"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/seed"
	"civicboard/internal/store"
)

// stubPublisher records publish attempts and can be told to fail
type stubPublisher struct {
	published []int
	fail      bool
}

func (p *stubPublisher) PublishSync(integrationID int, system string) error {
	if p.fail {
		return fmt.Errorf("broker unavailable")
	}
	p.published = append(p.published, integrationID)
	return nil
}

func newIntegrationFixture(t *testing.T, publisher SyncPublisher, successRate float64) *IntegrationService {
	t.Helper()
	integrations := store.New[*models.Integration]("integrations", nil)
	integrations.Adopt(seed.Integrations())
	notifier := notify.NewNotifier(50, time.Minute)
	syncer := NewSyncServiceWithSeed(1, successRate)
	return NewIntegrationService(integrations, publisher, syncer, notifier, activity.NewFeed(100))
}

func TestIntegrationService_SyncQueuesWhenBrokerAvailable(t *testing.T) {
	publisher := &stubPublisher{}
	svc := newIntegrationFixture(t, publisher, 1.0)

	// Seed integration 1 is active
	if _, err := svc.Sync(context.Background(), 1); err != nil {
		t.Fatalf("Expected sync to queue but got: %v", err)
	}

	if len(publisher.published) != 1 || publisher.published[0] != 1 {
		t.Errorf("Expected integration 1 to be queued, got %v", publisher.published)
	}
}

func TestIntegrationService_SyncRunsInlineWithoutBroker(t *testing.T) {
	svc := newIntegrationFixture(t, nil, 1.0)

	updated, err := svc.Sync(context.Background(), 1)
	if err != nil {
		t.Fatalf("Expected inline sync to succeed but got: %v", err)
	}

	if updated.LastSync == nil {
		t.Error("Expected last sync time to be stamped")
	}
	if updated.Status != models.IntegrationStatusActive {
		t.Errorf("Expected status %q but got %q", models.IntegrationStatusActive, updated.Status)
	}
}

func TestIntegrationService_PublishFailureDegradesToInline(t *testing.T) {
	publisher := &stubPublisher{fail: true}
	svc := newIntegrationFixture(t, publisher, 1.0)

	updated, err := svc.Sync(context.Background(), 1)
	if err != nil {
		t.Fatalf("Expected degraded inline sync to succeed but got: %v", err)
	}
	if updated.LastSync == nil {
		t.Error("Expected inline fallback to stamp last sync time")
	}
}

func TestIntegrationService_FailedSyncRecordsError(t *testing.T) {
	// Success rate 0 forces every exchange to fail
	svc := newIntegrationFixture(t, nil, 0)

	updated, err := svc.Sync(context.Background(), 1)
	if err != nil {
		t.Fatalf("Expected failure to be recorded, not returned, but got: %v", err)
	}

	if updated.Status != models.IntegrationStatusError {
		t.Errorf("Expected status %q but got %q", models.IntegrationStatusError, updated.Status)
	}
	if updated.LastError == "" {
		t.Error("Expected last error to be recorded")
	}

	// An errored integration may retry
	if !updated.CanSync() {
		t.Error("Expected errored integration to remain syncable")
	}
}

func TestIntegrationService_SyncDisabledIntegrationFails(t *testing.T) {
	svc := newIntegrationFixture(t, nil, 1.0)

	if _, err := svc.ChangeIntegrationStatus(1, models.IntegrationStatusDisabled); err != nil {
		t.Fatalf("Expected disable to succeed but got: %v", err)
	}

	_, err := svc.Sync(context.Background(), 1)
	var logicErr *BusinessLogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("Expected BusinessLogicError but got %v", err)
	}
}

func TestIntegrationService_RecoveryClearsLastError(t *testing.T) {
	svc := newIntegrationFixture(t, nil, 0)

	if _, err := svc.Sync(context.Background(), 1); err != nil {
		t.Fatalf("Expected failing sync to record error: %v", err)
	}

	// Moving back to active clears the stored failure
	updated, err := svc.ChangeIntegrationStatus(1, models.IntegrationStatusActive)
	if err != nil {
		t.Fatalf("Expected recovery transition but got: %v", err)
	}
	if updated.LastError != "" {
		t.Errorf("Expected last error to clear but got %q", updated.LastError)
	}
}

func TestIntegrationService_DeleteActiveNeedsForce(t *testing.T) {
	svc := newIntegrationFixture(t, nil, 1.0)

	err := svc.DeleteIntegration(1, false)
	var protected *ProtectedError
	if !errors.As(err, &protected) {
		t.Fatalf("Expected ProtectedError but got %v", err)
	}

	if err := svc.DeleteIntegration(1, true); err != nil {
		t.Fatalf("Expected forced delete to succeed but got: %v", err)
	}
}

func TestIntegrationService_CreateValidatesType(t *testing.T) {
	svc := newIntegrationFixture(t, nil, 1.0)

	_, err := svc.CreateIntegration(&CreateIntegrationRequest{
		Name:   "Mystery Feed",
		Type:   "Astrology",
		System: "StarChart",
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError but got %v", err)
	}
}
