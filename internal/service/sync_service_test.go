package service

import (
	"context"
	"errors"
	"testing"
)

func TestSyncService_SuccessfulRun(t *testing.T) {
	svc := NewSyncServiceWithSeed(1, 1.0)

	result, err := svc.Run(context.Background(), 3, "CHRE")
	if err != nil {
		t.Fatalf("Expected sync to succeed but got: %v", err)
	}
	if result.IntegrationID != 3 || result.System != "CHRE" {
		t.Errorf("Expected result for integration 3 / CHRE but got %+v", result)
	}
	if result.Records < 20 || result.Records >= 500 {
		t.Errorf("Expected 20..499 records but got %d", result.Records)
	}
	if result.SyncedAt.IsZero() {
		t.Error("Expected sync time to be stamped")
	}
}

func TestSyncService_FailedRun(t *testing.T) {
	svc := NewSyncServiceWithSeed(1, 0)

	result, err := svc.Run(context.Background(), 1, "ESN")
	if err == nil {
		t.Fatal("Expected sync to fail")
	}
	if result != nil {
		t.Errorf("Expected no result on failure but got %+v", result)
	}
}

func TestSyncService_CancelledContext(t *testing.T) {
	svc := NewSyncServiceWithSeed(1, 1.0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, 1, "CHRE")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled but got %v", err)
	}
}
