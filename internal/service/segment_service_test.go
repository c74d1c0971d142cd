package service

import (
	"errors"
	"testing"
	"time"

	"civicboard/internal/activity"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/seed"
	"civicboard/internal/store"
)

func newSegmentFixture(t *testing.T) (*SegmentService, *notify.Notifier) {
	t.Helper()
	segments := store.New[*models.Segment]("segments", nil)
	segments.Adopt(seed.Segments())
	notifier := notify.NewNotifier(50, time.Minute)
	return NewSegmentService(segments, notifier, activity.NewFeed(100)), notifier
}

func TestSegmentService_CreateStartsAsDraft(t *testing.T) {
	svc, _ := newSegmentFixture(t)

	created, err := svc.CreateSegment(&CreateSegmentRequest{
		Name: "Allotment Holders",
		Type: models.SegmentTypeBehavioral,
		Size: 240,
	})
	if err != nil {
		t.Fatalf("Expected create to succeed but got: %v", err)
	}
	if created.Status != models.SegmentStatusDraft {
		t.Errorf("Expected draft status but got %q", created.Status)
	}
}

func TestSegmentService_CreateRejectsHostileTag(t *testing.T) {
	svc, _ := newSegmentFixture(t)

	_, err := svc.CreateSegment(&CreateSegmentRequest{
		Name: "Allotment Holders",
		Type: models.SegmentTypeBehavioral,
		Tags: []string{`<script>alert(1)</script>`},
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError but got %v", err)
	}
}

func TestSegmentService_ImportRoundTrip(t *testing.T) {
	svc, _ := newSegmentFixture(t)
	before := len(svc.ListSegments())

	payload := []byte(`[
		{"name": "Imported North Ward", "type": "geographic", "size": 1200},
		{"name": "", "type": "geographic"},
		{"name": "Bad Type", "type": "astrological"}
	]`)

	result, err := svc.ImportSegments(payload)
	if err != nil {
		t.Fatalf("Expected import to succeed but got: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 2 {
		t.Errorf("Expected 1 imported and 2 skipped but got %+v", result)
	}
	if len(svc.ListSegments()) != before+1 {
		t.Errorf("Expected %d segments after import but got %d", before+1, len(svc.ListSegments()))
	}
}

func TestSegmentService_ImportAssignsFreshIDs(t *testing.T) {
	svc, _ := newSegmentFixture(t)

	// Reuse an existing ID; the import must not overwrite it
	payload := []byte(`[{"id": 1, "name": "Imposter Segment", "type": "demographic", "size": 10}]`)
	if _, err := svc.ImportSegments(payload); err != nil {
		t.Fatalf("Expected import to succeed but got: %v", err)
	}

	original, err := svc.GetSegment(1)
	if err != nil {
		t.Fatalf("Expected segment 1 to survive but got: %v", err)
	}
	if original.Name == "Imposter Segment" {
		t.Error("Expected import to leave existing segments untouched")
	}
}

func TestSegmentService_ImportRejectsMalformedPayload(t *testing.T) {
	svc, _ := newSegmentFixture(t)

	_, err := svc.ImportSegments([]byte("{not json"))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError but got %v", err)
	}
}

func TestSegmentService_StatusLifecycle(t *testing.T) {
	svc, _ := newSegmentFixture(t)

	// Seed segment 1 is active; pause and resume it
	paused, err := svc.ChangeSegmentStatus(1, models.SegmentStatusPaused)
	if err != nil {
		t.Fatalf("Expected pause to succeed but got: %v", err)
	}
	if paused.Status != models.SegmentStatusPaused {
		t.Errorf("Expected paused status but got %q", paused.Status)
	}

	if _, err := svc.ChangeSegmentStatus(1, models.SegmentStatusActive); err != nil {
		t.Fatalf("Expected resume to succeed but got: %v", err)
	}

	// Archived is terminal
	if _, err := svc.ChangeSegmentStatus(1, models.SegmentStatusArchived); err != nil {
		t.Fatalf("Expected archive to succeed but got: %v", err)
	}
	_, err = svc.ChangeSegmentStatus(1, models.SegmentStatusActive)
	var logicErr *BusinessLogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("Expected BusinessLogicError but got %v", err)
	}
}
