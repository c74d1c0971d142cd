package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"civicboard/internal/activity"
	"civicboard/internal/models"
	"civicboard/internal/notify"
	"civicboard/internal/seed"
	"civicboard/internal/snapshot"
	"civicboard/internal/store"
)

func newEventFixture(t *testing.T) (*EventService, *notify.Notifier) {
	t.Helper()
	events := store.New[*models.Event]("events", nil)
	events.Adopt(seed.Events())
	attendees := store.New[*models.Attendee]("attendees", nil)
	attendees.Adopt(seed.Attendees())
	notifier := notify.NewNotifier(50, time.Minute)
	return NewEventService(events, attendees, notifier, activity.NewFeed(100)), notifier
}

func TestEventService_AddAttendeeBumpsRegistrations(t *testing.T) {
	svc, _ := newEventFixture(t)

	// Town Hall Open Day starts at 35 of 50
	before, err := svc.GetEvent(1)
	if err != nil {
		t.Fatalf("Expected seed event 1 but got: %v", err)
	}
	if before.Registrations != 35 {
		t.Fatalf("Expected 35 registrations to start but got %d", before.Registrations)
	}

	attendee, err := svc.AddAttendee(1, &AddAttendeeRequest{
		Name:  "Joyce Wambui",
		Email: "joyce@example.org",
	})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	after, _ := svc.GetEvent(1)
	if after.Registrations != 36 {
		t.Errorf("Expected 36 registrations after adding but got %d", after.Registrations)
	}

	if err := svc.DeleteAttendee(attendee.ID, false); err != nil {
		t.Fatalf("Expected delete to succeed but got: %v", err)
	}
	final, _ := svc.GetEvent(1)
	if final.Registrations != 35 {
		t.Errorf("Expected registrations back at 35 but got %d", final.Registrations)
	}
}

func TestEventService_AddAttendeePastCapacityWarns(t *testing.T) {
	svc, notifier := newEventFixture(t)

	// Riverside briefing has capacity 80; push it over
	event, _ := svc.GetEvent(2)
	for i := event.Registrations; i < event.Capacity; i++ {
		if _, err := svc.AddAttendee(2, &AddAttendeeRequest{Name: "Filler"}); err != nil {
			t.Fatalf("Expected registration %d to succeed but got: %v", i, err)
		}
	}

	if _, err := svc.AddAttendee(2, &AddAttendeeRequest{Name: "One Too Many"}); err != nil {
		t.Fatalf("Expected over-capacity registration to be allowed but got: %v", err)
	}

	got, _ := svc.GetEvent(2)
	if !got.OverCapacity() {
		t.Error("Expected event to report over capacity")
	}

	warned := false
	for _, note := range notifier.Active() {
		if note.Kind == notify.KindWarning {
			warned = true
			break
		}
	}
	if !warned {
		t.Error("Expected an over-capacity warning notification")
	}
}

func TestEventService_AddAttendeeToCompletedEventFails(t *testing.T) {
	svc, _ := newEventFixture(t)

	// Spring Recycling Workshop is completed
	_, err := svc.AddAttendee(3, &AddAttendeeRequest{Name: "Latecomer"})
	var logicErr *BusinessLogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("Expected BusinessLogicError but got %v", err)
	}
}

func TestEventService_CancellingAttendeeFreesSlot(t *testing.T) {
	svc, _ := newEventFixture(t)

	before, _ := svc.GetEvent(1)

	cancelled := models.AttendeeStatusCancelled
	// Seed attendee 1 is confirmed on event 1
	if _, err := svc.UpdateAttendee(1, &UpdateAttendeeRequest{Status: &cancelled}); err != nil {
		t.Fatalf("Expected cancellation to succeed but got: %v", err)
	}

	after, _ := svc.GetEvent(1)
	if after.Registrations != before.Registrations-1 {
		t.Errorf("Expected registrations to drop from %d to %d but got %d",
			before.Registrations, before.Registrations-1, after.Registrations)
	}

	// Re-entering as pending takes the slot again
	pending := models.AttendeeStatusPending
	if _, err := svc.UpdateAttendee(1, &UpdateAttendeeRequest{Status: &pending}); err != nil {
		t.Fatalf("Expected re-entry to succeed but got: %v", err)
	}
	final, _ := svc.GetEvent(1)
	if final.Registrations != before.Registrations {
		t.Errorf("Expected registrations back at %d but got %d", before.Registrations, final.Registrations)
	}
}

func TestEventService_DeletingCancelledAttendeeKeepsCount(t *testing.T) {
	svc, _ := newEventFixture(t)

	cancelled := models.AttendeeStatusCancelled
	if _, err := svc.UpdateAttendee(2, &UpdateAttendeeRequest{Status: &cancelled}); err != nil {
		t.Fatalf("Expected cancellation to succeed but got: %v", err)
	}
	after, _ := svc.GetEvent(1)

	if err := svc.DeleteAttendee(2, false); err != nil {
		t.Fatalf("Expected delete to succeed but got: %v", err)
	}

	final, _ := svc.GetEvent(1)
	if final.Registrations != after.Registrations {
		t.Errorf("Expected count to stay at %d but got %d", after.Registrations, final.Registrations)
	}
}

func TestEventService_AttendeeStatusWorkflow(t *testing.T) {
	svc, _ := newEventFixture(t)

	// Pending cannot jump straight to checked-in
	checkedIn := models.AttendeeStatusCheckedIn
	_, err := svc.UpdateAttendee(2, &UpdateAttendeeRequest{Status: &checkedIn})
	var logicErr *BusinessLogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("Expected BusinessLogicError but got %v", err)
	}

	// Confirmed may check in
	if _, err := svc.UpdateAttendee(1, &UpdateAttendeeRequest{Status: &checkedIn}); err != nil {
		t.Fatalf("Expected confirmed attendee to check in but got: %v", err)
	}
}

func TestEventService_CreateRejectsNonPositiveCapacity(t *testing.T) {
	svc, _ := newEventFixture(t)

	_, err := svc.CreateEvent(&CreateEventRequest{
		Title:    "Zero Room",
		Date:     "2026-10-01",
		Capacity: 0,
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError but got %v", err)
	}
}

func TestEventService_DeleteUpcomingWithRegistrationsNeedsForce(t *testing.T) {
	svc, _ := newEventFixture(t)

	err := svc.DeleteEvent(1, false)
	var protected *ProtectedError
	if !errors.As(err, &protected) {
		t.Fatalf("Expected ProtectedError but got %v", err)
	}

	if err := svc.DeleteEvent(1, true); err != nil {
		t.Fatalf("Expected forced delete to succeed but got: %v", err)
	}
}

func TestEventService_AddAttendeeRolledBackWhenCountUpdateFails(t *testing.T) {
	// A regular file where the snapshot directory should be makes every
	// save of the events store fail, while the attendee store keeps
	// working
	blocker := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("Expected blocker file to be written but got: %v", err)
	}
	events := store.New[*models.Event]("events", snapshot.NewFile[[]*models.Event](filepath.Join(blocker, "events.json"), 1))
	events.Adopt(seed.Events())
	attendees := store.New[*models.Attendee]("attendees", nil)
	attendees.Adopt(seed.Attendees())
	svc := NewEventService(events, attendees, notify.NewNotifier(50, time.Minute), activity.NewFeed(100))

	before, err := svc.ListAttendees(1)
	if err != nil {
		t.Fatalf("Expected attendee list but got: %v", err)
	}

	_, err = svc.AddAttendee(1, &AddAttendeeRequest{
		Name:  "Joyce Wambui",
		Email: "joyce.wambui@example.com",
	})
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Expected StorageError but got %v", err)
	}

	after, err := svc.ListAttendees(1)
	if err != nil {
		t.Fatalf("Expected attendee list but got: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("Expected attendee list to stay at %d but got %d", len(before), len(after))
	}

	event, err := svc.GetEvent(1)
	if err != nil {
		t.Fatalf("Expected event but got: %v", err)
	}
	if event.Registrations != 35 {
		t.Errorf("Expected registrations to stay at 35 but got %d", event.Registrations)
	}
}
