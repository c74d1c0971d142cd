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

func newCampaignFixture(t *testing.T) (*CampaignService, *notify.Notifier) {
	t.Helper()
	campaigns := store.New[*models.Campaign]("campaigns", nil)
	campaigns.Adopt(seed.Campaigns())
	notifier := notify.NewNotifier(50, time.Minute)
	return NewCampaignService(campaigns, notifier, activity.NewFeed(100)), notifier
}

func lastNotification(t *testing.T, notifier *notify.Notifier) notify.Notification {
	t.Helper()
	active := notifier.Active()
	if len(active) == 0 {
		t.Fatal("Expected at least one notification")
	}
	return active[len(active)-1]
}

func TestCampaignService_CreateStartsAsDraft(t *testing.T) {
	svc, notifier := newCampaignFixture(t)

	created, err := svc.CreateCampaign(&CreateCampaignRequest{
		Name:      "Recycling Drive",
		Type:      "environment",
		StartDate: "2026-04-01",
		EndDate:   "2026-06-30",
		Budget:    12000,
	})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if created.Status != models.CampaignStatusDraft {
		t.Errorf("Expected status %q but got %q", models.CampaignStatusDraft, created.Status)
	}
	if created.ID == 0 {
		t.Error("Expected a fresh ID to be assigned")
	}

	note := lastNotification(t, notifier)
	if note.Kind != notify.KindSuccess || note.Message != "Campaign created successfully!" {
		t.Errorf("Expected success notification, got %s %q", note.Kind, note.Message)
	}
}

func TestCampaignService_CreateRejectsEndBeforeStart(t *testing.T) {
	svc, notifier := newCampaignFixture(t)

	_, err := svc.CreateCampaign(&CreateCampaignRequest{
		Name:      "Backwards",
		StartDate: "2026-06-30",
		EndDate:   "2026-04-01",
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError but got %v", err)
	}

	note := lastNotification(t, notifier)
	if note.Kind != notify.KindError {
		t.Errorf("Expected error notification but got %s", note.Kind)
	}
}

func TestCampaignService_CreateRejectsMarkupInName(t *testing.T) {
	svc, _ := newCampaignFixture(t)

	_, err := svc.CreateCampaign(&CreateCampaignRequest{
		Name:      "<script>alert(1)</script>",
		StartDate: "2026-04-01",
		EndDate:   "2026-04-02",
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError but got %v", err)
	}
}

func TestCampaignService_UpdateMergesOnlyProvidedFields(t *testing.T) {
	svc, _ := newCampaignFixture(t)

	before, err := svc.GetCampaign(1)
	if err != nil {
		t.Fatalf("Expected seed campaign 1 but got: %v", err)
	}

	newName := "Renamed Initiative"
	updated, err := svc.UpdateCampaign(1, &UpdateCampaignRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if updated.Name != newName {
		t.Errorf("Expected name %q but got %q", newName, updated.Name)
	}
	if updated.Budget != before.Budget {
		t.Errorf("Expected untouched budget %v but got %v", before.Budget, updated.Budget)
	}
	if updated.Status != before.Status {
		t.Errorf("Expected untouched status %q but got %q", before.Status, updated.Status)
	}
}

func TestCampaignService_UpdateOverBudgetWarns(t *testing.T) {
	svc, notifier := newCampaignFixture(t)

	spent := 1e9
	_, err := svc.UpdateCampaign(1, &UpdateCampaignRequest{BudgetUsed: &spent})
	if err != nil {
		t.Fatalf("Expected overspend to be allowed but got: %v", err)
	}

	note := lastNotification(t, notifier)
	if note.Kind != notify.KindWarning {
		t.Errorf("Expected warning notification but got %s %q", note.Kind, note.Message)
	}
}

func TestCampaignService_StatusTransitionTable(t *testing.T) {
	svc, _ := newCampaignFixture(t)

	// Seed campaign 3 is completed; completed is terminal
	_, err := svc.ChangeCampaignStatus(3, models.CampaignStatusActive)
	var logicErr *BusinessLogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("Expected BusinessLogicError but got %v", err)
	}

	// Seed campaign 2 is draft; draft may go active
	updated, err := svc.ChangeCampaignStatus(2, models.CampaignStatusActive)
	if err != nil {
		t.Fatalf("Expected transition to succeed but got: %v", err)
	}
	if updated.Status != models.CampaignStatusActive {
		t.Errorf("Expected status %q but got %q", models.CampaignStatusActive, updated.Status)
	}
}

func TestCampaignService_DeleteMissingNotifies(t *testing.T) {
	svc, notifier := newCampaignFixture(t)

	err := svc.DeleteCampaign(999, false)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError but got %v", err)
	}

	note := lastNotification(t, notifier)
	if note.Message != "Campaign not found!" {
		t.Errorf("Expected %q notification but got %q", "Campaign not found!", note.Message)
	}

	// The list is unchanged
	if got := len(svc.ListCampaigns()); got != len(seed.Campaigns()) {
		t.Errorf("Expected %d campaigns but got %d", len(seed.Campaigns()), got)
	}
}

func TestCampaignService_DeleteActiveNeedsForce(t *testing.T) {
	svc, _ := newCampaignFixture(t)

	// Seed campaign 1 is active and therefore protected
	err := svc.DeleteCampaign(1, false)
	var protected *ProtectedError
	if !errors.As(err, &protected) {
		t.Fatalf("Expected ProtectedError but got %v", err)
	}

	if err := svc.DeleteCampaign(1, true); err != nil {
		t.Fatalf("Expected forced delete to succeed but got: %v", err)
	}
	if _, err := svc.GetCampaign(1); err == nil {
		t.Error("Expected campaign 1 to be gone")
	}
}

func TestCampaignService_SearchFiltersAndResets(t *testing.T) {
	svc, _ := newCampaignFixture(t)

	matches := svc.SearchCampaigns("clean")
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match for %q but got %d", "clean", len(matches))
	}

	if got := len(svc.SearchCampaigns("")); got != len(seed.Campaigns()) {
		t.Errorf("Expected blank query to reset to %d campaigns but got %d", len(seed.Campaigns()), got)
	}
}
