package service

import (
	"testing"
	"time"

	"civicboard/internal/models"
	"civicboard/internal/seed"
	"civicboard/internal/store"
)

func newSearchFixture(t *testing.T) (*SearchService, *store.Store[*models.Campaign]) {
	t.Helper()
	campaigns := store.New[*models.Campaign]("campaigns", nil)
	campaigns.Adopt(seed.Campaigns())
	contents := store.New[*models.ContentItem]("content", nil)
	contents.Adopt(seed.Contents())
	segments := store.New[*models.Segment]("segments", nil)
	segments.Adopt(seed.Segments())
	events := store.New[*models.Event]("events", nil)
	events.Adopt(seed.Events())
	surveys := store.New[*models.Survey]("surveys", nil)
	surveys.Adopt(seed.Surveys())
	integrations := store.New[*models.Integration]("integrations", nil)
	integrations.Adopt(seed.Integrations())
	return NewSearchService(campaigns, contents, segments, events, surveys, integrations), campaigns
}

func TestSearchService_BlankQueryReturnsNothing(t *testing.T) {
	svc, _ := newSearchFixture(t)

	results := svc.Search("   ")
	if results.Total != 0 || len(results.Hits) != 0 {
		t.Errorf("Expected no hits for blank query but got %d", results.Total)
	}
	if results.Query != "" {
		t.Errorf("Expected trimmed query to be empty but got %q", results.Query)
	}
}

func TestSearchService_MatchesAcrossModules(t *testing.T) {
	svc, _ := newSearchFixture(t)

	results := svc.Search("riverside")
	if results.Total != 2 {
		t.Fatalf("Expected 2 hits but got %d: %+v", results.Total, results.Hits)
	}

	modules := map[string]bool{}
	for _, hit := range results.Hits {
		modules[hit.Module] = true
		if hit.Title == "" || hit.Status == "" {
			t.Errorf("Expected hit to carry a title and status: %+v", hit)
		}
	}
	if !modules["segments"] || !modules["events"] {
		t.Errorf("Expected hits from segments and events but got %v", modules)
	}
}

func TestSearchService_CaseInsensitive(t *testing.T) {
	svc, _ := newSearchFixture(t)

	lower := svc.Search("flood")
	upper := svc.Search("FLOOD")
	if lower.Total == 0 {
		t.Fatal("Expected matches for 'flood'")
	}
	if lower.Total != upper.Total {
		t.Errorf("Expected %d hits regardless of case but got %d", lower.Total, upper.Total)
	}
}

func TestSearchService_NoMatch(t *testing.T) {
	svc, _ := newSearchFixture(t)

	results := svc.Search("zzz-no-such-record")
	if results.Total != 0 {
		t.Errorf("Expected no hits but got %d", results.Total)
	}
}

func TestSearchService_SeesNewRecords(t *testing.T) {
	svc, campaigns := newSearchFixture(t)

	before := svc.Search("riverside").Total

	if _, err := campaigns.Create(&models.Campaign{
		Name:      "Riverside Outreach",
		Status:    models.CampaignStatusDraft,
		StartDate: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("Expected create to succeed but got: %v", err)
	}

	after := svc.Search("riverside")
	if after.Total != before+1 {
		t.Errorf("Expected %d hits after create but got %d", before+1, after.Total)
	}
}
