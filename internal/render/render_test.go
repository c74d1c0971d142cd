package render

import (
	"strings"
	"testing"
	"time"

	"civicboard/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("Expected templates to parse but got: %v", err)
	}
	return r
}

func TestRenderer_AllViewsPresent(t *testing.T) {
	r := newRenderer(t)
	for _, view := range []string{"campaigns", "content", "segments", "events", "surveys", "integrations"} {
		if !r.Has(view) {
			t.Errorf("Expected view %q to exist", view)
		}
	}
	if r.Has("payroll") {
		t.Error("Expected unknown view to be absent")
	}
}

func TestRenderer_CampaignsTable(t *testing.T) {
	r := newRenderer(t)

	campaigns := []*models.Campaign{
		{
			ID:         1,
			Name:       "Clean Streets Initiative",
			Type:       "Environment",
			Status:     models.CampaignStatusActive,
			StartDate:  time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
			Budget:     15000,
			BudgetUsed: 9000,
		},
	}

	html, err := r.Render("campaigns", campaigns)
	if err != nil {
		t.Fatalf("Expected render to succeed but got: %v", err)
	}

	for _, want := range []string{
		`data-module="campaigns"`,
		`data-id="1"`,
		"Clean Streets Initiative",
		"2026-03-01",
		"2026-06-30",
		"15000.00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRenderer_EscapesHostileFields(t *testing.T) {
	r := newRenderer(t)

	campaigns := []*models.Campaign{
		{
			ID:     1,
			Name:   `<img src=x onerror="alert(1)">`,
			Status: models.CampaignStatusDraft,
		},
	}

	html, err := r.Render("campaigns", campaigns)
	if err != nil {
		t.Fatalf("Expected render to succeed but got: %v", err)
	}

	if strings.Contains(html, "<img") {
		t.Errorf("Expected markup in field values to be escaped\n%s", html)
	}
	if !strings.Contains(html, "&lt;img") {
		t.Errorf("Expected escaped entity in output\n%s", html)
	}
}

func TestRenderer_OverCapacityRowFlagged(t *testing.T) {
	r := newRenderer(t)

	events := []*models.Event{
		{ID: 1, Title: "Town Hall Open Day", Capacity: 50, Registrations: 55, Status: models.EventStatusUpcoming},
		{ID: 2, Title: "Recycling Workshop", Capacity: 50, Registrations: 10, Status: models.EventStatusUpcoming},
	}

	html, err := r.Render("events", events)
	if err != nil {
		t.Fatalf("Expected render to succeed but got: %v", err)
	}

	if !strings.Contains(html, `data-id="1" class="over-capacity"`) {
		t.Errorf("Expected the oversubscribed event row to be flagged\n%s", html)
	}
	if strings.Contains(html, `data-id="2" class="over-capacity"`) {
		t.Errorf("Expected the normal event row to be unflagged\n%s", html)
	}
	if !strings.Contains(html, "55/50") {
		t.Errorf("Expected registrations over capacity to display\n%s", html)
	}
}

func TestRenderer_EmptyListStillRendersTable(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Render("surveys", []*models.Survey{})
	if err != nil {
		t.Fatalf("Expected render to succeed but got: %v", err)
	}
	if !strings.Contains(html, "<thead>") || !strings.Contains(html, "<tbody>") {
		t.Errorf("Expected a table skeleton for an empty list\n%s", html)
	}
	if strings.Contains(html, "<td>") {
		t.Errorf("Expected no rows for an empty list\n%s", html)
	}
}

func TestRenderer_DeterministicOutput(t *testing.T) {
	r := newRenderer(t)

	items := []*models.Integration{
		{ID: 3, Name: "Open Data Portal", Type: models.IntegrationTypeData, System: "CKAN", Status: models.IntegrationStatusActive, DataPoints: []string{"datasets", "downloads"}},
	}

	first, err := r.Render("integrations", items)
	if err != nil {
		t.Fatalf("Expected render to succeed but got: %v", err)
	}
	second, _ := r.Render("integrations", items)
	if first != second {
		t.Error("Expected identical output for identical input")
	}
}

func TestRenderer_UnknownViewFails(t *testing.T) {
	r := newRenderer(t)

	if _, err := r.Render("payroll", nil); err == nil {
		t.Error("Expected unknown view to fail")
	}
}
