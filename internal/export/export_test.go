package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"civicboard/internal/models"
)

var exportedAt = time.Date(2026, time.September, 1, 14, 30, 0, 0, time.UTC)

func TestFilename(t *testing.T) {
	got := Filename("events", "csv", exportedAt)
	if got != "events-2026-09-01.csv" {
		t.Errorf("Expected events-2026-09-01.csv but got %q", got)
	}

	// Local timestamps fold to the UTC date
	nairobi := time.FixedZone("EAT", 3*60*60)
	late := time.Date(2026, time.September, 2, 1, 15, 0, 0, nairobi)
	if got := Filename("segments", "json", late); got != "segments-2026-09-01.json" {
		t.Errorf("Expected the UTC date in the filename but got %q", got)
	}
}

func TestEventsCSV(t *testing.T) {
	events := []*models.Event{
		{
			ID:            1,
			Title:         "Town Hall Open Day",
			Type:          "community",
			Date:          time.Date(2026, time.September, 12, 10, 0, 0, 0, time.UTC),
			Location:      "Town Hall, Main Chamber",
			Capacity:      120,
			Registrations: 35,
			Status:        models.EventStatusUpcoming,
		},
	}

	data, name, err := EventsCSV(events, exportedAt)
	if err != nil {
		t.Fatalf("Expected export to succeed but got: %v", err)
	}
	if name != "events-2026-09-01.csv" {
		t.Errorf("Expected dated filename but got %q", name)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV but got: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 row but got %d records", len(records))
	}
	if records[0][1] != "title" {
		t.Errorf("Expected title header but got %q", records[0][1])
	}
	row := records[1]
	if row[1] != "Town Hall Open Day" || row[5] != "120" || row[6] != "35" {
		t.Errorf("Unexpected row: %v", row)
	}

	// The comma in the location must survive a round trip
	if row[4] != "Town Hall, Main Chamber" {
		t.Errorf("Expected quoted location to round-trip but got %q", row[4])
	}
	if !strings.Contains(string(data), `"Town Hall, Main Chamber"`) {
		t.Errorf("Expected location with comma to be quoted\n%s", data)
	}
}

func TestAttendeesCSV(t *testing.T) {
	attendees := []*models.Attendee{
		{ID: 1, EventID: 1, Name: "Grace Mwangi", Email: "grace@example.org", Phone: "0700000001", Status: models.AttendeeStatusConfirmed},
		{ID: 2, EventID: 1, Name: "Peter Otieno", Email: "peter@example.org", Phone: "0700000002", Status: models.AttendeeStatusCancelled},
	}

	data, name, err := AttendeesCSV("Town Hall Open Day", attendees, exportedAt)
	if err != nil {
		t.Fatalf("Expected export to succeed but got: %v", err)
	}
	if name != "attendees-2026-09-01.csv" {
		t.Errorf("Expected dated filename but got %q", name)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV but got: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows but got %d records", len(records))
	}
	if records[1][1] != "Town Hall Open Day" {
		t.Errorf("Expected event title in each row but got %q", records[1][1])
	}
	if records[2][5] != "cancelled" {
		t.Errorf("Expected cancelled status but got %q", records[2][5])
	}
}

func TestSurveyCSV(t *testing.T) {
	survey := &models.Survey{ID: 3, Name: "Park Facilities Feedback"}
	responses := []*models.SurveyResponse{
		{ID: 1, SurveyID: 3, Rating: 4, Comment: "Great, but more benches please", Completed: true, SubmittedAt: exportedAt},
	}

	data, name, err := SurveyCSV(survey, responses, exportedAt)
	if err != nil {
		t.Fatalf("Expected export to succeed but got: %v", err)
	}
	if name != "survey-3-responses-2026-09-01.csv" {
		t.Errorf("Expected survey-scoped filename but got %q", name)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV but got: %v", err)
	}
	row := records[1]
	if row[2] != "4" || row[3] != "Great, but more benches please" || row[4] != "true" {
		t.Errorf("Unexpected row: %v", row)
	}
	if row[5] != "2026-09-01T14:30:00Z" {
		t.Errorf("Expected RFC3339 UTC timestamp but got %q", row[5])
	}
}

func TestSegmentsJSON(t *testing.T) {
	segments := []*models.Segment{
		{ID: 1, Name: "Riverside Residents", Type: "geographic", Size: 3100, Status: models.SegmentStatusActive},
	}

	data, name, err := SegmentsJSON(segments, exportedAt)
	if err != nil {
		t.Fatalf("Expected export to succeed but got: %v", err)
	}
	if name != "segments-2026-09-01.json" {
		t.Errorf("Expected dated filename but got %q", name)
	}

	var decoded []*models.Segment
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON but got: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "Riverside Residents" {
		t.Errorf("Unexpected decoded segments: %+v", decoded)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("Expected indented JSON output")
	}
}

func TestIntegrationLog(t *testing.T) {
	lastSync := time.Date(2026, time.August, 28, 6, 0, 0, 0, time.UTC)
	integrations := []*models.Integration{
		{ID: 1, Name: "County Health Records Exchange", Type: models.IntegrationTypeHealth, System: "CHRE", Status: models.IntegrationStatusActive, LastSync: &lastSync},
		{ID: 3, Name: "Emergency Siren Network", Type: models.IntegrationTypeEmergency, System: "ESN", Status: models.IntegrationStatusError, LastError: "gateway timeout during last poll"},
	}

	data, name := IntegrationLog(integrations, exportedAt)
	if name != "integration-log-2026-09-01.txt" {
		t.Errorf("Expected dated filename but got %q", name)
	}

	text := string(data)
	for _, want := range []string{
		"generated 2026-09-01T14:30:00Z",
		"[active] County Health Records Exchange (Health / CHRE)",
		"last sync: 2026-08-28T06:00:00Z",
		"[error] Emergency Siren Network (Emergency / ESN)",
		"last error: gateway timeout during last poll",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected log to contain %q\n%s", want, text)
		}
	}
}
