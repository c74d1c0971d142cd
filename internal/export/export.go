// Package export builds the downloadable files offered by the dashboards:
// CSV tables, segments as JSON and a plain-text integration log. Output is
// UTF-8, CSV fields containing commas are double-quoted, and every filename
// embeds the ISO date it was generated on.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"civicboard/internal/models"
)

// Filename builds "<prefix>-<ISO date>.<ext>"
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.UTC().Format("2006-01-02"), ext)
}

// writeCSV renders a header row plus record rows
func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// EventsCSV exports the event list
func EventsCSV(events []*models.Event, now time.Time) ([]byte, string, error) {
	header := []string{"id", "title", "type", "date", "location", "capacity", "registrations", "status"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Title,
			e.Type,
			e.Date.UTC().Format(time.RFC3339),
			e.Location,
			strconv.Itoa(e.Capacity),
			strconv.Itoa(e.Registrations),
			string(e.Status),
		})
	}

	data, err := writeCSV(header, rows)
	if err != nil {
		return nil, "", err
	}
	return data, Filename("events", "csv", now), nil
}

// AttendeesCSV exports the attendee list for one event
func AttendeesCSV(eventTitle string, attendees []*models.Attendee, now time.Time) ([]byte, string, error) {
	header := []string{"id", "event", "name", "email", "phone", "status"}
	rows := make([][]string, 0, len(attendees))
	for _, a := range attendees {
		rows = append(rows, []string{
			strconv.Itoa(a.ID),
			eventTitle,
			a.Name,
			a.Email,
			a.Phone,
			string(a.Status),
		})
	}

	data, err := writeCSV(header, rows)
	if err != nil {
		return nil, "", err
	}
	return data, Filename("attendees", "csv", now), nil
}

// SurveyCSV exports a survey's responses
func SurveyCSV(survey *models.Survey, responses []*models.SurveyResponse, now time.Time) ([]byte, string, error) {
	header := []string{"response_id", "survey", "rating", "comment", "completed", "submitted_at"}
	rows := make([][]string, 0, len(responses))
	for _, r := range responses {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			survey.Name,
			strconv.Itoa(r.Rating),
			r.Comment,
			strconv.FormatBool(r.Completed),
			r.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}

	data, err := writeCSV(header, rows)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(fmt.Sprintf("survey-%d-responses", survey.ID), "csv", now), nil
}

// SegmentsJSON exports the segment list as indented JSON
func SegmentsJSON(segments []*models.Segment, now time.Time) ([]byte, string, error) {
	data, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal segments: %w", err)
	}
	return data, Filename("segments", "json", now), nil
}

// IntegrationLog exports a plain-text status report over all integrations
func IntegrationLog(integrations []*models.Integration, now time.Time) ([]byte, string) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Integration status report - generated %s\n\n", now.UTC().Format(time.RFC3339))
	for _, i := range integrations {
		fmt.Fprintf(&buf, "[%s] %s (%s / %s)\n", i.Status, i.Name, i.Type, i.System)
		if i.LastSync != nil {
			fmt.Fprintf(&buf, "    last sync: %s\n", i.LastSync.UTC().Format(time.RFC3339))
		}
		if i.LastError != "" {
			fmt.Fprintf(&buf, "    last error: %s\n", i.LastError)
		}
	}
	return buf.Bytes(), Filename("integration-log", "txt", now)
}
