// Package seed holds the fixed fallback datasets used when neither the
// upstream database nor a usable snapshot is available. They keep every
// dashboard view populated on first run.
package seed

import (
	"time"

	"civicboard/internal/models"
)

// date builds a UTC calendar date for seed records
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Campaigns returns the fallback campaign dataset
func Campaigns() []*models.Campaign {
	return []*models.Campaign{
		{
			ID:              1,
			Name:            "Clean Streets Initiative",
			Description:     "Neighbourhood clean-up drives and anti-littering outreach across all wards.",
			Type:            "environment",
			Status:          models.CampaignStatusActive,
			StartDate:       date(2026, time.January, 15),
			EndDate:         date(2026, time.June, 30),
			Budget:          45000,
			BudgetAllocated: 40000,
			BudgetUsed:      18500,
			Personnel:       12,
			Equipment:       8,
			Milestones: []models.Milestone{
				{Name: "Ward coordinator onboarding", Date: date(2026, time.February, 1), Completed: true},
				{Name: "First clean-up weekend", Date: date(2026, time.March, 7), Completed: true},
				{Name: "Mid-campaign review", Date: date(2026, time.April, 15), Completed: false},
			},
			CreatedAt: date(2026, time.January, 10),
			UpdatedAt: date(2026, time.March, 8),
		},
		{
			ID:          2,
			Name:        "Vaccination Awareness Week",
			Description: "Public health messaging ahead of the seasonal vaccination programme.",
			Type:        "health",
			Status:      models.CampaignStatusDraft,
			StartDate:   date(2026, time.September, 1),
			EndDate:     date(2026, time.September, 8),
			Budget:      12000,
			Personnel:   5,
			Equipment:   2,
			CreatedAt:   date(2026, time.July, 22),
			UpdatedAt:   date(2026, time.July, 22),
		},
		{
			ID:              3,
			Name:            "Road Safety Month",
			Description:     "School-zone speed awareness and pedestrian crossing education.",
			Type:            "safety",
			Status:          models.CampaignStatusCompleted,
			StartDate:       date(2025, time.October, 1),
			EndDate:         date(2025, time.October, 31),
			Budget:          20000,
			BudgetAllocated: 20000,
			BudgetUsed:      19200,
			Personnel:       9,
			Equipment:       6,
			CreatedAt:       date(2025, time.August, 30),
			UpdatedAt:       date(2025, time.November, 2),
		},
	}
}

// Contents returns the fallback content repository dataset
func Contents() []*models.ContentItem {
	return []*models.ContentItem{
		{
			ID:          1,
			Name:        "waste-collection-schedule.pdf",
			Category:    "public-notice",
			SizeBytes:   482000,
			Status:      models.ContentStatusApproved,
			Version:     3,
			Tags:        []string{"#waste", "#schedule"},
			Description: "Quarterly household waste and recycling collection calendar.",
			CreatedAt:   date(2026, time.January, 5),
			UpdatedAt:   date(2026, time.April, 1),
		},
		{
			ID:          2,
			Name:        "summer-events-poster.png",
			Category:    "media",
			SizeBytes:   2350000,
			Status:      models.ContentStatusPending,
			Version:     1,
			Tags:        []string{"#events", "#summer"},
			Description: "Poster artwork for the summer community events programme.",
			CreatedAt:   date(2026, time.May, 12),
			UpdatedAt:   date(2026, time.May, 12),
		},
		{
			ID:          3,
			Name:        "budget-consultation-draft.docx",
			Category:    "consultation",
			SizeBytes:   128500,
			Status:      models.ContentStatusDraft,
			Version:     1,
			Tags:        []string{"#budget"},
			Description: "Draft consultation document for the next financial year budget.",
			CreatedAt:   date(2026, time.June, 3),
			UpdatedAt:   date(2026, time.June, 3),
		},
		{
			ID:          4,
			Name:        "flood-response-leaflet.pdf",
			Category:    "public-notice",
			SizeBytes:   655360,
			Status:      models.ContentStatusRejected,
			Version:     2,
			Tags:        []string{"#emergency", "#flooding"},
			Description: "Household guidance for flood warnings; returned for map corrections.",
			CreatedAt:   date(2026, time.February, 18),
			UpdatedAt:   date(2026, time.March, 2),
		},
	}
}

// Segments returns the fallback audience segment dataset
func Segments() []*models.Segment {
	return []*models.Segment{
		{
			ID:             1,
			Name:           "Young Families - North Ward",
			Type:           models.SegmentTypeDemographic,
			Size:           4200,
			EstimatedSize:  4500,
			Status:         models.SegmentStatusActive,
			EngagementRate: 38.5,
			Tags:           []string{"#families", "#north"},
			Criteria: models.SegmentCriteria{
				AgeRange:  "25-40",
				Location:  "North Ward",
				Interests: []string{"schools", "parks", "childcare"},
				Income:    "middle",
			},
			CreatedAt: date(2025, time.November, 20),
			UpdatedAt: date(2026, time.February, 14),
		},
		{
			ID:             2,
			Name:           "Riverside Residents",
			Type:           models.SegmentTypeGeographic,
			Size:           1850,
			EstimatedSize:  1900,
			Status:         models.SegmentStatusActive,
			EngagementRate: 61.2,
			Tags:           []string{"#riverside", "#flood-risk"},
			Criteria: models.SegmentCriteria{
				Location:  "Riverside district",
				Interests: []string{"flood alerts", "planning"},
			},
			CreatedAt: date(2025, time.September, 2),
			UpdatedAt: date(2026, time.January, 30),
		},
		{
			ID:             3,
			Name:           "Frequent Survey Responders",
			Type:           models.SegmentTypeBehavioral,
			Size:           960,
			EstimatedSize:  1000,
			Status:         models.SegmentStatusPaused,
			EngagementRate: 84.0,
			Tags:           []string{"#engaged"},
			Criteria: models.SegmentCriteria{
				Interests: []string{"consultations", "surveys"},
			},
			CreatedAt: date(2026, time.January, 8),
			UpdatedAt: date(2026, time.May, 19),
		},
	}
}

// Events returns the fallback calendar events dataset. Event 1 is the
// town hall open day used throughout the attendee registration flows.
func Events() []*models.Event {
	return []*models.Event{
		{
			ID:            1,
			Title:         "Town Hall Open Day",
			Type:          "civic",
			Date:          date(2026, time.October, 12),
			Location:      "Town Hall, Main Square",
			Capacity:      50,
			Registrations: 35,
			Status:        models.EventStatusUpcoming,
			CreatedAt:     date(2026, time.June, 1),
			UpdatedAt:     date(2026, time.August, 20),
		},
		{
			ID:            2,
			Title:         "Riverside Flood Defence Briefing",
			Type:          "safety",
			Date:          date(2026, time.September, 18),
			Location:      "Riverside Community Centre",
			Capacity:      80,
			Registrations: 64,
			Status:        models.EventStatusUpcoming,
			CreatedAt:     date(2026, time.July, 4),
			UpdatedAt:     date(2026, time.August, 25),
		},
		{
			ID:            3,
			Title:         "Spring Recycling Workshop",
			Type:          "environment",
			Date:          date(2026, time.March, 22),
			Location:      "Library Annex",
			Capacity:      30,
			Registrations: 30,
			Status:        models.EventStatusCompleted,
			CreatedAt:     date(2026, time.January, 15),
			UpdatedAt:     date(2026, time.March, 23),
		},
	}
}

// Attendees returns the fallback attendee dataset
func Attendees() []*models.Attendee {
	return []*models.Attendee{
		{
			ID:        1,
			EventID:   1,
			Name:      "Grace Mwangi",
			Email:     "grace.mwangi@example.org",
			Phone:     "+254700000101",
			Status:    models.AttendeeStatusConfirmed,
			CreatedAt: date(2026, time.July, 2),
			UpdatedAt: date(2026, time.July, 2),
		},
		{
			ID:        2,
			EventID:   1,
			Name:      "Peter Otieno",
			Email:     "p.otieno@example.org",
			Phone:     "+254700000102",
			Status:    models.AttendeeStatusPending,
			CreatedAt: date(2026, time.July, 9),
			UpdatedAt: date(2026, time.July, 9),
		},
		{
			ID:        3,
			EventID:   2,
			Name:      "Amina Hassan",
			Email:     "amina.h@example.org",
			Phone:     "+254700000103",
			Status:    models.AttendeeStatusConfirmed,
			CreatedAt: date(2026, time.July, 15),
			UpdatedAt: date(2026, time.August, 1),
		},
	}
}

// Surveys returns the fallback survey dataset
func Surveys() []*models.Survey {
	launched := date(2026, time.April, 1)
	closed := date(2026, time.May, 1)
	return []*models.Survey{
		{
			ID:             1,
			Name:           "Park Facilities Feedback",
			Type:           "services",
			Description:    "Resident satisfaction with playgrounds, paths and green spaces.",
			Status:         models.SurveyStatusActive,
			Responses:      214,
			CompletionRate: 78.5,
			AvgRating:      4.1,
			LaunchedAt:     &launched,
			CreatedAt:      date(2026, time.March, 20),
			UpdatedAt:      date(2026, time.June, 2),
		},
		{
			ID:          2,
			Name:        "Library Opening Hours",
			Type:        "consultation",
			Description: "Preferred opening hours for the central and branch libraries.",
			Status:      models.SurveyStatusDraft,
			CreatedAt:   date(2026, time.June, 10),
			UpdatedAt:   date(2026, time.June, 10),
		},
		{
			ID:             3,
			Name:           "Winter Gritting Routes",
			Type:           "services",
			Description:    "Feedback on last winter's road gritting coverage.",
			Status:         models.SurveyStatusClosed,
			Responses:      389,
			CompletionRate: 91.0,
			AvgRating:      3.6,
			LaunchedAt:     &launched,
			ClosedAt:       &closed,
			CreatedAt:      date(2026, time.March, 1),
			UpdatedAt:      date(2026, time.May, 1),
		},
	}
}

// Responses returns the fallback survey response dataset
func Responses() []*models.SurveyResponse {
	return []*models.SurveyResponse{
		{ID: 1, SurveyID: 1, Rating: 4, Comment: "More benches along the river path, please.", Completed: true, SubmittedAt: date(2026, time.April, 3)},
		{ID: 2, SurveyID: 1, Rating: 5, Comment: "New playground is excellent.", Completed: true, SubmittedAt: date(2026, time.April, 6)},
		{ID: 3, SurveyID: 1, Rating: 3, Comment: "", Completed: false, SubmittedAt: date(2026, time.April, 9)},
	}
}

// Integrations returns the fallback cross-agency integration dataset
func Integrations() []*models.Integration {
	lastSync := date(2026, time.August, 28)
	return []*models.Integration{
		{
			ID:         1,
			Name:       "County Health Records Exchange",
			Type:       models.IntegrationTypeHealth,
			System:     "CHRE v4",
			DataPoints: []string{"clinic visits", "vaccination uptake", "outbreak alerts"},
			Status:     models.IntegrationStatusActive,
			LastSync:   &lastSync,
			CreatedAt:  date(2025, time.June, 1),
			UpdatedAt:  date(2026, time.August, 28),
		},
		{
			ID:         2,
			Name:       "Police Incident Feed",
			Type:       models.IntegrationTypePolice,
			System:     "SafeCity Gateway",
			DataPoints: []string{"incident reports", "patrol coverage"},
			Status:     models.IntegrationStatusMaintenance,
			CreatedAt:  date(2025, time.June, 1),
			UpdatedAt:  date(2026, time.July, 14),
		},
		{
			ID:         3,
			Name:       "Emergency Siren Network",
			Type:       models.IntegrationTypeEmergency,
			System:     "AlertNet",
			DataPoints: []string{"siren status", "test schedule"},
			Status:     models.IntegrationStatusError,
			LastError:  "gateway timeout during last poll",
			CreatedAt:  date(2025, time.October, 12),
			UpdatedAt:  date(2026, time.August, 30),
		},
		{
			ID:         4,
			Name:       "Open Data Portal",
			Type:       models.IntegrationTypeData,
			System:     "CKAN",
			DataPoints: []string{"datasets published", "download counts"},
			Status:     models.IntegrationStatusDisabled,
			CreatedAt:  date(2026, time.February, 2),
			UpdatedAt:  date(2026, time.February, 2),
		},
	}
}

// ChatHistory returns the fallback assistant chat history
func ChatHistory() []*models.ChatMessage {
	return []*models.ChatMessage{
		{ID: 1, Text: "When is the next waste collection in North Ward?", Sender: models.ChatSenderUser, Timestamp: date(2026, time.August, 20)},
		{ID: 2, Text: "North Ward household collections run every Tuesday morning.", Sender: models.ChatSenderBot, Timestamp: date(2026, time.August, 20)},
	}
}
