package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"civicboard/internal/models"
)

func newMockDB(t *testing.T) (*campaignRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Expected mock database but got: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &campaignRepository{db: db}, mock
}

func TestCampaignRepository_Create(t *testing.T) {
	repo, mock := newMockDB(t)

	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO campaigns").
		WithArgs(
			"Clean Streets Initiative",
			"Ward-by-ward street clean-up drive.",
			"Environment",
			models.CampaignStatusDraft,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			float64(15000),
			float64(15000),
			float64(0),
			12,
			3,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	campaign := &models.Campaign{
		Name:            "Clean Streets Initiative",
		Description:     "Ward-by-ward street clean-up drive.",
		Type:            "Environment",
		Status:          models.CampaignStatusDraft,
		StartDate:       time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC),
		Budget:          15000,
		BudgetAllocated: 15000,
		Personnel:       12,
		Equipment:       3,
		Milestones: []models.Milestone{
			{Name: "Kickoff", Date: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	if err := repo.Create(context.Background(), campaign); err != nil {
		t.Fatalf("Expected create to succeed but got: %v", err)
	}
	if campaign.ID != 7 {
		t.Errorf("Expected returned ID 7 but got %d", campaign.ID)
	}
	if !campaign.CreatedAt.Equal(now) {
		t.Errorf("Expected returned created_at but got %v", campaign.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestCampaignRepository_List(t *testing.T) {
	repo, mock := newMockDB(t)

	created := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "type", "status", "start_date", "end_date",
		"budget", "budget_allocated", "budget_used", "personnel", "equipment",
		"milestones", "created_at", "updated_at",
	}).
		AddRow(1, "Clean Streets Initiative", "Street clean-up drive.", "Environment", "active",
			created, created.AddDate(0, 3, 0), 15000.0, 15000.0, 9000.0, 12, 3,
			[]byte(`[{"name":"Kickoff","date":"2026-01-10T00:00:00Z","completed":true}]`), created, created).
		AddRow(2, "Road Safety Month", "", "Safety", "draft",
			created, created.AddDate(0, 1, 0), 8000.0, 8000.0, 0.0, 5, 1,
			[]byte(nil), created, created)

	mock.ExpectQuery("SELECT (.+) FROM campaigns").WillReturnRows(rows)

	campaigns, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("Expected list to succeed but got: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("Expected 2 campaigns but got %d", len(campaigns))
	}

	first := campaigns[0]
	if first.Name != "Clean Streets Initiative" || first.Status != models.CampaignStatusActive {
		t.Errorf("Unexpected first campaign: %+v", first)
	}
	if len(first.Milestones) != 1 || first.Milestones[0].Name != "Kickoff" || !first.Milestones[0].Completed {
		t.Errorf("Expected milestones to decode but got %+v", first.Milestones)
	}

	// A NULL milestones column decodes to no milestones
	if len(campaigns[1].Milestones) != 0 {
		t.Errorf("Expected no milestones but got %+v", campaigns[1].Milestones)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestCampaignRepository_ListQueryError(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM campaigns").WillReturnError(context.DeadlineExceeded)

	if _, err := repo.List(context.Background()); err == nil {
		t.Error("Expected list to surface the query error")
	}
}
