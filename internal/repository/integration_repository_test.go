package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"civicboard/internal/models"
)

func newIntegrationMock(t *testing.T) (*integrationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Expected mock database but got: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &integrationRepository{db: db}, mock
}

func TestIntegrationRepository_UpdateSyncResult(t *testing.T) {
	repo, mock := newIntegrationMock(t)

	mock.ExpectExec("UPDATE integrations").
		WithArgs(models.IntegrationStatusActive, "", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSyncResult(context.Background(), 3, models.IntegrationStatusActive, "")
	if err != nil {
		t.Fatalf("Expected update to succeed but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestIntegrationRepository_UpdateSyncResultMissingRow(t *testing.T) {
	repo, mock := newIntegrationMock(t)

	mock.ExpectExec("UPDATE integrations").
		WithArgs(models.IntegrationStatusError, "gateway timeout", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSyncResult(context.Background(), 99, models.IntegrationStatusError, "gateway timeout")
	if err == nil {
		t.Fatal("Expected missing integration to fail")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected a not-found error but got: %v", err)
	}
}
