package models

import "testing"

func TestCampaignTransitions(t *testing.T) {
	tests := []struct {
		from, to CampaignStatus
		allowed  bool
	}{
		{CampaignStatusDraft, CampaignStatusActive, true},
		{CampaignStatusDraft, CampaignStatusArchived, true},
		{CampaignStatusDraft, CampaignStatusCompleted, false},
		{CampaignStatusActive, CampaignStatusCompleted, true},
		{CampaignStatusActive, CampaignStatusDraft, false},
		{CampaignStatusCompleted, CampaignStatusArchived, true},
		{CampaignStatusCompleted, CampaignStatusActive, false},
		{CampaignStatusArchived, CampaignStatusDraft, false},
		{CampaignStatusArchived, CampaignStatusActive, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("Expected %s -> %s allowed=%v but got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestContentTransitions(t *testing.T) {
	tests := []struct {
		from, to ContentStatus
		allowed  bool
	}{
		{ContentStatusDraft, ContentStatusPending, true},
		{ContentStatusDraft, ContentStatusApproved, false},
		{ContentStatusPending, ContentStatusApproved, true},
		{ContentStatusPending, ContentStatusRejected, true},
		{ContentStatusApproved, ContentStatusPending, true},
		{ContentStatusRejected, ContentStatusPending, true},
		{ContentStatusRejected, ContentStatusApproved, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("Expected %s -> %s allowed=%v but got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestEventTransitionsAreTerminal(t *testing.T) {
	if !EventStatusUpcoming.CanTransitionTo(EventStatusCompleted) {
		t.Error("Expected upcoming -> completed to be allowed")
	}
	if !EventStatusUpcoming.CanTransitionTo(EventStatusCancelled) {
		t.Error("Expected upcoming -> cancelled to be allowed")
	}
	for _, terminal := range []EventStatus{EventStatusCompleted, EventStatusCancelled} {
		for _, target := range []EventStatus{EventStatusUpcoming, EventStatusCompleted, EventStatusCancelled} {
			if terminal.CanTransitionTo(target) {
				t.Errorf("Expected %s to be terminal but %s is allowed", terminal, target)
			}
		}
	}
}

func TestAttendeeTransitions(t *testing.T) {
	tests := []struct {
		from, to AttendeeStatus
		allowed  bool
	}{
		{AttendeeStatusPending, AttendeeStatusConfirmed, true},
		{AttendeeStatusPending, AttendeeStatusCheckedIn, false},
		{AttendeeStatusConfirmed, AttendeeStatusCheckedIn, true},
		{AttendeeStatusCheckedIn, AttendeeStatusCancelled, false},
		{AttendeeStatusCancelled, AttendeeStatusPending, true},
		{AttendeeStatusCancelled, AttendeeStatusConfirmed, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("Expected %s -> %s allowed=%v but got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestSurveyLifecycleIsOneWay(t *testing.T) {
	if !SurveyStatusDraft.CanTransitionTo(SurveyStatusActive) {
		t.Error("Expected draft -> active to be allowed")
	}
	if !SurveyStatusActive.CanTransitionTo(SurveyStatusClosed) {
		t.Error("Expected active -> closed to be allowed")
	}
	if SurveyStatusClosed.CanTransitionTo(SurveyStatusActive) {
		t.Error("Expected closed surveys to stay closed")
	}
	if SurveyStatusActive.CanTransitionTo(SurveyStatusDraft) {
		t.Error("Expected launched surveys not to revert to draft")
	}
}

func TestIntegrationTransitions(t *testing.T) {
	tests := []struct {
		from, to IntegrationStatus
		allowed  bool
	}{
		{IntegrationStatusActive, IntegrationStatusDisabled, true},
		{IntegrationStatusActive, IntegrationStatusError, true},
		{IntegrationStatusDisabled, IntegrationStatusActive, true},
		{IntegrationStatusDisabled, IntegrationStatusMaintenance, false},
		{IntegrationStatusMaintenance, IntegrationStatusActive, true},
		{IntegrationStatusError, IntegrationStatusActive, true},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("Expected %s -> %s allowed=%v but got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestValidStatusRejectsUnknown(t *testing.T) {
	if CampaignStatus("launched").ValidStatus() {
		t.Error("Expected unknown campaign status to be invalid")
	}
	if EventStatus("postponed").ValidStatus() {
		t.Error("Expected unknown event status to be invalid")
	}
	if AttendeeStatus("waitlisted").ValidStatus() {
		t.Error("Expected unknown attendee status to be invalid")
	}
}

func TestOverBudgetAndOverCapacityFlags(t *testing.T) {
	c := &Campaign{Budget: 100, BudgetUsed: 150}
	if !c.OverBudget() {
		t.Error("Expected spending past the budget to flag")
	}
	c.BudgetUsed = 100
	if c.OverBudget() {
		t.Error("Expected spending at the budget not to flag")
	}
	zero := &Campaign{Budget: 0, BudgetUsed: 10}
	if zero.OverBudget() {
		t.Error("Expected an unbudgeted campaign never to flag")
	}

	e := &Event{Capacity: 50, Registrations: 51}
	if !e.OverCapacity() {
		t.Error("Expected registrations past capacity to flag")
	}
	e.Registrations = 50
	if e.OverCapacity() {
		t.Error("Expected registrations at capacity not to flag")
	}
}
