package models

import (
	"fmt"
	"time"
)

// IntegrationType represents valid cross-agency integration types
type IntegrationType string

const (
	IntegrationTypeHealth    IntegrationType = "Health"
	IntegrationTypePolice    IntegrationType = "Police"
	IntegrationTypeEmergency IntegrationType = "Emergency"
	IntegrationTypeData      IntegrationType = "Data"
)

// IntegrationStatus represents valid integration statuses
type IntegrationStatus string

const (
	IntegrationStatusActive      IntegrationStatus = "active"
	IntegrationStatusDisabled    IntegrationStatus = "disabled"
	IntegrationStatusMaintenance IntegrationStatus = "maintenance"
	IntegrationStatusError       IntegrationStatus = "error"
)

// integrationTransitions allows error from any live state since the
// upstream system reports failures on its own schedule.
var integrationTransitions = map[IntegrationStatus][]IntegrationStatus{
	IntegrationStatusActive:      {IntegrationStatusDisabled, IntegrationStatusMaintenance, IntegrationStatusError},
	IntegrationStatusDisabled:    {IntegrationStatusActive},
	IntegrationStatusMaintenance: {IntegrationStatusActive, IntegrationStatusError},
	IntegrationStatusError:       {IntegrationStatusActive, IntegrationStatusMaintenance, IntegrationStatusDisabled},
}

// Integration represents a connection to another agency's system
type Integration struct {
	ID         int               `json:"id" db:"id"`
	Name       string            `json:"name" db:"name"`
	Type       IntegrationType   `json:"type" db:"type"`
	System     string            `json:"system" db:"system"`
	DataPoints []string          `json:"data_points,omitempty"`
	Status     IntegrationStatus `json:"status" db:"status"`
	LastSync   *time.Time        `json:"last_sync,omitempty" db:"last_sync"`
	LastError  string            `json:"last_error,omitempty" db:"last_error"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`
}

// RecordID returns the integration's unique ID
func (i *Integration) RecordID() int { return i.ID }

// SetRecordID assigns the integration's unique ID
func (i *Integration) SetRecordID(id int) { i.ID = id }

// DisplayFields returns the fields searched by the list view
func (i *Integration) DisplayFields() []string {
	fields := []string{i.Name, string(i.Type), i.System, string(i.Status)}
	return append(fields, i.DataPoints...)
}

// ValidType checks if the type is one of the allowed values
func (t IntegrationType) ValidType() bool {
	switch t {
	case IntegrationTypeHealth, IntegrationTypePolice, IntegrationTypeEmergency, IntegrationTypeData:
		return true
	}
	return false
}

// ValidStatus checks if the status is one of the allowed values
func (s IntegrationStatus) ValidStatus() bool {
	_, ok := integrationTransitions[s]
	return ok
}

// CanTransitionTo checks whether the status may move to the target status
func (s IntegrationStatus) CanTransitionTo(target IntegrationStatus) bool {
	for _, allowed := range integrationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Validate checks if the integration fields are valid
func (i *Integration) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("integration name is required")
	}
	if !i.Type.ValidType() {
		return fmt.Errorf("invalid type: must be 'Health', 'Police', 'Emergency' or 'Data'")
	}
	if i.System == "" {
		return fmt.Errorf("system name is required")
	}
	if !i.Status.ValidStatus() {
		return fmt.Errorf("invalid status: %q", i.Status)
	}
	return nil
}

// CanSync checks if the integration can run a data sync
func (i *Integration) CanSync() bool {
	return i.Status == IntegrationStatusActive || i.Status == IntegrationStatusError
}

// IsProtected reports whether deleting the integration needs extra confirmation
func (i *Integration) IsProtected() bool {
	return i.Status == IntegrationStatusActive
}
