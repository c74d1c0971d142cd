package service

import (
	"context"
	"database/sql"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Health status constants
const (
	StatusHealthy      = "healthy"
	StatusDegraded     = "degraded"
	StatusUnhealthy    = "unhealthy"
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusDemo         = "demo"
	StatusWritable     = "writable"
	StatusUnwritable   = "unwritable"
)

// HealthStatus represents the overall health status of the application
type HealthStatus struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
}

// HealthChecker handles health check operations. In demo mode the
// database and queue are intentionally absent and do not count against
// the overall status.
type HealthChecker struct {
	db       *sql.DB
	queueURL string
	dataDir  string
	version  string
}

// NewHealthService creates a new HealthChecker instance. db may be nil
// and queueURL empty when running without those backends.
func NewHealthService(db *sql.DB, queueURL, dataDir, version string) *HealthChecker {
	return &HealthChecker{
		db:       db,
		queueURL: queueURL,
		dataDir:  dataDir,
		version:  version,
	}
}

// checkDatabase verifies PostgreSQL connectivity with a timeout
func (h *HealthChecker) checkDatabase() string {
	if h.db == nil {
		return StatusDemo
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return StatusDisconnected
	}
	return StatusConnected
}

// checkQueue verifies RabbitMQ connectivity
func (h *HealthChecker) checkQueue() string {
	if h.queueURL == "" {
		return StatusDemo
	}

	conn, err := amqp.Dial(h.queueURL)
	if err != nil {
		return StatusDisconnected
	}
	defer conn.Close()

	return StatusConnected
}

// checkSnapshots verifies the snapshot directory accepts writes
func (h *HealthChecker) checkSnapshots() string {
	if h.dataDir == "" {
		return StatusDemo
	}

	probe, err := os.CreateTemp(h.dataDir, ".health-*")
	if err != nil {
		return StatusUnwritable
	}
	probe.Close()
	os.Remove(probe.Name())
	return StatusWritable
}

// determineOverallStatus calculates the overall health status.
// A backend running in demo mode is healthy by definition.
func (h *HealthChecker) determineOverallStatus(services map[string]string) string {
	if services["database"] == StatusDisconnected || services["snapshots"] == StatusUnwritable {
		return StatusUnhealthy
	}
	if services["queue"] == StatusDisconnected {
		return StatusDegraded
	}
	return StatusHealthy
}

// CheckHealth probes all dependencies and returns the overall status
func (h *HealthChecker) CheckHealth() (*HealthStatus, error) {
	services := map[string]string{
		"database":  h.checkDatabase(),
		"queue":     h.checkQueue(),
		"snapshots": h.checkSnapshots(),
	}

	return &HealthStatus{
		Status:    h.determineOverallStatus(services),
		Services:  services,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}, nil
}
