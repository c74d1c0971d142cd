package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"
)

// SyncService simulates a data exchange with another agency's system.
// There is no real upstream in this build, so each sync sleeps for a
// realistic round-trip and fails a small share of the time.
type SyncService struct {
	mu          sync.Mutex
	rng         *rand.Rand
	successRate float64
	minLatency  time.Duration
	maxLatency  time.Duration
}

// SyncResult describes one finished sync attempt
type SyncResult struct {
	IntegrationID int           `json:"integration_id"`
	System        string        `json:"system"`
	Records       int           `json:"records"`
	Duration      time.Duration `json:"duration"`
	SyncedAt      time.Time     `json:"synced_at"`
}

// NewSyncService creates a sync service with production-like defaults
func NewSyncService() *SyncService {
	return &SyncService{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: 0.90,
		minLatency:  50 * time.Millisecond,
		maxLatency:  200 * time.Millisecond,
	}
}

// NewSyncServiceWithSeed creates a deterministic sync service for tests
func NewSyncServiceWithSeed(seed int64, successRate float64) *SyncService {
	return &SyncService{
		rng:         rand.New(rand.NewSource(seed)),
		successRate: successRate,
		minLatency:  time.Millisecond,
		maxLatency:  2 * time.Millisecond,
	}
}

// Run performs one simulated exchange with the named system. It honors
// context cancellation during the latency sleep.
func (s *SyncService) Run(ctx context.Context, integrationID int, system string) (*SyncResult, error) {
	latency, succeed, records := s.roll()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(latency):
	}

	if !succeed {
		log.Printf("ERROR: sync with %s failed after %v", system, latency)
		return nil, fmt.Errorf("upstream %s did not acknowledge the exchange", system)
	}

	log.Printf("✓ Synced %d records with %s in %v", records, system, latency)
	return &SyncResult{
		IntegrationID: integrationID,
		System:        system,
		Records:       records,
		Duration:      latency,
		SyncedAt:      time.Now().UTC(),
	}, nil
}

// roll draws the randomized parameters for one attempt under the lock,
// keeping the rng safe for concurrent workers
func (s *SyncService) roll() (time.Duration, bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spread := s.maxLatency - s.minLatency
	latency := s.minLatency + time.Duration(s.rng.Int63n(int64(spread)))
	succeed := s.rng.Float64() < s.successRate
	records := 20 + s.rng.Intn(480)
	return latency, succeed, records
}
