// Package loader populates each module store at startup. Sources are tried
// in order: the upstream database when configured, then the local snapshot,
// then the fixed seed dataset. Load never fails: every error is absorbed and
// logged so the dashboard always has data to show.
//
// Demo mode means no backend is configured, so a missing database is
// expected and logged quietly. Outside demo mode a failing database is a
// real fault and is surfaced to the operator as a warning notification.
package loader

import (
	"context"
	"log"

	"civicboard/internal/notify"
	"civicboard/internal/snapshot"
	"civicboard/internal/store"
)

// Source describes where a module's records come from
type Source[T store.Record] struct {
	// Module names the owning module in log lines
	Module string
	// FromDB fetches from the upstream database; nil when not configured
	FromDB func(ctx context.Context) ([]T, error)
	// File is the local snapshot mirror; nil disables snapshot reads
	File *snapshot.File[[]T]
	// Seed returns the fixed fallback dataset
	Seed func() []T
	// Notifier receives the warning for unexpected database failures
	Notifier *notify.Notifier
	// Demo marks the no-backend configuration where database absence is expected
	Demo bool
}

// Load returns the module's records from the first usable source
func (s *Source[T]) Load(ctx context.Context) []T {
	if s.FromDB != nil {
		records, err := s.FromDB(ctx)
		if err == nil && len(records) > 0 {
			log.Printf("Loaded %d %s records from database", len(records), s.Module)
			return records
		}
		if err != nil {
			if s.Demo {
				log.Printf("Database unavailable for %s, using local data: %v", s.Module, err)
			} else {
				log.Printf("WARNING: Failed to load %s from database: %v", s.Module, err)
				if s.Notifier != nil {
					s.Notifier.Warning("Could not reach the " + s.Module + " backend; showing local data")
				}
			}
		}
	}

	if s.File != nil {
		records, err := s.File.Load()
		if err == nil {
			log.Printf("Loaded %d %s records from snapshot", len(records), s.Module)
			return records
		}
		log.Printf("Snapshot unavailable for %s, falling back to seed data: %v", s.Module, err)
	}

	records := s.Seed()
	log.Printf("Loaded %d %s records from seed data", len(records), s.Module)
	return records
}
