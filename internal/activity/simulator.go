package activity

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// simulatedActivities is the pool the simulator draws from
var simulatedActivities = []struct {
	module  string
	kind    string
	message string
}{
	{"campaigns", "info", "Campaign engagement report refreshed"},
	{"events", "info", "New event registration received"},
	{"segments", "info", "Segment size estimate recalculated"},
	{"surveys", "info", "New survey response submitted"},
	{"integrations", "info", "Scheduled integration poll completed"},
	{"content", "info", "Content item viewed by a resident"},
}

// Simulator periodically records plausible activity so the live strip has
// movement without a backend. It runs until its context is cancelled, so
// shutdown stops the timer instead of leaking it.
type Simulator struct {
	feed     *Feed
	interval time.Duration
	rand     *rand.Rand
}

// NewSimulator creates a simulator posting to the feed at the given interval
func NewSimulator(feed *Feed, interval time.Duration) *Simulator {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Simulator{
		feed:     feed,
		interval: interval,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run blocks, recording a random activity each tick until ctx is cancelled
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Activity simulator stopped")
			return
		case <-ticker.C:
			pick := simulatedActivities[s.rand.Intn(len(simulatedActivities))]
			s.feed.Record(pick.module, pick.kind, pick.message)
		}
	}
}
