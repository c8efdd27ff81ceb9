package telehealth

import (
	"context"
	"log"
	"time"
)

// DefaultSweepInterval is how often the sweeper scans for stale sessions.
const DefaultSweepInterval = time.Minute

// StartSweeper runs a periodic sweep that deletes sessions older than the
// session TTL, bounding memory growth from abandoned consultations.
// Challenge expiry itself stays lazy at verification time. The sweeper stops
// when ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.sweepStale(m.now()); n > 0 {
					log.Printf("swept %d stale telehealth sessions", n)
				}
			}
		}
	}()
}

// sweepStale removes sessions created before now minus the session TTL and
// returns how many were removed.
func (m *Manager) sweepStale(now time.Time) int {
	cutoff := now.Add(-m.sessionTTL)

	var removed int
	for _, session := range m.store.List() {
		if session.CreatedAt.Before(cutoff) {
			unlock := m.locks.Lock(session.SessionID)
			if m.store.Delete(session.SessionID) {
				removed++
			}
			unlock()
		}
	}
	return removed
}
