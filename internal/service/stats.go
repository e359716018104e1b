package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventadmin/internal/api"

	"golang.org/x/sync/errgroup"
)

// StatsService keeps the dashboard counters. Counters only change when
// RefreshStats completes all three fetches, and only the most recently
// started refresh may store its result.
type StatsService struct {
	client *api.Client
	now    func() time.Time

	mu        sync.RWMutex
	seq       uint64
	stats     api.Stats
	refreshed time.Time
}

func NewStatsService(client *api.Client) *StatsService {
	return &StatsService{client: client, now: time.Now}
}

// RefreshStats fetches bookings, messages and gallery concurrently. The
// first failure cancels the remaining fetches and the previous counters are
// kept; the error is returned for information only.
func (s *StatsService) RefreshStats(ctx context.Context) (api.Stats, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	var (
		bookings []api.Booking
		messages []api.Message
		gallery  []api.GalleryImage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.client.Bookings.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.client.Messages.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		gallery, err = s.client.Gallery.List(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "stats refresh failed", "error", err)
		return s.Stats(), requestFailed(err, "Failed to load stats")
	}

	stats := api.ComputeStats(bookings, messages, gallery)
	s.mu.Lock()
	latest := seq == s.seq
	if latest {
		s.stats = stats
		s.refreshed = s.now()
	}
	s.mu.Unlock()
	if !latest {
		slog.DebugContext(ctx, "stale stats refresh discarded")
		return stats, nil
	}

	slog.DebugContext(ctx, "stats refreshed",
		"bookings", stats.Bookings,
		"pending_bookings", stats.PendingBookings,
		"unread_messages", stats.UnreadMessages,
		"gallery", stats.Gallery,
	)
	return stats, nil
}

// Stats returns the last successfully computed counters.
func (s *StatsService) Stats() api.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// RefreshedAt is the time of the last successful refresh, zero if none.
func (s *StatsService) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}

// Reset clears the counters, used when the session ends.
func (s *StatsService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.stats = api.Stats{}
	s.refreshed = time.Time{}
}
