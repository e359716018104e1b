package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventadmin/internal/api"
	"eventadmin/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshStats_CountsCollections(t *testing.T) {
	f := loggedIn(t)
	f.srv.SeedBooking(api.Booking{Name: "a", Status: api.BookingPending})
	f.srv.SeedBooking(api.Booking{Name: "b", Status: api.BookingPending})
	f.srv.SeedBooking(api.Booking{Name: "c", Status: api.BookingConfirmed})
	f.srv.SeedMessage(api.Message{Name: "x"})
	f.srv.SeedMessage(api.Message{Name: "y", IsRead: true})
	f.srv.SeedImage(api.GalleryImage{Title: "one"})

	svc := service.NewStatsService(f.client)
	stats, err := svc.RefreshStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, api.Stats{Bookings: 3, PendingBookings: 2, UnreadMessages: 1, Gallery: 1}, stats)
	assert.Equal(t, stats, svc.Stats())
	assert.False(t, svc.RefreshedAt().IsZero())

	for _, route := range []string{"GET /api/bookings", "GET /api/messages", "GET /api/gallery"} {
		assert.Equal(t, 1, f.srv.Hits(route), route)
	}
}

func TestRefreshStats_FailureKeepsPreviousCounters(t *testing.T) {
	f := loggedIn(t)
	ctx := context.Background()
	f.srv.SeedBooking(api.Booking{Name: "a"})
	f.srv.SeedImage(api.GalleryImage{Title: "one"})

	svc := service.NewStatsService(f.client)
	before, err := svc.RefreshStats(ctx)
	require.NoError(t, err)

	f.srv.SeedBooking(api.Booking{Name: "b"})
	f.srv.SeedImage(api.GalleryImage{Title: "two"})
	f.srv.Fail("GET /api/messages", http.StatusInternalServerError, "boom")

	got, err := svc.RefreshStats(ctx)
	require.Error(t, err)
	assert.Equal(t, before, got)
	assert.Equal(t, before, svc.Stats(), "no partial update")

	f.srv.Recover("GET /api/messages")
	after, err := svc.RefreshStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Bookings)
	assert.Equal(t, 2, after.Gallery)
}

func TestRefreshStats_UnauthenticatedFails(t *testing.T) {
	f := newFixture(t)
	svc := service.NewStatsService(f.client)

	_, err := svc.RefreshStats(context.Background())
	require.Error(t, err)
	assert.Equal(t, api.Stats{}, svc.Stats())
}

func TestStatsReset(t *testing.T) {
	f := loggedIn(t)
	f.srv.SeedBooking(api.Booking{Name: "a"})
	svc := service.NewStatsService(f.client)
	_, err := svc.RefreshStats(context.Background())
	require.NoError(t, err)

	svc.Reset()
	assert.Equal(t, api.Stats{}, svc.Stats())
	assert.True(t, svc.RefreshedAt().IsZero())
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestRefreshStats_AcceptsMixedDateShapes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bookings", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"1","eventDate":"2026-06-01","guestCount":"40","status":"pending"},
			{"_id":"2","eventDate":"2026-06-02T00:00:00.000Z","guestCount":120,"status":"confirmed"},
			{"_id":"3","eventDate":"","guestCount":null,"status":"pending"}
		]`))
	})
	mux.HandleFunc("GET /api/messages", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"m1","isRead":false,"createdAt":"2026-05-01T10:00:00Z"}]`))
	})
	mux.HandleFunc("GET /api/gallery", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	svc := service.NewStatsService(api.NewClient(ts.URL, staticToken("tok"), api.Options{}))
	stats, err := svc.RefreshStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api.Stats{Bookings: 3, PendingBookings: 2, UnreadMessages: 1}, stats)
}

func TestRefreshStats_OlderRunDoesNotOverwriteNewer(t *testing.T) {
	f := loggedIn(t)
	ctx := context.Background()
	first := f.srv.SeedImage(api.GalleryImage{Title: "one"})
	f.srv.SeedImage(api.GalleryImage{Title: "two"})

	svc := service.NewStatsService(f.client)
	hold := f.srv.HoldNext("GET /api/gallery")
	defer hold.Release()

	type result struct {
		stats api.Stats
		err   error
	}
	older := make(chan result, 1)
	go func() {
		st, err := svc.RefreshStats(ctx)
		older <- result{st, err}
	}()
	select {
	case <-hold.Parked():
	case <-time.After(5 * time.Second):
		t.Fatal("gallery request never reached the service")
	}

	require.NoError(t, f.client.Gallery.Delete(ctx, first.ID))
	newer, err := svc.RefreshStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, newer.Gallery)

	hold.Release()
	res := <-older
	require.NoError(t, res.err)
	assert.Equal(t, 2, res.stats.Gallery, "older run reports what it saw")
	assert.Equal(t, 1, svc.Stats().Gallery, "newer counters kept")
}

func TestStatsReset_DiscardsInFlightRefresh(t *testing.T) {
	f := loggedIn(t)
	f.srv.SeedBooking(api.Booking{Name: "a"})
	svc := service.NewStatsService(f.client)

	hold := f.srv.HoldNext("GET /api/bookings")
	defer hold.Release()
	done := make(chan error, 1)
	go func() {
		_, err := svc.RefreshStats(context.Background())
		done <- err
	}()
	<-hold.Parked()
	svc.Reset()
	hold.Release()
	require.NoError(t, <-done)

	assert.Equal(t, api.Stats{}, svc.Stats())
	assert.True(t, svc.RefreshedAt().IsZero())
}
