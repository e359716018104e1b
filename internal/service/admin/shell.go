// Package admin holds the admin console state machine: session gate,
// dashboard counters and tab selection.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"eventadmin/internal/api"
	"eventadmin/internal/auth"
	"eventadmin/internal/service"
)

type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabBookings  Tab = "bookings"
	TabMessages  Tab = "messages"
	TabGallery   Tab = "gallery"
)

var Tabs = []Tab{TabDashboard, TabBookings, TabMessages, TabGallery}

func ParseTab(raw string) (Tab, bool) {
	for _, t := range Tabs {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

var ErrNotAuthenticated = errors.New("not authenticated")

// View is a snapshot for rendering. UnreadBadge is the count shown next to
// the messages tab.
type View struct {
	State       State
	Tab         Tab
	Stats       api.Stats
	UnreadBadge int
}

// Shell owns the admin console state. Stats are refreshed once when a
// session is first entered and never again unless the caller asks.
type Shell struct {
	sessions *service.SessionService
	stats    *service.StatsService

	mu        sync.Mutex
	state     State
	tab       Tab
	refreshed bool
}

func New(sessions *service.SessionService, stats *service.StatsService) *Shell {
	return &Shell{
		sessions: sessions,
		stats:    stats,
		state:    StateUnauthenticated,
		tab:      TabDashboard,
	}
}

// Start restores a stored session, verifying it with the service.
func (s *Shell) Start(ctx context.Context) View {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	ok := s.sessions.CheckSession(ctx)

	s.mu.Lock()
	if !ok {
		s.state = StateUnauthenticated
		s.tab = TabDashboard
		s.mu.Unlock()
		return s.View()
	}
	refresh := s.enterLocked()
	s.mu.Unlock()

	if refresh {
		s.refreshStats(ctx)
	}
	return s.View()
}

// Login authenticates and lands on the dashboard.
func (s *Shell) Login(ctx context.Context, creds auth.Credentials) error {
	if err := s.sessions.Login(ctx, creds); err != nil {
		return err
	}
	s.mu.Lock()
	s.tab = TabDashboard
	refresh := s.enterLocked()
	s.mu.Unlock()

	if refresh {
		s.refreshStats(ctx)
	}
	return nil
}

// enterLocked moves to authenticated and reports whether this is the first
// entry of the session.
func (s *Shell) enterLocked() bool {
	s.state = StateAuthenticated
	if s.refreshed {
		return false
	}
	s.refreshed = true
	return true
}

func (s *Shell) refreshStats(ctx context.Context) {
	if _, err := s.stats.RefreshStats(ctx); err != nil {
		slog.DebugContext(ctx, "keeping previous stats", "error", err)
	}
}

// RefreshStats recomputes the dashboard counters on demand.
func (s *Shell) RefreshStats(ctx context.Context) (api.Stats, error) {
	if s.View().State != StateAuthenticated {
		return api.Stats{}, ErrNotAuthenticated
	}
	return s.stats.RefreshStats(ctx)
}

// SelectTab switches the visible tab. Any tab may follow any other.
func (s *Shell) SelectTab(tab Tab) error {
	if _, ok := ParseTab(string(tab)); !ok {
		return fmt.Errorf("unknown tab %q", tab)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return ErrNotAuthenticated
	}
	s.tab = tab
	return nil
}

// Logout drops the session locally and resets the shell.
func (s *Shell) Logout(ctx context.Context) error {
	err := s.sessions.Logout(ctx)

	s.mu.Lock()
	s.state = StateUnauthenticated
	s.tab = TabDashboard
	s.refreshed = false
	s.mu.Unlock()
	s.stats.Reset()
	return err
}

func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{State: s.state, Tab: s.tab}
	if s.state == StateAuthenticated {
		v.Stats = s.stats.Stats()
		v.UnreadBadge = v.Stats.UnreadMessages
	}
	return v
}
