// Package session keeps one converter view per client so remote front ends
// can drive the same debounced state machine the terminal uses.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/config"
	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	view     *converter.View
	lastUsed time.Time
}

// Service owns the live views. Deleting or sweeping a session closes its view.
type Service struct {
	converter     provider.RateConverter
	viewOpts      converter.Options
	idleTimeout   time.Duration
	sweepInterval time.Duration
	logger        *slog.Logger
	now           func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

// New creates a session service. Every view it creates shares conv and opts.
func New(
	conv provider.RateConverter,
	cfg *config.Session,
	opts converter.Options,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &config.Session{IdleTimeout: 30 * time.Minute, SweepInterval: time.Minute}
	}
	opts.Logger = logger.With("component", "view")
	return &Service{
		converter:     conv,
		viewOpts:      opts,
		idleTimeout:   cfg.IdleTimeout,
		sweepInterval: cfg.SweepInterval,
		logger:        logger.With("service", "Session"),
		now:           time.Now,
		sessions:      make(map[uuid.UUID]*entry),
	}
}

// Create mounts a new view in the default state.
func (s *Service) Create(ctx context.Context) (uuid.UUID, *converter.View) {
	id := uuid.New()
	view := converter.New(s.converter, s.viewOpts)

	s.mu.Lock()
	s.sessions[id] = &entry{view: view, lastUsed: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Session created", "session", id, "active", n)
	return id, view
}

// Get returns the view for id and marks the session as used.
func (s *Service) Get(id uuid.UUID) (*converter.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastUsed = s.now()
	return e.view, nil
}

// Delete unmounts the view for id. A pending lookup is cancelled.
func (s *Service) Delete(id uuid.UUID) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.view.Close()
	s.logger.Debug("Session deleted", "session", id)
	return nil
}

func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes sessions idle for longer than the idle timeout at now and
// returns how many were removed.
func (s *Service) Sweep(now time.Time) int {
	var expired []*converter.View
	s.mu.Lock()
	for id, e := range s.sessions {
		if now.Sub(e.lastUsed) > s.idleTimeout {
			expired = append(expired, e.view)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, v := range expired {
		v.Close()
	}
	if len(expired) > 0 {
		s.logger.Info("Expired idle sessions", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done, then closes every session.
func (s *Service) Run(ctx context.Context) {
	if s.sweepInterval <= 0 {
		<-ctx.Done()
		s.Close()
		return
	}
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}

// Close unmounts every session.
func (s *Service) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*entry)
	s.mu.Unlock()

	for _, e := range sessions {
		e.view.Close()
	}
}
