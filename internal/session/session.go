// Package session gives every shopper an explicitly owned cart store and
// expires idle sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storefront-core/server/internal/cart"
	"github.com/storefront-core/server/internal/checkout"
	errx "github.com/storefront-core/server/internal/core/error"
	"github.com/storefront-core/server/internal/model"
	logx "github.com/storefront-core/server/pkg/logger"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Session is one shopper's cart plus bookkeeping for expiry.
type Session struct {
	ID        string
	Store     *cart.Store
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
	Journal       model.ActivityJournal
	Checkout      *checkout.Service
	// OnEnd hooks run after a session is ended or expires, e.g. to drop the
	// assistant conversation.
	OnEnd []func(ctx context.Context, sessionID string)

	Now   func() time.Time
	NewID func() string
}

type Manager struct {
	ttl      time.Duration
	interval time.Duration
	journal  model.ActivityJournal
	checkout *checkout.Service
	onEnd    []func(ctx context.Context, sessionID string)
	now      func() time.Time
	newID    func() string

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(cfg Config) *Manager {
	m := &Manager{
		ttl:      cfg.TTL,
		interval: cfg.SweepInterval,
		journal:  cfg.Journal,
		checkout: cfg.Checkout,
		onEnd:    cfg.OnEnd,
		now:      cfg.Now,
		newID:    cfg.NewID,
		sessions: map[string]*Session{},
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.interval <= 0 {
		m.interval = DefaultSweepInterval
	}
	if m.checkout == nil {
		m.checkout = checkout.NewService(checkout.Config{})
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	return m
}

// OnEnd registers another hook to run when a session ends.
func (m *Manager) OnEnd(fn func(ctx context.Context, sessionID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnd = append(m.onEnd, fn)
}

// Create starts a session with an empty cart.
func (m *Manager) Create(ctx context.Context) *Session {
	now := m.now()
	s := &Session{
		ID:        m.newID(),
		Store:     cart.NewStore(),
		CreatedAt: now,
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logx.Debug().Str("session_id", s.ID).Msg("session created")
	return s
}

// Get returns a live session and marks it as seen.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	now := m.now()
	if !ok {
		return nil, errx.NotFound(fmt.Errorf("%w: %s", ErrSessionNotFound, id), "session not found")
	}
	if m.expired(s, now) {
		m.end(ctx, id, "expired")
		return nil, errx.NotFound(fmt.Errorf("%w: %s", ErrSessionNotFound, id), "session not found")
	}
	s.touch(now)
	return s, nil
}

// Cart returns a copy of the session's cart.
func (m *Manager) Cart(ctx context.Context, id string) (model.CartState, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return model.CartState{}, err
	}
	return s.Store.State(), nil
}

// Dispatch applies action to the session's cart and records it in the
// journal. Journal failures are logged and never fail the cart operation.
func (m *Manager) Dispatch(ctx context.Context, id string, action model.Action) (cart.Result, error) {
	if err := action.Validate(); err != nil {
		return cart.Result{}, errx.BadRequest(err, "invalid cart action")
	}
	s, err := m.Get(ctx, id)
	if err != nil {
		return cart.Result{}, err
	}

	res := s.Store.Dispatch(action)
	m.record(ctx, id, action, res)

	ev := logx.Debug()
	if !res.Changed {
		ev = logx.Info()
	}
	ev.Str("session_id", id).
		Str("action", action.String()).
		Bool("changed", res.Changed).
		Uint64("version", res.Version).
		Str("total", res.State.Total.StringFixed(2)).
		Msg("cart action applied")

	return res, nil
}

// Checkout places an order for the session's cart and empties it.
func (m *Manager) Checkout(ctx context.Context, id string) (model.Order, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	order, res, err := m.checkout.PlaceOrder(ctx, s.Store)
	if err != nil {
		if res.Version > 0 {
			m.record(ctx, id, model.ClearCart(), res)
		}
		return model.Order{}, err
	}
	m.record(ctx, id, model.ClearCart(), res)
	return order, nil
}

// Activity returns the journaled actions of a live session.
func (m *Manager) Activity(ctx context.Context, id string) ([]model.ActivityEntry, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return nil, err
	}
	if m.journal == nil {
		return []model.ActivityEntry{}, nil
	}
	return m.journal.Load(ctx, id)
}

// End discards the session, its journal and anything registered via OnEnd.
func (m *Manager) End(ctx context.Context, id string) error {
	if !m.end(ctx, id, "ended") {
		return errx.NotFound(fmt.Errorf("%w: %s", ErrSessionNotFound, id), "session not found")
	}
	return nil
}

// Len is the number of sessions currently held, expired or not.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep ends every expired session and returns how many it ended.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.now()

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if m.expired(s, now) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if m.end(ctx, id, "expired") {
			n++
		}
	}
	return n
}

// Run sweeps expired sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				logx.Info().Int("expired", n).Int("remaining", m.Len()).Msg("swept idle sessions")
			}
		}
	}
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return now.Sub(s.LastSeen()) > m.ttl
}

func (m *Manager) end(ctx context.Context, id, reason string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	hooks := append([]func(context.Context, string){}, m.onEnd...)
	m.mu.Unlock()

	if !ok {
		return false
	}

	if m.journal != nil {
		if err := m.journal.Clear(ctx, id); err != nil {
			logx.Warn().Err(err).Str("session_id", id).Msg("failed to clear cart activity")
		}
	}
	for _, fn := range hooks {
		fn(ctx, id)
	}
	logx.Debug().Str("session_id", id).Str("reason", reason).Msg("session closed")
	return true
}

func (m *Manager) record(ctx context.Context, id string, action model.Action, res cart.Result) {
	if m.journal == nil {
		return
	}
	entry := model.ActivityEntry{
		Version:  res.Version,
		Action:   action,
		Changed:  res.Changed,
		Recorded: m.now(),
	}
	if err := m.journal.Append(ctx, id, entry); err != nil {
		logx.Warn().Err(err).Str("session_id", id).Str("action", action.String()).Msg("failed to record cart activity")
	}
}
