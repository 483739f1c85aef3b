package notification

import (
	"log"
	"sync"
	"time"

	"fitlink/internal/notify"

	"github.com/facebookgo/clock"
)

// logDeliverer stands in for a real push/sound transport: delivery side
// effects are observable only as logged events.
type logDeliverer struct {
	userID int64
}

func (d logDeliverer) Deliver(n notify.Notification) {
	log.Printf("push_simulated user_id=%d category=%s title=%q", d.userID, n.Category, n.Title)
}

func (d logDeliverer) PlaySound(n notify.Notification) {
	log.Printf("sound_simulated user_id=%d category=%s", d.userID, n.Category)
}

// Config carries the timer settings shared by every per-user store.
type Config struct {
	RefreshInterval  time.Duration
	GenerateInterval time.Duration
	GenerateChance   float64
	Clock            clock.Clock
}

// Manager owns one notify.Store per authenticated user, created lazily on
// first access and all torn down together on shutdown.
type Manager struct {
	cfg Config

	mu     sync.Mutex
	stores map[int64]*notify.Store
	closed bool
}

func NewManager(cfg Config) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Manager{
		cfg:    cfg,
		stores: make(map[int64]*notify.Store),
	}
}

// StoreFor returns the user's store, creating and starting it on first use.
// Returns nil after Close.
func (m *Manager) StoreFor(userID int64) *notify.Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	if s, ok := m.stores[userID]; ok {
		return s
	}

	s := notify.New(notify.Options{
		Clock:            m.cfg.Clock,
		Deliverer:        logDeliverer{userID: userID},
		RefreshInterval:  m.cfg.RefreshInterval,
		GenerateInterval: m.cfg.GenerateInterval,
		GenerateChance:   m.cfg.GenerateChance,
	})
	s.Start()
	m.stores[userID] = s
	return s
}

// Publish routes an application event into the target user's feed. Events
// for users who never opened their feed are dropped, matching the
// process-lifetime, memory-only contract.
func (m *Manager) Publish(userID int64, d notify.Draft) {
	m.mu.Lock()
	s, ok := m.stores[userID]
	m.mu.Unlock()
	if ok {
		s.Add(d)
	}
}

// Close stops every store's timers and forgets the feeds.
func (m *Manager) Close() {
	m.mu.Lock()
	stores := m.stores
	m.stores = nil
	m.closed = true
	m.mu.Unlock()

	for _, s := range stores {
		s.Stop()
	}
}
