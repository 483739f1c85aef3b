package notify

import (
	"math/rand"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
)

const (
	DefaultRefreshInterval  = time.Minute
	DefaultGenerateInterval = 30 * time.Second
	DefaultGenerateChance   = 0.10
)

// Event is pushed to subscribers whenever a notification is inserted.
type Event struct {
	Notification Notification `json:"notification"`
	Unread       int          `json:"unread"`
}

// Options configures a Store. Zero values fall back to defaults; the clock
// and RNG are injectable so tests can drive the timers deterministically.
type Options struct {
	Clock            clock.Clock
	Deliverer        Deliverer
	Rand             *rand.Rand
	RefreshInterval  time.Duration
	GenerateInterval time.Duration
	GenerateChance   float64
}

// Store holds a user's notification feed in memory for the lifetime of the
// process, newest first. It owns two repeating background tasks: a
// relative-time refresher and a synthetic generator standing in for a real
// push subscription. Both are started by Start and cancelled together by
// Stop.
type Store struct {
	clk       clock.Clock
	deliverer Deliverer
	rng       *rand.Rand

	refreshEvery  time.Duration
	generateEvery time.Duration
	chance        float64

	mu           sync.Mutex
	items        []Notification
	pushEnabled  bool
	soundEnabled bool
	subs         map[int]chan Event
	nextSub      int

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Deliverer == nil {
		opts.Deliverer = nopDeliverer{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.GenerateInterval <= 0 {
		opts.GenerateInterval = DefaultGenerateInterval
	}
	if opts.GenerateChance <= 0 {
		opts.GenerateChance = DefaultGenerateChance
	}

	return &Store{
		clk:           opts.Clock,
		deliverer:     opts.Deliverer,
		rng:           opts.Rand,
		refreshEvery:  opts.RefreshInterval,
		generateEvery: opts.GenerateInterval,
		chance:        opts.GenerateChance,
		pushEnabled:   true,
		soundEnabled:  true,
		subs:          make(map[int]chan Event),
		done:          make(chan struct{}),
	}
}

// Start launches the refresh and generator tasks. Calling it more than once
// is a no-op.
func (s *Store) Start() {
	s.startOnce.Do(func() {
		refresh := s.clk.Ticker(s.refreshEvery)
		generate := s.clk.Ticker(s.generateEvery)
		s.wg.Add(2)
		go s.runRefresh(refresh)
		go s.runGenerate(generate)
	})
}

// Stop cancels both tasks and waits for them to exit. Idempotent; the store
// remains readable afterwards but no timer fires again.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *Store) runRefresh(t *clock.Ticker) {
	defer s.wg.Done()
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.refreshLabels()
		case <-s.done:
			return
		}
	}
}

func (s *Store) runGenerate(t *clock.Ticker) {
	defer s.wg.Done()
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if s.rng.Float64() < s.chance {
				s.Add(syntheticDrafts[s.rng.Intn(len(syntheticDrafts))])
			}
		case <-s.done:
			return
		}
	}
}

// Add assigns a fresh ID and the current timestamp, prepends the record and
// fires the delivery side effects gated by the preferences. Always succeeds.
func (s *Store) Add(d Draft) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Category:  d.Category,
		Title:     d.Title,
		Body:      d.Body,
		Ref:       d.Ref,
		CreatedAt: s.clk.Now(),
		TimeAgo:   "just now",
	}

	s.mu.Lock()
	s.items = append([]Notification{n}, s.items...)
	ev := Event{Notification: n, Unread: s.unreadLocked()}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default: // slow subscriber, drop
		}
	}
	push, sound := s.pushEnabled, s.soundEnabled
	s.mu.Unlock()

	if push {
		s.deliverer.Deliver(n)
	}
	if sound {
		s.deliverer.PlaySound(n)
	}
	return n
}

// MarkRead flags the matching record as read. Absent IDs are a no-op.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			return
		}
	}
}

func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].Read = true
	}
}

// Delete removes the matching record, preserving the order of the rest.
// Absent IDs are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// List returns a snapshot of the feed, newest first.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// ByCategory returns a snapshot of the records matching the category,
// preserving feed order.
func (s *Store) ByCategory(c Category) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, 0)
	for _, n := range s.items {
		if n.Category == c {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount is recomputed on every call, never cached.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadLocked()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) unreadLocked() int {
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) SetPushEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushEnabled = v
}

func (s *Store) SetSoundEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.soundEnabled = v
}

func (s *Store) PushEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushEnabled
}

func (s *Store) SoundEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.soundEnabled
}

// Subscribe registers a live-feed listener. The returned cancel func must be
// called when the listener goes away; it closes the channel. Sends never
// block, a full channel drops the event.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 8
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Store) refreshLabels() {
	now := s.clk.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].TimeAgo = TimeAgo(s.items[i].CreatedAt, now)
	}
}

// syntheticDrafts is the canned pool the generator draws from while no real
// push transport is wired in.
var syntheticDrafts = []Draft{
	NewLike(0, 0, "New like", "Someone liked your workout post"),
	NewComment(0, 0, "New comment", "Someone commented on your progress photo"),
	NewFollow(0, "New follower", "You have a new follower"),
	NewWorkoutReminder("Workout reminder", "Time for your scheduled workout"),
	NewAchievement("Achievement unlocked", "You hit a new personal record", nil),
}
