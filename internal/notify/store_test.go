package notify

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDeliverer struct {
	mu        sync.Mutex
	delivered []Notification
	sounds    int
}

func (d *recordingDeliverer) Deliver(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, n)
}

func (d *recordingDeliverer) PlaySound(Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sounds++
}

func (d *recordingDeliverer) counts() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered), d.sounds
}

func newTestStore(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.NewMock()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	return New(opts)
}

func TestStore_Add_PrependsNewestFirst(t *testing.T) {
	s := newTestStore(Options{})

	a := s.Add(NewLike(1, 10, "like a", ""))
	b := s.Add(NewComment(2, 10, "comment b", ""))
	c := s.Add(NewFollow(3, "follow c", ""))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
	assert.Equal(t, a.ID, list[2].ID)
	assert.Equal(t, "just now", list[0].TimeAgo)
}

func TestStore_Add_AssignsUniqueIDs(t *testing.T) {
	s := newTestStore(Options{})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n := s.Add(NewWorkoutReminder("reminder", "go"))
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}

func TestStore_UnreadCount_MatchesReadFlags(t *testing.T) {
	s := newTestStore(Options{})
	rng := rand.New(rand.NewSource(42))

	// Random op sequence; after every op the derived count must match a
	// recount over the snapshot.
	var ids []string
	for i := 0; i < 200; i++ {
		switch rng.Intn(4) {
		case 0, 1:
			n := s.Add(NewLike(int64(i), int64(i), "like", ""))
			ids = append(ids, n.ID)
		case 2:
			if len(ids) > 0 {
				s.MarkRead(ids[rng.Intn(len(ids))])
			}
		case 3:
			if len(ids) > 0 {
				s.Delete(ids[rng.Intn(len(ids))])
			}
		}

		want := 0
		for _, n := range s.List() {
			if !n.Read {
				want++
			}
		}
		require.Equal(t, want, s.UnreadCount())
	}
}

func TestStore_MarkRead_Idempotent(t *testing.T) {
	s := newTestStore(Options{})
	n := s.Add(NewFollow(7, "follow", ""))
	s.Add(NewFollow(8, "follow", ""))

	s.MarkRead(n.ID)
	assert.Equal(t, 1, s.UnreadCount())

	s.MarkRead(n.ID)
	assert.Equal(t, 1, s.UnreadCount())
	assert.Equal(t, 2, s.Len())
}

func TestStore_MarkAllRead_NoOpWhenAllRead(t *testing.T) {
	s := newTestStore(Options{})
	s.Add(NewLike(1, 1, "a", ""))
	s.Add(NewLike(2, 2, "b", ""))

	s.MarkAllRead()
	before := s.List()

	s.MarkAllRead()
	assert.Equal(t, before, s.List())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStore_AbsentID_NoOp(t *testing.T) {
	s := newTestStore(Options{})
	s.Add(NewLike(1, 1, "a", ""))

	assert.NotPanics(t, func() {
		s.MarkRead("nonexistent")
		s.Delete("nonexistent")
	})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStore_Delete_PreservesOrderOfRest(t *testing.T) {
	s := newTestStore(Options{})
	a := s.Add(NewLike(1, 1, "a", ""))
	b := s.Add(NewLike(2, 2, "b", ""))
	c := s.Add(NewLike(3, 3, "c", ""))

	s.MarkRead(a.ID)
	s.Delete(b.ID)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestStore_DeleteThenAdd(t *testing.T) {
	s := newTestStore(Options{})

	a := s.Add(NewLike(1, 1, "liked your post", ""))
	s.Delete(a.ID)
	b := s.Add(NewComment(2, 1, "commented on your post", ""))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, CategoryComment, list[0].Category)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStore_ClearAll(t *testing.T) {
	s := newTestStore(Options{})
	s.Add(NewLike(1, 1, "a", ""))
	s.Add(NewLike(2, 2, "b", ""))

	s.ClearAll()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStore_ByCategory_FiltersWithoutMutating(t *testing.T) {
	s := newTestStore(Options{})
	s.Add(NewLike(1, 1, "a", ""))
	s.Add(NewComment(2, 1, "b", ""))
	s.Add(NewLike(3, 2, "c", ""))

	likes := s.ByCategory(CategoryLike)
	require.Len(t, likes, 2)
	assert.Equal(t, "c", likes[0].Title)
	assert.Equal(t, "a", likes[1].Title)
	assert.Equal(t, 3, s.Len())

	assert.Empty(t, s.ByCategory(CategoryGroupInvite))
}

func TestStore_Preferences_GateDeliverySideEffects(t *testing.T) {
	d := &recordingDeliverer{}
	s := newTestStore(Options{Deliverer: d})

	s.Add(NewLike(1, 1, "a", ""))
	pushes, sounds := d.counts()
	assert.Equal(t, 1, pushes)
	assert.Equal(t, 1, sounds)

	s.SetPushEnabled(false)
	s.Add(NewLike(2, 2, "b", ""))
	pushes, sounds = d.counts()
	assert.Equal(t, 1, pushes)
	assert.Equal(t, 2, sounds)

	s.SetSoundEnabled(false)
	s.Add(NewLike(3, 3, "c", ""))
	pushes, sounds = d.counts()
	assert.Equal(t, 1, pushes)
	assert.Equal(t, 2, sounds)
}

func TestStore_RefreshTask_RecomputesLabels(t *testing.T) {
	mock := clock.NewMock()
	s := newTestStore(Options{Clock: mock})
	s.Start()
	defer s.Stop()

	n := s.Add(NewLike(1, 1, "a", ""))
	assert.Equal(t, "just now", s.List()[0].TimeAgo)

	mock.Add(61 * time.Second)
	require.Eventually(t, func() bool {
		return s.List()[0].TimeAgo == "1 min ago"
	}, time.Second, 5*time.Millisecond)

	// Creation timestamp never changes, only the label.
	assert.Equal(t, n.CreatedAt, s.List()[0].CreatedAt)
	assert.Equal(t, n.ID, s.List()[0].ID)
}

func TestStore_Generator_RoutesThroughAdd(t *testing.T) {
	mock := clock.NewMock()
	d := &recordingDeliverer{}
	s := newTestStore(Options{
		Clock:            mock,
		Deliverer:        d,
		GenerateInterval: 30 * time.Second,
		GenerateChance:   1.0,
	})
	s.Start()
	defer s.Stop()

	mock.Add(30 * time.Second)
	require.Eventually(t, func() bool { return s.Len() == 1 }, time.Second, 5*time.Millisecond)

	list := s.List()
	assert.True(t, list[0].Category.Valid())
	assert.False(t, list[0].Read)
	pushes, _ := d.counts()
	assert.Equal(t, 1, pushes)
}

func TestStore_Stop_CancelsBothTasks(t *testing.T) {
	mock := clock.NewMock()
	s := newTestStore(Options{
		Clock:          mock,
		GenerateChance: 1.0,
	})
	s.Start()

	s.Add(NewLike(1, 1, "a", ""))
	s.Stop()
	before := s.List()

	// Advancing time after disposal must trigger neither a refresh nor a
	// synthetic notification.
	mock.Add(24 * time.Hour)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, before, s.List())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "just now", s.List()[0].TimeAgo)
}

func TestStore_Stop_Idempotent(t *testing.T) {
	s := newTestStore(Options{})
	s.Start()
	s.Stop()
	assert.NotPanics(t, func() { s.Stop() })
}

func TestStore_Subscribe_ReceivesInsertEvents(t *testing.T) {
	s := newTestStore(Options{})
	ch, cancel := s.Subscribe(4)
	defer cancel()

	n := s.Add(NewGroupInvite(1, 5, "invite", "join us"))

	select {
	case ev := <-ch:
		assert.Equal(t, n.ID, ev.Notification.ID)
		assert.Equal(t, 1, ev.Unread)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	cancel()
	s.Add(NewLike(2, 2, "b", ""))
	select {
	case ev, ok := <-ch:
		if ok {
			t.Fatalf("unexpected event after cancel: %+v", ev)
		}
	default:
	}
}
