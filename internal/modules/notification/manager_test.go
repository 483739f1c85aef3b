package notification

import (
	"testing"
	"time"

	"fitlink/internal/notify"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StoreFor_ReusesPerUserStore(t *testing.T) {
	m := NewManager(Config{Clock: clock.NewMock()})
	defer m.Close()

	a := m.StoreFor(1)
	b := m.StoreFor(1)
	other := m.StoreFor(2)

	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestManager_Publish_RoutesToOpenFeedOnly(t *testing.T) {
	m := NewManager(Config{Clock: clock.NewMock()})
	defer m.Close()

	s := m.StoreFor(1)
	m.Publish(1, notify.NewLike(5, 9, "liked your post", ""))
	// user 2 never opened a feed; this event is dropped
	m.Publish(2, notify.NewLike(5, 9, "liked your post", ""))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, m.StoreFor(2).Len())
}

func TestManager_Close_StopsAllTimers(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(Config{
		Clock:            mock,
		GenerateInterval: 30 * time.Second,
		GenerateChance:   1.0,
	})

	s := m.StoreFor(1)
	m.Close()

	mock.Add(5 * time.Minute)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0, s.Len(), "no synthetic notifications after shutdown")
	assert.Nil(t, m.StoreFor(1), "manager refuses new stores after close")
}
