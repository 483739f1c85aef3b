package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo_Bands(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"zero", 0, "just now"},
		{"59s", 59 * time.Second, "just now"},
		{"60s", 60 * time.Second, "1 min ago"},
		{"5m", 5 * time.Minute, "5 min ago"},
		{"3599s", 3599 * time.Second, "59 min ago"},
		{"3600s", 3600 * time.Second, "1 hour ago"},
		{"2h", 2 * time.Hour, "2 hours ago"},
		{"23h59m", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"24h", 24 * time.Hour, "1 day ago"},
		{"48h", 48 * time.Hour, "2 days ago"},
		{"10d", 240 * time.Hour, "10 days ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeAgo(now.Add(-tc.age), now))
		})
	}
}

func TestTimeAgo_FutureTimestampClampsToJustNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", TimeAgo(now.Add(time.Minute), now))
}
