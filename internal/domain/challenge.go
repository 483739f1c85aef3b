package domain

import "time"

type ChallengeStatus string

const (
	ChallengeUpcoming ChallengeStatus = "upcoming"
	ChallengeActive   ChallengeStatus = "active"
	ChallengeFinished ChallengeStatus = "finished"
)

// Challenge is a time-boxed target on a single metric, e.g. "70k steps
// this week". Participant progress is derived from health logs over the
// challenge window, never stored.
type Challenge struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Metric      MetricType      `json:"metric"`
	Target      float64         `json:"target"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	CreatorID   int64           `json:"creator_id"`
	GroupID     *int64          `json:"group_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	ParticipantCount int `json:"participant_count"`
}

func (c *Challenge) Status(now time.Time) ChallengeStatus {
	switch {
	case now.Before(c.StartDate):
		return ChallengeUpcoming
	case now.After(c.EndDate):
		return ChallengeFinished
	default:
		return ChallengeActive
	}
}

type ChallengeParticipant struct {
	ID          int64     `json:"id"`
	ChallengeID int64     `json:"challenge_id"`
	UserID      int64     `json:"user_id"`
	JoinedAt    time.Time `json:"joined_at"`
}
