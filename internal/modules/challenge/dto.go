package challenge

import "time"

type CreateChallengeRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Metric      string    `json:"metric" binding:"required"`
	Target      float64   `json:"target" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	GroupID     *int64    `json:"group_id"`
}
