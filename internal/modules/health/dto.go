package health

import "time"

type AddLogRequest struct {
	Metric   string     `json:"metric" binding:"required"`
	Value    float64    `json:"value" binding:"required"`
	Unit     string     `json:"unit"`
	LoggedAt *time.Time `json:"logged_at"`
	Note     string     `json:"note"`
}

type CreateGoalRequest struct {
	Metric string  `json:"metric" binding:"required"`
	Target float64 `json:"target" binding:"required"`
	Unit   string  `json:"unit"`
}

type UpdateGoalRequest struct {
	Target  *float64 `json:"target"`
	Current *float64 `json:"current"`
	Active  *bool    `json:"active"`
}
