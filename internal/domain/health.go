package domain

import "time"

type MetricType string

const (
	MetricSteps    MetricType = "steps"
	MetricWater    MetricType = "water"
	MetricExercise MetricType = "exercise"
	MetricWeight   MetricType = "weight"
	MetricSleep    MetricType = "sleep"
)

// TrackedMetrics is the fixed set a period summary iterates over.
var TrackedMetrics = []MetricType{
	MetricSteps,
	MetricWater,
	MetricExercise,
	MetricWeight,
	MetricSleep,
}

func (m MetricType) Valid() bool {
	switch m {
	case MetricSteps, MetricWater, MetricExercise, MetricWeight, MetricSleep:
		return true
	}
	return false
}

// DefaultUnit returns the unit new entries are recorded in when the
// client does not send one.
func (m MetricType) DefaultUnit() string {
	switch m {
	case MetricSteps:
		return "steps"
	case MetricWater:
		return "glasses"
	case MetricExercise:
		return "minutes"
	case MetricWeight:
		return "kg"
	case MetricSleep:
		return "hours"
	}
	return ""
}

// HealthLog is one measurement recorded by a user.
type HealthLog struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Metric    MetricType `json:"metric"`
	Value     float64    `json:"value"`
	Unit      string     `json:"unit"`
	LoggedAt  time.Time  `json:"logged_at"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// HealthGoal is a user-defined target for one metric.
type HealthGoal struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Metric    MetricType `json:"metric"`
	Target    float64    `json:"target"`
	Unit      string     `json:"unit"`
	Current   float64    `json:"current"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
