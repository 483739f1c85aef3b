package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitlink/internal/domain"

	"gorm.io/gorm"
)

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// StatsSummary is the derived view over one metric and date range. It is
// recomputed in full on every call; nothing incremental is kept between
// queries.
type StatsSummary struct {
	Metric      domain.MetricType `json:"metric"`
	Average     float64           `json:"average"`
	Max         float64           `json:"max"`
	Total       int               `json:"total"`
	Trend       Trend             `json:"trend"`
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
}

// MetricSummary wraps a per-metric result inside a period summary.
// Available is false when the log store failed for that metric; the
// zero-value stats must then not be presented as real data.
type MetricSummary struct {
	Stats     *StatsSummary `json:"stats,omitempty"`
	Available bool          `json:"available"`
}

type GoalProgress struct {
	GoalID   int64   `json:"goal_id,omitempty"`
	Percent  float64 `json:"percent"`
	Complete bool    `json:"complete"`
}

type InsightCategory string

const (
	InsightAchievement    InsightCategory = "achievement"
	InsightRecommendation InsightCategory = "recommendation"
	InsightGoal           InsightCategory = "goal"
)

type Insight struct {
	Category    InsightCategory   `json:"category"`
	Metric      domain.MetricType `json:"metric"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Action      string            `json:"action,omitempty"`
}

const (
	defaultTrendThreshold = 0.05
	defaultFetchBudget    = 5 * time.Second
)

type Service struct {
	logs  LogRepository
	goals GoalRepository

	// trendThreshold is the relative change below which the current and
	// prior windows are considered equivalent.
	trendThreshold float64
	// fetchBudget bounds every call to the log store; a hanging backend
	// must not hang the caller.
	fetchBudget time.Duration
}

func NewService(logs LogRepository, goals GoalRepository, trendThreshold float64, fetchBudget time.Duration) *Service {
	if trendThreshold <= 0 {
		trendThreshold = defaultTrendThreshold
	}
	if fetchBudget <= 0 {
		fetchBudget = defaultFetchBudget
	}
	return &Service{
		logs:           logs,
		goals:          goals,
		trendThreshold: trendThreshold,
		fetchBudget:    fetchBudget,
	}
}

// AddLog records one measurement. The unit defaults per metric when the
// caller leaves it empty.
func (s *Service) AddLog(ctx context.Context, userID int64, metric domain.MetricType, value float64, unit string, loggedAt time.Time, note string) (*domain.HealthLog, error) {
	if !metric.Valid() {
		return nil, ErrInvalidMetric
	}
	if value <= 0 {
		return nil, ErrInvalidValue
	}
	if unit == "" {
		unit = metric.DefaultUnit()
	}
	if loggedAt.IsZero() {
		loggedAt = time.Now()
	}

	l := &domain.HealthLog{
		UserID:   userID,
		Metric:   metric,
		Value:    value,
		Unit:     unit,
		LoggedAt: loggedAt,
		Note:     note,
	}
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) RecentLogs(ctx context.Context, userID int64, limit int) ([]domain.HealthLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.logs.ListRecent(ctx, userID, limit)
}

func (s *Service) LogsInRange(ctx context.Context, userID int64, metric domain.MetricType, from, to time.Time) ([]domain.HealthLog, error) {
	if !metric.Valid() {
		return nil, ErrInvalidMetric
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	return s.logs.ListInRange(ctx, userID, metric, from, to)
}

func (s *Service) DeleteLog(ctx context.Context, id, userID int64) error {
	err := s.logs.Delete(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Stats reduces the raw entries for one metric and range into a summary.
// An empty range is "no data" (zero summary, stable trend), not an error; a
// failing log store is a distinguishable ErrDataUnavailable so callers never
// render a zero chart as if it were real.
func (s *Service) Stats(ctx context.Context, userID int64, metric domain.MetricType, from, to time.Time) (*StatsSummary, error) {
	if !metric.Valid() {
		return nil, ErrInvalidMetric
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	ctx, cancel := context.WithTimeout(ctx, s.fetchBudget)
	defer cancel()

	entries, err := s.logs.ListInRange(ctx, userID, metric, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	summary := &StatsSummary{
		Metric:      metric,
		Trend:       TrendStable,
		PeriodStart: from,
		PeriodEnd:   to,
	}
	if len(entries) == 0 {
		return summary, nil
	}

	var sum float64
	for _, e := range entries {
		sum += e.Value
		if e.Value > summary.Max {
			summary.Max = e.Value
		}
	}
	summary.Total = len(entries)
	summary.Average = sum / float64(len(entries))
	summary.Trend = s.trendAgainstPriorWindow(ctx, userID, metric, from, to, summary.Average)

	return summary, nil
}

// trendAgainstPriorWindow compares the current average against the average
// of the immediately preceding window of equal length. A missing or failing
// prior window degrades to stable rather than failing the summary.
func (s *Service) trendAgainstPriorWindow(ctx context.Context, userID int64, metric domain.MetricType, from, to time.Time, currentAvg float64) Trend {
	length := to.Sub(from)
	priorFrom := from.Add(-length - time.Nanosecond)
	priorTo := from.Add(-time.Nanosecond)

	prior, err := s.logs.ListInRange(ctx, userID, metric, priorFrom, priorTo)
	if err != nil || len(prior) == 0 {
		return TrendStable
	}

	var sum float64
	for _, e := range prior {
		sum += e.Value
	}
	priorAvg := sum / float64(len(prior))
	if priorAvg == 0 {
		return TrendStable
	}

	change := (currentAvg - priorAvg) / priorAvg
	switch {
	case change > s.trendThreshold:
		return TrendUp
	case change < -s.trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}

// PeriodSummary runs Stats per tracked metric over the same range. One
// metric failing marks only that metric unavailable; the rest still compute.
func (s *Service) PeriodSummary(ctx context.Context, userID int64, from, to time.Time) (map[domain.MetricType]MetricSummary, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	out := make(map[domain.MetricType]MetricSummary, len(domain.TrackedMetrics))
	for _, metric := range domain.TrackedMetrics {
		stats, err := s.Stats(ctx, userID, metric, from, to)
		if err != nil {
			out[metric] = MetricSummary{Available: false}
			continue
		}
		out[metric] = MetricSummary{Stats: stats, Available: true}
	}
	return out, nil
}

// Progress computes a bounded goal-progress percentage. A zero or negative
// target is rejected up front so no NaN or Inf can escape.
func Progress(current, target float64) (GoalProgress, error) {
	if target <= 0 {
		return GoalProgress{}, ErrInvalidTarget
	}

	percent := current / target * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return GoalProgress{Percent: percent, Complete: percent >= 100}, nil
}

func (s *Service) GoalProgress(ctx context.Context, goalID, userID int64) (*GoalProgress, error) {
	g, err := s.goals.GetByID(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p, err := Progress(g.Current, g.Target)
	if err != nil {
		return nil, err
	}
	p.GoalID = g.ID
	return &p, nil
}

func (s *Service) CreateGoal(ctx context.Context, userID int64, metric domain.MetricType, target float64, unit string) (*domain.HealthGoal, error) {
	if !metric.Valid() {
		return nil, ErrInvalidMetric
	}
	if target <= 0 {
		return nil, ErrInvalidTarget
	}
	if unit == "" {
		unit = metric.DefaultUnit()
	}

	g := &domain.HealthGoal{
		UserID: userID,
		Metric: metric,
		Target: target,
		Unit:   unit,
		Active: true,
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) ListGoals(ctx context.Context, userID int64, activeOnly bool) ([]domain.HealthGoal, error) {
	return s.goals.ListByUser(ctx, userID, activeOnly)
}

func (s *Service) UpdateGoal(ctx context.Context, userID, goalID int64, target, current *float64, active *bool) (*domain.HealthGoal, error) {
	g, err := s.goals.GetByID(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if target != nil {
		if *target <= 0 {
			return nil, ErrInvalidTarget
		}
		g.Target = *target
	}
	if current != nil {
		g.Current = *current
	}
	if active != nil {
		g.Active = *active
	}

	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	err := s.goals.Delete(ctx, goalID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
