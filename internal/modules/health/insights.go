package health

import "fitlink/internal/domain"

// Classification thresholds for insight generation. These are product
// constants, not tunables.
const (
	stepsHighAvg    = 8000
	stepsLowAvg     = 5000
	waterGoodAvg    = 7 // glasses/day
	sleepShortAvg   = 6 // hours
	exerciseGoodAvg = 30 // minutes
)

// Insights classifies a period summary into tagged insight records. It is a
// pure function of its input: same summary, same insights, in tracked-metric
// order. Metrics whose data was unavailable produce nothing.
func Insights(summary map[domain.MetricType]MetricSummary) []Insight {
	out := make([]Insight, 0, len(summary))

	for _, metric := range domain.TrackedMetrics {
		ms, ok := summary[metric]
		if !ok || !ms.Available || ms.Stats == nil || ms.Stats.Total == 0 {
			continue
		}
		if in, ok := classify(metric, ms.Stats); ok {
			out = append(out, in)
		}
	}
	return out
}

func classify(metric domain.MetricType, s *StatsSummary) (Insight, bool) {
	switch metric {
	case domain.MetricSteps:
		if s.Average > stepsHighAvg {
			return Insight{
				Category:    InsightAchievement,
				Metric:      metric,
				Title:       "Great step count",
				Description: "You averaged over 8,000 steps a day this period.",
			}, true
		}
		if s.Average < stepsLowAvg {
			return Insight{
				Category:    InsightRecommendation,
				Metric:      metric,
				Title:       "Move a little more",
				Description: "Your daily step average fell under 5,000.",
				Action:      "Try a short walk after meals.",
			}, true
		}
		return Insight{
			Category:    InsightGoal,
			Metric:      metric,
			Title:       "Steady steps",
			Description: "You are in a solid range; push toward 8,000 a day.",
		}, true

	case domain.MetricWater:
		if s.Average >= waterGoodAvg {
			return Insight{
				Category:    InsightAchievement,
				Metric:      metric,
				Title:       "Well hydrated",
				Description: "You averaged 7 or more glasses of water a day.",
			}, true
		}
		return Insight{
			Category:    InsightGoal,
			Metric:      metric,
			Title:       "Drink more water",
			Description: "Aim for at least 7 glasses a day.",
			Action:      "Keep a bottle at your desk.",
		}, true

	case domain.MetricSleep:
		if s.Average < sleepShortAvg {
			return Insight{
				Category:    InsightRecommendation,
				Metric:      metric,
				Title:       "Short on sleep",
				Description: "You averaged under 6 hours of sleep.",
				Action:      "Try moving bedtime 30 minutes earlier.",
			}, true
		}
		return Insight{}, false

	case domain.MetricExercise:
		if s.Average >= exerciseGoodAvg {
			return Insight{
				Category:    InsightAchievement,
				Metric:      metric,
				Title:       "Active streak",
				Description: "You averaged 30+ minutes of exercise a day.",
			}, true
		}
		return Insight{}, false
	}

	return Insight{}, false
}
