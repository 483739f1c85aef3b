package challenge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitlink/internal/domain"
	"fitlink/internal/modules/health"
	"fitlink/internal/notify"
	"fitlink/internal/repository"

	"gorm.io/gorm"
)

// ChallengeView decorates a challenge with its lifecycle state at read
// time.
type ChallengeView struct {
	domain.Challenge
	Status domain.ChallengeStatus `json:"status"`
}

// Progress is one participant's derived standing in a challenge. Achieved
// is the summed metric volume over the challenge window so far.
type Progress struct {
	ChallengeID int64                  `json:"challenge_id"`
	UserID      int64                  `json:"user_id"`
	Achieved    float64                `json:"achieved"`
	Target      float64                `json:"target"`
	Percent     float64                `json:"percent"`
	Complete    bool                   `json:"complete"`
	Status      domain.ChallengeStatus `json:"status"`
}

type Service struct {
	challenges ChallengeRepository
	stats      StatsProvider
	notifier   Notifier

	now func() time.Time
}

func NewService(challenges ChallengeRepository, stats StatsProvider, notifier Notifier) *Service {
	return &Service{
		challenges: challenges,
		stats:      stats,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *Service) Create(ctx context.Context, creatorID int64, req CreateChallengeRequest) (*ChallengeView, error) {
	title := strings.TrimSpace(req.Title)
	metric := domain.MetricType(req.Metric)
	if title == "" || !metric.Valid() || req.Target <= 0 {
		return nil, ErrValidation
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrValidation
	}

	c := &domain.Challenge{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Metric:      metric,
		Target:      req.Target,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatorID:   creatorID,
		GroupID:     req.GroupID,
	}
	if err := s.challenges.Create(ctx, c); err != nil {
		return nil, err
	}

	// The creator competes too.
	if err := s.challenges.Join(ctx, c.ID, creatorID); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, err
	}
	c.ParticipantCount = 1

	return s.view(c), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*ChallengeView, error) {
	c, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if count, err := s.challenges.CountParticipants(ctx, id); err == nil {
		c.ParticipantCount = count
	}
	return s.view(c), nil
}

// List returns challenges overlapping [from, to], defaulting to a window
// around now that covers currently active and upcoming ones.
func (s *Service) List(ctx context.Context, from, to time.Time, limit int) ([]ChallengeView, error) {
	now := s.now()
	if from.IsZero() {
		from = now
	}
	if to.IsZero() {
		to = now.AddDate(0, 3, 0)
	}
	if to.Before(from) {
		return nil, ErrValidation
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.challenges.List(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ChallengeView, 0, len(list))
	for i := range list {
		out = append(out, *s.view(&list[i]))
	}
	return out, nil
}

func (s *Service) Join(ctx context.Context, challengeID, userID int64) error {
	c, err := s.Get(ctx, challengeID)
	if err != nil {
		return err
	}
	if c.Status == domain.ChallengeFinished {
		return ErrValidation
	}

	if err := s.challenges.Join(ctx, challengeID, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyJoined
		}
		return err
	}
	return nil
}

func (s *Service) Leave(ctx context.Context, challengeID, userID int64) error {
	err := s.challenges.Leave(ctx, challengeID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotJoined
	}
	return err
}

// Progress derives a participant's standing from their health logs over
// the challenge window. Nothing is cached; two calls may differ when new
// logs arrive in between.
func (s *Service) Progress(ctx context.Context, challengeID, userID int64) (*Progress, error) {
	c, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	participant, err := s.challenges.IsParticipant(ctx, challengeID, userID)
	if err != nil {
		return nil, err
	}
	if !participant {
		return nil, ErrNotJoined
	}

	now := s.now()
	end := c.EndDate
	if now.Before(end) {
		end = now
	}

	achieved := 0.0
	if !now.Before(c.StartDate) {
		summary, err := s.stats.Stats(ctx, userID, c.Metric, c.StartDate, end)
		if err != nil {
			return nil, err
		}
		achieved = summary.Average * float64(summary.Total)
	}

	gp, err := health.Progress(achieved, c.Target)
	if err != nil {
		return nil, err
	}

	p := &Progress{
		ChallengeID: c.ID,
		UserID:      userID,
		Achieved:    achieved,
		Target:      c.Target,
		Percent:     gp.Percent,
		Complete:    gp.Complete,
		Status:      c.Status(now),
	}

	// The achievement fires once, on the transition to complete. Reading
	// progress again after that must not publish another one.
	if p.Complete && s.notifier != nil {
		first, err := s.challenges.MarkCompleted(ctx, challengeID, userID)
		if err != nil {
			return nil, err
		}
		if first {
			s.notifier.Publish(userID, notify.NewAchievement(
				"Challenge complete",
				fmt.Sprintf("You hit the target for %s", c.Title),
				map[string]string{"challenge_id": fmt.Sprintf("%d", c.ID)},
			))
		}
	}
	return p, nil
}

// Leaderboard derives every participant's progress. A participant whose
// log fetch fails is reported with zero progress rather than sinking the
// whole board.
func (s *Service) Leaderboard(ctx context.Context, challengeID int64) ([]Progress, error) {
	c, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ids, err := s.challenges.ParticipantIDs(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	end := c.EndDate
	if now.Before(end) {
		end = now
	}
	status := c.Status(now)

	board := make([]Progress, 0, len(ids))
	for _, userID := range ids {
		achieved := 0.0
		if !now.Before(c.StartDate) {
			if summary, err := s.stats.Stats(ctx, userID, c.Metric, c.StartDate, end); err == nil {
				achieved = summary.Average * float64(summary.Total)
			}
		}
		gp, err := health.Progress(achieved, c.Target)
		if err != nil {
			return nil, err
		}
		board = append(board, Progress{
			ChallengeID: c.ID,
			UserID:      userID,
			Achieved:    achieved,
			Target:      c.Target,
			Percent:     gp.Percent,
			Complete:    gp.Complete,
			Status:      status,
		})
	}

	// Highest percent first; stable for ties so join order breaks them.
	for i := 1; i < len(board); i++ {
		for j := i; j > 0 && board[j].Percent > board[j-1].Percent; j-- {
			board[j], board[j-1] = board[j-1], board[j]
		}
	}
	return board, nil
}

func (s *Service) view(c *domain.Challenge) *ChallengeView {
	return &ChallengeView{Challenge: *c, Status: c.Status(s.now())}
}
