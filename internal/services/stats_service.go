package services

import (
	"context"
	"time"

	"bjjtracker/internal/apperr"
	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"
	"bjjtracker/internal/stats"
)

// DefaultFrequencyPeriod is the training-frequency window, in days, used
// when the caller names none.
const DefaultFrequencyPeriod = 30

// StatsService computes the dashboard views. Nothing is cached; every call
// reads the owner's current records.
type StatsService struct {
	trainings    repositories.OwnedRepository[models.Training]
	techniques   repositories.OwnedRepository[models.Technique]
	competitions repositories.OwnedRepository[models.Competition]
	users        repositories.UserRepository
	loc          *time.Location
	layout       string
	now          func() time.Time
}

// NewStatsService creates a StatsService. Day buckets are formed in loc and
// labelled with layout.
func NewStatsService(
	trainings repositories.OwnedRepository[models.Training],
	techniques repositories.OwnedRepository[models.Technique],
	competitions repositories.OwnedRepository[models.Competition],
	users repositories.UserRepository,
	loc *time.Location,
	layout string,
) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	if layout == "" {
		layout = "02/01/2006"
	}
	return &StatsService{
		trainings:    trainings,
		techniques:   techniques,
		competitions: competitions,
		users:        users,
		loc:          loc,
		layout:       layout,
		now:          time.Now,
	}
}

func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

func (s *StatsService) Overview(ctx context.Context, ownerID string) (stats.Overview, error) {
	trainings, err := s.trainings.List(ctx, ownerID, repositories.Filter{})
	if err != nil {
		return stats.Overview{}, err
	}
	techniques, err := s.techniques.List(ctx, ownerID, repositories.Filter{})
	if err != nil {
		return stats.Overview{}, err
	}
	competitions, err := s.competitions.List(ctx, ownerID, repositories.Filter{})
	if err != nil {
		return stats.Overview{}, err
	}
	return stats.ComputeOverview(trainings, techniques, competitions), nil
}

// TrainingFrequency counts sessions per day over the last days days.
func (s *StatsService) TrainingFrequency(ctx context.Context, ownerID string, days int) (stats.Series, error) {
	if days <= 0 {
		return stats.Series{}, apperr.Validation("period must be a positive number of days", map[string]string{
			"period": "Field 'period' failed on the 'min=1' tag",
		})
	}
	since := s.now().AddDate(0, 0, -days)
	trainings, err := s.trainings.List(ctx, ownerID, repositories.Filter{
		Since: since,
		Sort:  []repositories.SortKey{{Field: "date"}},
	})
	if err != nil {
		return stats.Series{}, err
	}
	return stats.TrainingFrequency(trainings, since, s.loc, s.layout), nil
}

func (s *StatsService) MasteryDistribution(ctx context.Context, ownerID string) (stats.Series, error) {
	techniques, err := s.techniques.List(ctx, ownerID, repositories.Filter{})
	if err != nil {
		return stats.Series{}, err
	}
	return stats.MasteryDistribution(techniques), nil
}

func (s *StatsService) CompetitionPerformance(ctx context.Context, ownerID string) (stats.Series, error) {
	competitions, err := s.competitions.List(ctx, ownerID, repositories.Filter{})
	if err != nil {
		return stats.Series{}, err
	}
	return stats.CompetitionPerformance(competitions), nil
}

func (s *StatsService) TechniqueCategories(ctx context.Context, ownerID string) (stats.Series, error) {
	techniques, err := s.techniques.List(ctx, ownerID, repositories.Filter{})
	if err != nil {
		return stats.Series{}, err
	}
	return stats.TechniqueCategories(techniques), nil
}

func (s *StatsService) BeltProgression(ctx context.Context, ownerID string) (stats.BeltProgression, error) {
	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return stats.BeltProgression{}, err
	}
	return stats.ComputeBeltProgression(user.Profile), nil
}
