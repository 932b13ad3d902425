package services

import (
	"context"
	"time"

	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"
	"bjjtracker/internal/stats"

	"github.com/go-playground/validator/v10"
)

// TrainingInput carries the writable session fields. Nil fields keep their
// current (or default) value.
type TrainingInput struct {
	Date                *string   `json:"date"`
	Duration            *int      `json:"duration"`
	Type                *string   `json:"type"`
	TechniquesPracticed *[]string `json:"techniquesPracticed"`
	Partners            *[]string `json:"partners"`
	PhysicalFeeling     *int      `json:"physicalFeeling"`
	MentalFeeling       *int      `json:"mentalFeeling"`
	Notes               *string   `json:"notes"`
	SubmissionsGiven    *int      `json:"submissionsGiven"`
	SubmissionsReceived *int      `json:"submissionsReceived"`
}

func (in TrainingInput) apply(t *models.Training) error {
	if in.Date != nil {
		d, err := parseDate("date", *in.Date)
		if err != nil {
			return err
		}
		t.Date = d
	}
	set(&t.Duration, in.Duration)
	set(&t.Type, in.Type)
	setList(&t.TechniquesPracticed, in.TechniquesPracticed)
	setList(&t.Partners, in.Partners)
	set(&t.PhysicalFeeling, in.PhysicalFeeling)
	set(&t.MentalFeeling, in.MentalFeeling)
	set(&t.Notes, in.Notes)
	set(&t.SubmissionsGiven, in.SubmissionsGiven)
	set(&t.SubmissionsReceived, in.SubmissionsReceived)
	return nil
}

type TrainingService struct {
	repo     repositories.OwnedRepository[models.Training]
	events   EventPublisher
	validate *validator.Validate
	now      func() time.Time
}

// NewTrainingService creates a TrainingService. events may be nil.
func NewTrainingService(repo repositories.OwnedRepository[models.Training], events EventPublisher) *TrainingService {
	return &TrainingService{repo: repo, events: events, validate: newValidator(), now: time.Now}
}

// WithClock replaces the clock used for the default session date.
func (s *TrainingService) WithClock(now func() time.Time) *TrainingService {
	s.now = now
	return s
}

// ListTrainings returns the owner's sessions, newest first.
func (s *TrainingService) ListTrainings(ctx context.Context, ownerID string) ([]models.Training, error) {
	return s.repo.List(ctx, ownerID, repositories.Filter{
		Sort: []repositories.SortKey{{Field: "date", Desc: true}},
	})
}

func (s *TrainingService) GetTraining(ctx context.Context, ownerID, id string) (*models.Training, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *TrainingService) CreateTraining(ctx context.Context, ownerID string, in TrainingInput) (*models.Training, error) {
	t := models.NewTraining(s.now().UTC())
	if err := in.apply(t); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, t); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ownerID, t); err != nil {
		return nil, err
	}
	publishActivity(s.events, "training.created", ownerID, t.ID)
	return t, nil
}

func (s *TrainingService) UpdateTraining(ctx context.Context, ownerID, id string, in TrainingInput) (*models.Training, error) {
	t, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(t); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ownerID, t); err != nil {
		return nil, err
	}
	publishActivity(s.events, "training.updated", ownerID, t.ID)
	return t, nil
}

func (s *TrainingService) DeleteTraining(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	publishActivity(s.events, "training.deleted", ownerID, id)
	return nil
}

// Summary aggregates all of the owner's sessions.
func (s *TrainingService) Summary(ctx context.Context, ownerID string) (stats.TrainingSummary, error) {
	trainings, err := s.repo.List(ctx, ownerID, repositories.Filter{})
	if err != nil {
		return stats.TrainingSummary{}, err
	}
	return stats.SummarizeTrainings(trainings), nil
}
