package services

import (
	"context"
	"time"

	"bjjtracker/internal/apperr"
	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CompetitionInput carries the writable competition fields. The type is not
// among them: it is derived from the date on every write.
type CompetitionInput struct {
	Name        *string   `json:"name"`
	Date        *string   `json:"date"`
	Division    *string   `json:"division"`
	WeightClass *string   `json:"weightClass"`
	Result      *string   `json:"result"`
	Opponents   *[]string `json:"opponents"`
	GamePlan    *string   `json:"gamePlan"`
	Notes       *string   `json:"notes"`
}

func (in CompetitionInput) apply(c *models.Competition) error {
	if in.Date != nil {
		d, err := parseDate("date", *in.Date)
		if err != nil {
			return err
		}
		c.Date = d
	}
	setTrimmed(&c.Name, in.Name)
	setTrimmed(&c.Division, in.Division)
	setTrimmed(&c.WeightClass, in.WeightClass)
	set(&c.Result, in.Result)
	if c.Result == "" {
		c.Result = "pending"
	}
	setList(&c.Opponents, in.Opponents)
	set(&c.GamePlan, in.GamePlan)
	set(&c.Notes, in.Notes)
	return nil
}

type CompetitionService struct {
	repo     repositories.OwnedRepository[models.Competition]
	events   EventPublisher
	validate *validator.Validate
	now      func() time.Time
}

// NewCompetitionService creates a CompetitionService. events may be nil.
func NewCompetitionService(repo repositories.OwnedRepository[models.Competition], events EventPublisher) *CompetitionService {
	return &CompetitionService{repo: repo, events: events, validate: newValidator(), now: time.Now}
}

// WithClock replaces the clock that decides past versus upcoming.
func (s *CompetitionService) WithClock(now func() time.Time) *CompetitionService {
	s.now = now
	return s
}

// ListCompetitions returns the owner's competitions, latest date first,
// optionally only those of one type. The stored type is returned as is; it
// is not re-derived at read time.
func (s *CompetitionService) ListCompetitions(ctx context.Context, ownerID, compType string) ([]models.Competition, error) {
	filter := repositories.Filter{Sort: []repositories.SortKey{{Field: "date", Desc: true}}}
	if compType != "" {
		if compType != models.CompetitionPast && compType != models.CompetitionUpcoming {
			return nil, apperr.Validation("Unknown competition type", map[string]string{
				"type": "Field 'type' must be one of past upcoming",
			})
		}
		filter.Where = append(filter.Where, repositories.Condition{Field: "type", Value: compType})
	}
	return s.repo.List(ctx, ownerID, filter)
}

func (s *CompetitionService) GetCompetition(ctx context.Context, ownerID, id string) (*models.Competition, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *CompetitionService) CreateCompetition(ctx context.Context, ownerID string, in CompetitionInput) (*models.Competition, error) {
	c := models.NewCompetition()
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.prepare(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ownerID, c); err != nil {
		return nil, err
	}
	publishActivity(s.events, "competition.created", ownerID, c.ID)
	return c, nil
}

func (s *CompetitionService) UpdateCompetition(ctx context.Context, ownerID, id string, in CompetitionInput) (*models.Competition, error) {
	c, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.prepare(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ownerID, c); err != nil {
		return nil, err
	}
	publishActivity(s.events, "competition.updated", ownerID, c.ID)
	return c, nil
}

func (s *CompetitionService) DeleteCompetition(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	publishActivity(s.events, "competition.deleted", ownerID, id)
	return nil
}

// prepare derives the type and validates the record.
func (s *CompetitionService) prepare(c *models.Competition) error {
	if c.Date.IsZero() {
		return apperr.Validation("Validation failed", map[string]string{
			"date": "Field 'date' failed on the 'required' tag",
		})
	}
	c.Type = models.CompetitionType(c.Date, s.now())
	return validateStruct(s.validate, c)
}
