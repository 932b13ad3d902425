package services

import (
	"context"
	"strings"

	"bjjtracker/internal/apperr"
	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// TechniqueInput carries the writable technique fields.
type TechniqueInput struct {
	Name         *string   `json:"name"`
	Category     *string   `json:"category"`
	Subcategory  *string   `json:"subcategory"`
	MasteryLevel *int      `json:"masteryLevel"`
	Notes        *string   `json:"notes"`
	VideoLinks   *[]string `json:"videoLinks"`
	Tags         *[]string `json:"tags"`
	SuccessCount *int      `json:"successCount"`
	AttemptCount *int      `json:"attemptCount"`
}

func (in TechniqueInput) apply(t *models.Technique) {
	setTrimmed(&t.Name, in.Name)
	set(&t.Category, in.Category)
	setTrimmed(&t.Subcategory, in.Subcategory)
	set(&t.MasteryLevel, in.MasteryLevel)
	set(&t.Notes, in.Notes)
	setList(&t.VideoLinks, in.VideoLinks)
	setList(&t.Tags, in.Tags)
	set(&t.SuccessCount, in.SuccessCount)
	set(&t.AttemptCount, in.AttemptCount)
}

// TechniqueFilter narrows ListTechniques. Empty fields match everything.
type TechniqueFilter struct {
	Category string
	Search   string
}

type TechniqueService struct {
	repo     repositories.OwnedRepository[models.Technique]
	events   EventPublisher
	validate *validator.Validate
}

// NewTechniqueService creates a TechniqueService. events may be nil.
func NewTechniqueService(repo repositories.OwnedRepository[models.Technique], events EventPublisher) *TechniqueService {
	return &TechniqueService{repo: repo, events: events, validate: newValidator()}
}

// ListTechniques returns the owner's techniques ordered by category then
// name. With a search term the best-mastered matches come first.
func (s *TechniqueService) ListTechniques(ctx context.Context, ownerID string, f TechniqueFilter) ([]models.Technique, error) {
	var filter repositories.Filter
	if f.Category != "" {
		if !contains(models.TechniqueCategories, f.Category) {
			return nil, apperr.Validation("Unknown technique category", map[string]string{
				"category": "Field 'category' must be one of " + strings.Join(models.TechniqueCategories, " "),
			})
		}
		filter.Where = append(filter.Where, repositories.Condition{Field: "category", Value: f.Category})
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		filter.Sort = []repositories.SortKey{{Field: "category"}, {Field: "name"}}
		return s.repo.List(ctx, ownerID, filter)
	}

	filter.Sort = []repositories.SortKey{{Field: "mastery_level", Desc: true}, {Field: "name"}}
	all, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	matches := make([]models.Technique, 0, len(all))
	for _, t := range all {
		if matchesSearch(t, term) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// matchesSearch is a literal, case-insensitive substring match on the name
// or any tag. term is already lower-cased.
func matchesSearch(t models.Technique, term string) bool {
	if strings.Contains(strings.ToLower(t.Name), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func (s *TechniqueService) GetTechnique(ctx context.Context, ownerID, id string) (*models.Technique, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *TechniqueService) CreateTechnique(ctx context.Context, ownerID string, in TechniqueInput) (*models.Technique, error) {
	t := models.NewTechnique()
	in.apply(t)
	if err := validateStruct(s.validate, t); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ownerID, t); err != nil {
		return nil, err
	}
	publishActivity(s.events, "technique.created", ownerID, t.ID)
	return t, nil
}

func (s *TechniqueService) UpdateTechnique(ctx context.Context, ownerID, id string, in TechniqueInput) (*models.Technique, error) {
	t, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	in.apply(t)
	if err := validateStruct(s.validate, t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, ownerID, t); err != nil {
		return nil, err
	}
	publishActivity(s.events, "technique.updated", ownerID, t.ID)
	return t, nil
}

func (s *TechniqueService) DeleteTechnique(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	publishActivity(s.events, "technique.deleted", ownerID, id)
	return nil
}

