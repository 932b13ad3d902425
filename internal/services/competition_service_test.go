package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bjjtracker/internal/apperr"
	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"
	"bjjtracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompetitionService_TypeDerivedFromDate(t *testing.T) {
	repo := new(MockOwnedRepository[models.Competition])
	svc := services.NewCompetitionService(repo, nil).WithClock(clock)
	repo.On("Create", mock.Anything, "owner-1", mock.Anything).Return(nil)

	past, err := svc.CreateCompetition(context.Background(), "owner-1", services.CompetitionInput{
		Name: ptr("Pans"), Date: ptr("2024-01-10"), Result: ptr("gold"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionPast, past.Type)

	upcoming, err := svc.CreateCompetition(context.Background(), "owner-1", services.CompetitionInput{
		Name: ptr("Worlds"), Date: ptr("2024-06-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionUpcoming, upcoming.Type)
	assert.Equal(t, "pending", upcoming.Result)

	// The current instant itself counts as upcoming
	now, err := svc.CreateCompetition(context.Background(), "owner-1", services.CompetitionInput{
		Name: ptr("Today"), Date: ptr(fixedNow.Format(time.RFC3339)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionUpcoming, now.Type)
}

func TestCompetitionService_CreateValidation(t *testing.T) {
	repo := new(MockOwnedRepository[models.Competition])
	svc := services.NewCompetitionService(repo, nil).WithClock(clock)

	_, err := svc.CreateCompetition(context.Background(), "owner-1", services.CompetitionInput{Name: ptr("No date")})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.CreateCompetition(context.Background(), "owner-1", services.CompetitionInput{
		Name: ptr("Pans"), Date: ptr("2024-01-10"), Result: ptr("platinum"),
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompetitionService_UpdateRecomputesType(t *testing.T) {
	repo := new(MockOwnedRepository[models.Competition])
	current := fixedNow
	svc := services.NewCompetitionService(repo, nil).WithClock(func() time.Time { return current })

	// Stored while still upcoming; the stored value is not refreshed by reads.
	stored := &models.Competition{
		ID: "c-1", UserID: "owner-1", Name: "Worlds", Result: "pending",
		Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Type: models.CompetitionUpcoming,
	}
	repo.On("Get", mock.Anything, "owner-1", "c-1").Return(stored, nil)
	repo.On("Update", mock.Anything, "owner-1", stored).Return(nil)

	current = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.GetCompetition(context.Background(), "owner-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionUpcoming, got.Type)

	got, err = svc.UpdateCompetition(context.Background(), "owner-1", "c-1", services.CompetitionInput{Result: ptr("silver")})
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionPast, got.Type)
	assert.Equal(t, "silver", got.Result)
}

func TestCompetitionService_ListByType(t *testing.T) {
	repo := new(MockOwnedRepository[models.Competition])
	svc := services.NewCompetitionService(repo, nil)

	want := repositories.Filter{
		Where: []repositories.Condition{{Field: "type", Value: "upcoming"}},
		Sort:  []repositories.SortKey{{Field: "date", Desc: true}},
	}
	repo.On("List", mock.Anything, "owner-1", want).Return([]models.Competition{}, nil).Once()

	list, err := svc.ListCompetitions(context.Background(), "owner-1", "upcoming")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.ListCompetitions(context.Background(), "owner-1", "someday")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	repo.AssertExpectations(t)
}
