package services

import (
	"context"

	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ProfileInput lists the profile fields a user may change. Nil fields are
// left as they are.
type ProfileInput struct {
	Name           *string   `json:"name"`
	Belt           *string   `json:"belt"`
	Stripes        *int      `json:"stripes"`
	Academy        *string   `json:"academy"`
	ShortTermGoals *[]string `json:"shortTermGoals"`
	LongTermGoals  *[]string `json:"longTermGoals"`
}

func (in ProfileInput) apply(p *models.Profile) {
	setTrimmed(&p.Name, in.Name)
	set(&p.Belt, in.Belt)
	set(&p.Stripes, in.Stripes)
	setTrimmed(&p.Academy, in.Academy)
	setList(&p.ShortTermGoals, in.ShortTermGoals)
	setList(&p.LongTermGoals, in.LongTermGoals)
}

type UserService struct {
	userRepo repositories.UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, validate: newValidator()}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile merges in into the stored profile. Email and password are
// never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	in.apply(&user.Profile)
	if err := validateStruct(s.validate, user.Profile); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
