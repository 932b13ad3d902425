package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bjjtracker/internal/apperr"
	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// LoginThrottle limits failed logins per email. *ratelimit.LoginLimiter
// implements it.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=100"`
	Belt     string `json:"belt" validate:"omitempty,oneof=white blue purple brown black"`
	Academy  string `json:"academy"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	ID      string         `json:"id"`
	Email   string         `json:"email"`
	Profile models.Profile `json:"profile"`
	Token   string         `json:"token"`
}

// AuthService handles registration, login and credential verification.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	throttle   LoginThrottle
	validate   *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 30 * 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
		validate:   newValidator(),
	}
}

// WithThrottle enables login throttling.
func (s *AuthService) WithThrottle(t LoginThrottle) *AuthService {
	s.throttle = t
	return s
}

// Register creates an account with a white-belt default profile and returns
// a fresh token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	belt := in.Belt
	if belt == "" {
		belt = "white"
	}
	user := &models.User{
		Email:    in.Email,
		Password: string(hashedPassword),
		Profile: models.Profile{
			Name:           in.Name,
			Belt:           belt,
			Academy:        strings.TrimSpace(in.Academy),
			ShortTermGoals: []string{},
			LongTermGoals:  []string{},
		},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.result(user)
}

// Login checks the email/password pair. Unknown emails and wrong passwords
// fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required", nil)
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			log.Printf("Login throttle unavailable, allowing attempt: %v", err)
		} else if !allowed {
			return nil, apperr.RateLimited("Too many failed login attempts, try again later")
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.recordFailure(ctx, email)
			return nil, apperr.Auth("Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordFailure(ctx, email)
		return nil, apperr.Auth("Invalid credentials")
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			log.Printf("Failed to reset login attempts for %s: %v", email, err)
		}
	}
	return s.result(user)
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		log.Printf("Failed to record login failure for %s: %v", email, err)
	}
}

func (s *AuthService) result(user *models.User) (*AuthResult, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{ID: user.ID, Email: user.Email, Profile: user.Profile, Token: token}, nil
}

// IssueToken signs an HS256 token naming the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     now.Add(s.tokenDurat).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, apperr.Auth("Not authorized, token expired")
		}
		return nil, apperr.Auth("Not authorized, token failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.Auth("Not authorized, token failed")
	}
	if _, ok := claims["exp"]; !ok {
		return nil, apperr.Auth("Not authorized, token failed")
	}
	return claims, nil
}

// Authenticate resolves a token to the account it names. The account must
// still exist.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, apperr.Auth("Not authorized, token failed")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Auth("Not authorized, user not found")
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
