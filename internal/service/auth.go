package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	tx                repository.Transactor
	clock             clock.Clock
	jwtSecret         string
	jwtExpiry         time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	tx repository.Transactor,
	clk clock.Clock,
	jwtSecret string,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		tx:                tx,
		clock:             clk,
		jwtSecret:         jwtSecret,
		jwtExpiry:         jwtExpiry,
	}
}

// Register creates the user and its profile together.
func (s *AuthService) Register(ctx context.Context, in model.RegisterInput) (*model.User, *model.Profile, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, nil, err
	}

	err = validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	err = validation.ValidateProfile(in.ProfileInput)
	if err != nil {
		return nil, nil, err
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleEmployee,
		CreatedAt:    now,
	}
	profile := newProfile(user.ID, in.ProfileInput, now)

	err = s.tx.InTx(ctx, func(tx *repository.Repositories) error {
		err := tx.Users.Create(ctx, user)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperror.Validation("email", "email already registered")
		}
		if err != nil {
			return apperror.Persistence("create user", err)
		}

		return apperror.Persistence("create profile", tx.Profiles.Create(ctx, profile))
	})
	if err != nil {
		return nil, nil, apperror.Persistence("register", err)
	}

	return user, profile, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperror.Persistence("get user", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   now.Add(s.jwtExpiry).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT checks signature and expiry and returns the user id the token was issued for.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := token.Claims.GetSubject()
	if err != nil || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}

func newProfile(userID string, in model.ProfileInput, now time.Time) *model.Profile {
	return &model.Profile{
		ID:                uuid.New().String(),
		UserID:            userID,
		FullName:          strings.TrimSpace(in.FullName),
		Position:          strings.TrimSpace(in.Position),
		Department:        strings.TrimSpace(in.Department),
		JoinDate:          in.JoinDate,
		ExistingSkills:    model.StringSet(validation.NormalizeSet(in.ExistingSkills)),
		LearningInterests: model.StringSet(validation.NormalizeSet(in.LearningInterests)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
