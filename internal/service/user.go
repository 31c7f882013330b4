package service

import (
	"context"
	"errors"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, apperror.Persistence("get user", err)
	}
	return user, nil
}
