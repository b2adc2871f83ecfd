package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/repository"
	"github.com/maheshrc27/pagepost/internal/transfer"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id uuid.UUID) (*transfer.UserInfo, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id uuid.UUID) (*transfer.UserInfo, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Error getting user info: %w", err)
	}

	if !isExist {
		slog.Info("User not found", "user_id", id)
		return nil, invalid("User doesn't exist")
	}

	return &transfer.UserInfo{
		ID:                user.ID,
		Email:             user.Email,
		FacebookConnected: user.FacebookAccessToken != nil && *user.FacebookAccessToken != "",
		FacebookName:      user.FacebookName,
		TokenExpiresAt:    user.TokenExpiresAt,
	}, nil
}
