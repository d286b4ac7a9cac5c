package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

const minPasswordLength = 6

// bcrypt rejects longer input.
const maxPasswordBytes = 72

var passwordTooLong = fmt.Sprintf("Password must be at most %d bytes.", maxPasswordBytes)

// UserService manages the signed-in user's own account.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, domain.Validation("Name and email are required.")
	}

	user, err := s.repo.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Msg("profile updated")
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if current == "" || next == "" {
		return domain.Validation("Current and new password are required.")
	}
	if len(next) < minPasswordLength {
		return domain.Validation(fmt.Sprintf("New password must be at least %d characters.", minPasswordLength))
	}
	if len(next) > maxPasswordBytes {
		return domain.Validation(passwordTooLong)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.Validation("Current password is incorrect.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}
