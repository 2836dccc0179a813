package service

import (
	"context"
	"fmt"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
	"github.com/humoyunmirzo-code/tgbot/internal/repository"
)

// UserService handles user language preferences
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Language returns the user's language, falling back to the default
func (s *UserService) Language(ctx context.Context, userID int64) (domain.Language, error) {
	lang, found, err := s.userRepo.GetLanguage(ctx, userID)
	if err != nil {
		return domain.DefaultLanguage, err
	}
	if !found {
		return domain.DefaultLanguage, nil
	}
	return lang, nil
}

// SetLanguage remembers the user's language choice
func (s *UserService) SetLanguage(ctx context.Context, userID int64, lang domain.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return s.userRepo.SetLanguage(ctx, userID, lang)
}

// EnsureUserExists creates user record if doesn't exist
func (s *UserService) EnsureUserExists(ctx context.Context, userID int64) error {
	return s.userRepo.EnsureUserExists(ctx, userID)
}
