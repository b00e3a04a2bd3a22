package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository"
)

// ErrIntegrityViolation means a deletion cascade hit a storage-level
// constraint failure and was rolled back in full.
var ErrIntegrityViolation = errors.New("account deletion failed and was rolled back")

type AccountUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpdateImageFile(ctx context.Context, id uint, imageFile string) error
	DeleteCascade(ctx context.Context, id uint) error
}

type AccountEventRepository interface {
	FindByEnrolledUser(ctx context.Context, userID uint) ([]domain.Event, error)
}

type AccountBadgeRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.Badge, error)
}

type AccountService struct {
	repo      AccountUserRepository
	eventRepo AccountEventRepository
	badgeRepo AccountBadgeRepository
}

func NewAccountService(
	repo AccountUserRepository,
	eventRepo AccountEventRepository,
	badgeRepo AccountBadgeRepository,
) *AccountService {
	return &AccountService{
		repo:      repo,
		eventRepo: eventRepo,
		badgeRepo: badgeRepo,
	}
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *AccountService) GetEnrolledEvents(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := s.eventRepo.FindByEnrolledUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByEnrolledUser -> %w", err)
	}

	return events, nil
}

func (s *AccountService) GetBadges(ctx context.Context, userID uint) ([]domain.Badge, error) {
	badges, err := s.badgeRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.badgeRepo.FindByUser -> %w", err)
	}

	return badges, nil
}

// UpdateProfilePicture stores a fresh opaque reference for the user's
// picture and returns it. Writing the actual bytes is the caller's
// problem; the ledger only keeps the reference.
func (s *AccountService) UpdateProfilePicture(ctx context.Context, userID uint, originalFilename string) (string, error) {
	filename := uuid.NewString() + filepath.Ext(originalFilename)

	if err := s.repo.UpdateImageFile(ctx, userID, filename); err != nil {
		return "", fmt.Errorf("s.repo.UpdateImageFile -> %w", err)
	}

	return filename, nil
}

// DeleteAccount removes the user and every dependent row as one atomic
// unit. The caller must prove possession of the account's password; a
// mismatch fails with ErrWrongPassword before anything is touched.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	ctx, cancel := context.WithTimeout(ctx, ledgerTimeout)
	defer cancel()

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrWrongPassword
	}

	if err = s.repo.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		zap.L().Error("account deletion cascade rolled back",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)

		return ErrIntegrityViolation
	}

	return nil
}
