package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository"
)

var ErrBadgeNotFound = repository.ErrBadgeNotFound

const (
	badgePioneer  = "Membro Pioneiro"
	badgeExplorer = "Explorador de Clubes"

	// pioneerLimit is how many users count as founding members.
	pioneerLimit = 10
)

// LedgerEvent identifies a ledger transition that badge rules can react to.
type LedgerEvent string

const (
	EventUserRegistered LedgerEvent = "user_registered"
	EventUserJoinedClub LedgerEvent = "user_joined_club"
	EventUserEnrolled   LedgerEvent = "user_enrolled"
)

// Trigger carries the facts of a completed ledger transition.
type Trigger struct {
	Event  LedgerEvent
	UserID uint
	// TargetID is the club or event the transition touched, when applicable.
	TargetID uint
	// Rank is the user's registration rank (1 = first registered user).
	// Only set for EventUserRegistered.
	Rank int64
}

// BadgeRule binds a trigger event and a predicate over ledger state to a
// badge name. Rules are data: adding an achievement means adding a row
// here, not a new branch in a handler.
type BadgeRule struct {
	Event   LedgerEvent
	Badge   string
	Applies func(ctx context.Context, s *BadgeService, t Trigger) (bool, error)
}

func defaultRules() []BadgeRule {
	return []BadgeRule{
		{
			Event: EventUserRegistered,
			Badge: badgePioneer,
			Applies: func(_ context.Context, _ *BadgeService, t Trigger) (bool, error) {
				// Rank at registration time, not the count afterwards:
				// user 11 never becomes a pioneer, no matter how many
				// accounts are deleted later.
				return t.Rank >= 1 && t.Rank <= pioneerLimit, nil
			},
		},
		{
			Event: EventUserJoinedClub,
			Badge: badgeExplorer,
			Applies: func(ctx context.Context, s *BadgeService, t Trigger) (bool, error) {
				count, err := s.clubRepo.CountMembershipsByUser(ctx, t.UserID)
				if err != nil {
					return false, fmt.Errorf("s.clubRepo.CountMembershipsByUser -> %w", err)
				}

				return count == 1, nil
			},
		},
	}
}

type BadgeClubRepository interface {
	CountMembershipsByUser(ctx context.Context, userID uint) (int64, error)
}

type BadgeRepository interface {
	FindByName(ctx context.Context, name string) (domain.Badge, error)
	Award(ctx context.Context, userID, badgeID uint) (bool, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Badge, error)
}

type BadgeService struct {
	repo     BadgeRepository
	clubRepo BadgeClubRepository
	notifier Notifier
	rules    []BadgeRule
}

func NewBadgeService(repo BadgeRepository, clubRepo BadgeClubRepository, notifier Notifier) *BadgeService {
	return &BadgeService{
		repo:     repo,
		clubRepo: clubRepo,
		notifier: notifier,
		rules:    defaultRules(),
	}
}

// Dispatch evaluates every rule registered for the trigger's event.
// It never returns an error: badge evaluation is a side effect of an
// already-committed ledger transition, and a broken rule or a missing
// catalog entry must not fail the operation that triggered it.
func (s *BadgeService) Dispatch(ctx context.Context, t Trigger) {
	for _, rule := range s.rules {
		if rule.Event != t.Event {
			continue
		}

		applies, err := rule.Applies(ctx, s, t)
		if err != nil {
			zap.L().Error("badge rule evaluation failed",
				zap.String("event", string(t.Event)),
				zap.String("badge", rule.Badge),
				zap.Uint("user_id", t.UserID),
				zap.Error(err),
			)
			continue
		}
		if !applies {
			continue
		}

		if _, err = s.Award(ctx, t.UserID, rule.Badge); err != nil {
			if errors.Is(err, ErrBadgeNotFound) {
				// Catalog misconfiguration, not a user-facing failure.
				zap.L().Warn("badge missing from catalog",
					zap.String("badge", rule.Badge),
				)
				continue
			}

			zap.L().Error("badge award failed",
				zap.String("badge", rule.Badge),
				zap.Uint("user_id", t.UserID),
				zap.Error(err),
			)
		}
	}
}

// Award grants the named badge to the user. Idempotent: holding the badge
// already is a no-op, and the notifier only fires for a fresh award.
func (s *BadgeService) Award(ctx context.Context, userID uint, badgeName string) (bool, error) {
	badge, err := s.repo.FindByName(ctx, badgeName)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindByName -> %w", err)
	}

	newly, err := s.repo.Award(ctx, userID, badge.ID)
	if err != nil {
		return false, fmt.Errorf("s.repo.Award -> %w", err)
	}

	if newly {
		s.notifier.BadgeAwarded(ctx, userID, badge)
	}

	return newly, nil
}

func (s *BadgeService) GetUserBadges(ctx context.Context, userID uint) ([]domain.Badge, error) {
	badges, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return badges, nil
}
