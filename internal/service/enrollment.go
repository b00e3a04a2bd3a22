package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clubeativo/hub-api/internal/repository"
)

var (
	ErrEventNotFound    = repository.ErrEventNotFound
	ErrAlreadyEnrolled  = repository.ErrAlreadyEnrolled
	ErrCapacityExceeded = repository.ErrCapacityExceeded
	ErrClubNotFound     = repository.ErrClubNotFound
	ErrAlreadyMember    = repository.ErrAlreadyMember
)

// ledgerTimeout bounds every mutating transaction so contention on a hot
// event row cannot pile up callers indefinitely. A timed-out transaction
// rolls back completely.
const ledgerTimeout = 5 * time.Second

type EnrollmentEventRepository interface {
	AddEnrollment(ctx context.Context, userID, eventID uint) error
}

type EnrollmentClubRepository interface {
	AddMember(ctx context.Context, userID, clubID uint) error
}

// EnrollmentService owns the enroll and join protocols. Capacity and
// idempotency are enforced inside the repository transaction; this layer
// bounds the transaction, dispatches badge triggers and notifies.
type EnrollmentService struct {
	eventRepo EnrollmentEventRepository
	clubRepo  EnrollmentClubRepository
	badges    BadgeDispatcher
	notifier  Notifier
}

func NewEnrollmentService(
	eventRepo EnrollmentEventRepository,
	clubRepo EnrollmentClubRepository,
	badges BadgeDispatcher,
	notifier Notifier,
) *EnrollmentService {
	return &EnrollmentService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		badges:    badges,
		notifier:  notifier,
	}
}

// Enroll seats the user in the event. Exactly one of four outcomes:
// success, ErrAlreadyEnrolled, ErrCapacityExceeded or ErrEventNotFound.
// Under concurrent callers the committed enrollment count never exceeds
// the event's seat capacity.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, eventID uint) error {
	ctx, cancel := context.WithTimeout(ctx, ledgerTimeout)
	defer cancel()

	if err := s.eventRepo.AddEnrollment(ctx, userID, eventID); err != nil {
		return fmt.Errorf("s.eventRepo.AddEnrollment -> %w", err)
	}

	s.notifier.EnrollmentConfirmed(ctx, userID, eventID)
	s.badges.Dispatch(ctx, Trigger{
		Event:    EventUserEnrolled,
		UserID:   userID,
		TargetID: eventID,
	})

	return nil
}

// JoinClub adds the user to the club. Same idempotency shape as Enroll,
// without a capacity limit.
func (s *EnrollmentService) JoinClub(ctx context.Context, userID, clubID uint) error {
	ctx, cancel := context.WithTimeout(ctx, ledgerTimeout)
	defer cancel()

	if err := s.clubRepo.AddMember(ctx, userID, clubID); err != nil {
		return fmt.Errorf("s.clubRepo.AddMember -> %w", err)
	}

	s.badges.Dispatch(ctx, Trigger{
		Event:    EventUserJoinedClub,
		UserID:   userID,
		TargetID: clubID,
	})

	return nil
}
