package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository/dao"
)

var (
	ErrEventNotFound    = dao.ErrEventNotFound
	ErrAlreadyEnrolled  = dao.ErrAlreadyEnrolled
	ErrCapacityExceeded = dao.ErrCapacityExceeded
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	InsertEnrollment(ctx context.Context, userID, eventID uint) error
	CountEnrollments(ctx context.Context, eventID uint) (int64, error)
	IsEnrolled(ctx context.Context, userID, eventID uint) (bool, error)
	FindUpcoming(ctx context.Context, now time.Time, limit int) ([]dao.Event, error)
	FindUpcomingByClub(ctx context.Context, clubID uint, now time.Time) ([]dao.Event, error)
	FindPastByClub(ctx context.Context, clubID uint, now time.Time) ([]dao.Event, error)
	FindByEnrolledUser(ctx context.Context, userID uint) ([]dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:       event.Title,
		Description: event.Description,
		Vagas:       event.Vagas,
		Date:        event.Date,
		ClubID:      event.ClubID,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) AddEnrollment(ctx context.Context, userID, eventID uint) error {
	if err := r.dao.InsertEnrollment(ctx, userID, eventID); err != nil {
		return fmt.Errorf("r.dao.InsertEnrollment -> %w", err)
	}

	return nil
}

func (r *EventRepository) CountEnrollments(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountEnrollments(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountEnrollments -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) IsEnrolled(ctx context.Context, userID, eventID uint) (bool, error) {
	enrolled, err := r.dao.IsEnrolled(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsEnrolled -> %w", err)
	}

	return enrolled, nil
}

func (r *EventRepository) FindUpcoming(ctx context.Context, now time.Time, limit int) ([]domain.Event, error) {
	found, err := r.dao.FindUpcoming(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUpcoming -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) FindUpcomingByClub(ctx context.Context, clubID uint, now time.Time) ([]domain.Event, error) {
	found, err := r.dao.FindUpcomingByClub(ctx, clubID, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUpcomingByClub -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) FindPastByClub(ctx context.Context, clubID uint, now time.Time) ([]domain.Event, error) {
	found, err := r.dao.FindPastByClub(ctx, clubID, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPastByClub -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) FindByEnrolledUser(ctx context.Context, userID uint) ([]domain.Event, error) {
	found, err := r.dao.FindByEnrolledUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEnrolledUser -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Vagas:       e.Vagas,
		Date:        e.Date,
		ClubID:      e.ClubID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	converted := make([]domain.Event, len(events))
	for i, e := range events {
		converted[i] = r.daoToDomain(e)
	}

	return converted
}
