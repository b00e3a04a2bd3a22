package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository/dao"
)

type ScheduleDAO interface {
	FindMenuWeek(ctx context.Context, weekStart time.Time) ([]dao.MenuEntry, error)
	FindCalendarFrom(ctx context.Context, from time.Time) ([]dao.CalendarEntry, error)
}

type ScheduleRepository struct {
	dao ScheduleDAO
}

func NewScheduleRepository(dao ScheduleDAO) *ScheduleRepository {
	return &ScheduleRepository{
		dao: dao,
	}
}

func (r *ScheduleRepository) FindMenuWeek(ctx context.Context, weekStart time.Time) ([]domain.MenuEntry, error) {
	found, err := r.dao.FindMenuWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMenuWeek -> %w", err)
	}

	entries := make([]domain.MenuEntry, len(found))
	for i, e := range found {
		entries[i] = domain.MenuEntry{
			ID:         e.ID,
			Date:       e.Date,
			MainDish:   e.MainDish,
			Vegetarian: e.Vegetarian,
			SideDish:   e.SideDish,
			Salad:      e.Salad,
			Dessert:    e.Dessert,
		}
	}

	return entries, nil
}

func (r *ScheduleRepository) FindCalendarFrom(ctx context.Context, from time.Time) ([]domain.CalendarEntry, error) {
	found, err := r.dao.FindCalendarFrom(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCalendarFrom -> %w", err)
	}

	entries := make([]domain.CalendarEntry, len(found))
	for i, e := range found {
		entries[i] = domain.CalendarEntry{
			ID:          e.ID,
			Date:        e.Date,
			Description: e.Description,
			Type:        e.Type,
		}
	}

	return entries, nil
}
