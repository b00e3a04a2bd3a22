package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clubeativo/hub-api/internal/domain"
)

type ScheduleRepository interface {
	FindMenuWeek(ctx context.Context, weekStart time.Time) ([]domain.MenuEntry, error)
	FindCalendarFrom(ctx context.Context, from time.Time) ([]domain.CalendarEntry, error)
}

// ScheduleService serves the cafeteria menu and the academic calendar.
type ScheduleService struct {
	repo ScheduleRepository
}

func NewScheduleService(repo ScheduleRepository) *ScheduleService {
	return &ScheduleService{
		repo: repo,
	}
}

// GetWeekMenu returns the menu entries for the week containing now,
// starting from Monday.
func (s *ScheduleService) GetWeekMenu(ctx context.Context, now time.Time) ([]domain.MenuEntry, error) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := now.AddDate(0, 0, 1-weekday).Truncate(24 * time.Hour)

	entries, err := s.repo.FindMenuWeek(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMenuWeek -> %w", err)
	}

	return entries, nil
}

func (s *ScheduleService) GetCalendar(ctx context.Context, from time.Time) ([]domain.CalendarEntry, error) {
	entries, err := s.repo.FindCalendarFrom(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCalendarFrom -> %w", err)
	}

	return entries, nil
}
