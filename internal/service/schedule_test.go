package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/clubeativo/hub-api/internal/domain"
)

type capturingScheduleRepo struct {
	weekStart time.Time
}

func (r *capturingScheduleRepo) FindMenuWeek(_ context.Context, weekStart time.Time) ([]domain.MenuEntry, error) {
	r.weekStart = weekStart

	return nil, nil
}

func (r *capturingScheduleRepo) FindCalendarFrom(context.Context, time.Time) ([]domain.CalendarEntry, error) {
	return nil, nil
}

// The menu week always starts on the Monday at or before now, never more
// than seven days back.
func TestScheduleService_GetWeekMenu_WeekStart(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		unix := rapid.Int64Range(0, 4102444800).Draw(t, "unix") // up to year 2100
		now := time.Unix(unix, 0).UTC()

		repo := &capturingScheduleRepo{}
		s := NewScheduleService(repo)

		_, err := s.GetWeekMenu(context.Background(), now)
		require.NoError(t, err)

		start := repo.weekStart
		require.Equal(t, time.Monday, start.Weekday())
		require.False(t, start.After(now))
		require.Less(t, now.Sub(start), 7*24*time.Hour)
	})
}
