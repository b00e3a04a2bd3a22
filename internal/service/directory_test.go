package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository"
)

type fakeDirectoryClubs struct {
	clubs   map[uint]domain.Club
	leaders map[uint]string
	members map[uint]map[uint]bool
}

func newFakeDirectoryClubs() *fakeDirectoryClubs {
	return &fakeDirectoryClubs{
		clubs:   make(map[uint]domain.Club),
		leaders: make(map[uint]string),
		members: make(map[uint]map[uint]bool),
	}
}

func (f *fakeDirectoryClubs) addClub(club domain.Club, memberIDs ...uint) {
	f.clubs[club.ID] = club
	f.members[club.ID] = make(map[uint]bool)
	for _, id := range memberIDs {
		f.members[club.ID][id] = true
	}
}

func (f *fakeDirectoryClubs) FindByID(_ context.Context, id uint) (domain.Club, string, error) {
	club, ok := f.clubs[id]
	if !ok {
		return domain.Club{}, "", repository.ErrClubNotFound
	}

	return club, f.leaders[id], nil
}

func (f *fakeDirectoryClubs) FindAll(_ context.Context) ([]domain.Club, error) {
	clubs := make([]domain.Club, 0, len(f.clubs))
	for _, club := range f.clubs {
		clubs = append(clubs, club)
	}

	return clubs, nil
}

func (f *fakeDirectoryClubs) CountMembers(_ context.Context, clubID uint) (int64, error) {
	return int64(len(f.members[clubID])), nil
}

func (f *fakeDirectoryClubs) IsMember(_ context.Context, userID, clubID uint) (bool, error) {
	return f.members[clubID][userID], nil
}

func (f *fakeDirectoryClubs) FindRanked(_ context.Context) ([]domain.RankedClub, error) {
	ranked := make([]domain.RankedClub, 0, len(f.clubs))
	for id, club := range f.clubs {
		ranked = append(ranked, domain.RankedClub{Club: club, MemberCount: int64(len(f.members[id]))})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].MemberCount != ranked[j].MemberCount {
			return ranked[i].MemberCount > ranked[j].MemberCount
		}

		return ranked[i].Name < ranked[j].Name
	})

	return ranked, nil
}

type fakeDirectoryEvents struct {
	events   map[uint]domain.Event
	enrolled map[uint]map[uint]bool
}

func newFakeDirectoryEvents() *fakeDirectoryEvents {
	return &fakeDirectoryEvents{
		events:   make(map[uint]domain.Event),
		enrolled: make(map[uint]map[uint]bool),
	}
}

func (f *fakeDirectoryEvents) addEvent(event domain.Event, enrolledIDs ...uint) {
	f.events[event.ID] = event
	f.enrolled[event.ID] = make(map[uint]bool)
	for _, id := range enrolledIDs {
		f.enrolled[event.ID][id] = true
	}
}

func (f *fakeDirectoryEvents) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeDirectoryEvents) CountEnrollments(_ context.Context, eventID uint) (int64, error) {
	return int64(len(f.enrolled[eventID])), nil
}

func (f *fakeDirectoryEvents) IsEnrolled(_ context.Context, userID, eventID uint) (bool, error) {
	return f.enrolled[eventID][userID], nil
}

func (f *fakeDirectoryEvents) FindUpcoming(_ context.Context, now time.Time, limit int) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range f.events {
		if event.Date.After(now) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}

func (f *fakeDirectoryEvents) FindUpcomingByClub(_ context.Context, clubID uint, now time.Time) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range f.events {
		if event.ClubID == clubID && event.Date.After(now) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })

	return events, nil
}

func (f *fakeDirectoryEvents) FindPastByClub(_ context.Context, clubID uint, now time.Time) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range f.events {
		if event.ClubID == clubID && !event.Date.After(now) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })

	return events, nil
}

func TestDirectoryService_SeatsRemaining(t *testing.T) {
	events := newFakeDirectoryEvents()
	events.addEvent(domain.Event{ID: 1, Vagas: 5}, 10, 11, 12)
	s := NewDirectoryService(newFakeDirectoryClubs(), events)

	t.Run("capacity minus enrollments", func(t *testing.T) {
		remaining, err := s.SeatsRemaining(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, int64(2), remaining)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := s.SeatsRemaining(context.Background(), 99)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestDirectoryService_Ranking(t *testing.T) {
	clubs := newFakeDirectoryClubs()
	clubs.addClub(domain.Club{ID: 1, Name: "Astronomia"}, 10, 11)
	clubs.addClub(domain.Club{ID: 2, Name: "Botânica"}, 12, 13)
	clubs.addClub(domain.Club{ID: 3, Name: "Capoeira"}, 10, 11, 12)
	s := NewDirectoryService(clubs, newFakeDirectoryEvents())

	ranked, err := s.Ranking(context.Background())

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	// Capoeira first on count; Astronomia beats Botânica on name.
	assert.Equal(t, "Capoeira", ranked[0].Name)
	assert.Equal(t, "Astronomia", ranked[1].Name)
	assert.Equal(t, "Botânica", ranked[2].Name)
	assert.Equal(t, int64(3), ranked[0].MemberCount)
}

func TestDirectoryService_GetClubDetail(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	leaderID := uint(10)

	clubs := newFakeDirectoryClubs()
	clubs.addClub(domain.Club{ID: 1, Name: "Astronomia", LeaderID: &leaderID}, 10, 11)
	clubs.leaders[1] = "20230010"

	events := newFakeDirectoryEvents()
	events.addEvent(domain.Event{ID: 1, ClubID: 1, Date: now.AddDate(0, 0, 7)})
	events.addEvent(domain.Event{ID: 2, ClubID: 1, Date: now.AddDate(0, 0, -7)})
	events.addEvent(domain.Event{ID: 3, ClubID: 2, Date: now.AddDate(0, 0, 1)})

	s := NewDirectoryService(clubs, events)

	t.Run("member view", func(t *testing.T) {
		detail, err := s.GetClubDetail(context.Background(), 1, 11, now)

		require.NoError(t, err)
		assert.Equal(t, int64(2), detail.MemberCount)
		assert.True(t, detail.IsMember)
		assert.False(t, detail.IsLeader)
		assert.Equal(t, "20230010", detail.LeaderUsername)
		require.Len(t, detail.UpcomingEvents, 1)
		assert.Equal(t, uint(1), detail.UpcomingEvents[0].ID)
		require.Len(t, detail.PastEvents, 1)
		assert.Equal(t, uint(2), detail.PastEvents[0].ID)
	})

	t.Run("leader view", func(t *testing.T) {
		detail, err := s.GetClubDetail(context.Background(), 1, 10, now)

		require.NoError(t, err)
		assert.True(t, detail.IsLeader)
	})

	t.Run("outsider view", func(t *testing.T) {
		detail, err := s.GetClubDetail(context.Background(), 1, 99, now)

		require.NoError(t, err)
		assert.False(t, detail.IsMember)
		assert.False(t, detail.IsLeader)
	})

	t.Run("unknown club", func(t *testing.T) {
		_, err := s.GetClubDetail(context.Background(), 42, 11, now)

		assert.ErrorIs(t, err, ErrClubNotFound)
	})
}

func TestDirectoryService_GetEventDetail(t *testing.T) {
	events := newFakeDirectoryEvents()
	events.addEvent(domain.Event{ID: 1, Vagas: 10}, 7)
	s := NewDirectoryService(newFakeDirectoryClubs(), events)

	detail, err := s.GetEventDetail(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(9), detail.SeatsRemaining)
	assert.True(t, detail.IsEnrolled)

	detail, err = s.GetEventDetail(context.Background(), 1, 8)

	require.NoError(t, err)
	assert.False(t, detail.IsEnrolled)
}
