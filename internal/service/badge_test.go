package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository"
)

type nopNotifier struct{}

func (nopNotifier) BadgeAwarded(context.Context, uint, domain.Badge) {}
func (nopNotifier) EnrollmentConfirmed(context.Context, uint, uint)  {}

type recordingNotifier struct {
	mu      sync.Mutex
	awarded []string
}

func (n *recordingNotifier) BadgeAwarded(_ context.Context, _ uint, badge domain.Badge) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.awarded = append(n.awarded, badge.Name)
}

func (n *recordingNotifier) EnrollmentConfirmed(context.Context, uint, uint) {}

type fakeBadgeLedger struct {
	mu      sync.Mutex
	catalog map[string]domain.Badge
	held    map[uint]map[uint]bool
	failing bool
}

func newFakeBadgeLedger(names ...string) *fakeBadgeLedger {
	f := &fakeBadgeLedger{
		catalog: make(map[string]domain.Badge),
		held:    make(map[uint]map[uint]bool),
	}
	for i, name := range names {
		f.catalog[name] = domain.Badge{ID: uint(i + 1), Name: name}
	}

	return f
}

func (f *fakeBadgeLedger) FindByName(_ context.Context, name string) (domain.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	badge, ok := f.catalog[name]
	if !ok {
		return domain.Badge{}, repository.ErrBadgeNotFound
	}

	return badge, nil
}

func (f *fakeBadgeLedger) Award(_ context.Context, userID, badgeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return false, errors.New("connection reset")
	}
	if f.held[userID][badgeID] {
		return false, nil
	}

	if f.held[userID] == nil {
		f.held[userID] = make(map[uint]bool)
	}
	f.held[userID][badgeID] = true

	return true, nil
}

func (f *fakeBadgeLedger) FindByUser(_ context.Context, userID uint) ([]domain.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var badges []domain.Badge
	for _, badge := range f.catalog {
		if f.held[userID][badge.ID] {
			badges = append(badges, badge)
		}
	}

	return badges, nil
}

func (f *fakeBadgeLedger) has(userID uint, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	badge, ok := f.catalog[name]

	return ok && f.held[userID][badge.ID]
}

type fakeMembershipCounter struct {
	counts map[uint]int64
	err    error
}

func (f *fakeMembershipCounter) CountMembershipsByUser(_ context.Context, userID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	return f.counts[userID], nil
}

func TestBadgeService_Dispatch_Pioneer(t *testing.T) {
	ledger := newFakeBadgeLedger(badgePioneer, badgeExplorer)
	s := NewBadgeService(ledger, &fakeMembershipCounter{}, nopNotifier{})

	for rank := int64(1); rank <= 12; rank++ {
		s.Dispatch(context.Background(), Trigger{
			Event:  EventUserRegistered,
			UserID: uint(rank),
			Rank:   rank,
		})
	}

	for userID := uint(1); userID <= 10; userID++ {
		assert.True(t, ledger.has(userID, badgePioneer), "user %d should be a pioneer", userID)
	}
	assert.False(t, ledger.has(11, badgePioneer))
	assert.False(t, ledger.has(12, badgePioneer))
}

func TestBadgeService_Dispatch_Explorer(t *testing.T) {
	t.Run("first club grants the badge", func(t *testing.T) {
		ledger := newFakeBadgeLedger(badgePioneer, badgeExplorer)
		counter := &fakeMembershipCounter{counts: map[uint]int64{7: 1}}
		s := NewBadgeService(ledger, counter, nopNotifier{})

		s.Dispatch(context.Background(), Trigger{Event: EventUserJoinedClub, UserID: 7, TargetID: 3})

		assert.True(t, ledger.has(7, badgeExplorer))
	})

	t.Run("second club does not re-award", func(t *testing.T) {
		ledger := newFakeBadgeLedger(badgePioneer, badgeExplorer)
		counter := &fakeMembershipCounter{counts: map[uint]int64{7: 2}}
		notifier := &recordingNotifier{}
		s := NewBadgeService(ledger, counter, notifier)

		s.Dispatch(context.Background(), Trigger{Event: EventUserJoinedClub, UserID: 7, TargetID: 4})

		assert.False(t, ledger.has(7, badgeExplorer))
		assert.Empty(t, notifier.awarded)
	})
}

func TestBadgeService_Dispatch_SwallowsFailures(t *testing.T) {
	t.Run("missing catalog entry", func(t *testing.T) {
		// Catalog without the pioneer badge seeded.
		ledger := newFakeBadgeLedger(badgeExplorer)
		s := NewBadgeService(ledger, &fakeMembershipCounter{}, nopNotifier{})

		assert.NotPanics(t, func() {
			s.Dispatch(context.Background(), Trigger{Event: EventUserRegistered, UserID: 1, Rank: 1})
		})
	})

	t.Run("storage failure during award", func(t *testing.T) {
		ledger := newFakeBadgeLedger(badgePioneer, badgeExplorer)
		ledger.failing = true
		s := NewBadgeService(ledger, &fakeMembershipCounter{}, nopNotifier{})

		assert.NotPanics(t, func() {
			s.Dispatch(context.Background(), Trigger{Event: EventUserRegistered, UserID: 1, Rank: 1})
		})
	})

	t.Run("rule evaluation failure", func(t *testing.T) {
		ledger := newFakeBadgeLedger(badgePioneer, badgeExplorer)
		counter := &fakeMembershipCounter{err: fmt.Errorf("timeout")}
		s := NewBadgeService(ledger, counter, nopNotifier{})

		assert.NotPanics(t, func() {
			s.Dispatch(context.Background(), Trigger{Event: EventUserJoinedClub, UserID: 7, TargetID: 3})
		})
		assert.False(t, ledger.has(7, badgeExplorer))
	})
}

func TestBadgeService_Award_Idempotent(t *testing.T) {
	ledger := newFakeBadgeLedger(badgePioneer)
	notifier := &recordingNotifier{}
	s := NewBadgeService(ledger, &fakeMembershipCounter{}, notifier)

	newly, err := s.Award(context.Background(), 7, badgePioneer)
	require.NoError(t, err)
	assert.True(t, newly)

	newly, err = s.Award(context.Background(), 7, badgePioneer)
	require.NoError(t, err)
	assert.False(t, newly)

	// Notified exactly once, for the fresh award.
	assert.Equal(t, []string{badgePioneer}, notifier.awarded)
}

func TestBadgeService_Award_UnknownBadge(t *testing.T) {
	s := NewBadgeService(newFakeBadgeLedger(), &fakeMembershipCounter{}, nopNotifier{})

	_, err := s.Award(context.Background(), 7, "Medalha Fantasma")

	assert.ErrorIs(t, err, ErrBadgeNotFound)
}
