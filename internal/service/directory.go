package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clubeativo/hub-api/internal/domain"
)

type DirectoryClubRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Club, string, error)
	FindAll(ctx context.Context) ([]domain.Club, error)
	CountMembers(ctx context.Context, clubID uint) (int64, error)
	IsMember(ctx context.Context, userID, clubID uint) (bool, error)
	FindRanked(ctx context.Context) ([]domain.RankedClub, error)
}

type DirectoryEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	CountEnrollments(ctx context.Context, eventID uint) (int64, error)
	IsEnrolled(ctx context.Context, userID, eventID uint) (bool, error)
	FindUpcoming(ctx context.Context, now time.Time, limit int) ([]domain.Event, error)
	FindUpcomingByClub(ctx context.Context, clubID uint, now time.Time) ([]domain.Event, error)
	FindPastByClub(ctx context.Context, clubID uint, now time.Time) ([]domain.Event, error)
}

// DirectoryService serves the read-only projections: member counts, seats
// remaining, the club ranking and event listings. Each value comes from a
// single query, never assembled from racing reads.
type DirectoryService struct {
	clubRepo  DirectoryClubRepository
	eventRepo DirectoryEventRepository
}

func NewDirectoryService(clubRepo DirectoryClubRepository, eventRepo DirectoryEventRepository) *DirectoryService {
	return &DirectoryService{
		clubRepo:  clubRepo,
		eventRepo: eventRepo,
	}
}

func (s *DirectoryService) SeatsRemaining(ctx context.Context, eventID uint) (int64, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	enrolled, err := s.eventRepo.CountEnrollments(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("s.eventRepo.CountEnrollments -> %w", err)
	}

	return int64(event.Vagas) - enrolled, nil
}

func (s *DirectoryService) MemberCount(ctx context.Context, clubID uint) (int64, error) {
	if _, _, err := s.clubRepo.FindByID(ctx, clubID); err != nil {
		return 0, fmt.Errorf("s.clubRepo.FindByID -> %w", err)
	}

	count, err := s.clubRepo.CountMembers(ctx, clubID)
	if err != nil {
		return 0, fmt.Errorf("s.clubRepo.CountMembers -> %w", err)
	}

	return count, nil
}

// Ranking returns all clubs ordered by member count descending, club name
// ascending on ties.
func (s *DirectoryService) Ranking(ctx context.Context) ([]domain.RankedClub, error) {
	ranked, err := s.clubRepo.FindRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.clubRepo.FindRanked -> %w", err)
	}

	return ranked, nil
}

func (s *DirectoryService) GetClubs(ctx context.Context) ([]domain.Club, error) {
	clubs, err := s.clubRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.clubRepo.FindAll -> %w", err)
	}

	return clubs, nil
}

// GetClubDetail assembles the club page: membership projections for the
// viewing user plus the event lists partitioned by now.
func (s *DirectoryService) GetClubDetail(ctx context.Context, clubID, viewerID uint, now time.Time) (domain.ClubDetail, error) {
	club, leaderUsername, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return domain.ClubDetail{}, fmt.Errorf("s.clubRepo.FindByID -> %w", err)
	}

	memberCount, err := s.clubRepo.CountMembers(ctx, clubID)
	if err != nil {
		return domain.ClubDetail{}, fmt.Errorf("s.clubRepo.CountMembers -> %w", err)
	}

	isMember, err := s.clubRepo.IsMember(ctx, viewerID, clubID)
	if err != nil {
		return domain.ClubDetail{}, fmt.Errorf("s.clubRepo.IsMember -> %w", err)
	}

	upcoming, err := s.eventRepo.FindUpcomingByClub(ctx, clubID, now)
	if err != nil {
		return domain.ClubDetail{}, fmt.Errorf("s.eventRepo.FindUpcomingByClub -> %w", err)
	}

	past, err := s.eventRepo.FindPastByClub(ctx, clubID, now)
	if err != nil {
		return domain.ClubDetail{}, fmt.Errorf("s.eventRepo.FindPastByClub -> %w", err)
	}

	return domain.ClubDetail{
		Club:           club,
		LeaderUsername: leaderUsername,
		MemberCount:    memberCount,
		IsMember:       isMember,
		IsLeader:       club.LeaderID != nil && *club.LeaderID == viewerID,
		UpcomingEvents: upcoming,
		PastEvents:     past,
	}, nil
}

func (s *DirectoryService) GetEventDetail(ctx context.Context, eventID, viewerID uint) (domain.EventDetail, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	enrolled, err := s.eventRepo.CountEnrollments(ctx, eventID)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.eventRepo.CountEnrollments -> %w", err)
	}

	isEnrolled, err := s.eventRepo.IsEnrolled(ctx, viewerID, eventID)
	if err != nil {
		return domain.EventDetail{}, fmt.Errorf("s.eventRepo.IsEnrolled -> %w", err)
	}

	return domain.EventDetail{
		Event:          event,
		SeatsRemaining: int64(event.Vagas) - enrolled,
		IsEnrolled:     isEnrolled,
	}, nil
}

func (s *DirectoryService) GetUpcomingEvents(ctx context.Context, now time.Time, limit int) ([]domain.Event, error) {
	events, err := s.eventRepo.FindUpcoming(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindUpcoming -> %w", err)
	}

	return events, nil
}
