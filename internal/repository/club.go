package repository

import (
	"context"
	"fmt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository/dao"
)

var (
	ErrClubNotFound  = dao.ErrClubNotFound
	ErrClubExists    = dao.ErrClubExists
	ErrAlreadyMember = dao.ErrAlreadyMember
)

type ClubDAO interface {
	Insert(ctx context.Context, club dao.Club) (dao.Club, error)
	FindByID(ctx context.Context, id uint) (dao.Club, error)
	FindAll(ctx context.Context) ([]dao.Club, error)
	InsertMembership(ctx context.Context, userID, clubID uint) error
	CountMembers(ctx context.Context, clubID uint) (int64, error)
	CountMembershipsByUser(ctx context.Context, userID uint) (int64, error)
	IsMember(ctx context.Context, userID, clubID uint) (bool, error)
	FindRanked(ctx context.Context) ([]dao.RankedClub, error)
}

type ClubRepository struct {
	dao ClubDAO
}

func NewClubRepository(dao ClubDAO) *ClubRepository {
	return &ClubRepository{
		dao: dao,
	}
}

func (r *ClubRepository) Create(ctx context.Context, club domain.Club) (domain.Club, error) {
	created, err := r.dao.Insert(ctx, dao.Club{
		Name:        club.Name,
		Description: club.Description,
		Category:    club.Category,
		LeaderID:    club.LeaderID,
	})
	if err != nil {
		return domain.Club{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint) (domain.Club, string, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Club{}, "", fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	leaderUsername := ""
	if found.Leader != nil {
		leaderUsername = found.Leader.Username
	}

	return r.daoToDomain(found), leaderUsername, nil
}

func (r *ClubRepository) FindAll(ctx context.Context) ([]domain.Club, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	clubs := make([]domain.Club, len(found))
	for i, c := range found {
		clubs[i] = r.daoToDomain(c)
	}

	return clubs, nil
}

func (r *ClubRepository) AddMember(ctx context.Context, userID, clubID uint) error {
	if err := r.dao.InsertMembership(ctx, userID, clubID); err != nil {
		return fmt.Errorf("r.dao.InsertMembership -> %w", err)
	}

	return nil
}

func (r *ClubRepository) CountMembers(ctx context.Context, clubID uint) (int64, error) {
	count, err := r.dao.CountMembers(ctx, clubID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountMembers -> %w", err)
	}

	return count, nil
}

func (r *ClubRepository) CountMembershipsByUser(ctx context.Context, userID uint) (int64, error) {
	count, err := r.dao.CountMembershipsByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountMembershipsByUser -> %w", err)
	}

	return count, nil
}

func (r *ClubRepository) IsMember(ctx context.Context, userID, clubID uint) (bool, error) {
	isMember, err := r.dao.IsMember(ctx, userID, clubID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsMember -> %w", err)
	}

	return isMember, nil
}

func (r *ClubRepository) FindRanked(ctx context.Context) ([]domain.RankedClub, error) {
	found, err := r.dao.FindRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRanked -> %w", err)
	}

	ranked := make([]domain.RankedClub, len(found))
	for i, c := range found {
		ranked[i] = domain.RankedClub{
			Club:        r.daoToDomain(c.Club),
			MemberCount: c.MemberCount,
		}
	}

	return ranked, nil
}

func (r *ClubRepository) daoToDomain(c dao.Club) domain.Club {
	return domain.Club{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		LeaderID:    c.LeaderID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
