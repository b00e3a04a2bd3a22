package repository

import (
	"context"
	"fmt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository/dao"
)

var ErrBadgeNotFound = dao.ErrBadgeNotFound

type BadgeDAO interface {
	FindByName(ctx context.Context, name string) (dao.Badge, error)
	InsertUserBadge(ctx context.Context, userID, badgeID uint) (bool, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.Badge, error)
	HasBadge(ctx context.Context, userID uint, badgeName string) (bool, error)
}

type BadgeRepository struct {
	dao BadgeDAO
}

func NewBadgeRepository(dao BadgeDAO) *BadgeRepository {
	return &BadgeRepository{
		dao: dao,
	}
}

func (r *BadgeRepository) FindByName(ctx context.Context, name string) (domain.Badge, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// Award inserts the (user, badge) pair and reports whether it was newly
// created. Awarding an already-held badge is a no-op.
func (r *BadgeRepository) Award(ctx context.Context, userID, badgeID uint) (bool, error) {
	newly, err := r.dao.InsertUserBadge(ctx, userID, badgeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.InsertUserBadge -> %w", err)
	}

	return newly, nil
}

func (r *BadgeRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Badge, error) {
	found, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	badges := make([]domain.Badge, len(found))
	for i, b := range found {
		badges[i] = r.daoToDomain(b)
	}

	return badges, nil
}

func (r *BadgeRepository) HasBadge(ctx context.Context, userID uint, badgeName string) (bool, error) {
	has, err := r.dao.HasBadge(ctx, userID, badgeName)
	if err != nil {
		return false, fmt.Errorf("r.dao.HasBadge -> %w", err)
	}

	return has, nil
}

func (r *BadgeRepository) daoToDomain(b dao.Badge) domain.Badge {
	return domain.Badge{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		IconClass:   b.IconClass,
		CreatedAt:   b.CreatedAt,
	}
}
