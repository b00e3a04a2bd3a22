package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBadgeNotFound = errors.New("badge not found")

type Badge struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Description string `gorm:"not null"`
	IconClass   string `gorm:"not null"`

	CreatedAt time.Time
}

type UserBadge struct {
	ID      uint  `gorm:"primaryKey"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_user_badges_user_badge"`
	BadgeID uint  `gorm:"not null;uniqueIndex:idx_user_badges_user_badge"`
	User    User  `gorm:"foreignKey:UserID"`
	Badge   Badge `gorm:"foreignKey:BadgeID"`

	CreatedAt time.Time
}

type BadgeDAO struct {
	db *gorm.DB
}

func NewBadgeDAO(db *gorm.DB) *BadgeDAO {
	return &BadgeDAO{
		db: db,
	}
}

func (d *BadgeDAO) FindByName(ctx context.Context, name string) (Badge, error) {
	var badge Badge

	result := d.db.WithContext(ctx).First(&badge, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Badge{}, ErrBadgeNotFound
		}

		return Badge{}, result.Error
	}

	return badge, nil
}

// InsertUserBadge awards the badge. Awards are set membership: the insert
// is ON CONFLICT DO NOTHING, and the return value reports whether this
// call created the row.
func (d *BadgeDAO) InsertUserBadge(ctx context.Context, userID, badgeID uint) (bool, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&UserBadge{UserID: userID, BadgeID: badgeID})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (d *BadgeDAO) FindByUser(ctx context.Context, userID uint) ([]Badge, error) {
	var badges []Badge

	err := d.db.WithContext(ctx).
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.created_at ASC").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}

	return badges, nil
}

func (d *BadgeDAO) HasBadge(ctx context.Context, userID uint, badgeName string) (bool, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&UserBadge{}).
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ? AND badges.name = ?", userID, badgeName).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
