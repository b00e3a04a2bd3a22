package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type News struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Content     string    `gorm:"not null"`
	PublishedAt time.Time `gorm:"not null;index"`

	EventID *uint  `gorm:"index"`
	Event   *Event `gorm:"foreignKey:EventID"`
}

func (News) TableName() string {
	return "news"
}

type NewsDAO struct {
	db *gorm.DB
}

func NewNewsDAO(db *gorm.DB) *NewsDAO {
	return &NewsDAO{
		db: db,
	}
}

func (d *NewsDAO) Insert(ctx context.Context, news News) (News, error) {
	result := d.db.WithContext(ctx).Create(&news)
	if result.Error != nil {
		return News{}, result.Error
	}

	return news, nil
}

func (d *NewsDAO) FindAll(ctx context.Context) ([]News, error) {
	var news []News

	err := d.db.WithContext(ctx).
		Preload("Event").
		Order("published_at DESC").
		Find(&news).Error
	if err != nil {
		return nil, err
	}

	return news, nil
}
