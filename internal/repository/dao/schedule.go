package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type MenuEntry struct {
	ID         uint      `gorm:"primaryKey"`
	Date       time.Time `gorm:"not null;uniqueIndex"`
	MainDish   string    `gorm:"not null"`
	Vegetarian string
	SideDish   string
	Salad      string
	Dessert    string
}

type CalendarEntry struct {
	ID          uint      `gorm:"primaryKey"`
	Date        time.Time `gorm:"not null;index"`
	Description string    `gorm:"not null"`
	Type        string    `gorm:"not null"`
}

type ScheduleDAO struct {
	db *gorm.DB
}

func NewScheduleDAO(db *gorm.DB) *ScheduleDAO {
	return &ScheduleDAO{
		db: db,
	}
}

func (d *ScheduleDAO) FindMenuWeek(ctx context.Context, weekStart time.Time) ([]MenuEntry, error) {
	var entries []MenuEntry

	err := d.db.WithContext(ctx).
		Where("date >= ?", weekStart).
		Order("date ASC").
		Limit(7).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (d *ScheduleDAO) FindCalendarFrom(ctx context.Context, from time.Time) ([]CalendarEntry, error) {
	var entries []CalendarEntry

	err := d.db.WithContext(ctx).
		Where("date >= ?", from).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
