package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrAlreadyEnrolled  = errors.New("user is already enrolled in this event")
	ErrCapacityExceeded = errors.New("no seats remaining for this event")
)

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Vagas       int    `gorm:"not null"`

	Date   time.Time `gorm:"not null;index"`
	ClubID uint      `gorm:"not null;index"`
	Club   Club      `gorm:"foreignKey:ClubID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Enrollment struct {
	ID      uint  `gorm:"primaryKey"`
	UserID  uint  `gorm:"not null;uniqueIndex:idx_enrollments_user_event"`
	EventID uint  `gorm:"not null;uniqueIndex:idx_enrollments_user_event"`
	User    User  `gorm:"foreignKey:UserID"`
	Event   Event `gorm:"foreignKey:EventID"`

	CreatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return Event{}, ErrClubNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// InsertEnrollment seats the user in the event. The event row is locked
// FOR UPDATE for the duration of the duplicate re-check, the seat count
// and the insert, so two racing callers are totally ordered: the second
// one re-evaluates remaining capacity against the committed state, not a
// stale snapshot. The count never exceeds vagas in any committed state.
func (d *EventDAO) InsertEnrollment(ctx context.Context, userID, eventID uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		var existing int64
		err = tx.Model(&Enrollment{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		var enrolled int64
		err = tx.Model(&Enrollment{}).
			Where("event_id = ?", eventID).
			Count(&enrolled).Error
		if err != nil {
			return err
		}
		if int64(event.Vagas)-enrolled <= 0 {
			return ErrCapacityExceeded
		}

		return tx.Create(&Enrollment{UserID: userID, EventID: eventID}).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyEnrolled
			}
			if pgErr.Code == pgerrcode.ForeignKeyViolation {
				return ErrUserNotFound
			}
		}

		return err
	}

	return nil
}

func (d *EventDAO) CountEnrollments(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Enrollment{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *EventDAO) IsEnrolled(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Enrollment{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// FindUpcoming lists events scheduled at or after now, soonest first.
// The caller supplies now so the upcoming/past partition is deterministic.
func (d *EventDAO) FindUpcoming(ctx context.Context, now time.Time, limit int) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).
		Where("date >= ?", now).
		Order("date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) FindUpcomingByClub(ctx context.Context, clubID uint, now time.Time) ([]Event, error) {
	var events []Event

	err := d.db.WithContext(ctx).
		Where("club_id = ? AND date >= ?", clubID, now).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) FindPastByClub(ctx context.Context, clubID uint, now time.Time) ([]Event, error) {
	var events []Event

	err := d.db.WithContext(ctx).
		Where("club_id = ? AND date < ?", clubID, now).
		Order("date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (d *EventDAO) FindByEnrolledUser(ctx context.Context, userID uint) ([]Event, error) {
	var events []Event

	err := d.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.event_id = events.id").
		Where("enrollments.user_id = ?", userID).
		Order("events.date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
