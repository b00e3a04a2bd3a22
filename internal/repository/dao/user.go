package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists    = errors.New("email already registered")
	ErrUserUsernameExists = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email     string `gorm:"unique;not null"`
	Username  string `gorm:"unique;not null"`
	Password  string `gorm:"not null"`
	ImageFile string `gorm:"not null;default:default.jpg"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// Insert creates the user and reports how many users exist afterwards,
// counted inside the same transaction so the registration rank is exact
// even when registrations race.
func (d *UserDAO) Insert(ctx context.Context, user User) (User, int64, error) {
	var total int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		return tx.Model(&User{}).Count(&total).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if strings.Contains(pgErr.Message, `unique constraint "uni_users_email"`) {
				return User{}, 0, ErrUserEmailExists
			}
			if strings.Contains(pgErr.Message, `unique constraint "uni_users_username"`) {
				return User{}, 0, ErrUserUsernameExists
			}
		}

		return User{}, 0, err
	}

	return user, total, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", hashed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) UpdateImageFile(ctx context.Context, id uint, imageFile string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("image_file", imageFile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteCascade removes the user and every row referencing it, in dependency
// order, inside one transaction. Either everything commits or nothing does.
func (d *UserDAO) DeleteCascade(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&UserBadge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&ForumPost{}).Error; err != nil {
			return err
		}
		// Posts are already gone, so removing the user's topics cannot
		// orphan replies from other users still attached to them.
		if err := tx.Where("topic_id IN (?)",
			tx.Model(&ForumTopic{}).Select("id").Where("user_id = ?", id),
		).Delete(&ForumPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&ForumTopic{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Club{}).Where("leader_id = ?", id).Update("leader_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}
