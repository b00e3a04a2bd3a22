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
	ErrClubNotFound  = errors.New("club not found")
	ErrClubExists    = errors.New("club name already taken")
	ErrAlreadyMember = errors.New("user is already a member of this club")
)

type Club struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Description string `gorm:"not null"`
	Category    string `gorm:"not null"`

	// Leadership is a reference, not ownership. Deleting the leader
	// nulls it out instead of removing the club.
	LeaderID *uint `gorm:"index"`
	Leader   *User `gorm:"foreignKey:LeaderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Membership struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:idx_memberships_user_club"`
	ClubID uint `gorm:"not null;uniqueIndex:idx_memberships_user_club"`
	User   User `gorm:"foreignKey:UserID"`
	Club   Club `gorm:"foreignKey:ClubID"`

	CreatedAt time.Time
}

// RankedClub carries the member count computed by the ranking query.
type RankedClub struct {
	Club
	MemberCount int64
}

type ClubDAO struct {
	db *gorm.DB
}

func NewClubDAO(db *gorm.DB) *ClubDAO {
	return &ClubDAO{
		db: db,
	}
}

func (d *ClubDAO) Insert(ctx context.Context, club Club) (Club, error) {
	result := d.db.WithContext(ctx).Create(&club)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, `unique constraint "uni_clubs_name"`) {
			return Club{}, ErrClubExists
		}

		return Club{}, result.Error
	}

	return club, nil
}

func (d *ClubDAO) FindByID(ctx context.Context, id uint) (Club, error) {
	var club Club

	result := d.db.WithContext(ctx).Preload("Leader").First(&club, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Club{}, ErrClubNotFound
		}

		return Club{}, result.Error
	}

	return club, nil
}

func (d *ClubDAO) FindAll(ctx context.Context) ([]Club, error) {
	var clubs []Club

	result := d.db.WithContext(ctx).Order("name ASC").Find(&clubs)
	if result.Error != nil {
		return nil, result.Error
	}

	return clubs, nil
}

// InsertMembership joins the user to the club. The existence re-check and
// the insert run in one transaction so a racing duplicate surfaces as
// ErrAlreadyMember, never as a second row.
func (d *ClubDAO) InsertMembership(ctx context.Context, userID, clubID uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var club Club
		if err := tx.First(&club, clubID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClubNotFound
			}

			return err
		}

		var existing int64
		err := tx.Model(&Membership{}).
			Where("user_id = ? AND club_id = ?", userID, clubID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}

		return tx.Create(&Membership{UserID: userID, ClubID: clubID}).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// The composite unique index catches the duplicate that slipped
			// past the re-check; the FK catches a vanished user or club.
			if pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyMember
			}
			if pgErr.Code == pgerrcode.ForeignKeyViolation {
				return ErrUserNotFound
			}
		}

		return err
	}

	return nil
}

func (d *ClubDAO) CountMembers(ctx context.Context, clubID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Membership{}).
		Where("club_id = ?", clubID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *ClubDAO) CountMembershipsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Membership{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *ClubDAO) IsMember(ctx context.Context, userID, clubID uint) (bool, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Membership{}).
		Where("user_id = ? AND club_id = ?", userID, clubID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// FindRanked returns all clubs ordered by member count descending,
// name ascending as tiebreak. One query, one consistent snapshot.
func (d *ClubDAO) FindRanked(ctx context.Context) ([]RankedClub, error) {
	var ranked []RankedClub

	err := d.db.WithContext(ctx).Model(&Club{}).
		Select("clubs.*, (SELECT COUNT(*) FROM memberships m WHERE m.club_id = clubs.id) AS member_count").
		Order("member_count DESC, clubs.name ASC").
		Find(&ranked).Error
	if err != nil {
		return nil, err
	}

	return ranked, nil
}
