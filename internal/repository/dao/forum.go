package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrTopicNotFound = errors.New("forum topic not found")

type ForumTopic struct {
	ID      uint   `gorm:"primaryKey"`
	Title   string `gorm:"not null"`
	Content string `gorm:"not null"`
	UserID  uint   `gorm:"not null;index"`
	User    User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
}

type ForumPost struct {
	ID      uint       `gorm:"primaryKey"`
	Content string     `gorm:"not null"`
	UserID  uint       `gorm:"not null;index"`
	TopicID uint       `gorm:"not null;index"`
	User    User       `gorm:"foreignKey:UserID"`
	Topic   ForumTopic `gorm:"foreignKey:TopicID"`

	CreatedAt time.Time `gorm:"not null"`
}

type ForumDAO struct {
	db *gorm.DB
}

func NewForumDAO(db *gorm.DB) *ForumDAO {
	return &ForumDAO{
		db: db,
	}
}

func (d *ForumDAO) InsertTopic(ctx context.Context, topic ForumTopic) (ForumTopic, error) {
	result := d.db.WithContext(ctx).Create(&topic)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ForumTopic{}, ErrUserNotFound
		}

		return ForumTopic{}, result.Error
	}

	return topic, nil
}

func (d *ForumDAO) InsertPost(ctx context.Context, post ForumPost) (ForumPost, error) {
	result := d.db.WithContext(ctx).Create(&post)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ForumPost{}, ErrTopicNotFound
		}

		return ForumPost{}, result.Error
	}

	return post, nil
}

func (d *ForumDAO) FindTopicByID(ctx context.Context, id uint) (ForumTopic, error) {
	var topic ForumTopic

	result := d.db.WithContext(ctx).Preload("User").First(&topic, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ForumTopic{}, ErrTopicNotFound
		}

		return ForumTopic{}, result.Error
	}

	return topic, nil
}

func (d *ForumDAO) FindAllTopics(ctx context.Context) ([]ForumTopic, error) {
	var topics []ForumTopic

	err := d.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}

	return topics, nil
}

func (d *ForumDAO) FindPostsByTopic(ctx context.Context, topicID uint) ([]ForumPost, error) {
	var posts []ForumPost

	err := d.db.WithContext(ctx).
		Preload("User").
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return posts, nil
}
