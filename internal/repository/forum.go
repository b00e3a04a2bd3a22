package repository

import (
	"context"
	"fmt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository/dao"
)

var ErrTopicNotFound = dao.ErrTopicNotFound

type ForumDAO interface {
	InsertTopic(ctx context.Context, topic dao.ForumTopic) (dao.ForumTopic, error)
	InsertPost(ctx context.Context, post dao.ForumPost) (dao.ForumPost, error)
	FindTopicByID(ctx context.Context, id uint) (dao.ForumTopic, error)
	FindAllTopics(ctx context.Context) ([]dao.ForumTopic, error)
	FindPostsByTopic(ctx context.Context, topicID uint) ([]dao.ForumPost, error)
}

type ForumRepository struct {
	dao ForumDAO
}

func NewForumRepository(dao ForumDAO) *ForumRepository {
	return &ForumRepository{
		dao: dao,
	}
}

func (r *ForumRepository) CreateTopic(ctx context.Context, topic domain.ForumTopic) (domain.ForumTopic, error) {
	created, err := r.dao.InsertTopic(ctx, dao.ForumTopic{
		Title:   topic.Title,
		Content: topic.Content,
		UserID:  topic.UserID,
	})
	if err != nil {
		return domain.ForumTopic{}, fmt.Errorf("r.dao.InsertTopic -> %w", err)
	}

	return r.topicDaoToDomain(created), nil
}

func (r *ForumRepository) CreatePost(ctx context.Context, post domain.ForumPost) (domain.ForumPost, error) {
	created, err := r.dao.InsertPost(ctx, dao.ForumPost{
		Content: post.Content,
		UserID:  post.UserID,
		TopicID: post.TopicID,
	})
	if err != nil {
		return domain.ForumPost{}, fmt.Errorf("r.dao.InsertPost -> %w", err)
	}

	return r.postDaoToDomain(created), nil
}

func (r *ForumRepository) FindTopicByID(ctx context.Context, id uint) (domain.ForumTopic, error) {
	found, err := r.dao.FindTopicByID(ctx, id)
	if err != nil {
		return domain.ForumTopic{}, fmt.Errorf("r.dao.FindTopicByID -> %w", err)
	}

	return r.topicDaoToDomain(found), nil
}

func (r *ForumRepository) FindAllTopics(ctx context.Context) ([]domain.ForumTopic, error) {
	found, err := r.dao.FindAllTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllTopics -> %w", err)
	}

	topics := make([]domain.ForumTopic, len(found))
	for i, t := range found {
		topics[i] = r.topicDaoToDomain(t)
	}

	return topics, nil
}

func (r *ForumRepository) FindPostsByTopic(ctx context.Context, topicID uint) ([]domain.ForumPost, error) {
	found, err := r.dao.FindPostsByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPostsByTopic -> %w", err)
	}

	posts := make([]domain.ForumPost, len(found))
	for i, p := range found {
		posts[i] = r.postDaoToDomain(p)
	}

	return posts, nil
}

func (r *ForumRepository) topicDaoToDomain(t dao.ForumTopic) domain.ForumTopic {
	return domain.ForumTopic{
		ID:             t.ID,
		Title:          t.Title,
		Content:        t.Content,
		UserID:         t.UserID,
		AuthorUsername: t.User.Username,
		CreatedAt:      t.CreatedAt,
	}
}

func (r *ForumRepository) postDaoToDomain(p dao.ForumPost) domain.ForumPost {
	return domain.ForumPost{
		ID:             p.ID,
		Content:        p.Content,
		UserID:         p.UserID,
		TopicID:        p.TopicID,
		AuthorUsername: p.User.Username,
		CreatedAt:      p.CreatedAt,
	}
}
