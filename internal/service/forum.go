package service

import (
	"context"
	"fmt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository"
)

var ErrTopicNotFound = repository.ErrTopicNotFound

type ForumRepository interface {
	CreateTopic(ctx context.Context, topic domain.ForumTopic) (domain.ForumTopic, error)
	CreatePost(ctx context.Context, post domain.ForumPost) (domain.ForumPost, error)
	FindTopicByID(ctx context.Context, id uint) (domain.ForumTopic, error)
	FindAllTopics(ctx context.Context) ([]domain.ForumTopic, error)
	FindPostsByTopic(ctx context.Context, topicID uint) ([]domain.ForumPost, error)
}

type ForumService struct {
	repo ForumRepository
}

func NewForumService(repo ForumRepository) *ForumService {
	return &ForumService{
		repo: repo,
	}
}

func (s *ForumService) CreateTopic(ctx context.Context, topic domain.ForumTopic) (domain.ForumTopic, error) {
	created, err := s.repo.CreateTopic(ctx, topic)
	if err != nil {
		return domain.ForumTopic{}, fmt.Errorf("s.repo.CreateTopic -> %w", err)
	}

	return created, nil
}

func (s *ForumService) Reply(ctx context.Context, post domain.ForumPost) (domain.ForumPost, error) {
	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return domain.ForumPost{}, fmt.Errorf("s.repo.CreatePost -> %w", err)
	}

	return created, nil
}

func (s *ForumService) GetTopics(ctx context.Context) ([]domain.ForumTopic, error) {
	topics, err := s.repo.FindAllTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllTopics -> %w", err)
	}

	return topics, nil
}

// GetTopic returns the topic and its replies in posting order.
func (s *ForumService) GetTopic(ctx context.Context, topicID uint) (domain.ForumTopic, []domain.ForumPost, error) {
	topic, err := s.repo.FindTopicByID(ctx, topicID)
	if err != nil {
		return domain.ForumTopic{}, nil, fmt.Errorf("s.repo.FindTopicByID -> %w", err)
	}

	posts, err := s.repo.FindPostsByTopic(ctx, topicID)
	if err != nil {
		return domain.ForumTopic{}, nil, fmt.Errorf("s.repo.FindPostsByTopic -> %w", err)
	}

	return topic, posts, nil
}
