package service

import (
	"context"
	"fmt"

	"github.com/clubeativo/hub-api/internal/domain"
)

type NewsRepository interface {
	Create(ctx context.Context, news domain.News) (domain.News, error)
	FindAll(ctx context.Context) ([]domain.News, error)
}

type NewsService struct {
	repo NewsRepository
}

func NewNewsService(repo NewsRepository) *NewsService {
	return &NewsService{
		repo: repo,
	}
}

func (s *NewsService) Publish(ctx context.Context, news domain.News) (domain.News, error) {
	created, err := s.repo.Create(ctx, news)
	if err != nil {
		return domain.News{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *NewsService) GetFeed(ctx context.Context) ([]domain.News, error) {
	news, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return news, nil
}
