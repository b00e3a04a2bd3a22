package repository

import (
	"context"
	"fmt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository/dao"
)

type NewsDAO interface {
	Insert(ctx context.Context, news dao.News) (dao.News, error)
	FindAll(ctx context.Context) ([]dao.News, error)
}

type NewsRepository struct {
	dao NewsDAO
}

func NewNewsRepository(dao NewsDAO) *NewsRepository {
	return &NewsRepository{
		dao: dao,
	}
}

func (r *NewsRepository) Create(ctx context.Context, news domain.News) (domain.News, error) {
	created, err := r.dao.Insert(ctx, dao.News{
		Title:       news.Title,
		Content:     news.Content,
		PublishedAt: news.PublishedAt,
		EventID:     news.EventID,
	})
	if err != nil {
		return domain.News{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *NewsRepository) FindAll(ctx context.Context) ([]domain.News, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	news := make([]domain.News, len(found))
	for i, n := range found {
		news[i] = r.daoToDomain(n)
	}

	return news, nil
}

func (r *NewsRepository) daoToDomain(n dao.News) domain.News {
	news := domain.News{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		PublishedAt: n.PublishedAt,
		EventID:     n.EventID,
	}
	if n.Event != nil {
		news.EventTitle = n.Event.Title
	}

	return news
}
