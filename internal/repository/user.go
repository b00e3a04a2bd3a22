package repository

import (
	"context"
	"fmt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository/dao"
)

var (
	ErrUserEmailExists    = dao.ErrUserEmailExists
	ErrUserUsernameExists = dao.ErrUserUsernameExists
	ErrUserNotFound       = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, int64, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	UpdateImageFile(ctx context.Context, id uint, imageFile string) error
	DeleteCascade(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Create inserts the user and returns it along with the total number of
// registered users at the moment of insertion (the user's registration rank).
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, int64, error) {
	created, total, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Username: user.Username,
		Password: user.Password,
	})
	if err != nil {
		return domain.User{}, 0, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), total, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	if err := r.dao.UpdatePassword(ctx, id, hashed); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateImageFile(ctx context.Context, id uint, imageFile string) error {
	if err := r.dao.UpdateImageFile(ctx, id, imageFile); err != nil {
		return fmt.Errorf("r.dao.UpdateImageFile -> %w", err)
	}

	return nil
}

func (r *UserRepository) DeleteCascade(ctx context.Context, id uint) error {
	if err := r.dao.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteCascade -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Password:  u.Password,
		ImageFile: u.ImageFile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
