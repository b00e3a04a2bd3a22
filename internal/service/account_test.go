package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository"
)

type fakeAccountLedger struct {
	users      map[uint]domain.User
	deleted    []uint
	cascadeErr error
}

func newFakeAccountLedger(t *testing.T, password string) *fakeAccountLedger {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &fakeAccountLedger{
		users: map[uint]domain.User{
			7: {ID: 7, Email: "ana@campus.br", Username: "20230001", Password: string(hash)},
		},
	}
}

func (f *fakeAccountLedger) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeAccountLedger) UpdateImageFile(_ context.Context, id uint, imageFile string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.ImageFile = imageFile
	f.users[id] = user

	return nil
}

func (f *fakeAccountLedger) DeleteCascade(_ context.Context, id uint) error {
	if f.cascadeErr != nil {
		return f.cascadeErr
	}
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	delete(f.users, id)
	f.deleted = append(f.deleted, id)

	return nil
}

type fakeEnrolledEvents struct{}

func (fakeEnrolledEvents) FindByEnrolledUser(context.Context, uint) ([]domain.Event, error) {
	return nil, nil
}

type fakeHeldBadges struct{}

func (fakeHeldBadges) FindByUser(context.Context, uint) ([]domain.Badge, error) {
	return nil, nil
}

func newAccountService(ledger *fakeAccountLedger) *AccountService {
	return NewAccountService(ledger, fakeEnrolledEvents{}, fakeHeldBadges{})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	t.Run("deletes with the correct password", func(t *testing.T) {
		ledger := newFakeAccountLedger(t, "correta123")
		s := newAccountService(ledger)

		err := s.DeleteAccount(context.Background(), 7, "correta123")

		require.NoError(t, err)
		assert.Equal(t, []uint{7}, ledger.deleted)
	})

	t.Run("wrong password leaves everything untouched", func(t *testing.T) {
		ledger := newFakeAccountLedger(t, "correta123")
		s := newAccountService(ledger)

		err := s.DeleteAccount(context.Background(), 7, "errada123")

		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.Empty(t, ledger.deleted)
		_, ok := ledger.users[7]
		assert.True(t, ok)
	})

	t.Run("unknown user", func(t *testing.T) {
		s := newAccountService(newFakeAccountLedger(t, "correta123"))

		err := s.DeleteAccount(context.Background(), 99, "correta123")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("cascade rollback surfaces as an integrity violation", func(t *testing.T) {
		ledger := newFakeAccountLedger(t, "correta123")
		ledger.cascadeErr = errors.New("foreign key constraint violated")
		s := newAccountService(ledger)

		err := s.DeleteAccount(context.Background(), 7, "correta123")

		assert.ErrorIs(t, err, ErrIntegrityViolation)
		_, ok := ledger.users[7]
		assert.True(t, ok, "rolled-back user must still exist")
	})
}

func TestAccountService_UpdateProfilePicture(t *testing.T) {
	ledger := newFakeAccountLedger(t, "correta123")
	s := newAccountService(ledger)

	filename, err := s.UpdateProfilePicture(context.Background(), 7, "selfie.png")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".png"))
	assert.NotEqual(t, "selfie.png", filename)
	assert.Equal(t, filename, ledger.users[7].ImageFile)
}
