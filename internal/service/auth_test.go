package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubeativo/hub-api/internal/domain"
	"github.com/clubeativo/hub-api/internal/repository"
)

type fakeUserLedger struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]domain.User
}

func newFakeUserLedger() *fakeUserLedger {
	return &fakeUserLedger{
		users: make(map[uint]domain.User),
	}
}

func (f *fakeUserLedger) Create(_ context.Context, user domain.User) (domain.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return domain.User{}, 0, repository.ErrUserEmailExists
		}
		if existing.Username == user.Username {
			return domain.User{}, 0, repository.ErrUserUsernameExists
		}
	}

	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user

	return user, int64(len(f.users)), nil
}

func (f *fakeUserLedger) FindByUsername(_ context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserLedger) FindByID(_ context.Context, id uint) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserLedger) UpdatePassword(_ context.Context, id uint, hashed string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Password = hashed
	f.users[id] = user

	return nil
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("stores a hash and dispatches the registration rank", func(t *testing.T) {
		users := newFakeUserLedger()
		dispatcher := &recordingDispatcher{}
		s := NewAuthService(users, dispatcher)

		created, err := s.Signup(context.Background(), domain.User{
			Email:    "ana@campus.br",
			Username: "20230001",
			Password: "correta123",
		})

		require.NoError(t, err)
		assert.NotEqual(t, "correta123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("correta123")))

		triggers := dispatcher.byEvent(EventUserRegistered)
		require.Len(t, triggers, 1)
		assert.Equal(t, created.ID, triggers[0].UserID)
		assert.Equal(t, int64(1), triggers[0].Rank)
	})

	t.Run("ranks count up across registrations", func(t *testing.T) {
		users := newFakeUserLedger()
		dispatcher := &recordingDispatcher{}
		s := NewAuthService(users, dispatcher)

		for i := 0; i < 3; i++ {
			_, err := s.Signup(context.Background(), domain.User{
				Email:    string(rune('a'+i)) + "@campus.br",
				Username: string(rune('a' + i)),
				Password: "senha123",
			})
			require.NoError(t, err)
		}

		triggers := dispatcher.byEvent(EventUserRegistered)
		require.Len(t, triggers, 3)
		assert.Equal(t, int64(3), triggers[2].Rank)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := newFakeUserLedger()
		s := NewAuthService(users, &recordingDispatcher{})

		_, err := s.Signup(context.Background(), domain.User{Email: "ana@campus.br", Username: "a", Password: "senha123"})
		require.NoError(t, err)

		_, err = s.Signup(context.Background(), domain.User{Email: "ana@campus.br", Username: "b", Password: "senha123"})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := newFakeUserLedger()
		s := NewAuthService(users, &recordingDispatcher{})

		_, err := s.Signup(context.Background(), domain.User{Email: "ana@campus.br", Username: "20230001", Password: "senha123"})
		require.NoError(t, err)

		_, err = s.Signup(context.Background(), domain.User{Email: "bia@campus.br", Username: "20230001", Password: "senha123"})
		assert.ErrorIs(t, err, ErrUserUsernameExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUserLedger()
	s := NewAuthService(users, &recordingDispatcher{})

	_, err := s.Signup(context.Background(), domain.User{
		Email:    "ana@campus.br",
		Username: "20230001",
		Password: "correta123",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := s.Login(context.Background(), "20230001", "correta123")

		require.NoError(t, err)
		assert.Equal(t, "ana@campus.br", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), "20230001", "errada123")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := s.Login(context.Background(), "20239999", "correta123")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := newFakeUserLedger()
	s := NewAuthService(users, &recordingDispatcher{})

	created, err := s.Signup(context.Background(), domain.User{
		Email:    "ana@campus.br",
		Username: "20230001",
		Password: "antiga123",
	})
	require.NoError(t, err)

	t.Run("requires the current password", func(t *testing.T) {
		err := s.ChangePassword(context.Background(), created.ID, "errada123", "nova1234")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("replaces the hash", func(t *testing.T) {
		err := s.ChangePassword(context.Background(), created.ID, "antiga123", "nova1234")
		require.NoError(t, err)

		_, err = s.Login(context.Background(), "20230001", "antiga123")
		assert.ErrorIs(t, err, ErrWrongPassword)

		_, err = s.Login(context.Background(), "20230001", "nova1234")
		assert.NoError(t, err)
	})
}
