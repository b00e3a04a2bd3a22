package dao

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("docker not available, skipping dao tests: %v", err)
		os.Exit(0)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("docker not available, skipping dao tests: %v", err)
		os.Exit(0)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=hub",
			"POSTGRES_PASSWORD=hub",
			"POSTGRES_DB=hub_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%s user=hub password=hub dbname=hub_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}
		testDB = db

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge container: %v", err)
	}

	os.Exit(code)
}

func mustCreateUser(t *testing.T, suffix string) User {
	t.Helper()

	userDAO := NewUserDAO(testDB)
	user, _, err := userDAO.Insert(context.Background(), User{
		Email:    suffix + "@campus.br",
		Username: suffix,
		Password: "hashed",
	})
	require.NoError(t, err)

	return user
}

func mustCreateClub(t *testing.T, name string) Club {
	t.Helper()

	clubDAO := NewClubDAO(testDB)
	club, err := clubDAO.Insert(context.Background(), Club{
		Name:        name,
		Description: "test club",
		Category:    "cultura",
	})
	require.NoError(t, err)

	return club
}

func mustCreateEvent(t *testing.T, clubID uint, vagas int, date time.Time) Event {
	t.Helper()

	eventDAO := NewEventDAO(testDB)
	event, err := eventDAO.Insert(context.Background(), Event{
		Title:       fmt.Sprintf("event-%d", time.Now().UnixNano()),
		Description: "test event",
		Vagas:       vagas,
		Date:        date,
		ClubID:      clubID,
	})
	require.NoError(t, err)

	return event
}

func TestUserDAO_Insert_RanksAndUniqueness(t *testing.T) {
	userDAO := NewUserDAO(testDB)

	first, firstTotal, err := userDAO.Insert(context.Background(), User{
		Email:    "rank-a@campus.br",
		Username: "rank-a",
		Password: "hashed",
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, secondTotal, err := userDAO.Insert(context.Background(), User{
		Email:    "rank-b@campus.br",
		Username: "rank-b",
		Password: "hashed",
	})
	require.NoError(t, err)
	assert.Equal(t, firstTotal+1, secondTotal)

	_, _, err = userDAO.Insert(context.Background(), User{
		Email:    "rank-a@campus.br",
		Username: "rank-c",
		Password: "hashed",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	_, _, err = userDAO.Insert(context.Background(), User{
		Email:    "rank-d@campus.br",
		Username: "rank-a",
		Password: "hashed",
	})
	assert.ErrorIs(t, err, ErrUserUsernameExists)
}

func TestEventDAO_InsertEnrollment_Idempotent(t *testing.T) {
	user := mustCreateUser(t, "enroll-once")
	club := mustCreateClub(t, "Clube Enroll Once")
	event := mustCreateEvent(t, club.ID, 10, time.Now().Add(72*time.Hour))

	eventDAO := NewEventDAO(testDB)

	require.NoError(t, eventDAO.InsertEnrollment(context.Background(), user.ID, event.ID))

	err := eventDAO.InsertEnrollment(context.Background(), user.ID, event.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	count, err := eventDAO.CountEnrollments(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// Twenty goroutines race for five seats against the real database. The
// row lock must admit exactly five and the committed count must equal
// the capacity.
func TestEventDAO_InsertEnrollment_ConcurrentCapacity(t *testing.T) {
	const seats = 5
	const callers = 20

	club := mustCreateClub(t, "Clube Concorrência")
	event := mustCreateEvent(t, club.ID, seats, time.Now().Add(72*time.Hour))

	users := make([]User, callers)
	for i := range users {
		users[i] = mustCreateUser(t, fmt.Sprintf("racer-%d", i))
	}

	eventDAO := NewEventDAO(testDB)

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = eventDAO.InsertEnrollment(context.Background(), users[i].ID, event.ID)
		}(i)
	}
	wg.Wait()

	var ok, full int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrCapacityExceeded):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, seats, ok)
	assert.Equal(t, callers-seats, full)

	count, err := eventDAO.CountEnrollments(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(seats), count)
}

func TestClubDAO_InsertMembership_Idempotent(t *testing.T) {
	user := mustCreateUser(t, "member-once")
	club := mustCreateClub(t, "Clube Member Once")

	clubDAO := NewClubDAO(testDB)

	require.NoError(t, clubDAO.InsertMembership(context.Background(), user.ID, club.ID))

	err := clubDAO.InsertMembership(context.Background(), user.ID, club.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)

	count, err := clubDAO.CountMembers(context.Background(), club.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClubDAO_FindRanked_Order(t *testing.T) {
	clubDAO := NewClubDAO(testDB)

	a := mustCreateClub(t, "Rank Astronomia")
	b := mustCreateClub(t, "Rank Botânica")
	c := mustCreateClub(t, "Rank Capoeira")

	members := make([]User, 3)
	for i := range members {
		members[i] = mustCreateUser(t, fmt.Sprintf("ranker-%d", i))
	}

	// Capoeira: 3 members. Astronomia and Botânica: 2 each.
	for _, u := range members {
		require.NoError(t, clubDAO.InsertMembership(context.Background(), u.ID, c.ID))
	}
	for _, u := range members[:2] {
		require.NoError(t, clubDAO.InsertMembership(context.Background(), u.ID, a.ID))
		require.NoError(t, clubDAO.InsertMembership(context.Background(), u.ID, b.ID))
	}

	ranked, err := clubDAO.FindRanked(context.Background())
	require.NoError(t, err)

	positions := make(map[uint]int)
	counts := make(map[uint]int64)
	for i, r := range ranked {
		positions[r.ID] = i
		counts[r.ID] = r.MemberCount
	}

	assert.Equal(t, int64(3), counts[c.ID])
	assert.Equal(t, int64(2), counts[a.ID])
	assert.Equal(t, int64(2), counts[b.ID])
	assert.Less(t, positions[c.ID], positions[a.ID])
	// Equal counts break ties alphabetically.
	assert.Less(t, positions[a.ID], positions[b.ID])
}

func TestBadgeDAO_InsertUserBadge_Idempotent(t *testing.T) {
	user := mustCreateUser(t, "badge-once")

	badgeDAO := NewBadgeDAO(testDB)
	badge, err := badgeDAO.FindByName(context.Background(), "Membro Pioneiro")
	require.NoError(t, err)

	newly, err := badgeDAO.InsertUserBadge(context.Background(), user.ID, badge.ID)
	require.NoError(t, err)
	assert.True(t, newly)

	newly, err = badgeDAO.InsertUserBadge(context.Background(), user.ID, badge.ID)
	require.NoError(t, err)
	assert.False(t, newly)

	badges, err := badgeDAO.FindByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
}

func TestUserDAO_DeleteCascade(t *testing.T) {
	ctx := context.Background()

	user := mustCreateUser(t, "cascade-victim")
	other := mustCreateUser(t, "cascade-bystander")
	club := mustCreateClub(t, "Clube Cascade")
	event := mustCreateEvent(t, club.ID, 10, time.Now().Add(72*time.Hour))

	clubDAO := NewClubDAO(testDB)
	eventDAO := NewEventDAO(testDB)
	badgeDAO := NewBadgeDAO(testDB)
	forumDAO := NewForumDAO(testDB)
	userDAO := NewUserDAO(testDB)

	// The user leads the club, belongs to it, is enrolled, holds a badge
	// and runs a topic another user has replied to.
	require.NoError(t, testDB.Model(&Club{}).Where("id = ?", club.ID).Update("leader_id", user.ID).Error)
	require.NoError(t, clubDAO.InsertMembership(ctx, user.ID, club.ID))
	require.NoError(t, eventDAO.InsertEnrollment(ctx, user.ID, event.ID))

	badge, err := badgeDAO.FindByName(ctx, "Explorador de Clubes")
	require.NoError(t, err)
	_, err = badgeDAO.InsertUserBadge(ctx, user.ID, badge.ID)
	require.NoError(t, err)

	topic, err := forumDAO.InsertTopic(ctx, ForumTopic{
		Title:   "Tópico do usuário",
		Content: "conteúdo",
		UserID:  user.ID,
	})
	require.NoError(t, err)
	_, err = forumDAO.InsertPost(ctx, ForumPost{
		Content: "resposta de outro usuário",
		UserID:  other.ID,
		TopicID: topic.ID,
	})
	require.NoError(t, err)

	require.NoError(t, userDAO.DeleteCascade(ctx, user.ID))

	_, err = userDAO.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	memberCount, err := clubDAO.CountMembers(ctx, club.ID)
	require.NoError(t, err)
	assert.Zero(t, memberCount)

	enrollCount, err := eventDAO.CountEnrollments(ctx, event.ID)
	require.NoError(t, err)
	assert.Zero(t, enrollCount)

	badges, err := badgeDAO.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, badges)

	_, err = forumDAO.FindTopicByID(ctx, topic.ID)
	assert.ErrorIs(t, err, ErrTopicNotFound)

	// Replies under the user's topics go with the topics.
	posts, err := forumDAO.FindPostsByTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)

	// The club survives with leadership cleared.
	survivor, err := clubDAO.FindByID(ctx, club.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.LeaderID)

	// The bystander is untouched.
	_, err = userDAO.FindByID(ctx, other.ID)
	assert.NoError(t, err)
}

func TestUserDAO_DeleteCascade_UnknownUser(t *testing.T) {
	userDAO := NewUserDAO(testDB)

	err := userDAO.DeleteCascade(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
