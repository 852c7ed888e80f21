package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"toiletfinder/internal/db"
	"toiletfinder/internal/logging"
	"toiletfinder/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	gormDB, err := db.Open(db.DriverSQLite, dsn, logging.Discard())
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func seedUser(t *testing.T, s Store, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Users().Create(context.Background(), user))
	return user
}

func seedToilet(t *testing.T, s Store, userID uint, cleanliness int) *model.Toilet {
	t.Helper()
	toilet := &model.Toilet{Latitude: 42.6977, Longitude: 23.3219, Description: "Central station", Cleanliness: cleanliness, UserID: userID}
	require.NoError(t, s.Toilets().Create(context.Background(), toilet))
	return toilet
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	found, err := s.Users().FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	found, err = s.Users().FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)

	_, err = s.Users().FindByUsername(ctx, "carol")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = s.Users().FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	users, err := s.Users().FindByIDs(ctx, []uint{alice.ID, bob.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = s.Users().FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepositoryRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))
	seedUser(t, s, "alice")

	err := s.Users().Create(ctx, &model.User{Username: "alice", Email: "other@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = s.Users().Create(ctx, &model.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestToiletRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))
	owner := seedUser(t, s, "owner")
	first := seedToilet(t, s, owner.ID, 4)
	second := seedToilet(t, s, owner.ID, 2)

	found, err := s.Toilets().FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Cleanliness)
	assert.Equal(t, owner.ID, found.UserID)
	assert.False(t, found.CreatedAt.IsZero())

	toilets, err := s.Toilets().List(ctx)
	require.NoError(t, err)
	require.Len(t, toilets, 2)
	assert.Equal(t, first.ID, toilets[0].ID)
	assert.Equal(t, second.ID, toilets[1].ID)

	_, err = s.Toilets().FindByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestToiletRepositoryConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))
	owner := seedUser(t, s, "owner")

	err := s.Toilets().Create(ctx, &model.Toilet{Latitude: 1, Longitude: 1, Description: "x", Cleanliness: 9, UserID: owner.ID})
	assert.Error(t, err, "cleanliness outside 1-5 is rejected")

	err = s.Toilets().Create(ctx, &model.Toilet{Latitude: 1, Longitude: 1, Description: "x", Cleanliness: 3, UserID: 9999})
	assert.Error(t, err, "unknown owner is rejected")
}

func TestReviewRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))
	owner := seedUser(t, s, "owner")
	reviewer := seedUser(t, s, "reviewer")
	a := seedToilet(t, s, owner.ID, 3)
	b := seedToilet(t, s, owner.ID, 5)
	empty := seedToilet(t, s, owner.ID, 1)

	for _, r := range []*model.Review{
		{ToiletID: a.ID, UserID: reviewer.ID, Cleanliness: 5, Comment: "first"},
		{ToiletID: b.ID, UserID: reviewer.ID, Cleanliness: 1},
		{ToiletID: a.ID, UserID: owner.ID, Cleanliness: 4, Comment: "second"},
	} {
		require.NoError(t, s.Reviews().Create(ctx, r))
	}

	reviews, err := s.Reviews().ListByToilet(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "first", reviews[0].Comment)
	assert.Equal(t, "second", reviews[1].Comment)

	grouped, err := s.Reviews().ListByToilets(ctx, []uint{a.ID, b.ID, empty.ID})
	require.NoError(t, err)
	assert.Len(t, grouped[a.ID], 2)
	assert.Len(t, grouped[b.ID], 1)
	assert.Empty(t, grouped[empty.ID])

	grouped, err = s.Reviews().ListByToilets(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, grouped)

	err = s.Reviews().Create(ctx, &model.Review{ToiletID: 9999, UserID: reviewer.ID, Cleanliness: 3})
	assert.Error(t, err, "review of unknown toilet is rejected")
}

func TestStoreWithTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))
	owner := seedUser(t, s, "owner")
	toilet := seedToilet(t, s, owner.ID, 3)
	errAbort := errors.New("abort")

	err := s.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Reviews().Create(ctx, &model.Review{ToiletID: toilet.ID, UserID: owner.ID, Cleanliness: 4}); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	reviews, err := s.Reviews().ListByToilet(ctx, toilet.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews, "rolled back")

	err = s.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		return tx.Reviews().Create(ctx, &model.Review{ToiletID: toilet.ID, UserID: owner.ID, Cleanliness: 4})
	})
	require.NoError(t, err)

	reviews, err = s.Reviews().ListByToilet(ctx, toilet.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
