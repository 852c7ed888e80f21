package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle, so a unit
// of work can span several of them.
type Store interface {
	Users() UserRepository
	Toilets() ToiletRepository
	Reviews() ReviewRepository
	// WithTransaction runs fn with a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db      *gorm.DB
	users   UserRepository
	toilets ToiletRepository
	reviews ReviewRepository
}

// NewStore builds a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &store{
		db:      db,
		users:   NewUserRepository(db),
		toilets: NewToiletRepository(db),
		reviews: NewReviewRepository(db),
	}
}

func (s *store) Users() UserRepository     { return s.users }
func (s *store) Toilets() ToiletRepository { return s.toilets }
func (s *store) Reviews() ReviewRepository { return s.reviews }

// WithTransaction executes a function within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStore(tx))
	})
}
