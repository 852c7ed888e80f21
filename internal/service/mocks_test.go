package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toiletfinder/internal/model"
	"toiletfinder/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockToiletRepository is a mock implementation of ToiletRepository.
type MockToiletRepository struct {
	mock.Mock
}

func (m *MockToiletRepository) Create(ctx context.Context, toilet *model.Toilet) error {
	args := m.Called(ctx, toilet)
	return args.Error(0)
}

func (m *MockToiletRepository) FindByID(ctx context.Context, id uint) (*model.Toilet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Toilet), args.Error(1)
}

func (m *MockToiletRepository) List(ctx context.Context) ([]model.Toilet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Toilet), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByToilet(ctx context.Context, toiletID uint) ([]model.Review, error) {
	args := m.Called(ctx, toiletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByToilets(ctx context.Context, toiletIDs []uint) (map[uint][]model.Review, error) {
	args := m.Called(ctx, toiletIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint][]model.Review), args.Error(1)
}

// MockStore hands out the mock repositories and runs transactions inline.
type MockStore struct {
	users        *MockUserRepository
	toilets      *MockToiletRepository
	reviews      *MockReviewRepository
	transactions int
}

func newMockStore() *MockStore {
	return &MockStore{
		users:   &MockUserRepository{},
		toilets: &MockToiletRepository{},
		reviews: &MockReviewRepository{},
	}
}

func (m *MockStore) Users() repository.UserRepository     { return m.users }
func (m *MockStore) Toilets() repository.ToiletRepository { return m.toilets }
func (m *MockStore) Reviews() repository.ReviewRepository { return m.reviews }

func (m *MockStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	m.transactions++
	return fn(ctx, m)
}

func (m *MockStore) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.toilets.AssertExpectations(t)
	m.reviews.AssertExpectations(t)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreSession(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
