package auth

import (
	"context"
	"strconv"
	"time"

	"toiletfinder/internal/cache"
)

const (
	sessionKeyPrefix = "session:"
	revokedKeyPrefix = "revoked:"
)

// TokenStoreInterface defines the interface for session storage operations.
type TokenStoreInterface interface {
	StoreSession(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore tracks issued sessions and revoked token ids in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreSession records an issued token id for the lifetime of the token.
func (s *TokenStore) StoreSession(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	return s.cache.Set(ctx, sessionKeyPrefix+tokenID, []byte(strconv.FormatUint(uint64(userID), 10)), ttl)
}

// RevokeSession drops the session and blacklists the token id until it would
// have expired anyway.
func (s *TokenStore) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.cache.Delete(ctx, sessionKeyPrefix+tokenID); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether the token id has been logged out.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}
