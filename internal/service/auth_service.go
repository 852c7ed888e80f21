package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"toiletfinder/internal/auth"
	apperrors "toiletfinder/internal/errors"
	"toiletfinder/internal/logging"
	"toiletfinder/internal/model"
	"toiletfinder/internal/repository"
	"toiletfinder/internal/validation"
)

const bcryptCost = 10

// LoginResult carries the signed token and the identity it represents.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Identity    *auth.Identity
}

// AuthService handles account registration and sessions.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout ends the identity's session. It never fails; storage problems are logged.
	Logout(ctx context.Context, identity *auth.Identity)
}

type authService struct {
	store      repository.Store
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	logger     *logrus.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(store repository.Store, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, logger *logrus.Logger) AuthService {
	return &authService{
		store:      store,
		jwtService: jwtService,
		tokenStore: tokenStore,
		logger:     logger,
		now:        time.Now,
	}
}

// Signup validates the registration fields and creates the user. Checks run
// in a fixed order so the first failing rule is the one reported.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	if !validation.ValidateUsername(username) {
		return nil, apperrors.ErrInvalidUsername
	}
	if !validation.ValidateEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	users := s.store.Users()
	if _, err := users.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		logging.LogError(s.logger, "create user failed", err, logrus.Fields{"username": username})
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

// Login authenticates a user and issues an access token.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	if err := s.tokenStore.StoreSession(ctx, claims.ID, user.ID, s.jwtService.TTL()); err != nil {
		s.logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Warn("session not recorded")
	}

	identity := claims.Identity()
	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   identity.ExpiresAt,
		Identity:    identity,
	}, nil
}

// Logout revokes the identity's token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, identity *auth.Identity) {
	if identity == nil || identity.TokenID == "" {
		return
	}

	remaining := identity.ExpiresAt.Sub(s.now())
	if err := s.tokenStore.RevokeSession(ctx, identity.TokenID, remaining); err != nil {
		s.logger.WithFields(logrus.Fields{"user_id": identity.UserID, "error": err.Error()}).Warn("session revocation failed")
		return
	}
	s.logger.WithField("user_id", identity.UserID).Debug("user logged out")
}
