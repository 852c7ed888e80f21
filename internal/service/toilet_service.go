package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"toiletfinder/internal/auth"
	apperrors "toiletfinder/internal/errors"
	"toiletfinder/internal/logging"
	"toiletfinder/internal/model"
	"toiletfinder/internal/repository"
	"toiletfinder/internal/validation"
)

// AddToiletInput holds raw, unvalidated toilet fields as submitted.
type AddToiletInput struct {
	Latitude       string
	Longitude      string
	Description    string
	Accessible     bool
	HasToiletPaper bool
	Cleanliness    string
}

// AddReviewInput holds raw, unvalidated review fields as submitted.
type AddReviewInput struct {
	ToiletID       uint
	Accessible     bool
	HasToiletPaper bool
	Cleanliness    string
	Comment        string
}

// ToiletService handles contributions: new toilets and reviews.
type ToiletService interface {
	AddToilet(ctx context.Context, actor *auth.Identity, in AddToiletInput) (*model.Toilet, error)
	AddReview(ctx context.Context, actor *auth.Identity, in AddReviewInput) (*model.Review, error)
}

type toiletService struct {
	store  repository.Store
	logger *logrus.Logger
}

// NewToiletService creates a new toilet service.
func NewToiletService(store repository.Store, logger *logrus.Logger) ToiletService {
	return &toiletService{store: store, logger: logger}
}

// AddToilet validates and stores a new toilet owned by actor.
func (s *toiletService) AddToilet(ctx context.Context, actor *auth.Identity, in AddToiletInput) (*model.Toilet, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	lat, lng, err := validation.ValidateCoordinates(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}

	description := validation.Sanitize(in.Description, validation.MaxTextLength)
	if description == "" {
		return nil, apperrors.ErrEmptyDescription
	}

	cleanliness, err := validation.ValidateCleanliness(in.Cleanliness)
	if err != nil {
		return nil, err
	}

	toilet := &model.Toilet{
		Latitude:       lat,
		Longitude:      lng,
		Description:    description,
		Accessible:     in.Accessible,
		HasToiletPaper: in.HasToiletPaper,
		Cleanliness:    cleanliness,
		UserID:         actor.UserID,
	}
	if err := s.store.Toilets().Create(ctx, toilet); err != nil {
		logging.LogError(s.logger, "create toilet failed", err, logrus.Fields{"user_id": actor.UserID})
		return nil, fmt.Errorf("create toilet: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"toilet_id": toilet.ID, "user_id": actor.UserID}).Info("toilet added")
	return toilet, nil
}

// AddReview validates and stores a review of an existing toilet. The lookup
// and the insert share one transaction.
func (s *toiletService) AddReview(ctx context.Context, actor *auth.Identity, in AddReviewInput) (*model.Review, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	var review *model.Review
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		toilet, err := tx.Toilets().FindByID(ctx, in.ToiletID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrToiletNotFound
			}
			return fmt.Errorf("find toilet: %w", err)
		}

		cleanliness, err := validation.ValidateCleanliness(in.Cleanliness)
		if err != nil {
			return err
		}

		review = &model.Review{
			ToiletID:       toilet.ID,
			UserID:         actor.UserID,
			Accessible:     in.Accessible,
			HasToiletPaper: in.HasToiletPaper,
			Cleanliness:    cleanliness,
			Comment:        validation.Sanitize(in.Comment, validation.MaxTextLength),
		}
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			logging.LogError(s.logger, "add review failed", err, logrus.Fields{"toilet_id": in.ToiletID, "user_id": actor.UserID})
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"review_id": review.ID, "toilet_id": review.ToiletID, "user_id": actor.UserID}).Info("review added")
	return review, nil
}
