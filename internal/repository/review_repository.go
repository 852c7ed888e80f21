package repository

import (
	"context"

	"gorm.io/gorm"

	"toiletfinder/internal/model"
)

// ReviewRepository defines persistence operations for reviews. Reviews are
// never updated or deleted.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	// ListByToilet returns a toilet's reviews in creation order.
	ListByToilet(ctx context.Context, toiletID uint) ([]model.Review, error)
	// ListByToilets returns the reviews of several toilets grouped by toilet id,
	// each group in creation order.
	ListByToilets(ctx context.Context, toiletIDs []uint) (map[uint][]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ListByToilet(ctx context.Context, toiletID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("toilet_id = ?", toiletID).
		Order("created_at, id").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByToilets(ctx context.Context, toiletIDs []uint) (map[uint][]model.Review, error) {
	grouped := make(map[uint][]model.Review, len(toiletIDs))
	if len(toiletIDs) == 0 {
		return grouped, nil
	}

	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("toilet_id IN ?", toiletIDs).
		Order("created_at, id").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	for _, review := range reviews {
		grouped[review.ToiletID] = append(grouped[review.ToiletID], review)
	}
	return grouped, nil
}
