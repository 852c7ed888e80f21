package repository

import (
	"context"

	"gorm.io/gorm"

	"toiletfinder/internal/model"
)

// ToiletRepository defines persistence operations for toilets.
type ToiletRepository interface {
	Create(ctx context.Context, toilet *model.Toilet) error
	FindByID(ctx context.Context, id uint) (*model.Toilet, error)
	// List returns every toilet ordered by id.
	List(ctx context.Context) ([]model.Toilet, error)
}

type toiletRepository struct {
	db *gorm.DB
}

// NewToiletRepository builds a GORM-backed repository.
func NewToiletRepository(db *gorm.DB) ToiletRepository {
	return &toiletRepository{db: db}
}

func (r *toiletRepository) Create(ctx context.Context, toilet *model.Toilet) error {
	return r.db.WithContext(ctx).Create(toilet).Error
}

func (r *toiletRepository) FindByID(ctx context.Context, id uint) (*model.Toilet, error) {
	var toilet model.Toilet
	if err := r.db.WithContext(ctx).First(&toilet, id).Error; err != nil {
		return nil, err
	}
	return &toilet, nil
}

func (r *toiletRepository) List(ctx context.Context) ([]model.Toilet, error) {
	var toilets []model.Toilet
	if err := r.db.WithContext(ctx).Order("id").Find(&toilets).Error; err != nil {
		return nil, err
	}
	return toilets, nil
}
