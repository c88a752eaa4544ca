package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrTastingNotFound = errors.New("tasting not found")

func (r *Repository) AddTasting(ctx context.Context, tasting model.Tasting) (*model.Tasting, error) {
	if result := r.DB.WithContext(ctx).Create(&tasting); result.Error != nil {
		return nil, result.Error
	}

	return &tasting, nil
}

func (r *Repository) GetTastingByID(ctx context.Context, id uint) (*model.Tasting, error) {
	var tasting model.Tasting

	result := r.DB.WithContext(ctx).Joins("Beer").Joins("Pub").First(&tasting, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTastingNotFound
		}

		return nil, result.Error
	}

	return &tasting, nil
}

func (r *Repository) ListTastingsForUser(ctx context.Context, userID uint) ([]*model.Tasting, error) {
	var tastings []*model.Tasting

	result := r.DB.WithContext(ctx).
		Joins("Beer").
		Joins("Pub").
		Preload("Beer.Brewery").
		Where("tastings.user_id = ?", userID).
		Order("tastings.tasted_at desc").
		Find(&tastings)
	if result.Error != nil {
		return nil, result.Error
	}

	return tastings, nil
}

func (r *Repository) UpdateTasting(ctx context.Context, tasting *model.Tasting) error {
	return r.DB.WithContext(ctx).Save(tasting).Error
}

func (r *Repository) DeleteTasting(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Tasting{}, id).Error
}
