package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrPubNotFound = errors.New("pub not found")

func (r *Repository) GetPubByID(ctx context.Context, id uint) (*model.Pub, error) {
	var pub model.Pub

	result := r.DB.WithContext(ctx).Joins("Owner").First(&pub, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPubNotFound
		}

		return nil, result.Error
	}

	return &pub, nil
}

func (r *Repository) GetPubByName(ctx context.Context, name string) (*model.Pub, error) {
	var pub model.Pub

	result := r.DB.WithContext(ctx).Where("name = ?", name).First(&pub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPubNotFound
		}

		return nil, result.Error
	}

	return &pub, nil
}

// ListPubs returns active pubs only; query matches name, city and
// description, and city narrows further when given.
func (r *Repository) ListPubs(ctx context.Context, query, city string, limit int) ([]*model.Pub, error) {
	var pubs []*model.Pub

	tx := r.DB.WithContext(ctx).Where("active = ?", true)

	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("name ILIKE ? OR city ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	if city != "" {
		tx = tx.Where("city ILIKE ?", city)
	}

	result := tx.Order("name").Limit(clampLimit(limit)).Find(&pubs)
	if result.Error != nil {
		return nil, result.Error
	}

	return pubs, nil
}

func (r *Repository) GetPubsForOwner(ctx context.Context, ownerID uint) ([]*model.Pub, error) {
	var pubs []*model.Pub

	result := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name").Find(&pubs)
	if result.Error != nil {
		return nil, result.Error
	}

	return pubs, nil
}

func (r *Repository) AddPub(ctx context.Context, pub model.Pub) (*model.Pub, error) {
	if result := r.DB.WithContext(ctx).Create(&pub); result.Error != nil {
		return nil, result.Error
	}

	return &pub, nil
}

func (r *Repository) UpdatePub(ctx context.Context, pub *model.Pub) error {
	return r.DB.WithContext(ctx).Save(pub).Error
}

func (r *Repository) DeletePub(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Pub{}, id).Error
}
