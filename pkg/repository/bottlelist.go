package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrBottleEntryNotFound = errors.New("bottle entry not found")

func (r *Repository) GetBottleList(ctx context.Context, pubID uint) ([]*model.BottleEntry, error) {
	var entries []*model.BottleEntry

	result := r.DB.WithContext(ctx).
		Joins("Beer").
		Preload("Beer.Brewery").
		Where("bottle_entries.pub_id = ? AND bottle_entries.visible = ?", pubID, true).
		Order(`"Beer".name`).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (r *Repository) GetBottleEntryByID(ctx context.Context, id uint) (*model.BottleEntry, error) {
	var entry model.BottleEntry

	result := r.DB.WithContext(ctx).Joins("Beer").First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBottleEntryNotFound
		}

		return nil, result.Error
	}

	return &entry, nil
}

func (r *Repository) AddBottleEntry(ctx context.Context, entry model.BottleEntry) (*model.BottleEntry, error) {
	if result := r.DB.WithContext(ctx).Create(&entry); result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

func (r *Repository) UpdateBottleEntry(ctx context.Context, entry *model.BottleEntry) error {
	return r.DB.WithContext(ctx).Save(entry).Error
}

func (r *Repository) DeleteBottleEntry(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.BottleEntry{}, id).Error
}
