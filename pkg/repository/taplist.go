package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrTapEntryNotFound = errors.New("tap entry not found")

// GetTapList returns the visible, active draft list for a pub.
func (r *Repository) GetTapList(ctx context.Context, pubID uint) ([]*model.TapEntry, error) {
	var entries []*model.TapEntry

	result := r.DB.WithContext(ctx).
		Joins("Beer").
		Preload("Beer.Brewery").
		Preload("Beer.Style").
		Where("tap_entries.pub_id = ? AND tap_entries.active = ? AND tap_entries.visible = ?", pubID, true, true).
		Order("tap_entries.tap_number").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (r *Repository) GetTapEntryByID(ctx context.Context, id uint) (*model.TapEntry, error) {
	var entry model.TapEntry

	result := r.DB.WithContext(ctx).Joins("Beer").First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTapEntryNotFound
		}

		return nil, result.Error
	}

	return &entry, nil
}

// AddTapEntry keeps at most one active entry per tap number for a pub.
// AutoMigrate cannot express the partial unique index, so any active holder
// of the tap number is retired inside the same transaction.
func (r *Repository) AddTapEntry(ctx context.Context, entry model.TapEntry) (*model.TapEntry, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if entry.TapNumber > 0 {
			result := tx.Model(&model.TapEntry{}).
				Where("pub_id = ? AND tap_number = ? AND active = ?", entry.PubID, entry.TapNumber, true).
				Update("active", false)
			if result.Error != nil {
				return result.Error
			}
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *Repository) UpdateTapEntry(ctx context.Context, entry *model.TapEntry) error {
	return r.DB.WithContext(ctx).Save(entry).Error
}

func (r *Repository) DeleteTapEntry(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.TapEntry{}, id).Error
}
