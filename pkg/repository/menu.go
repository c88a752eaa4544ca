package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var (
	ErrMenuCategoryNotFound = errors.New("menu category not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
)

// GetMenu returns the pub's category tree with visible items, both in
// display order.
func (r *Repository) GetMenu(ctx context.Context, pubID uint) ([]*model.MenuCategory, error) {
	var categories []*model.MenuCategory

	result := r.DB.WithContext(ctx).
		Where("pub_id = ?", pubID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("visible = ?", true).Order("position")
		}).
		Order("position").
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (r *Repository) GetMenuCategoryByID(ctx context.Context, id uint) (*model.MenuCategory, error) {
	var category model.MenuCategory

	result := r.DB.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMenuCategoryNotFound
		}

		return nil, result.Error
	}

	return &category, nil
}

func (r *Repository) AddMenuCategory(ctx context.Context, category model.MenuCategory) (*model.MenuCategory, error) {
	if result := r.DB.WithContext(ctx).Create(&category); result.Error != nil {
		return nil, result.Error
	}

	return &category, nil
}

func (r *Repository) UpdateMenuCategory(ctx context.Context, category *model.MenuCategory) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

// DeleteMenuCategory removes the category and its items together.
func (r *Repository) DeleteMenuCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.MenuItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.MenuCategory{}, id).Error
	})
}

func (r *Repository) GetMenuItemByID(ctx context.Context, id uint) (*model.MenuItem, error) {
	var item model.MenuItem

	result := r.DB.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}

		return nil, result.Error
	}

	return &item, nil
}

func (r *Repository) AddMenuItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	if result := r.DB.WithContext(ctx).Create(&item); result.Error != nil {
		return nil, result.Error
	}

	return &item, nil
}

func (r *Repository) UpdateMenuItem(ctx context.Context, item *model.MenuItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *Repository) DeleteMenuItem(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}
