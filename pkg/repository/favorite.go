package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"fermenta.to/Fermenta/pkg/model"
)

// AddFavorite is a no-op when the favorite already exists.
func (r *Repository) AddFavorite(ctx context.Context, userID uint, itemType model.ItemType, itemID uint) (*model.Favorite, error) {
	favorite := model.Favorite{UserID: userID, ItemType: itemType, ItemID: itemID}

	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_type"}, {Name: "item_id"}},
		DoNothing: true,
	}).Create(&favorite)
	if result.Error != nil {
		return nil, result.Error
	}

	return &favorite, nil
}

// RemoveFavorite deletes nothing when the favorite is absent; removal is
// idempotent.
func (r *Repository) RemoveFavorite(ctx context.Context, userID uint, itemType model.ItemType, itemID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Delete(&model.Favorite{}).Error
}

func (r *Repository) ListFavorites(ctx context.Context, userID uint) ([]*model.Favorite, error) {
	var favorites []*model.Favorite

	result := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&favorites)
	if result.Error != nil {
		return nil, result.Error
	}

	return favorites, nil
}
