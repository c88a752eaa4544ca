package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrBreweryNotFound = errors.New("brewery not found")

func (r *Repository) GetBreweryByID(ctx context.Context, id uint) (*model.Brewery, error) {
	var brewery model.Brewery

	result := r.DB.WithContext(ctx).Preload("Beers").First(&brewery, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBreweryNotFound
		}

		return nil, result.Error
	}

	return &brewery, nil
}

func (r *Repository) GetBreweryByName(ctx context.Context, name string) (*model.Brewery, error) {
	var brewery model.Brewery

	result := r.DB.WithContext(ctx).Where("name = ?", name).First(&brewery)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBreweryNotFound
		}

		return nil, result.Error
	}

	return &brewery, nil
}

// ListBreweries returns a bounded page; an empty query leaves the page
// unfiltered.
func (r *Repository) ListBreweries(ctx context.Context, query string, limit int) ([]*model.Brewery, error) {
	var breweries []*model.Brewery

	tx := r.DB.WithContext(ctx)
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("name ILIKE ? OR locality ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	result := tx.Order("name").Limit(clampLimit(limit)).Find(&breweries)
	if result.Error != nil {
		return nil, result.Error
	}

	return breweries, nil
}

func (r *Repository) ListAllBreweries(ctx context.Context) ([]*model.Brewery, error) {
	var breweries []*model.Brewery

	if result := r.DB.WithContext(ctx).Order("name").Find(&breweries); result.Error != nil {
		return nil, result.Error
	}

	return breweries, nil
}

// AddBrewery inserts by name or returns the existing row, so seeders can
// re-run safely.
func (r *Repository) AddBrewery(ctx context.Context, brewery model.Brewery) (*model.Brewery, error) {
	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&brewery)
	if result.Error != nil {
		return nil, result.Error
	}

	if brewery.ID == 0 {
		if result := r.DB.WithContext(ctx).Where("name = ?", brewery.Name).First(&brewery); result.Error != nil {
			return nil, result.Error
		}
	}

	return &brewery, nil
}

func (r *Repository) UpdateBrewery(ctx context.Context, brewery *model.Brewery) error {
	return r.DB.WithContext(ctx).Save(brewery).Error
}
