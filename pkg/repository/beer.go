package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrBeerNotFound = errors.New("beer not found")

func (r *Repository) GetBeerByID(ctx context.Context, id uint) (*model.Beer, error) {
	var beer model.Beer

	result := r.DB.WithContext(ctx).Joins("Brewery").Joins("Style").First(&beer, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBeerNotFound
		}

		return nil, result.Error
	}

	return &beer, nil
}

func (r *Repository) GetBeerByName(ctx context.Context, name string, breweryID uint) (*model.Beer, error) {
	var beer model.Beer

	result := r.DB.WithContext(ctx).Where("name = ? AND brewery_id = ?", name, breweryID).First(&beer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBeerNotFound
		}

		return nil, result.Error
	}

	return &beer, nil
}

func (r *Repository) ListBeers(ctx context.Context, query string, limit int) ([]*model.Beer, error) {
	var beers []*model.Beer

	tx := r.DB.WithContext(ctx).Joins("Brewery").Joins("Style")
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where(`beers.name ILIKE ? OR beers.description ILIKE ? OR "Brewery".name ILIKE ?`, pattern, pattern, pattern)
	}

	result := tx.Order("beers.name").Limit(clampLimit(limit)).Find(&beers)
	if result.Error != nil {
		return nil, result.Error
	}

	return beers, nil
}

func (r *Repository) AddBeer(ctx context.Context, beer model.Beer) (*model.Beer, error) {
	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "brewery_id"}},
		UpdateAll: true,
	}).Create(&beer)

	if result.Error != nil {
		return nil, result.Error
	}

	return &beer, nil
}

// AddBeerWithBrewery resolves the brewery by name inside the same
// transaction as the beer insert, so a mid-flight failure cannot leave an
// orphan brewery.
func (r *Repository) AddBeerWithBrewery(ctx context.Context, beer model.Beer, breweryName string) (*model.Beer, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var brewery model.Brewery

		if err := tx.Where("name = ?", breweryName).FirstOrCreate(&brewery, model.Brewery{Name: breweryName}).Error; err != nil {
			return err
		}

		beer.BreweryID = brewery.ID

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "brewery_id"}},
			UpdateAll: true,
		}).Create(&beer).Error
	})
	if err != nil {
		return nil, err
	}

	return &beer, nil
}

func (r *Repository) AddBeerStyle(ctx context.Context, style string) (*model.BeerStyle, error) {
	beerStyle := model.BeerStyle{Name: style}
	if result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&beerStyle); result.Error != nil {
		return nil, result.Error
	}

	if beerStyle.ID == 0 {
		if result := r.DB.WithContext(ctx).Where("name = ?", style).First(&beerStyle); result.Error != nil {
			return nil, result.Error
		}
	}

	return &beerStyle, nil
}

func (r *Repository) UpdateBeer(ctx context.Context, beer *model.Beer) error {
	return r.DB.WithContext(ctx).Save(beer).Error
}
