package model

import "gorm.io/gorm"

type BeerStyle struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
}

// Beer always belongs to a brewery; the pair (name, brewery) is the natural
// key the seeders dedupe on.
type Beer struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex:idx_beer_unique"`
	BreweryID   uint   `gorm:"uniqueIndex:idx_beer_unique"`
	StyleID     uint
	ABV         *float64
	IBU         *uint64
	Description string
	ImageURL    string
	Color       string
	Bottled     bool

	Brewery Brewery   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Style   BeerStyle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
