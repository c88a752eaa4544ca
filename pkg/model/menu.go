package model

import "gorm.io/gorm"

type MenuCategory struct {
	gorm.Model
	PubID    uint
	Name     string
	Position int

	Items []MenuItem `gorm:"foreignKey:CategoryID"`
}

// MenuItem carries free-form allergen strings; the set is open-ended and
// curated by owners, so no enum here.
type MenuItem struct {
	gorm.Model
	CategoryID  uint
	Name        string
	Description string
	Price       float64
	Allergens   []string `gorm:"serializer:json"`
	Available   bool     `gorm:"default:true"`
	Visible     bool     `gorm:"default:true"`
	Position    int
}
