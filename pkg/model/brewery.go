package model

import (
	"gorm.io/gorm"
)

type Brewery struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex"`
	Locality    string
	Region      *string
	Country     string
	Description string
	LogoURL     string
	WebsiteURL  string
	Rating      float64 `gorm:"default:0"`

	Beers []Beer
}
