package model

import (
	"time"

	"gorm.io/gorm"
)

// Favorite is a (user, item type, item id) tuple. The composite index keeps
// duplicate toggles from piling up rows.
type Favorite struct {
	gorm.Model
	UserID   uint     `gorm:"uniqueIndex:idx_favorite_unique"`
	ItemType ItemType `gorm:"uniqueIndex:idx_favorite_unique"`
	ItemID   uint     `gorm:"uniqueIndex:idx_favorite_unique"`
}

// Tasting is a user's personal log of having drunk a beer, optionally at a
// known pub.
type Tasting struct {
	gorm.Model
	UserID   uint
	BeerID   uint
	PubID    *uint
	Rating   int
	Format   string
	Notes    string
	TastedAt time.Time

	Beer Beer `gorm:"foreignKey:BeerID"`
	Pub  *Pub `gorm:"foreignKey:PubID"`
}
