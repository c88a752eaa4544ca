package model

import (
	"gorm.io/gorm"
)

// Pub is a venue in the directory. Unclaimed pubs have a nil owner; a user
// may own several pubs.
type Pub struct {
	gorm.Model
	Name          string
	StreetAddress string
	City          string
	Region        string
	PostalCode    string
	Latitude      *float64
	Longitude     *float64
	Phone         string
	Email         string
	Website       string
	Description   string
	ImageURL      string
	LogoURL       string
	CoverURL      string
	Rating        float64      `gorm:"default:0"`
	Active        bool         `gorm:"default:true"`
	OpeningHours  OpeningHours `gorm:"serializer:json"`
	OwnerID       *uint
	VATNumber     string
	BusinessName  string
	FacebookURL   string
	InstagramURL  string

	Owner *User `gorm:"foreignKey:OwnerID"`
}

// TapEntry puts a beer on draft at a pub. Prices are stored canonically as a
// sized-price list; the three scalar columns are a migration source for rows
// that predate it.
type TapEntry struct {
	gorm.Model
	PubID       uint
	BeerID      uint
	TapNumber   int
	Prices      PriceList
	PriceSmall  *float64
	PriceMedium *float64
	PriceLarge  *float64
	Active      bool `gorm:"default:true"`
	Visible     bool `gorm:"default:true"`

	Pub  Pub  `gorm:"foreignKey:PubID"`
	Beer Beer `gorm:"foreignKey:BeerID"`
}

// DisplayPrices resolves the entry's price list, falling back to the legacy
// scalar columns for unmigrated rows. Non-positive prices are dropped.
func (e *TapEntry) DisplayPrices() PriceList {
	if len(e.Prices) > 0 {
		return e.Prices.positive()
	}

	return legacyPrices(e.PriceSmall, e.PriceMedium, e.PriceLarge)
}

// BottleEntry lists a bottled beer in a pub's cantina.
type BottleEntry struct {
	gorm.Model
	PubID    uint
	BeerID   uint
	Price    float64
	Size     BottleSize
	Quantity *int
	Visible  bool `gorm:"default:true"`

	Pub  Pub  `gorm:"foreignKey:PubID"`
	Beer Beer `gorm:"foreignKey:BeerID"`
}

// PublicanRequest is a user's application to become a pub owner. Approval
// grants the role and creates the pub in one step.
type PublicanRequest struct {
	gorm.Model
	UserID        uint
	PubName       string
	StreetAddress string
	City          string
	Region        string
	Phone         string
	VATNumber     string
	BusinessName  string
	Status        RequestStatus `gorm:"default:pending"`

	User User `gorm:"foreignKey:UserID"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)
