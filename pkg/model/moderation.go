package model

import "gorm.io/gorm"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is user-submitted and held for moderation; only approved reviews
// are publicly visible.
type Review struct {
	gorm.Model
	UserID   uint
	ItemType ItemType
	ItemID   uint
	Rating   int
	Body     string
	Status   ReviewStatus `gorm:"default:pending"`

	User User `gorm:"foreignKey:UserID"`
}

type ReportStatus string

const (
	ReportOpen      ReportStatus = "open"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type Report struct {
	gorm.Model
	ReporterID uint
	ItemType   ItemType
	ItemID     uint
	Reason     string
	Status     ReportStatus `gorm:"default:open"`

	Reporter User `gorm:"foreignKey:ReporterID"`
}
