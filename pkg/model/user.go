package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UUID            uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Email           *string   `gorm:"uniqueIndex"`
	PasswordHash    *string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Roles           RoleSet `gorm:"serializer:json"`
	ActiveRole      Role
	EmailVerified   bool
}

// HasRole reports whether the user carries the role in their role set or is
// currently operating as it.
func (u *User) HasRole(role Role) bool {
	return u.Roles.Has(role) || u.ActiveRole == role
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsPubOwner is true for admins too; the back office can act on any pub.
func (u *User) IsPubOwner() bool {
	return u.HasRole(RolePubOwner) || u.IsAdmin()
}

// OAuthAccount links a user to an external identity provider. Tokens are
// refreshed on every login.
type OAuthAccount struct {
	gorm.Model
	Provider     string `gorm:"uniqueIndex:idx_oauth_unique"`
	Subject      string `gorm:"uniqueIndex:idx_oauth_unique"`
	UserID       uint
	AccessToken  string
	RefreshToken *string

	User User `gorm:"foreignKey:UserID"`
}

// Session is a server-side login session. The token travels in a cookie.
type Session struct {
	gorm.Model
	Token     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	UserID    uint
	ExpiresAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
