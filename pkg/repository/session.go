package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

var ErrSessionNotFound = errors.New("session not found")

func (r *Repository) CreateSession(ctx context.Context, userID uint, ttl time.Duration) (*model.Session, error) {
	session := model.Session{
		Token:     uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	if result := r.DB.WithContext(ctx).Create(&session); result.Error != nil {
		return nil, result.Error
	}

	return &session, nil
}

func (r *Repository) GetSessionByToken(ctx context.Context, token uuid.UUID) (*model.Session, error) {
	var session model.Session

	result := r.DB.WithContext(ctx).Joins("User").Where("token = ?", token).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}

		return nil, result.Error
	}

	return &session, nil
}

func (r *Repository) DeleteSession(ctx context.Context, token uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}

// DeleteExpiredSessions is called lazily whenever an expired session is
// seen; there is no background sweeper.
func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	return r.DB.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.Session{}).Error
}
