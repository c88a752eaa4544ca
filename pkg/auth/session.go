package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/configs"
	"fermenta.to/Fermenta/pkg/model"
)

const (
	SessionCookie = "fermenta_session"
	SessionTTL    = 7 * 24 * time.Hour
)

type sessionRepository interface {
	CreateSession(ctx context.Context, userID uint, ttl time.Duration) (*model.Session, error)
	GetSessionByToken(ctx context.Context, token uuid.UUID) (*model.Session, error)
	DeleteSession(ctx context.Context, token uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}

type Manager struct {
	conf     *configs.Config
	sessions sessionRepository
	logger   *zap.Logger
}

func NewManager(conf *configs.Config, sessions sessionRepository, logger *zap.Logger) *Manager {
	return &Manager{conf: conf, sessions: sessions, logger: logger}
}

// IssueSession creates a server-side session and sets its cookie. The
// Secure flag follows the environment so local development works over
// plain HTTP.
func (m *Manager) IssueSession(c *gin.Context, userID uint) error {
	session, err := m.sessions.CreateSession(c.Request.Context(), userID, SessionTTL)
	if err != nil {
		return err
	}

	m.setCookie(c, session.Token.String(), int(SessionTTL.Seconds()))

	return nil
}

// ClearSession deletes the server-side session and expires the cookie.
// Clearing an absent session is not an error.
func (m *Manager) ClearSession(c *gin.Context) error {
	value, err := c.Cookie(SessionCookie)
	if err == nil {
		if token, parseErr := uuid.Parse(value); parseErr == nil {
			if deleteErr := m.sessions.DeleteSession(c.Request.Context(), token); deleteErr != nil {
				return deleteErr
			}
		}
	}

	m.setCookie(c, "", -1)

	return nil
}

// LoadUser resolves the session cookie to its user. Expired sessions are
// deleted on sight, along with any other expired rows.
func (m *Manager) LoadUser(c *gin.Context) (*model.User, error) {
	value, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, http.ErrNoCookie
	}

	token, err := uuid.Parse(value)
	if err != nil {
		return nil, http.ErrNoCookie
	}

	session, err := m.sessions.GetSessionByToken(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := m.sessions.DeleteExpiredSessions(c.Request.Context(), time.Now()); err != nil {
			m.logger.Warn("failed to purge expired sessions", zap.Error(err))
		}

		return nil, http.ErrNoCookie
	}

	return &session.User, nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, maxAge, "/", "", m.conf.Server.Production(), true)
}
