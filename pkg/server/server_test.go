package server_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
)

// fakeSessionRepo backs the real auth.Manager in handler tests so requests
// go through the same middleware chain the router uses.
type fakeSessionRepo struct {
	sessions map[uuid.UUID]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]*model.Session{}}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, userID uint, ttl time.Duration) (*model.Session, error) {
	session := &model.Session{Token: uuid.New(), UserID: userID, ExpiresAt: time.Now().Add(ttl)}
	f.sessions[session.Token] = session

	return session, nil
}

func (f *fakeSessionRepo) GetSessionByToken(_ context.Context, token uuid.UUID) (*model.Session, error) {
	session, found := f.sessions[token]
	if !found {
		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, token uuid.UUID) error {
	delete(f.sessions, token)

	return nil
}

func (f *fakeSessionRepo) DeleteExpiredSessions(_ context.Context, now time.Time) error {
	for token, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, token)
		}
	}

	return nil
}

// sessionFor registers a session whose user carries the given id and roles.
func (f *fakeSessionRepo) sessionFor(userID uint, roles model.RoleSet) *model.Session {
	session, _ := f.CreateSession(context.Background(), userID, time.Hour)
	session.User = model.User{Roles: roles, ActiveRole: roles[0]}
	session.User.ID = userID

	return session
}
