package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"fermenta.to/Fermenta/configs"
	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*model.Session
	purged   bool
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
	f.purged = true

	for token, session := range f.sessions {
		if session.Expired(now) {
			delete(f.sessions, token)
		}
	}

	return nil
}

type MiddlewareTestSuite struct {
	suite.Suite
	repo    *fakeSessionRepo
	manager *auth.Manager
	router  *gin.Engine
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func (suite *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.repo = newFakeSessionRepo()
	suite.manager = auth.NewManager(&configs.Config{}, suite.repo, zaptest.NewLogger(suite.T()))

	suite.router = gin.New()
	suite.router.GET("/me", suite.manager.Authenticated(), func(c *gin.Context) {
		user, _ := auth.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	suite.router.GET("/admin", suite.manager.Authenticated(), suite.manager.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	suite.router.GET("/owner", suite.manager.Authenticated(), suite.manager.RequirePubOwner(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func (suite *MiddlewareTestSuite) sessionFor(roles model.RoleSet) *model.Session {
	session, err := suite.repo.CreateSession(context.Background(), 7, time.Hour)
	suite.Require().NoError(err)
	session.User = model.User{Roles: roles}
	session.User.ID = 7

	return session
}

func (suite *MiddlewareTestSuite) request(path string, session *model.Session) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if session != nil {
		request.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: session.Token.String()})
	}

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, request)

	return recorder
}

func (suite *MiddlewareTestSuite) TestAuthenticated_NoCookieIs401() {
	recorder := suite.request("/me", nil)

	suite.Equal(http.StatusUnauthorized, recorder.Code)
}

func (suite *MiddlewareTestSuite) TestAuthenticated_UnknownTokenIs401() {
	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: uuid.NewString()})

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, request)

	suite.Equal(http.StatusUnauthorized, recorder.Code)
}

func (suite *MiddlewareTestSuite) TestAuthenticated_ValidSessionPasses() {
	session := suite.sessionFor(model.RoleSet{model.RoleCustomer})

	recorder := suite.request("/me", session)

	suite.Equal(http.StatusOK, recorder.Code)
	suite.JSONEq(`{"id":7}`, recorder.Body.String())
}

func (suite *MiddlewareTestSuite) TestAuthenticated_ExpiredSessionIs401AndPurged() {
	session := suite.sessionFor(model.RoleSet{model.RoleCustomer})
	session.ExpiresAt = time.Now().Add(-time.Minute)

	recorder := suite.request("/me", session)

	suite.Equal(http.StatusUnauthorized, recorder.Code)
	suite.True(suite.repo.purged)
	suite.Empty(suite.repo.sessions)
}

func (suite *MiddlewareTestSuite) TestRequireAdmin_CustomerIs403() {
	session := suite.sessionFor(model.RoleSet{model.RoleCustomer})

	recorder := suite.request("/admin", session)

	suite.Equal(http.StatusForbidden, recorder.Code)
}

func (suite *MiddlewareTestSuite) TestRequireAdmin_AdminPasses() {
	session := suite.sessionFor(model.RoleSet{model.RoleAdmin})

	recorder := suite.request("/admin", session)

	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *MiddlewareTestSuite) TestRequirePubOwner_AdminPassesToo() {
	suite.Equal(http.StatusOK, suite.request("/owner", suite.sessionFor(model.RoleSet{model.RolePubOwner})).Code)
	suite.Equal(http.StatusOK, suite.request("/owner", suite.sessionFor(model.RoleSet{model.RoleAdmin})).Code)
	suite.Equal(http.StatusForbidden, suite.request("/owner", suite.sessionFor(model.RoleSet{model.RoleCustomer})).Code)
}
