package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"go.uber.org/zap/zaptest"

	"fermenta.to/Fermenta/configs"
	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
	"fermenta.to/Fermenta/pkg/server"
)

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, found := f.users[email]
	if !found {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) AddUser(_ context.Context, user model.User) (*model.User, error) {
	f.nextID++
	user.ID = f.nextID

	if len(user.Roles) == 0 {
		user.Roles = model.RoleSet{model.RoleCustomer}
		user.ActiveRole = model.RoleCustomer
	}

	f.users[*user.Email] = &user

	return &user, nil
}

func (f *fakeUserRepo) SetActiveRole(_ context.Context, userID uint, role model.Role) error {
	for _, user := range f.users {
		if user.ID == userID {
			if !user.Roles.Has(role) {
				return model.ErrUnknownRole
			}

			user.ActiveRole = role

			return nil
		}
	}

	return repository.ErrUserNotFound
}

type AuthHandlerTestSuite struct {
	suite.Suite
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	router   *gin.Engine
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(suite.T())
	suite.users = newFakeUserRepo()
	suite.sessions = newFakeSessionRepo()

	manager := auth.NewManager(&configs.Config{}, suite.sessions, logger)
	handler := server.NewAuthHandler(suite.users, manager, nil, logger)

	suite.router = gin.New()
	suite.router.POST("/api/auth/register", handler.Register)
	suite.router.POST("/api/auth/login", handler.Login)
	suite.router.POST("/api/auth/logout", handler.Logout)
}

func (suite *AuthHandlerTestSuite) post(path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, request)

	return recorder
}

func (suite *AuthHandlerTestSuite) TestRegister_CreatesAccountAndSession() {
	recorder := suite.post("/api/auth/register",
		`{"email":"Mario@Example.COM","password":"superbirra","firstName":"Mario"}`)

	suite.Equal(http.StatusCreated, recorder.Code)

	// The email is stored lowercased.
	user, found := suite.users.users["mario@example.com"]
	suite.Require().True(found)
	suite.NotNil(user.PasswordHash)
	suite.NotEqual("superbirra", *user.PasswordHash)

	suite.Len(suite.sessions.sessions, 1)
	suite.Contains(recorder.Header().Get("Set-Cookie"), auth.SessionCookie)
}

func (suite *AuthHandlerTestSuite) TestRegister_ShortPasswordIs400() {
	recorder := suite.post("/api/auth/register",
		`{"email":"mario@example.com","password":"breve","firstName":"Mario"}`)

	suite.Equal(http.StatusBadRequest, recorder.Code)
	suite.Empty(suite.users.users)
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmailIs409() {
	first := suite.post("/api/auth/register",
		`{"email":"mario@example.com","password":"superbirra","firstName":"Mario"}`)
	suite.Equal(http.StatusCreated, first.Code)

	second := suite.post("/api/auth/register",
		`{"email":"MARIO@example.com","password":"altrapassword","firstName":"Mario"}`)

	suite.Equal(http.StatusConflict, second.Code)
	suite.Len(suite.users.users, 1)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPasswordAndUnknownUserShareMessage() {
	suite.post("/api/auth/register",
		`{"email":"mario@example.com","password":"superbirra","firstName":"Mario"}`)

	wrongPassword := suite.post("/api/auth/login", `{"email":"mario@example.com","password":"sbagliata"}`)
	unknownUser := suite.post("/api/auth/login", `{"email":"nessuno@example.com","password":"sbagliata"}`)

	suite.Equal(http.StatusUnauthorized, wrongPassword.Code)
	suite.Equal(http.StatusUnauthorized, unknownUser.Code)
	suite.Equal(wrongPassword.Body.String(), unknownUser.Body.String())
}

func (suite *AuthHandlerTestSuite) TestLogin_SocialAccountGetsDistinctMessage() {
	email := "social@example.com"
	_, err := suite.users.AddUser(context.Background(), model.User{Email: pointy.String(email)})
	suite.Require().NoError(err)

	recorder := suite.post("/api/auth/login", `{"email":"social@example.com","password":"qualcosa"}`)

	suite.Equal(http.StatusUnauthorized, recorder.Code)
	suite.Contains(recorder.Body.String(), "social login")
}

func (suite *AuthHandlerTestSuite) TestLogin_SuccessIssuesSession() {
	suite.post("/api/auth/register",
		`{"email":"mario@example.com","password":"superbirra","firstName":"Mario"}`)

	recorder := suite.post("/api/auth/login", `{"email":"mario@example.com","password":"superbirra"}`)

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Len(suite.sessions.sessions, 2)
	suite.Contains(recorder.Header().Get("Set-Cookie"), auth.SessionCookie)
}
