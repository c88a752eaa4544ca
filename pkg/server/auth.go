package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.openly.dev/pointy"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/auth"
	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
)

type authUserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	AddUser(ctx context.Context, user model.User) (*model.User, error)
	SetActiveRole(ctx context.Context, userID uint, role model.Role) error
}

type AuthHandler struct {
	users    authUserRepository
	sessions *auth.Manager
	google   *auth.GoogleAuthenticator
	logger   *zap.Logger
}

func NewAuthHandler(users authUserRepository, sessions *auth.Manager, google *auth.GoogleAuthenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, google: google, logger: logger}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	email := strings.ToLower(req.Email)

	if _, err := h.users.GetUserByEmail(c.Request.Context(), email); err == nil {
		respondError(c, http.StatusConflict, "an account with this email already exists")

		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		respondRepositoryError(c, h.logger, err)

		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	user, err := h.users.AddUser(c.Request.Context(), model.User{
		Email:        &email,
		PasswordHash: pointy.String(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	if err := h.sessions.IssueSession(c, user.ID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusCreated, userResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same message as a wrong password; no user-existence leakage.
			respondError(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())

			return
		}

		respondRepositoryError(c, h.logger, err)

		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrSocialAccount) {
			respondError(c, http.StatusUnauthorized, auth.ErrSocialAccount.Error())

			return
		}

		respondError(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())

		return
	}

	if err := h.sessions.IssueSession(c, user.ID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.ClearSession(c); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, found := auth.CurrentUser(c)
	if !found {
		respondError(c, http.StatusUnauthorized, "authentication required")

		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

type activeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetActiveRole switches which dashboard a multi-role user operates as.
func (h *AuthHandler) SetActiveRole(c *gin.Context) {
	user, found := auth.CurrentUser(c)
	if !found {
		respondError(c, http.StatusUnauthorized, "authentication required")

		return
	}

	var req activeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())

		return
	}

	if err := h.users.SetActiveRole(c.Request.Context(), user.ID, role); err != nil {
		if errors.Is(err, model.ErrUnknownRole) {
			respondError(c, http.StatusForbidden, "role not granted")

			return
		}

		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// GoogleRedirect sends the browser to Google's consent screen with a signed
// state nonce bound to a short-lived cookie.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	state := h.google.NewState()
	c.SetCookie("fermenta_oauth_state", state, 600, "/", "", false, true)

	c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expected, err := c.Cookie("fermenta_oauth_state")
	if err != nil || expected == "" || c.Query("state") != expected || !h.google.VerifyState(expected) {
		respondError(c, http.StatusBadRequest, "state mismatch")

		return
	}

	code := c.Query("code")
	if code == "" {
		respondError(c, http.StatusBadRequest, "missing code")

		return
	}

	user, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("google login failed", zap.Error(err))
		respondError(c, http.StatusUnauthorized, "google login failed")

		return
	}

	if err := h.sessions.IssueSession(c, user.ID); err != nil {
		respondRepositoryError(c, h.logger, err)

		return
	}

	c.Redirect(http.StatusFound, "/")
}

func userResponse(user *model.User) gin.H {
	response := gin.H{
		"id":            user.UUID.String(),
		"firstName":     user.FirstName,
		"lastName":      user.LastName,
		"profileImage":  user.ProfileImageURL,
		"roles":         user.Roles,
		"activeRole":    user.ActiveRole,
		"emailVerified": user.EmailVerified,
	}

	if user.Email != nil {
		response["email"] = *user.Email
	}

	return response
}
