package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fermenta.to/Fermenta/pkg/model"
)

const userContextKey = "fermenta.user"

// CurrentUser returns the user the middleware attached to the request.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*model.User)

	return user, ok
}

// Authenticated attaches the session's user or aborts with 401.
func (m *Manager) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.LoadUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})

			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin runs after Authenticated; an authenticated session without
// the admin role gets 403. The role set is the only source of truth here.
func (m *Manager) RequireAdmin() gin.HandlerFunc {
	return m.requireRole(func(user *model.User) bool { return user.IsAdmin() })
}

// RequirePubOwner admits pub owners and admins.
func (m *Manager) RequirePubOwner() gin.HandlerFunc {
	return m.requireRole(func(user *model.User) bool { return user.IsPubOwner() })
}

func (m *Manager) requireRole(allowed func(*model.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, found := CurrentUser(c)
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})

			return
		}

		if !allowed(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role"})

			return
		}

		c.Next()
	}
}
