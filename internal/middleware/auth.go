package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

// RequireAuth rebuilds the caller's Session from the session cookie
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, _ := session.Get(constants.ContextKeyUsername).(string)
		role, _ := session.Get(constants.ContextKeyRole).(string)

		if username == "" || !models.Role(role).Valid() {
			apierrors.Unauthorized(c, "")
			return
		}

		SetSession(c, services.Session{Username: username, Role: models.Role(role)})
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if !sess.IsAdmin() {
			apierrors.AdminRequired(c, "")
			return
		}
		c.Next()
	}
}

// SetSession stores the caller's Session in the request context
func SetSession(c *gin.Context, sess services.Session) {
	c.Set(constants.ContextKeySession, sess)
}

// GetSession retrieves the caller's Session from the request context
func GetSession(c *gin.Context) (services.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return services.Session{}, false
	}

	sess, ok := value.(services.Session)
	if !ok || sess.Username == "" {
		return services.Session{}, false
	}
	return sess, true
}
