package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/habit-tracker-api/internal/domain/entity"
	"github.com/oksasatya/habit-tracker-api/pkg/helpers"
	"github.com/oksasatya/habit-tracker-api/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "currentUser"
)

// SubjectResolver maps a validated token subject to an existing user.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, email string) (*entity.User, error)
}

// BearerAuth validates the Authorization header and resolves the caller.
// A missing/malformed header, an invalid or expired token, and a subject
// with no matching user all produce the same 401. On success the user id
// and the user itself are stored in the Gin context.
func BearerAuth(jwt *helpers.JWTManager, users SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "not authenticated", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil || claims.Subject == "" {
			response.Error(c, http.StatusUnauthorized, "could not validate credentials", nil)
			return
		}
		u, err := users.ResolveSubject(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "could not validate credentials", nil)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by BearerAuth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
