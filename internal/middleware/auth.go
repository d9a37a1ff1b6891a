// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
)

const userIDKey = "user_id"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the caller's id in the context.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing or malformed Authorization header")
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(userIDKey, userID)
		c.Set(loggerKey, Log(c).WithField(userIDKey, userID))
		c.Next()
	}
}

// UserID returns the authenticated caller, or 0 when RequireAuth did not run.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, reason string) {
	Log(c).WithField("reason", reason).Debug("authentication failed")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dtos.MessageResponse{Message: "Unauthorized"})
}
