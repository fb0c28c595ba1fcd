package middleware

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"turftrack/internal/repository"
)

const currentUserKey = "currentUserID"

// Identity resolves the X-User-ID header to a known user and stashes the id
// in the request context. It stands in for the external session layer; an
// absent or unknown id leaves the request anonymous rather than failing it.
func Identity(users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.Next()
			return
		}
		id, err := strconv.ParseUint(header, 10, 32)
		if err != nil {
			logger.Warn("malformed X-User-ID header", "value", header)
			c.Next()
			return
		}
		user, err := users.FindByID(uint(id))
		if err != nil {
			logger.Warn("unknown user in X-User-ID header", "user_id", id)
			c.Next()
			return
		}
		c.Set(currentUserKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or nil for anonymous
// requests.
func CurrentUserID(c *gin.Context) *uint {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
