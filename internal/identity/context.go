package identity

import "github.com/gin-gonic/gin"

// UserID returns the authenticated caller's id, or 0 when no identity header
// was supplied.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
