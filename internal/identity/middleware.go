package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Header carries the numeric id of the calling user.
// Authentication happens upstream; this service trusts the header.
const Header = "X-Sharer-User-Id"

const ctxUserIDKey = "userID"

// Required is a Gin middleware that rejects requests missing a valid
// X-Sharer-User-Id header and stores the parsed id in the context.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(Header)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil || id < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(ctxUserIDKey, id)
		c.Next()
	}
}

// Optional stores the caller id when a valid header is present and lets the
// request through either way. Used by endpoints that enrich their response
// for known callers (e.g., item detail for the owner).
func Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader(Header); header != "" {
			if id, err := strconv.ParseInt(header, 10, 64); err == nil && id >= 1 {
				c.Set(ctxUserIDKey, id)
			}
		}
		c.Next()
	}
}
