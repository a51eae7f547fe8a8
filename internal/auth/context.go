package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	CtxUserID     = "user_id"
	CtxCredential = "credential"
	CtxTokenID    = "token_id"
)

// UserID returns the authenticated owner id set by the bearer guard.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// Credential returns the Authorization header value exactly as the caller
// sent it, for forwarding to sibling services.
func Credential(c *gin.Context) string {
	return c.GetString(CtxCredential)
}
