package middleware

import (
	"strings"

	"github.com/fidomax07/vetting-api/internal/constants"
	"github.com/fidomax07/vetting-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RequireAuth resolves the bearer token to a live account and stores it in the context.
func RequireAuth(guard *services.AuthGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))

		account, err := guard.Resolve(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, account)
		c.Set(constants.ContextKeyToken, token)
		c.Next()
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetAccount retrieves the authenticated account from context
func GetAccount(c *gin.Context) (*services.Account, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	account, ok := value.(*services.Account)
	return account, ok && account != nil
}

// GetToken retrieves the raw session token from context
func GetToken(c *gin.Context) string {
	return c.GetString(constants.ContextKeyToken)
}
