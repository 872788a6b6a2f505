package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info
func FirebaseAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return verify(verifier, true)
}

// OptionalFirebaseAuth verifies a token when one is sent and lets
// anonymous requests through. A bad token is still rejected.
func OptionalFirebaseAuth(verifier TokenVerifier) gin.HandlerFunc {
	return verify(verifier, false)
}

func verify(verifier TokenVerifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			if required {
				c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		decodedToken, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		// Store user info in context
		c.Set("firebase_uid", decodedToken.UID)

		// Extract email from claims if available
		if email, ok := decodedToken.Claims["email"].(string); ok {
			c.Set("email", email)
		}

		c.Set("firebase_token", decodedToken)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
