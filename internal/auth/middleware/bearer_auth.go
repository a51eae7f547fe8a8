package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wys-platform/project-service/internal/auth"
	"github.com/wys-platform/project-service/internal/logging"
)

// RevocationChecker reports whether a token id has been revoked.
// *repository.RevocationRepository implements it.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Claims are the access token claims we rely on. user_id is mandatory.
type Claims struct {
	UserID *int64 `json:"user_id"`
	jwt.RegisteredClaims
}

var errMissingUserID = errors.New("token has no user_id claim")

// BearerAuth verifies "Authorization: Bearer <jwt>" against key and stores the
// caller identity and the raw header in the gin context. revoked may be nil.
func BearerAuth(key *rsa.PublicKey, revoked RevocationChecker) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		log := logging.New(c.Request.Context())

		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// the scheme is case-insensitive (RFC 6750)
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		claims, err := parse(parser, parts[1], key)
		if err != nil {
			log.Warnf("auth", "rejected token: %v", err)
			abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if claims.ID != "" && revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Errorf("auth", "revocation check failed jti=%s: %v", claims.ID, err)
				abort(c, http.StatusServiceUnavailable, "authentication unavailable")
				return
			}
			if isRevoked {
				abort(c, http.StatusUnauthorized, "token revoked")
				return
			}
		}

		c.Set(auth.CtxUserID, *claims.UserID)
		c.Set(auth.CtxCredential, header)
		c.Set(auth.CtxTokenID, claims.ID)
		c.Next()
	}
}

func parse(parser *jwt.Parser, raw string, key *rsa.PublicKey) (*Claims, error) {
	claims := &Claims{}
	_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if claims.UserID == nil {
		return nil, errMissingUserID
	}
	return claims, nil
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": msg})
}
