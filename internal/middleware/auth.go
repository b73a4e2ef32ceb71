package middleware

import (
	"net/http"
	"strings"

	"github.com/davrbek/quizcore/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const identityKey = "auth.identity"

// Identity is the authenticated principal carried by a bearer token.
type Identity struct {
	UserID uint
	Role   string
}

type tokenClaims struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate validates the Authorization bearer token (HS256) and stores
// the identity in the request context. This service only consumes tokens;
// it never issues them.
func Authenticate(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or malformed Authorization header"})
			return
		}

		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		ctx.Set(identityKey, Identity{UserID: claims.ID, Role: claims.Role})
		ctx.Next()
	}
}

// RequireAdmin aborts requests whose authenticated identity is not an
// admin. Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, ok := IdentityFrom(ctx)
		if !ok || identity.Role != "admin" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// IdentityFrom returns the identity Authenticate stored on the context.
func IdentityFrom(ctx *gin.Context) (Identity, bool) {
	value, ok := ctx.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
