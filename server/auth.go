package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// currentUserKey is the gin context key the auth middleware stores the
// resolved user id under. Unexported so handlers go through CurrentUserID.
const currentUserKey = "microblog.currentUserID"

const tokenLifetime = 24 * time.Hour

// userClaims extends the registered JWT claims with the account id.
type userClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// generateToken signs a bearer token for the given account.
func generateToken(secret string, userID uint, username string) (string, error) {
	now := time.Now()
	claims := userClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    "microblog",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// requireAuth validates the Authorization header and stores the resolved
// user id on the context. Requests without a valid bearer token are
// rejected with 401 before the handler runs.
func requireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.ParseWithClaims(tokenStr, &userClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(*userClaims)
		if !ok || claims.UserID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		c.Set(currentUserKey, claims.UserID)
		c.Next()
	}
}

// optionalAuth resolves the user id when a valid bearer token is present
// but lets anonymous requests through untouched.
func optionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.Next()
			return
		}

		token, err := jwt.ParseWithClaims(tokenStr, &userClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(*userClaims); ok && claims.UserID != 0 {
				c.Set(currentUserKey, claims.UserID)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id resolved by requireAuth.
// ok is false when the middleware did not run or did not resolve one.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
