package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key the middleware stores the caller's
// identity under.
const UserIDKey = "user_id"

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func ValidateJWT(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token is required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// UserIDFromRequest extracts the caller's user id from a Bearer token, or
// "" when no token is present.
func UserIDFromRequest(c *gin.Context, secret string) (string, error) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		return "", nil
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims, err := ValidateJWT(tokenString, secret)
	if err != nil {
		return "", err
	}

	userID := claims.UserID
	// Upstream services occasionally embed the raw Mongo representation.
	if strings.HasPrefix(userID, `ObjectID("`) && strings.HasSuffix(userID, `")`) {
		userID = userID[10 : len(userID)-2]
	}
	return userID, nil
}

// RequireUser resolves the caller's identity from the Bearer token, falling
// back to the X-User-ID header set by the gateway, and aborts with 401 when
// neither is present.
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := UserIDFromRequest(c, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
				"code":  "INVALID_TOKEN",
			})
			return
		}
		if userID == "" {
			userID = c.GetHeader("X-User-ID")
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
