// utils/auth.go
package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Staff tokens are issued out of band; there is no login flow. A token
// carries a "customers" claim: "*" for full access, or a list of customer
// ids the holder may edit.

const capabilityKey = "customerCaps"

// GenerateStaffToken signs a capability token. customers is either {"*"}
// or a set of customer id strings.
func GenerateStaffToken(staff string, customers []string, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       staff,
		"customers": customers,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// AuthMiddleware validates the bearer token and stores the capability set
// in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header required"})
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims"})
			return
		}

		caps := parseCapabilities(claims["customers"])
		if caps == nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "Token carries no customer capabilities"})
			return
		}

		c.Set("staff", claims["sub"])
		c.Set(capabilityKey, caps)
		c.Next()
	}
}

func parseCapabilities(raw interface{}) map[string]bool {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	caps := make(map[string]bool, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		caps[s] = true
	}
	if len(caps) == 0 {
		return nil
	}
	return caps
}

// CanEditCustomer reports whether the caller's capability set covers the
// given customer. Checked before every editor mutation.
func CanEditCustomer(c *gin.Context, customerID uuid.UUID) bool {
	raw, exists := c.Get(capabilityKey)
	if !exists {
		return false
	}
	caps, ok := raw.(map[string]bool)
	if !ok {
		return false
	}
	return caps["*"] || caps[customerID.String()]
}
