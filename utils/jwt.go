package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tnqbao/gau-bucketlist-service/config"
)

// ErrInvalidToken covers bad signature, malformed claims and expiry.
// Callers only need to know the token did not identify anyone.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// ExtractToken reads the opaque token from the custom "token" header,
// falling back to a standard bearer Authorization header.
func ExtractToken(c *gin.Context) string {
	if token := c.GetHeader("token"); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func GenerateToken(username string, config *config.EnvConfig) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(config.JWT.Expire) * time.Second)),
		},
		Username: username,
	})
	return token.SignedString([]byte(config.JWT.SecretKey))
}

// ParseToken verifies the signature and expiry and returns the embedded
// username. A token whose expiry equals the current instant is expired.
func ParseToken(tokenString string, config *config.EnvConfig) (string, error) {
	claims := &Claims{}
	secret := []byte(config.JWT.SecretKey)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}
