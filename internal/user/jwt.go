package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 72 * time.Hour

type JwtCustomClaims struct {
	Id uint `json:"id"`
	jwt.RegisteredClaims
}

func GenerateJWT(id uint, secret string) (string, error) {
	claims := JwtCustomClaims{
		Id: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates an HS256 token signed with secret and returns the
// player id it was issued for.
func ParseJWT(tokenString, secret string) (uint, error) {
	if tokenString == "" {
		return 0, errors.New("empty token")
	}

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Id == 0 {
		return 0, errors.New("id not found in token claims")
	}
	return claims.Id, nil
}
