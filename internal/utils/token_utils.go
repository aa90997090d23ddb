package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MarketplaceClaims are the JWT claims issued to a logged-in profile. Role and
// email travel in the token so every request carries the full session context.
type MarketplaceClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GenerateJWT generates a signed access token for the given profile.
func GenerateJWT(userID, email, role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	claims := MarketplaceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
		Email: email,
		Role:  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims, returning the marketplace claims when valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*MarketplaceClaims, error) {
	claims := &MarketplaceClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
