package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer = "menuhub-backend"
	TokenTTL    = 12 * time.Hour
)

// Claims is the session payload. A restaurant session carries the
// restaurant it is scoped to; an admin session carries the user.
type Claims struct {
	Role         string     `json:"role"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	RestaurantID *uuid.UUID `json:"restaurant_id,omitempty"`
	Slug         string     `json:"slug,omitempty"`
	jwt.RegisteredClaims
}

func getJWTSecret() (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET environment variable is not set")
	}
	return secret, nil
}

// GenerateToken signs a session token for the given role and scope.
func GenerateToken(role string, userID, restaurantID *uuid.UUID, slug string) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	subject := ""
	switch {
	case restaurantID != nil:
		subject = restaurantID.String()
	case userID != nil:
		subject = userID.String()
	}

	now := time.Now()
	claims := Claims{
		Role:         role,
		UserID:       userID,
		RestaurantID: restaurantID,
		Slug:         slug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString string) (*Claims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
