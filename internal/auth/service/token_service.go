package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/khen08/todoapp/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	Generate(userID, username, role string) (string, time.Time, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
}

type TokenService struct {
	Secret       string
	AccessExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewTokenService(secret string, accessMinutes int) *TokenService {
	return &TokenService{
		Secret:       secret,
		AccessExpiry: time.Duration(accessMinutes) * time.Minute,
	}
}

func (ts *TokenService) Generate(userID, username, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.AccessExpiry)

	claims := JWTCustomClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
