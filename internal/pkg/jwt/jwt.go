package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the external auth provider and
// mints short-lived tokens for the SSE live stream, where EventSource
// clients cannot set an Authorization header.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
}

type JWTService struct {
	secretKey     string
	sseExpiration string
	tokenAuth     *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, sseExpiration string) Service {
	return &JWTService{
		secretKey:     secretKey,
		sseExpiration: sseExpiration,
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expDuration, err := time.ParseDuration(j.sseExpiration)
	if err != nil {
		return "", 0, err
	}

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "sse",
		"exp":     time.Now().Add(expDuration).Unix(),
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(expDuration.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("invalid sse token: %w", err)
	}

	if err := jwt.Validate(token); err != nil {
		return "", fmt.Errorf("sse token validation failed: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", fmt.Errorf("failed to read sse token claims: %w", err)
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "sse" {
		return "", fmt.Errorf("token is not an sse token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("sse token is missing user_id")
	}

	return userID, nil
}
