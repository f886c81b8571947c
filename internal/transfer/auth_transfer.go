package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Password string `json:"password"`
}

type AccountUpsert struct {
	Platform  string `json:"platform"`
	Connected bool   `json:"connected"`
	Label     string `json:"label"`
}
