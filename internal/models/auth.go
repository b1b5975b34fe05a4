package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the payload of the portal access token.
type JWTClaims struct {
	UserID string   `json:"id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// Actor converts the token claims into the actor used by permission checks.
func (c *JWTClaims) Actor() *Actor {
	if c == nil || c.UserID == "" {
		return nil
	}
	return &Actor{ID: c.UserID, Role: c.Role, Name: c.Name, Email: c.Email}
}
