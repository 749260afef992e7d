package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidClaims = errors.New("token is missing session claims")

type Authenticator interface {
	GenerateToken(subject, sessionID string) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}

// SessionClaims is what a validated token tells us about the caller.
type SessionClaims struct {
	Subject   string
	SessionID string
}

// ParseSessionClaims reads subject and session id from a validated token.
func ParseSessionClaims(token *jwt.Token) (SessionClaims, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	if sub == "" || sid == "" {
		return SessionClaims{}, ErrInvalidClaims
	}
	return SessionClaims{Subject: sub, SessionID: sid}, nil
}
