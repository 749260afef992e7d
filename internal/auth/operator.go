package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Operator is the single admin account the service accepts.
type Operator struct {
	username string
	passHash []byte
}

// NewOperator takes the bcrypt hash of the password, never the password.
func NewOperator(username, passHash string) *Operator {
	return &Operator{username: username, passHash: []byte(passHash)}
}

func (o *Operator) Username() string { return o.username }

// Verify returns ErrInvalidCredentials for a wrong username or password. Any
// other error means the configured hash itself is unusable.
func (o *Operator) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(o.username)) == 1
	err := bcrypt.CompareHashAndPassword(o.passHash, []byte(password))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	case err != nil:
		return fmt.Errorf("check operator password: %w", err)
	case !userOK:
		return ErrInvalidCredentials
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
