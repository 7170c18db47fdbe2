package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Authorizer decides whether a supplied admin secret is valid.
type Authorizer interface {
	Authorize(supplied string) bool
}

// Gate checks the shared moderator secret. A bcrypt hash takes precedence
// over a plaintext secret when both are configured.
type Gate struct {
	digest [sha256.Size]byte
	hash   []byte
}

var _ Authorizer = (*Gate)(nil)

func NewGate(secret, secretHash string) (*Gate, error) {
	if secretHash != "" {
		if _, err := bcrypt.Cost([]byte(secretHash)); err != nil {
			return nil, fmt.Errorf("invalid admin secret hash: %w", err)
		}
		return &Gate{hash: []byte(secretHash)}, nil
	}
	if secret == "" {
		return nil, errors.New("admin secret is not configured")
	}
	return &Gate{digest: sha256.Sum256([]byte(secret))}, nil
}

// Authorize compares in constant time. An empty secret never matches.
func (g *Gate) Authorize(supplied string) bool {
	if supplied == "" {
		return false
	}
	if g.hash != nil {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(supplied)) == nil
	}
	d := sha256.Sum256([]byte(supplied))
	return subtle.ConstantTimeCompare(d[:], g.digest[:]) == 1
}
