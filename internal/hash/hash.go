package hash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/Skotchmaster/college_admin/internal/apperr"
)

const (
	SaltSize   = 16
	KeySize    = 32
	Iterations = 10_000
)

// Hasher derives and checks salted password hashes.
type Hasher interface {
	Hash(password string) (hash, salt []byte, err error)
	Verify(password string, hash, salt []byte) bool
}

// PBKDF2 derives keys with PBKDF2-HMAC-SHA256.
type PBKDF2 struct{}

func (PBKDF2) Hash(password string) ([]byte, []byte, error) {
	if password == "" {
		return nil, nil, fmt.Errorf("%w: password is empty", apperr.ErrValidation)
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("%w: generate salt: %v", apperr.ErrInternal, err)
	}

	return derive(password, salt), salt, nil
}

func (PBKDF2) Verify(password string, hash, salt []byte) bool {
	if password == "" || len(hash) != KeySize || len(salt) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(derive(password, salt), hash) == 1
}

func derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeySize, sha256.New)
}
