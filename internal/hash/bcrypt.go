package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dkarpov/account-service/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt hashes passwords with a configurable cost factor. The salt is
// embedded in the hash output, so equal passwords hash differently.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt hasher. Costs outside the valid bcrypt
// range fall back to the library default.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash generates a salted hash of the given password.
func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// Check reports whether password matches the stored hash.
func (b *Bcrypt) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
