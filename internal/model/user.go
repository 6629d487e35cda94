package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
}

// User represents a stored account. Extra holds arbitrary additional
// profile fields outside the fixed schema.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Age          int
	Extra        map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries a partial update at the store level. Nil fields are
// left untouched; Extra entries are merged into the stored bag.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Age          *int
	Extra        map[string]any
}

// RegisterParams contains parameters to create an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// LoginParams carries a login request. Type selects the path: "email"
// verifies credentials, anything else presents a refresh token.
type LoginParams struct {
	Type         string
	Email        string
	Password     string
	RefreshToken string
}

// UpdateUserParams carries a partial profile update at the service level.
// Password, when present, is hashed before it reaches the store.
type UpdateUserParams struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
	Extra    map[string]any
}
