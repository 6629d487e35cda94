package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkarpov/account-service/internal/logger"
	"github.com/dkarpov/account-service/internal/model"
)

// User implements profile and account directory operations over the store.
type User struct {
	users  model.UserStore
	hasher model.PasswordHasher
	logger *logger.Logger
}

// NewUser creates a new User service.
func NewUser(users model.UserStore, hasher model.PasswordHasher, logger *logger.Logger) *User {
	return &User{users: users, hasher: hasher, logger: logger}
}

// Get returns the account with the given ID.
func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List returns all accounts.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update applies a partial update. Fields left nil stay untouched, and a
// supplied password is re-hashed so plaintext never reaches the store.
func (s *User) Update(ctx context.Context, id uuid.UUID, params model.UpdateUserParams) (model.User, error) {
	update := model.UserUpdate{
		Name:  params.Name,
		Email: params.Email,
		Age:   params.Age,
		Extra: params.Extra,
	}

	if params.Password != nil {
		passwordHash, err := s.hasher.Hash(*params.Password)
		if err != nil {
			s.logger.Error("User service: failed to hash password on update",
				"user_id", id,
				"error", err.Error())
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		update.PasswordHash = &passwordHash
	}

	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated", "user_id", user.ID)

	return user, nil
}

// Delete removes the account and returns the deleted row.
func (s *User) Delete(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted", "user_id", id)

	return user, nil
}
