package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkarpov/account-service/internal/logger"
	"github.com/dkarpov/account-service/internal/model"
)

// UserService defines profile and account directory operations.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateUserParams) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) (model.User, error)
}

// User handles HTTP endpoints for profile and account CRUD.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{userService: userService, contextManager: contextManager, logger: logger}
}

// GetProfile returns the caller's own account.
func (h *User) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.Get(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userJSON(user))
}

// UpdateProfile applies a partial update to the caller's own account.
func (h *User) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.update(w, r, identity.UserID)
}

// DeleteProfile removes the caller's own account.
func (h *User) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.Delete(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("User handler: profile deleted", "user_id", identity.UserID)

	writeJSON(w, http.StatusOK, userJSON(user))
}

// List returns all accounts.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usersJSON(users))
}

// GetByID returns the account with the given path ID.
func (h *User) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		errorJSON(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userJSON(user))
}

// UpdateByID applies a partial update to the account with the given path ID.
func (h *User) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		errorJSON(w, http.StatusNotFound, "User not found")
		return
	}

	h.update(w, r, id)
}

// DeleteByID removes the account with the given path ID.
func (h *User) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		errorJSON(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("User handler: user deleted", "user_id", id)

	writeJSON(w, http.StatusOK, userJSON(user))
}

func (h *User) update(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	params, err := decodeUpdate(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, params)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("User handler: user updated", "user_id", id)

	writeJSON(w, http.StatusOK, userJSON(user))
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// decodeUpdate splits an update body into known fields and the extra
// bag. Unknown keys are kept, matching the schemaless update behavior
// of the public API; identity and timestamp fields are ignored.
func decodeUpdate(r *http.Request) (model.UpdateUserParams, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return model.UpdateUserParams{}, err
	}

	params := model.UpdateUserParams{}
	for key, value := range raw {
		switch key {
		case "name":
			var v string
			if err := json.Unmarshal(value, &v); err != nil {
				return model.UpdateUserParams{}, err
			}
			params.Name = &v
		case "email":
			var v string
			if err := json.Unmarshal(value, &v); err != nil {
				return model.UpdateUserParams{}, err
			}
			params.Email = &v
		case "password":
			var v string
			if err := json.Unmarshal(value, &v); err != nil {
				return model.UpdateUserParams{}, err
			}
			params.Password = &v
		case "age":
			var v int
			if err := json.Unmarshal(value, &v); err != nil {
				return model.UpdateUserParams{}, err
			}
			params.Age = &v
		case "id", "createdAt", "updatedAt":
			// immutable
		default:
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return model.UpdateUserParams{}, err
			}
			if params.Extra == nil {
				params.Extra = map[string]any{}
			}
			params.Extra[key] = v
		}
	}

	return params, nil
}
