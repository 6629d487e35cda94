package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dkarpov/account-service/internal/model"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

// userJSON serializes an account the way clients expect: the fixed
// fields plus any extra profile fields flattened into the same object.
// The password field carries the stored hash, never plaintext.
func userJSON(u model.User) map[string]any {
	out := make(map[string]any, len(u.Extra)+7)
	for k, v := range u.Extra {
		out[k] = v
	}
	out["id"] = u.ID
	out["name"] = u.Name
	out["email"] = u.Email
	out["password"] = u.PasswordHash
	out["age"] = u.Age
	out["createdAt"] = u.CreatedAt
	out["updatedAt"] = u.UpdatedAt
	return out
}

func usersJSON(users []model.User) []map[string]any {
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	return out
}

// Root responds to the service health/welcome endpoint.
func Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "app successful"})
}
