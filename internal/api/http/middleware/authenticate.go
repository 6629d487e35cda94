package middleware

import (
	"net/http"
	"strings"

	"github.com/dkarpov/account-service/internal/logger"
	"github.com/dkarpov/account-service/internal/model"
)

// TokenVerifier resolves the authenticated identity from a bearer token.
type TokenVerifier interface {
	ParseAccessToken(token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into the
// request context. It performs no store access.
type Authenticate struct {
	tokens         TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

const bearerPrefix = "Bearer "

// Handle rejects requests without a valid bearer access token. A missing
// header or missing prefix is rejected before any verification. All
// failure kinds collapse to the same 401 response.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.logger.Debug("authenticate: missing bearer token", "path", r.URL.Path)
			unauthorized(w)
			return
		}

		identity, err := m.tokens.ParseAccessToken(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			m.logger.Debug("authenticate: token rejected",
				"path", r.URL.Path,
				"error", err.Error())
			unauthorized(w)
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
}
