package model

import "github.com/google/uuid"

// Identity is the decoded claim set attached to a request after the
// bearer token has been verified.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenPair bundles a short-lived access token and a refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (Identity, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}
