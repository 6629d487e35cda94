package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	passwordvalidator "github.com/wagslane/go-password-validator"

	"github.com/dkarpov/account-service/internal/apierrors"
	"github.com/dkarpov/account-service/internal/logger"
	"github.com/dkarpov/account-service/internal/model"
)

// LoginTypeEmail selects the credential login path. Any other non-empty
// type falls through to the refresh path.
const LoginTypeEmail = "email"

// Auth implements registration and the dual-path login flow.
type Auth struct {
	users      model.UserStore
	hasher     model.PasswordHasher
	tokens     model.TokenManager
	minEntropy float64
	logger     *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	users model.UserStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	minEntropy float64,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		minEntropy: minEntropy,
		logger:     logger,
	}
}

// Register hashes the password and creates the account. A store
// constraint rejection surfaces as a client-visible create failure.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: registering user", "email", params.Email)

	if err := passwordvalidator.Validate(params.Password, a.minEntropy); err != nil {
		return model.User{}, apierrors.NewErrBadRequest(err.Error())
	}

	passwordHash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Age:          params.Age,
	}

	saved, err := a.users.Create(ctx, user)
	if errors.Is(err, model.ErrConflict) {
		a.logger.Info("Auth service: store rejected user create", "email", params.Email)
		return model.User{}, apierrors.NewErrUserNotCreated()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "email", saved.Email, "user_id", saved.ID)

	return saved, nil
}

// Login dispatches on the type discriminator. A missing type runs
// neither path.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.User, model.TokenPair, error) {
	if params.Type == "" {
		return model.User{}, model.TokenPair{}, apierrors.NewErrLoginTypeNotDefined()
	}

	if params.Type == LoginTypeEmail {
		return a.loginWithPassword(ctx, params.Email, params.Password)
	}

	return a.loginWithRefresh(ctx, params.RefreshToken)
}

func (a *Auth) loginWithPassword(ctx context.Context, email, password string) (model.User, model.TokenPair, error) {
	a.logger.Debug("Auth service: password login", "email", email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.TokenPair{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// The branch happens strictly after the comparison has completed.
	if !a.hasher.Check(password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch", "email", email)
		return model.User{}, model.TokenPair{}, apierrors.NewErrWrongPassword()
	}

	pair, err := a.issuePair(user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	a.logger.Info("Auth service: password login completed", "email", email, "user_id", user.ID)

	return user, pair, nil
}

func (a *Auth) loginWithRefresh(ctx context.Context, refreshToken string) (model.User, model.TokenPair, error) {
	a.logger.Debug("Auth service: refresh login")

	if refreshToken == "" {
		return model.User{}, model.TokenPair{}, apierrors.NewErrNoRefreshToken()
	}

	userID, err := a.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		a.logger.Info("Auth service: refresh token rejected", "error", err.Error())
		return model.User{}, model.TokenPair{}, apierrors.NewErrUnauthorized()
	}

	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.TokenPair{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	// Rotation issues a fresh pair every time. The old refresh token is
	// not tracked server-side and stays valid until its own expiry.
	pair, err := a.issuePair(user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	a.logger.Info("Auth service: refresh login completed", "user_id", user.ID)

	return user, pair, nil
}

func (a *Auth) issuePair(user model.User) (model.TokenPair, error) {
	access, err := a.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := a.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
