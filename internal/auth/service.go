// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/mumocomics/mumoweb/internal/platform/apperr"
	"github.com/mumocomics/mumoweb/internal/platform/constants"
	"github.com/mumocomics/mumoweb/internal/platform/sec"
	"github.com/mumocomics/mumoweb/pkg/uuidv7"
)

// # Service Implementation

// Service implements the authentication lifecycle for publishing-panel
// accounts.
type Service struct {
	users    UserStore
	sessions SessionStore
	tokens   *sec.TokenService
	logger   *slog.Logger
}

// NewService constructs an auth [Service].
func NewService(users UserStore, sessions SessionStore, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// LoginInput carries the credentials and client metadata for a login attempt.
type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResult is the successful outcome of a login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	SessionID   string `json:"session_id"`
	User        *User  `json:"user"`
}

/*
Login verifies credentials and establishes a session.

Description: On success it signs an access token and records a revocable
session in the session store. Unknown usernames and wrong passwords yield
the same generic rejection so the endpoint does not leak which accounts
exist.

Parameters:
  - ctx: context.Context
  - input: LoginInput (Credentials plus client metadata)

Returns:
  - *LoginResult: Access token, session ID, and the account profile
  - error: apperr.Unauthorized on bad credentials
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.Warn("login_rejected",
			slog.String("username", input.Username),
			slog.String("ip", input.IPAddress),
		)
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		Username:  user.Username,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.sessions.Save(ctx, session, constants.SessionTTL); err != nil {
		return nil, apperr.Internal(err)
	}

	accessToken, err := service.tokens.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("login_succeeded",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.ID),
	)

	return &LoginResult{
		AccessToken: accessToken,
		SessionID:   session.ID,
		User:        user,
	}, nil
}

/*
Logout revokes a session.

Description: Revoking an already-expired or unknown session succeeds
silently; the client's goal state (no active session) is already met.
*/
func (service *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := service.sessions.Delete(ctx, sessionID); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("logout", slog.String("session_id", sessionID))
	return nil
}

/*
Me resolves the account profile for a verified token.

Returns:
  - *User: The current account
  - error: NOT_FOUND if the account was deleted after the token was issued
*/
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}
