// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumocomics/mumoweb/internal/auth"
	"github.com/mumocomics/mumoweb/internal/platform/apperr"
	"github.com/mumocomics/mumoweb/internal/platform/sec"
)

// memoryUsers is an in-memory UserStore.
type memoryUsers struct {
	users map[string]*auth.User
}

func (s *memoryUsers) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *memoryUsers) FindByID(ctx context.Context, id string) (*auth.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// memorySessions is an in-memory SessionStore.
type memorySessions struct {
	sessions map[string]*auth.Session
}

func (s *memorySessions) Save(ctx context.Context, session *auth.Session, ttl time.Duration) error {
	if s.sessions == nil {
		s.sessions = map[string]*auth.Session{}
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *memorySessions) Find(ctx context.Context, sessionID string) (*auth.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (s *memorySessions) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// newTokenService generates a throwaway RSA keypair on disk.
func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "jwt.pem")
	pubPath := filepath.Join(dir, "jwt.pub.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0o600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0o600))

	tokens, err := sec.NewTokenService(privPath, pubPath, "mumocomics.com")
	require.NoError(t, err)
	return tokens
}

func newAuthService(t *testing.T, password string) (*auth.Service, *memorySessions, *sec.TokenService) {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	users := &memoryUsers{users: map[string]*auth.User{
		"user-1": {
			ID:           "user-1",
			Username:     "mumo-admin",
			PasswordHash: hash,
			Role:         sec.RoleAdmin,
		},
	}}
	sessions := &memorySessions{}
	tokens := newTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return auth.NewService(users, sessions, tokens, logger), sessions, tokens
}

/*
TestService_Login issues a verifiable token and records a session.
*/
func TestService_Login(t *testing.T) {
	service, sessions, tokens := newAuthService(t, "correct horse battery")

	result, err := service.Login(context.Background(), auth.LoginInput{
		Username: "mumo-admin",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "mumo-admin", result.User.Username)
	assert.Contains(t, sessions.sessions, result.SessionID)

	claims, err := tokens.VerifyToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
}

/*
TestService_Login_BadCredentials rejects wrong passwords and unknown users
with the same generic error.
*/
func TestService_Login_BadCredentials(t *testing.T) {
	service, _, _ := newAuthService(t, "correct horse battery")
	ctx := context.Background()

	_, err := service.Login(ctx, auth.LoginInput{Username: "mumo-admin", Password: "wrong"})
	require.Error(t, err)
	wrongPassword := apperr.As(err)
	require.NotNil(t, wrongPassword)
	assert.Equal(t, "UNAUTHORIZED", wrongPassword.Code)

	_, err = service.Login(ctx, auth.LoginInput{Username: "nobody", Password: "wrong"})
	require.Error(t, err)
	unknownUser := apperr.As(err)
	require.NotNil(t, unknownUser)

	// Same code AND message: the endpoint must not leak which accounts exist.
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Message, unknownUser.Message)
}

/*
TestService_Logout revokes the session; revoking twice is still fine.
*/
func TestService_Logout(t *testing.T) {
	service, sessions, _ := newAuthService(t, "correct horse battery")
	ctx := context.Background()

	result, err := service.Login(ctx, auth.LoginInput{
		Username: "mumo-admin",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, result.SessionID))
	assert.NotContains(t, sessions.sessions, result.SessionID)

	require.NoError(t, service.Logout(ctx, result.SessionID))
	require.NoError(t, service.Logout(ctx, ""))
}

/*
TestService_Me resolves the profile behind a token's user ID.
*/
func TestService_Me(t *testing.T) {
	service, _, _ := newAuthService(t, "correct horse battery")
	ctx := context.Background()

	user, err := service.Me(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "mumo-admin", user.Username)

	_, err = service.Me(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
