// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mumocomics/mumoweb/internal/platform/middleware"
	requestutil "github.com/mumocomics/mumoweb/internal/platform/request"
	"github.com/mumocomics/mumoweb/internal/platform/respond"
	"github.com/mumocomics/mumoweb/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs an auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /login  : Authenticates and returns a JWT plus a session ID.
//   - POST /logout : Revokes the current session.
//   - GET  /me     : Returns the authenticated account profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	SessionID string `json:"session_id"`
}

/*
Login authenticates a staff account.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: LoginResult: Access token, session ID, account profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Username:  input.Username,
		Password:  input.Password,
		IPAddress: request.RemoteAddr,
		UserAgent: request.UserAgent(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Logout revokes the session named in the request body.

POST /api/v1/auth/logout

Response:
  - 204: No Content: Session revoked (or was already gone)
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var input logoutRequest
	_ = requestutil.DecodeJSON(request, &input)

	if err := handler.authService.Logout(request.Context(), input.SessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Me returns the authenticated account profile.

GET /api/v1/auth/me

Response:
  - 200: User: The current account
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
