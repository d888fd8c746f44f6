package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mylib/internal/auth"
	"mylib/internal/httpx"
	"mylib/internal/user"
)

// AuthService is what the credential endpoints need from internal/auth.
type AuthService interface {
	Register(ctx context.Context, username, password string) (user.User, error)
	Login(ctx context.Context, username, password string) (string, int, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			JSONError(w, http.StatusConflict, "USER_EXISTS", "Username already taken", nil)
		case errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordNoUpper),
			errors.Is(err, auth.ErrPasswordNoLower),
			errors.Is(err, auth.ErrPasswordNoNumber):
			JSONError(w, http.StatusBadRequest, "WEAK_PASSWORD", err.Error(), nil)
		default:
			log.Printf("register error: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
			JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error", nil)
		}
		return
	}
	JSONSuccessCreated(w, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	token, expiresIn, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
			return
		}
		log.Printf("login error: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error", nil)
		return
	}
	JSONSuccess(w, map[string]any{
		"token":      token,
		"type":       "Bearer",
		"expires_in": expiresIn,
	}, nil)
}
