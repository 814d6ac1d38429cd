package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/safeguard/internal/auth"
	"github.com/hongminglow/safeguard/internal/http/respond"
	"github.com/hongminglow/safeguard/internal/logging"
	"github.com/hongminglow/safeguard/internal/middleware"
	"github.com/hongminglow/safeguard/internal/models/dto"
	"github.com/hongminglow/safeguard/internal/users"
)

const maxBodyBytes = 1 << 20

// AuthHandler owns the /api/user endpoints.
type AuthHandler struct {
	users  *users.Service
	tokens *auth.TokenManager
	log    logging.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *users.Service, tokens *auth.TokenManager, log logging.Logger) *AuthHandler {
	return &AuthHandler{users: svc, tokens: tokens, log: log}
}

// Register attaches auth routes under /api/user.
func (h *AuthHandler) Register(r chi.Router) {
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.With(middleware.Authenticate(h.tokens)).Get("/me", h.handleMe)
	})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, respond.MsgInvalidBody)
		return
	}

	_, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var ve *users.ValidationError
		switch {
		case errors.As(err, &ve):
			respond.Message(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, users.ErrDuplicateUser):
			respond.Message(w, http.StatusBadRequest, "User already exists")
		default:
			h.log.Error(r.Context(), "registration failed", "error", err)
			respond.Message(w, http.StatusInternalServerError, respond.MsgServerError)
		}
		return
	}

	respond.Message(w, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, respond.MsgInvalidBody)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respond.Message(w, http.StatusUnauthorized, respond.MsgInvalidCredentials)
			return
		}
		h.log.Error(r.Context(), "login failed", "error", err)
		respond.Message(w, http.StatusInternalServerError, respond.MsgServerError)
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		ID:    res.User.ID,
		Name:  res.User.Name,
		Email: res.User.Email,
		Token: res.Token,
	})
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, respond.MsgUnauthorized)
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUnknownUser) {
			respond.Message(w, http.StatusUnauthorized, respond.MsgUnauthorized)
			return
		}
		h.log.Error(r.Context(), "profile lookup failed", "user_id", userID, "error", err)
		respond.Message(w, http.StatusInternalServerError, respond.MsgServerError)
		return
	}

	respond.JSON(w, http.StatusOK, dto.ProfileResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
