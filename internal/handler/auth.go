package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/umersaeed/notesapi/internal/store"
	"github.com/umersaeed/notesapi/internal/token"
)

type AuthHandler struct {
	users  *store.UserStore
	tokens *token.Service
	logger *slog.Logger
}

func NewAuthHandler(us *store.UserStore, tokens *token.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: us, tokens: tokens, logger: logger}
}

func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FullName == "" {
		writeError(w, http.StatusBadRequest, "Full name is required!")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("signup lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if existing != nil {
		// Existing clients expect this as a 200 with error set, not an
		// HTTP error status.
		writeError(w, http.StatusOK, "User already exists!")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	user, err := h.users.Create(req.FullName, req.Email, string(hash))
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	accessToken, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":       false,
		"user":        user,
		"accessToken": accessToken,
		"message":     "Registration successful!",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusBadRequest, "User does not exist!")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials!")
		return
	}

	accessToken, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":       false,
		"email":       req.Email,
		"accessToken": accessToken,
		"message":     "Login successful!",
	})
}
