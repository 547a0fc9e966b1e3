package handler

import (
	"log/slog"
	"net/http"

	"github.com/umersaeed/notesapi/internal/auth"
	"github.com/umersaeed/notesapi/internal/store"
)

type UserHandler struct {
	users  *store.UserStore
	logger *slog.Logger
}

func NewUserHandler(us *store.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: us, logger: logger}
}

// Get returns the caller's current user record, looked up by the id
// embedded in the token rather than trusting the rest of the snapshot.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetByID(claims.ID)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching user!")
		return
	}
	if user == nil {
		// A valid token for a vanished user gets a bare 401 with no
		// body; clients already treat this as a forced re-login.
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"message": "User fetched successfully!",
	})
}
