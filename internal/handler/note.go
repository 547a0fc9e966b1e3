package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/umersaeed/notesapi/internal/auth"
	"github.com/umersaeed/notesapi/internal/model"
	"github.com/umersaeed/notesapi/internal/store"
	"github.com/umersaeed/notesapi/internal/websocket"
)

type NoteHandler struct {
	notes  *store.NoteStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, hub *websocket.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: ns, hub: hub, logger: logger}
}

func (h *NoteHandler) broadcast(ownerID int64, action string, noteID int64) {
	if h.hub != nil {
		h.hub.Broadcast(ownerID, websocket.NoteEvent(action, noteID))
	}
}

func (h *NoteHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required!")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required!")
		return
	}

	note, err := h.notes.Create(user.ID, req.Title, req.Content, req.Tags)
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeError(w, http.StatusInternalServerError, "Error adding note!")
		return
	}

	h.broadcast(user.ID, "created", note.ID)

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"note":    note,
		"message": "Note added successfully!",
	})
}

func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Tags     []string `json:"tags"`
		IsPinned bool     `json:"isPinned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Empty values mean "field not supplied", never "clear field".
	if req.Title == "" && req.Content == "" && len(req.Tags) == 0 {
		writeError(w, http.StatusBadRequest, "No changes provided")
		return
	}

	id, err := parseNoteID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found!")
		return
	}

	note, err := h.notes.GetOwned(id, user.ID)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating note!")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "Note not found!")
		return
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != "" {
		note.Content = req.Content
	}
	if len(req.Tags) > 0 {
		note.Tags = req.Tags
	}
	// Edit can only turn pinning on; unpinning goes through update-note-pinned.
	if req.IsPinned {
		note.IsPinned = true
	}

	updated, err := h.notes.Update(note)
	if err != nil {
		h.logger.Error("update note", "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating note!")
		return
	}

	h.broadcast(user.ID, "updated", id)

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"note":    updated,
		"message": "Note updated successfully!",
	})
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	notes, err := h.notes.ListOwned(user.ID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching notes!")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"notes":   notes,
		"message": "Notes fetched successfully!",
	})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := parseNoteID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found!")
		return
	}

	note, err := h.notes.GetOwned(id, user.ID)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeError(w, http.StatusInternalServerError, "Error deleting note!")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "Note not found!")
		return
	}

	if err := h.notes.Delete(id, user.ID); err != nil {
		h.logger.Error("delete note", "error", err)
		writeError(w, http.StatusInternalServerError, "Error deleting note!")
		return
	}

	h.broadcast(user.ID, "deleted", id)

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"message": "Note deleted successfully!",
	})
}

func (h *NoteHandler) UpdatePinned(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// An empty or bodyless request is valid here and means "unpin".
	var req struct {
		IsPinned bool `json:"isPinned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := parseNoteID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found!")
		return
	}

	note, err := h.notes.GetOwned(id, user.ID)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating note!")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "Note not found!")
		return
	}

	note.IsPinned = req.IsPinned

	updated, err := h.notes.Update(note)
	if err != nil {
		h.logger.Error("update note", "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating note!")
		return
	}

	h.broadcast(user.ID, "pinned", id)

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"note":    updated,
		"message": "Note updated successfully!",
	})
}

func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query is required!")
		return
	}

	notes, err := h.notes.Search(user.ID, query)
	if err != nil {
		h.logger.Error("search notes", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching notes!")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"notes":   notes,
		"message": "Notes matching the search query retrieved successfully!",
	})
}

func parseNoteID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("noteId"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": true, "message": message})
}
