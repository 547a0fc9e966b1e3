package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/umersaeed/notesapi/internal/handler"
	"github.com/umersaeed/notesapi/internal/middleware"
	"github.com/umersaeed/notesapi/internal/store"
	"github.com/umersaeed/notesapi/internal/token"
	ws "github.com/umersaeed/notesapi/internal/websocket"
)

type Server struct {
	db     *sql.DB
	hub    *ws.Hub
	tokens *token.Service
	authH  *handler.AuthHandler
	noteH  *handler.NoteHandler
	userH  *handler.UserHandler
	logger *slog.Logger
}

func New(db *sql.DB, tokenSecret string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	tokens := token.NewService(tokenSecret)

	userStore := store.NewUserStore(db)
	noteStore := store.NewNoteStore(db)

	return &Server{
		db:     db,
		hub:    hub,
		tokens: tokens,
		authH:  handler.NewAuthHandler(userStore, tokens, logger.With("component", "auth")),
		noteH:  handler.NewNoteHandler(noteStore, hub, logger.With("component", "note")),
		userH:  handler.NewUserHandler(userStore, logger.With("component", "user")),
		logger: logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /{$}", s.rootHandler)
	mux.HandleFunc("POST /create-account", s.authH.CreateAccount)
	mux.HandleFunc("POST /login", s.authH.Login)

	// Protected routes behind the bearer-token middleware
	protected := http.NewServeMux()
	protected.HandleFunc("POST /add-note", s.noteH.Add)
	protected.HandleFunc("PUT /edit-note/{noteId}", s.noteH.Edit)
	protected.HandleFunc("GET /get-all-notes", s.noteH.List)
	protected.HandleFunc("DELETE /delete-note/{noteId}", s.noteH.Delete)
	protected.HandleFunc("PUT /update-note-pinned/{noteId}", s.noteH.UpdatePinned)
	protected.HandleFunc("GET /get-user", s.userH.Get)
	protected.HandleFunc("GET /search-notes", s.noteH.Search)
	protected.Handle("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))

	requireAuth := middleware.RequireAuth(s.tokens)
	mux.Handle("/", requireAuth(protected))

	return middleware.RequestLogger(s.logger.With("component", "http"))(middleware.CORS(mux))
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"data": "hello umer"})
}
