package handler

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/umersaeed/notesapi/internal/database"
	"github.com/umersaeed/notesapi/internal/store"
	"github.com/umersaeed/notesapi/internal/token"
)

type handlerFixture struct {
	users  *store.UserStore
	notes  *store.NoteStore
	tokens *token.Service
	authH  *AuthHandler
	noteH  *NoteHandler
	userH  *UserHandler
}

func setupHandlers(t *testing.T) *handlerFixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	notes := store.NewNoteStore(db)
	tokens := token.NewService("test-secret")
	logger := slog.Default()

	return &handlerFixture{
		users:  users,
		notes:  notes,
		tokens: tokens,
		authH:  NewAuthHandler(users, tokens, logger),
		noteH:  NewNoteHandler(notes, nil, logger),
		userH:  NewUserHandler(users, logger),
	}
}

func decodeEnvelope(t *testing.T, body string) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
	return envelope
}

func TestCreateAccountValidation(t *testing.T) {
	f := setupHandlers(t)

	cases := []struct {
		body    string
		message string
	}{
		{`{}`, "Full name is required!"},
		{`{"fullName":"Ann"}`, "Email is required"},
		{`{"fullName":"Ann","email":"a@x.com"}`, "Password is required"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/create-account", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		f.authH.CreateAccount(rec, req)

		if rec.Code != 400 {
			t.Errorf("body %s: status = %d, want 400", tc.body, rec.Code)
		}
		env := decodeEnvelope(t, rec.Body.String())
		if env["error"] != true {
			t.Errorf("body %s: error = %v, want true", tc.body, env["error"])
		}
		if env["message"] != tc.message {
			t.Errorf("body %s: message = %q, want %q", tc.body, env["message"], tc.message)
		}
	}
}

func TestSignupDuplicateAndLogin(t *testing.T) {
	f := setupHandlers(t)

	// Signup succeeds.
	req := httptest.NewRequest("POST", "/create-account",
		strings.NewReader(`{"fullName":"Ann","email":"a@x.com","password":"p1"}`))
	rec := httptest.NewRecorder()
	f.authH.CreateAccount(rec, req)

	if rec.Code != 200 {
		t.Fatalf("signup status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env["error"] != false {
		t.Errorf("signup error = %v, want false", env["error"])
	}
	if env["accessToken"] == nil || env["accessToken"] == "" {
		t.Error("signup returned no access token")
	}
	user, ok := env["user"].(map[string]any)
	if !ok {
		t.Fatalf("signup user payload = %v", env["user"])
	}
	if user["fullName"] != "Ann" {
		t.Errorf("user fullName = %v, want Ann", user["fullName"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must not serialize")
	}

	// Same email again: soft error on a 200, not an HTTP failure.
	req = httptest.NewRequest("POST", "/create-account",
		strings.NewReader(`{"fullName":"Ann Again","email":"a@x.com","password":"p2"}`))
	rec = httptest.NewRecorder()
	f.authH.CreateAccount(rec, req)

	if rec.Code != 200 {
		t.Errorf("duplicate signup status = %d, want 200", rec.Code)
	}
	env = decodeEnvelope(t, rec.Body.String())
	if env["error"] != true {
		t.Errorf("duplicate signup error = %v, want true", env["error"])
	}
	if env["message"] != "User already exists!" {
		t.Errorf("duplicate signup message = %q", env["message"])
	}

	// Wrong password rejected.
	req = httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	rec = httptest.NewRecorder()
	f.authH.Login(rec, req)

	if rec.Code != 400 {
		t.Errorf("bad login status = %d, want 400", rec.Code)
	}
	env = decodeEnvelope(t, rec.Body.String())
	if env["message"] != "Invalid credentials!" {
		t.Errorf("bad login message = %q", env["message"])
	}

	// Correct credentials yield a verifiable token.
	req = httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email":"a@x.com","password":"p1"}`))
	rec = httptest.NewRecorder()
	f.authH.Login(rec, req)

	if rec.Code != 200 {
		t.Fatalf("login status = %d, want 200", rec.Code)
	}
	env = decodeEnvelope(t, rec.Body.String())
	if env["error"] != false {
		t.Errorf("login error = %v, want false", env["error"])
	}
	if env["email"] != "a@x.com" {
		t.Errorf("login email = %v, want a@x.com", env["email"])
	}
	tok, _ := env["accessToken"].(string)
	claims, err := f.tokens.Verify(tok)
	if err != nil {
		t.Fatalf("login token does not verify: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("claims email = %q, want a@x.com", claims.Email)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	f := setupHandlers(t)

	req := httptest.NewRequest("POST", "/login",
		strings.NewReader(`{"email":"nobody@x.com","password":"p"}`))
	rec := httptest.NewRecorder()
	f.authH.Login(rec, req)

	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env["message"] != "User does not exist!" {
		t.Errorf("message = %q, want %q", env["message"], "User does not exist!")
	}
}

func TestLoginValidation(t *testing.T) {
	f := setupHandlers(t)

	cases := []struct {
		body    string
		message string
	}{
		{`{}`, "Email is required"},
		{`{"email":"a@x.com"}`, "Password is required"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/login", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		f.authH.Login(rec, req)

		if rec.Code != 400 {
			t.Errorf("body %s: status = %d, want 400", tc.body, rec.Code)
		}
		env := decodeEnvelope(t, rec.Body.String())
		if env["message"] != tc.message {
			t.Errorf("body %s: message = %q, want %q", tc.body, env["message"], tc.message)
		}
	}
}
