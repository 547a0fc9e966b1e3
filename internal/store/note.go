package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/umersaeed/notesapi/internal/model"
)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	var tags string
	var pinned int

	err := scanner.Scan(&n.ID, &n.Title, &n.Content, &tags, &pinned, &n.UserID, &n.CreatedOn)
	if err != nil {
		return nil, err
	}

	n.IsPinned = pinned != 0
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &n, nil
}

const noteCols = `id, title, content, tags, is_pinned, user_id, created_on`

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

func (s *NoteStore) Create(userID int64, title, content string, tags []string) (*model.Note, error) {
	tagsJSON, err := encodeTags(tags)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO notes (title, content, tags, user_id) VALUES (?, ?, ?, ?)`,
		title, content, tagsJSON, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetOwned(id, userID)
}

// GetOwned fetches a note by id scoped to its owner in a single predicate.
// Every mutating path goes through this; there is deliberately no
// unscoped get-by-id.
func (s *NoteStore) GetOwned(id, userID int64) (*model.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// Update writes the note's mutable fields, again scoped by owner so a
// note can never be rewritten across user boundaries.
func (s *NoteStore) Update(n *model.Note) (*model.Note, error) {
	tagsJSON, err := encodeTags(n.Tags)
	if err != nil {
		return nil, err
	}

	var pinned int
	if n.IsPinned {
		pinned = 1
	}

	_, err = s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, tags = ?, is_pinned = ? WHERE id = ? AND user_id = ?`,
		n.Title, n.Content, tagsJSON, pinned, n.ID, n.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.GetOwned(n.ID, n.UserID)
}

// ListOwned returns the user's notes, pinned first, newest first within
// each group.
func (s *NoteStore) ListOwned(userID int64) ([]model.Note, error) {
	rows, err := s.db.Query(
		`SELECT `+noteCols+` FROM notes WHERE user_id = ? ORDER BY is_pinned DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// likeEscaper makes LIKE metacharacters in user queries match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches the query as a case-insensitive substring of title or
// content, scoped to the owner.
func (s *NoteStore) Search(userID int64, query string) ([]model.Note, error) {
	escaped := likeEscaper.Replace(query)
	rows, err := s.db.Query(
		`SELECT `+noteCols+` FROM notes
		 WHERE user_id = ? AND (title LIKE '%' || ? || '%' ESCAPE '\' OR content LIKE '%' || ? || '%' ESCAPE '\')
		 ORDER BY is_pinned DESC, id DESC`,
		userID, escaped, escaped,
	)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// Delete removes the note if it belongs to the user. Deleting a note that
// is absent or foreign-owned is a no-op.
func (s *NoteStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func collectNotes(rows *sql.Rows) ([]model.Note, error) {
	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}
