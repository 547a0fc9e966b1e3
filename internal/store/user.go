package store

import (
	"database/sql"
	"fmt"

	"github.com/umersaeed/notesapi/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, full_name, email, password_hash, created_on`

// Create inserts a new user. Email uniqueness is the caller's concern;
// the store always inserts.
func (s *UserStore) Create(fullName, email, passwordHash string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (full_name, email, password_hash) VALUES (?, ?, ?)`,
		fullName, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
