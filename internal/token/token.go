package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/umersaeed/notesapi/internal/model"
)

// ErrInvalidToken covers bad signatures, expired tokens, and malformed input.
var ErrInvalidToken = errors.New("invalid token")

// Validity matches the original service's 3600-minute token lifetime.
const Validity = 3600 * time.Minute

// UserClaims is the immutable snapshot of the user embedded in every
// token at issuance. It reflects the user as of login, not current store
// state, and deliberately excludes the password hash.
type UserClaims struct {
	ID        int64     `json:"_id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

type claims struct {
	jwt.RegisteredClaims
	User UserClaims `json:"user"`
}

type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs an HS256 token embedding a snapshot of the user, valid for
// Validity from now. Nothing is persisted.
func (s *Service) Issue(u *model.User) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Validity)),
		},
		User: UserClaims{
			ID:        u.ID,
			FullName:  u.FullName,
			Email:     u.Email,
			CreatedOn: u.CreatedOn,
		},
	})
	return t.SignedString(s.secret)
}

// Verify validates the signature and expiry and returns the embedded
// snapshot. It never reads the store.
func (s *Service) Verify(tokenString string) (*UserClaims, error) {
	c := &claims{}
	t, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	return &c.User, nil
}
