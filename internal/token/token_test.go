package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/umersaeed/notesapi/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:        7,
		FullName:  "Ann Example",
		Email:     "a@x.com",
		CreatedOn: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret")

	tok, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("id = %d, want 7", got.ID)
	}
	if got.FullName != "Ann Example" {
		t.Errorf("full name = %q, want %q", got.FullName, "Ann Example")
	}
	if got.Email != "a@x.com" {
		t.Errorf("email = %q, want %q", got.Email, "a@x.com")
	}
	if !got.CreatedOn.Equal(testUser().CreatedOn) {
		t.Errorf("created on = %v, want %v", got.CreatedOn, testUser().CreatedOn)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewService("right-secret").Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewService("wrong-secret").Verify(tok); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	if _, err := NewService("s").Verify("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService("test-secret")

	// Build a token with the service's own claim shape but already expired.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		User: UserClaims{ID: 7},
	})
	tok, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

// The snapshot in the token reflects the user at issuance; verifying it
// later must return the original values even if the store has moved on.
func TestSnapshotIsImmutable(t *testing.T) {
	svc := NewService("test-secret")

	u := testUser()
	tok, err := svc.Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	u.FullName = "Renamed Later"

	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.FullName != "Ann Example" {
		t.Errorf("full name = %q, want the snapshot taken at issuance", got.FullName)
	}
}
