package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kanishkm/recyclit/internal/models"
)

func testUser() models.User {
	return models.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u1"}
	if expiresIn != 0 {
		claims["exp"] = time.Now().Add(expiresIn).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestLoginLogout(t *testing.T) {
	store := NewStore("")

	if store.Current().Authenticated() {
		t.Fatal("expected fresh store to be logged out")
	}

	if err := store.Login(testUser(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess := store.Current()
	if !sess.Authenticated() {
		t.Fatal("expected authenticated session after login")
	}
	if sess.UserID() != "u1" || sess.Token != "tok" {
		t.Errorf("unexpected session contents: %+v", sess)
	}

	store.Logout()
	sess = store.Current()
	if sess.Authenticated() || sess.User != nil || sess.Token != "" {
		t.Errorf("expected fully cleared session, got %+v", sess)
	}
}

func TestLogin_RejectsHalfSet(t *testing.T) {
	store := NewStore("")

	if err := store.Login(testUser(), ""); err != ErrIncompleteSession {
		t.Errorf("expected ErrIncompleteSession for empty token, got %v", err)
	}
	if err := store.Login(models.User{}, "tok"); err != ErrIncompleteSession {
		t.Errorf("expected ErrIncompleteSession for empty user, got %v", err)
	}
	if store.Current().Authenticated() {
		t.Error("rejected login must not leave a session behind")
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(file)
	if err := store.Login(testUser(), signedToken(t, time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := NewStore(file)
	restored.Load()
	sess := restored.Current()
	if !sess.Authenticated() {
		t.Fatal("expected restored session to be authenticated")
	}
	if sess.UserID() != "u1" || sess.User.Email != "asha@example.com" {
		t.Errorf("restored session mismatch: %+v", sess.User)
	}
}

func TestPersistence_LogoutRemovesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(file)
	if err := store.Login(testUser(), signedToken(t, time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.Logout()

	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("expected session file removed on logout")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	store.Load()
	if store.Current().Authenticated() {
		t.Error("expected logged out session for missing file")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(file, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(file)
	store.Load()
	if store.Current().Authenticated() {
		t.Error("expected corrupt file to resolve to logged out")
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("expected corrupt file to be removed")
	}
}

func TestLoad_HalfSetRecord(t *testing.T) {
	cases := []string{
		`{"token":"tok"}`,
		`{"user":{"id":"u1","name":"A","email":"a@b.c","role":"user"}}`,
		`{"user":{"name":"no-id"},"token":"tok"}`,
	}

	for _, raw := range cases {
		file := filepath.Join(t.TempDir(), "session.json")
		if err := os.WriteFile(file, []byte(raw), 0o600); err != nil {
			t.Fatal(err)
		}

		store := NewStore(file)
		store.Load()
		if store.Current().Authenticated() {
			t.Errorf("expected half-set record %s to resolve to logged out", raw)
		}
	}
}

func TestLoad_ExpiredToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(file)
	if err := store.Login(testUser(), signedToken(t, -time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := NewStore(file)
	restored.Load()
	if restored.Current().Authenticated() {
		t.Error("expected expired token to force logout on load")
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("expected stale session file to be removed")
	}
}

func TestLoad_TokenWithoutExpiry(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(file)
	if err := store.Login(testUser(), signedToken(t, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := NewStore(file)
	restored.Load()
	if !restored.Current().Authenticated() {
		t.Error("expected token without exp claim to be accepted")
	}
}

func TestLoad_OpaqueToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(file)
	if err := store.Login(testUser(), "not-a-jwt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := NewStore(file)
	restored.Load()
	if !restored.Current().Authenticated() {
		t.Error("expected opaque token to be accepted on load")
	}
}
