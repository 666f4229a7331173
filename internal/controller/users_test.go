package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kanishkm/recyclit/internal/api"
	"github.com/kanishkm/recyclit/internal/models"
	"github.com/kanishkm/recyclit/internal/session"
	"github.com/kanishkm/recyclit/internal/validation"
)

func adminSession(t *testing.T) models.Session {
	t.Helper()
	store := session.NewStore("")
	return userSession(t, store, "a1", models.RoleAdmin)
}

func TestUserList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-a1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		writeJSON(t, w, []models.User{
			{ID: "a1", Name: "Admin", Email: "a@x.c", Role: models.RoleAdmin},
			{ID: "u1", Name: "Resident", Email: "u@x.c", Role: models.RoleUser},
		})
	}))
	defer server.Close()

	ctrl := NewUserController(api.NewClient(server.URL, time.Second))
	if err := ctrl.List(context.Background(), adminSession(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctrl.Users()) != 2 {
		t.Errorf("expected two cached users, got %d", len(ctrl.Users()))
	}
}

func TestUserDelete_SelfRejectedLocally(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, []models.User{})
	}))
	defer server.Close()

	ctrl := NewUserController(api.NewClient(server.URL, time.Second))
	sess := adminSession(t)

	err := ctrl.Delete(context.Background(), sess, sess.UserID())
	if err != ErrSelfDelete {
		t.Fatalf("expected ErrSelfDelete, got: %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("self-delete must not reach the network, saw %d calls", hits.Load())
	}
}

func TestUserDelete_OtherUserRefreshes(t *testing.T) {
	var deleted string
	var listed atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			deleted = strings.TrimPrefix(r.URL.Path, "/users/")
			w.WriteHeader(http.StatusNoContent)
		default:
			listed.Add(1)
			writeJSON(t, w, []models.User{})
		}
	}))
	defer server.Close()

	ctrl := NewUserController(api.NewClient(server.URL, time.Second))
	if err := ctrl.Delete(context.Background(), adminSession(t), "u9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "u9" {
		t.Errorf("expected delete of u9, got '%s'", deleted)
	}
	if listed.Load() != 1 {
		t.Errorf("expected one refresh after delete, saw %d", listed.Load())
	}
}

func TestUserAdd_ValidationShortCircuits(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, models.AuthResponse{})
	}))
	defer server.Close()

	ctrl := NewUserController(api.NewClient(server.URL, time.Second))
	draft := models.RegisterDraft{Name: "", Email: "x@y.z", Password: "pw"}

	if err := ctrl.Add(context.Background(), adminSession(t), draft); err != validation.ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got: %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("invalid draft must not reach the network, saw %d calls", hits.Load())
	}
}

func TestUserUpdate(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody models.UserUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			gotMethod = r.Method
			gotPath = r.URL.Path
			json.NewDecoder(r.Body).Decode(&gotBody)
			writeJSON(t, w, models.User{ID: "u1", Name: gotBody.Name, Email: gotBody.Email, Role: gotBody.Role})
			return
		}
		writeJSON(t, w, []models.User{})
	}))
	defer server.Close()

	ctrl := NewUserController(api.NewClient(server.URL, time.Second))
	update := models.UserUpdate{Name: "New Name", Email: "new@x.c", Role: models.RoleAdmin}
	if err := ctrl.Update(context.Background(), adminSession(t), "u1", update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/users/u1" {
		t.Errorf("expected PUT /users/u1, got %s %s", gotMethod, gotPath)
	}
	if gotBody != update {
		t.Errorf("update payload mismatch: %+v", gotBody)
	}
}
