package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kanishkm/recyclit/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestCall_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	if err := client.Call(context.Background(), http.MethodGet, "/requests", nil, nil, "tok-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected 'Bearer tok-123', got '%s'", gotAuth)
	}
}

func TestCall_NoTokenNoAuthHeader(t *testing.T) {
	var hadAuth bool
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	if err := client.Call(context.Background(), http.MethodGet, "/requests", nil, nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadAuth {
		t.Error("expected no Authorization header for unauthenticated call")
	}
}

func TestCall_SetsRequestID(t *testing.T) {
	var first, second string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if first == "" {
			first = r.Header.Get("X-Request-ID")
		} else {
			second = r.Header.Get("X-Request-ID")
		}
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	client.Call(context.Background(), http.MethodGet, "/requests", nil, nil, "")
	client.Call(context.Background(), http.MethodGet, "/requests", nil, nil, "")

	if first == "" || second == "" {
		t.Fatal("expected X-Request-ID on every call")
	}
	if first == second {
		t.Error("expected a fresh request id per call")
	}
}

func TestCall_ErrorMessageFromBackend(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	})
	defer server.Close()

	err := client.Call(context.Background(), http.MethodPost, "/users/login", nil, nil, "")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("expected backend message, got '%s'", err.Error())
	}
}

func TestCall_ErrorMessageFallback(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})
	defer server.Close()

	err := client.Call(context.Background(), http.MethodGet, "/requests", nil, nil, "t")
	if err == nil {
		t.Fatal("expected error for 500")
	}
	if err.Error() != "API error: status 500" {
		t.Errorf("expected status-derived message, got '%s'", err.Error())
	}
}

func TestCall_TransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second)

	err := client.Call(context.Background(), http.MethodGet, "/requests", nil, nil, "t")
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("transport failure must not be an APIError")
	}
}

func decodeJSONBody(t *testing.T, r *http.Request, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{Status: 404, Message: "gone"}) {
		t.Error("expected 404 APIError to match")
	}
	if IsNotFound(&APIError{Status: 500, Message: "boom"}) {
		t.Error("expected 500 APIError not to match")
	}
	if IsNotFound(nil) {
		t.Error("expected nil not to match")
	}
}

func TestDeleteRequest_404IsSuccess(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})
	defer server.Close()

	if err := client.DeleteRequest(context.Background(), "tok", "r1"); err != nil {
		t.Errorf("expected 404 delete to succeed, got: %v", err)
	}
}

func TestDeleteUser_404IsError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such user"}`))
	})
	defer server.Close()

	err := client.DeleteUser(context.Background(), "tok", "u1")
	if !IsNotFound(err) {
		t.Errorf("expected NotFound error, got: %v", err)
	}
}

func TestListRequests_ScopesQueryByUser(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	if _, err := client.ListRequests(context.Background(), "tok", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "userId=u1" {
		t.Errorf("expected userId=u1 query, got '%s'", gotQuery)
	}

	if _, err := client.ListRequests(context.Background(), "tok", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("expected no query for admin scope, got '%s'", gotQuery)
	}
}

func TestCreateRequest_SendsOwnerAndDraft(t *testing.T) {
	var gotBody map[string]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		decodeJSONBody(t, r, &gotBody)
		w.Write([]byte(`{"id":"r1","userId":"u1","materialType":"plastic","quantity":"5kg","pickupAddress":"123 Main St","status":"pending","createdAt":"2026-01-02T10:00:00Z"}`))
	})
	defer server.Close()

	draft := models.RequestDraft{
		MaterialType:  models.MaterialPlastic,
		Quantity:      "5kg",
		PickupAddress: "123 Main St",
	}
	created, err := client.CreateRequest(context.Background(), "tok", "u1", draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["userId"] != "u1" {
		t.Errorf("expected userId 'u1' in body, got '%s'", gotBody["userId"])
	}
	if gotBody["materialType"] != "plastic" || gotBody["quantity"] != "5kg" || gotBody["pickupAddress"] != "123 Main St" {
		t.Errorf("draft fields not carried through: %v", gotBody)
	}
	if created.Status != models.StatusPending {
		t.Errorf("expected created record pending, got '%s'", created.Status)
	}
}

func TestUpdateRequestStatus_PatchesStatus(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		decodeJSONBody(t, r, &gotBody)
		w.Write([]byte(`{"id":"r1","status":"scheduled"}`))
	})
	defer server.Close()

	updated, err := client.UpdateRequestStatus(context.Background(), "tok", "r1", models.StatusScheduled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", gotMethod)
	}
	if gotBody["status"] != "scheduled" {
		t.Errorf("expected status 'scheduled' in body, got '%s'", gotBody["status"])
	}
	if updated.Status != models.StatusScheduled {
		t.Errorf("expected updated status scheduled, got '%s'", updated.Status)
	}
}
