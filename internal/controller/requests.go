// Package controller holds the client-side request lifecycle: fetching
// and caching the pickup request list, role-scoped queries, and the
// mutations the screens issue. The session is always passed in
// explicitly; nothing here reads ambient auth state except to detect
// that the session changed mid-fetch.
package controller

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kanishkm/recyclit/internal/api"
	"github.com/kanishkm/recyclit/internal/models"
	"github.com/kanishkm/recyclit/internal/session"
	"github.com/kanishkm/recyclit/internal/validation"
)

// ErrBusy means another call from this controller is still in flight.
// Screens gate on Busy() before issuing work; this is the backstop.
var ErrBusy = errors.New("another operation is in flight")

// RequestController owns the cached pickup request list backing one
// active screen. The backend is the system of record; the cache is a
// transient, sorted copy that is replaced wholesale on every
// successful fetch and left untouched by failed operations.
type RequestController struct {
	api      *api.Client
	sessions *session.Store

	mu    sync.Mutex
	cache []models.PickupRequest
	busy  bool
}

func NewRequestController(client *api.Client, sessions *session.Store) *RequestController {
	return &RequestController{api: client, sessions: sessions}
}

// Requests returns the current sorted snapshot. Empty is a valid
// state, not an error.
func (c *RequestController) Requests() []models.PickupRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.PickupRequest, len(c.cache))
	copy(out, c.cache)
	return out
}

func (c *RequestController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *RequestController) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *RequestController) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// List fetches the request list scoped to the session's role: admins
// see every record, residents only their own.
func (c *RequestController) List(ctx context.Context, sess models.Session) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()
	return c.refresh(ctx, sess)
}

// refresh fetches and commits without taking the busy gate, so
// mutations can chain a refetch inside their own window.
func (c *RequestController) refresh(ctx context.Context, sess models.Session) error {
	scope := ""
	if sess.Role() != models.RoleAdmin {
		scope = sess.UserID()
	}

	fetched, err := c.api.ListRequests(ctx, sess.Token, scope)
	if err != nil {
		return err
	}

	// A login/logout while the fetch was in flight makes this
	// response stale: drop it rather than show another identity's
	// records.
	if c.sessions.Current().UserID() != sess.UserID() {
		return nil
	}

	sortRequests(fetched)
	c.mu.Lock()
	c.cache = fetched
	c.mu.Unlock()
	return nil
}

// Create validates the draft locally, submits it as the session's
// user, and refetches on success. Validation failures never reach the
// network.
func (c *RequestController) Create(ctx context.Context, sess models.Session, draft models.RequestDraft) error {
	if err := validation.ValidateRequestDraft(draft); err != nil {
		return err
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if _, err := c.api.CreateRequest(ctx, sess.Token, sess.UserID(), draft); err != nil {
		return err
	}
	return c.refresh(ctx, sess)
}

// UpdateStatus moves a request to a new status. Only admin screens
// expose this; the backend enforces the role. A vanished record comes
// back as a not-found error the caller can surface and move on from.
func (c *RequestController) UpdateStatus(ctx context.Context, sess models.Session, id string, status models.Status) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if _, err := c.api.UpdateRequestStatus(ctx, sess.Token, id, status); err != nil {
		return err
	}
	return c.refresh(ctx, sess)
}

// Delete removes a request. Permitted for admins and for the owning
// resident; whether a screen offers it is the screen's policy. A
// backend 404 counts as success (the record is gone either way).
func (c *RequestController) Delete(ctx context.Context, sess models.Session, id string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.api.DeleteRequest(ctx, sess.Token, id); err != nil {
		return err
	}
	return c.refresh(ctx, sess)
}

// sortRequests orders the list for display: pending before scheduled
// before completed, and within a status the most recently touched
// record first. The sort is stable so equal timestamps keep their
// fetch order.
func sortRequests(requests []models.PickupRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if a.Status.Rank() != b.Status.Rank() {
			return a.Status.Rank() < b.Status.Rank()
		}
		return a.TouchedAt().After(b.TouchedAt())
	})
}
