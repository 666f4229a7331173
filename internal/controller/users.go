package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/kanishkm/recyclit/internal/api"
	"github.com/kanishkm/recyclit/internal/models"
	"github.com/kanishkm/recyclit/internal/validation"
)

// ErrSelfDelete is returned before any network call when an admin
// tries to delete their own account.
var ErrSelfDelete = errors.New("you cannot delete yourself")

// UserController backs the admin user-management screen: the account
// list plus add, edit, and delete. Same cache discipline as the
// request controller.
type UserController struct {
	api *api.Client

	mu    sync.Mutex
	cache []models.User
	busy  bool
}

func NewUserController(client *api.Client) *UserController {
	return &UserController{api: client}
}

func (c *UserController) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.User, len(c.cache))
	copy(out, c.cache)
	return out
}

func (c *UserController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *UserController) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *UserController) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *UserController) List(ctx context.Context, sess models.Session) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()
	return c.refresh(ctx, sess)
}

func (c *UserController) refresh(ctx context.Context, sess models.Session) error {
	users, err := c.api.ListUsers(ctx, sess.Token)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.cache = users
	c.mu.Unlock()
	return nil
}

// Add registers a new account on behalf of an admin. All three fields
// are required locally before the call goes out.
func (c *UserController) Add(ctx context.Context, sess models.Session, draft models.RegisterDraft) error {
	if err := validation.ValidateRegisterDraft(draft); err != nil {
		return err
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if _, err := c.api.Register(ctx, draft, sess.Token); err != nil {
		return err
	}
	return c.refresh(ctx, sess)
}

func (c *UserController) Update(ctx context.Context, sess models.Session, id string, update models.UserUpdate) error {
	if err := validation.ValidateUserUpdate(update); err != nil {
		return err
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if _, err := c.api.UpdateUser(ctx, sess.Token, id, update); err != nil {
		return err
	}
	return c.refresh(ctx, sess)
}

// Delete removes an account. Deleting the session's own account is
// rejected locally with a dedicated message; unlike pickup requests, a
// 404 here surfaces as an error.
func (c *UserController) Delete(ctx context.Context, sess models.Session, id string) error {
	if id == sess.UserID() {
		return ErrSelfDelete
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.api.DeleteUser(ctx, sess.Token, id); err != nil {
		return err
	}
	return c.refresh(ctx, sess)
}
