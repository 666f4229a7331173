package validation

import (
	"errors"
	"strings"

	"github.com/kanishkm/recyclit/internal/models"
)

var (
	ErrQuantityRequired = errors.New("quantity is required")
	ErrAddressRequired  = errors.New("pickup address is required")
	ErrUnknownMaterial  = errors.New("unknown material type")

	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUnknownRole      = errors.New("unknown role")
)

// ValidateRequestDraft checks a pickup request draft before it goes
// anywhere near the network. Required text fields must be non-empty
// after trimming.
func ValidateRequestDraft(d models.RequestDraft) error {
	if !d.MaterialType.Valid() {
		return ErrUnknownMaterial
	}
	if strings.TrimSpace(d.Quantity) == "" {
		return ErrQuantityRequired
	}
	if strings.TrimSpace(d.PickupAddress) == "" {
		return ErrAddressRequired
	}
	return nil
}

// ValidateRegisterDraft checks a registration form. An empty role is
// allowed and means the backend default (resident).
func ValidateRegisterDraft(d models.RegisterDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(d.Email) == "" {
		return ErrEmailRequired
	}
	if d.Password == "" {
		return ErrPasswordRequired
	}
	if d.Role != "" && !d.Role.Valid() {
		return ErrUnknownRole
	}
	return nil
}

// ValidateUserUpdate checks an admin edit of a user record.
func ValidateUserUpdate(u models.UserUpdate) error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmailRequired
	}
	if !u.Role.Valid() {
		return ErrUnknownRole
	}
	return nil
}
