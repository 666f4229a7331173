package models

import "time"

type MaterialType string

const (
	MaterialPlastic MaterialType = "plastic"
	MaterialPaper   MaterialType = "paper"
	MaterialGlass   MaterialType = "glass"
	MaterialMetal   MaterialType = "metal"
	MaterialEWaste  MaterialType = "e-waste"
	MaterialTextile MaterialType = "textile"
	MaterialOrganic MaterialType = "organic"
	MaterialOther   MaterialType = "other"
)

// MaterialTypes lists every accepted material in display order.
var MaterialTypes = []MaterialType{
	MaterialPlastic,
	MaterialPaper,
	MaterialGlass,
	MaterialMetal,
	MaterialEWaste,
	MaterialTextile,
	MaterialOrganic,
	MaterialOther,
}

func (m MaterialType) Valid() bool {
	for _, known := range MaterialTypes {
		if m == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
)

// Statuses in rank order: pending sorts before scheduled before completed.
var Statuses = []Status{StatusPending, StatusScheduled, StatusCompleted}

// Rank returns the fixed sort rank of the status. Unknown statuses rank
// after every known one so malformed records sink to the bottom instead
// of breaking the ordering.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusScheduled:
		return 1
	case StatusCompleted:
		return 2
	}
	return 3
}

func (s Status) Valid() bool {
	return s.Rank() < 3
}

// PickupRequest is one resident submission to have recyclable material
// collected. UserID never changes after creation; only an admin moves
// Status. Timestamps are stamped by the backend.
type PickupRequest struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	MaterialType  MaterialType `json:"materialType"`
	Quantity      string       `json:"quantity"`
	PickupAddress string       `json:"pickupAddress"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
}

// TouchedAt is the timestamp used for ordering: last update if the
// record was ever updated, otherwise creation time.
func (r PickupRequest) TouchedAt() time.Time {
	if r.UpdatedAt != nil {
		return *r.UpdatedAt
	}
	return r.CreatedAt
}

// RequestDraft is the resident-entered portion of a new pickup request.
// The owner id and pending status are filled in at submission.
type RequestDraft struct {
	MaterialType  MaterialType `json:"materialType"`
	Quantity      string       `json:"quantity"`
	PickupAddress string       `json:"pickupAddress"`
}
