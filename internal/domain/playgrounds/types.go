package playgrounds

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound          = errors.New("playground not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	QueryTimeoutDuration = time.Second * 5
)

// Status is the moderation lifecycle of a playground. Submissions start
// pending and move to approved or rejected through an admin action only.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Image is one photo attached to a playground. Images belong to exactly one
// playground and share its moderation vocabulary.
type Image struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Playground is the internal entity shape served to clients.
type Playground struct {
	ID              int64     `json:"id"`
	ShareCode       string    `json:"share_code,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	PostalCode      string    `json:"postal_code"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Images          []Image   `json:"images"`
	Features        []string  `json:"features"`
	AgeRange        string    `json:"age_range"`
	Status          Status    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	SubmittedBy     int64     `json:"submitted_by"`
	EquipmentIDs    []string  `json:"equipment_ids"`

	// DistanceKm is derived at query time against the caller's reference
	// location; it is never persisted.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// RawImage mirrors one playground_images row before normalization.
type RawImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Raw mirrors the backend row shape (snake_case, joined collections)
// before normalization into Playground.
type Raw struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	PostalCode   string     `json:"postal_code"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	AgeRange     string     `json:"age_range"`
	Status       string     `json:"status"`
	Rejection    *string    `json:"rejection_reason"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	SubmittedBy  int64      `json:"submitted_by"`
	Images       []RawImage `json:"playground_images"`
	EquipmentIDs []string   `json:"equipment_ids"`
}

// CreateInput is the payload for a new submission.
type CreateInput struct {
	Name         string
	Description  string
	Address      string
	City         string
	PostalCode   string
	Latitude     float64
	Longitude    float64
	AgeRange     string
	SubmittedBy  int64
	ImageURLs    []string
	EquipmentIDs []string
}

// UpdateInput carries the editable base fields. Nil fields are left
// untouched. Photo replacement is deliberately not part of the edit
// contract; EquipmentIDs non-nil replaces the full association set.
type UpdateInput struct {
	Name         *string
	Description  *string
	Address      *string
	City         *string
	PostalCode   *string
	Latitude     *float64
	Longitude    *float64
	AgeRange     *string
	EquipmentIDs []string
}

// ListFilter selects playgrounds for the admin listing.
type ListFilter struct {
	Status *Status
	Limit  int
	Offset int
}

// Store is the persistence contract for playgrounds.
type Store interface {
	ListApproved(ctx context.Context) ([]Raw, error)
	ListBySubmitter(ctx context.Context, userID int64) ([]Raw, error)
	GetByID(ctx context.Context, id int64) (*Raw, error)
	List(ctx context.Context, filter ListFilter) ([]Raw, int, error)
	Create(ctx context.Context, tx pgx.Tx, in *CreateInput) (*Raw, error)
	AddImages(ctx context.Context, tx pgx.Tx, playgroundID int64, urls []string) error
	ReplaceEquipments(ctx context.Context, tx pgx.Tx, playgroundID int64, equipmentIDs []string) error
	Update(ctx context.Context, id int64, in *UpdateInput) error
	UpdateStatus(ctx context.Context, id int64, status Status, reason *string) error
	Delete(ctx context.Context, id int64) error
	IsSubmitter(ctx context.Context, id, userID int64) (bool, error)
}
