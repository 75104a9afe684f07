package domain

import (
	"time"

	"github.com/google/uuid"
)

// DisputeStatus is the status of a contested booking. RESOLVED and REJECTED
// are terminal; renewed contention requires a new dispute so that the audit
// trail stays linear.
type DisputeStatus string

const (
	DisputeOpen        DisputeStatus = "OPEN"
	DisputeUnderReview DisputeStatus = "UNDER_REVIEW"
	DisputeResolved    DisputeStatus = "RESOLVED"
	DisputeRejected    DisputeStatus = "REJECTED"
)

// Terminal reports whether the dispute has been closed out.
func (s DisputeStatus) Terminal() bool {
	return s == DisputeResolved || s == DisputeRejected
}

// Blocking reports whether the dispute currently blocks settlement of
// payouts tied to its booking.
func (s DisputeStatus) Blocking() bool {
	return s == DisputeOpen || s == DisputeUnderReview
}

// Dispute is a formal contest over a booking's outcome.
type Dispute struct {
	ID         uuid.UUID     `json:"id"`
	BookingID  uuid.UUID     `json:"booking_id"`
	OpenedBy   string        `json:"opened_by"`
	Reason     string        `json:"reason"`
	Status     DisputeStatus `json:"status"`
	Resolution *string       `json:"resolution,omitempty"`
	ResolvedBy *string       `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
	Version    int           `json:"version"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// DisputeListFilter narrows dispute listings by status.
type DisputeListFilter struct {
	Status DisputeStatus
}
