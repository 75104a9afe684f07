package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingState is the lifecycle status of a booking. States advance
// monotonically except for CANCELED, which is reachable from any
// non-terminal state and requires a cancellation reason.
type BookingState string

const (
	BookingCreated         BookingState = "CREATED"
	BookingVendorApproved  BookingState = "VENDOR_APPROVED"
	BookingCountered       BookingState = "COUNTERED"
	BookingReadyForPayment BookingState = "READY_FOR_PAYMENT"
	BookingActive          BookingState = "ACTIVE"
	BookingCompleted       BookingState = "COMPLETED"
	BookingCanceled        BookingState = "CANCELED"
)

// Milestone is one entry in a booking's append-only transition log.
type Milestone struct {
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Booking represents an agreement between an organizer and a vendor for an
// event. The booking workflow owns these records; the admin control plane
// only reads them.
type Booking struct {
	ID                 uuid.UUID    `json:"id"`
	OrganizerID        uuid.UUID    `json:"organizer_id"`
	VendorID           uuid.UUID    `json:"vendor_id"`
	EventName          string       `json:"event_name"`
	EventDate          time.Time    `json:"event_date"`
	State              BookingState `json:"state"`
	CancellationReason *string      `json:"cancellation_reason,omitempty"`
	Milestones         []Milestone  `json:"milestones"`
	TotalAmountCents   int64        `json:"total_amount_cents"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// BookingListFilter narrows booking listings by state.
type BookingListFilter struct {
	State BookingState
}
