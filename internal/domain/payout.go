package domain

import (
	"time"

	"github.com/google/uuid"
)

// PayoutType distinguishes the reservation advance from the final settlement
// obligation of a booking.
type PayoutType string

const (
	PayoutTypeReservation PayoutType = "RESERVATION"
	PayoutTypeFinal       PayoutType = "FINAL"
)

// PayoutStatus is the status of a payout obligation. PAID and REVERSED are
// written by the external settlement collaborator, never by this service.
type PayoutStatus string

const (
	PayoutRequested            PayoutStatus = "REQUESTED"
	PayoutPendingAdminApproval PayoutStatus = "PENDING_ADMIN_APPROVAL"
	PayoutApproved             PayoutStatus = "APPROVED"
	PayoutHeld                 PayoutStatus = "HELD"
	PayoutPaid                 PayoutStatus = "PAID"
	PayoutReversed             PayoutStatus = "REVERSED"
)

// Payout is an obligation to transfer funds to a vendor for a booking, tied
// to the booking's payment. A payout may only reach APPROVED while the
// owning vendor has payouts enabled.
type Payout struct {
	ID          uuid.UUID    `json:"id"`
	VendorID    uuid.UUID    `json:"vendor_id"`
	BookingID   uuid.UUID    `json:"booking_id"`
	PaymentID   uuid.UUID    `json:"payment_id"`
	Type        PayoutType   `json:"type"`
	Status      PayoutStatus `json:"status"`
	AmountCents int64        `json:"amount_cents"`
	Note        *string      `json:"note,omitempty"`
	Version     int          `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// PayoutListFilter narrows payout listings.
type PayoutListFilter struct {
	Status   PayoutStatus
	VendorID uuid.UUID
}
