package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the status of a payment intent. CORRECTED is reachable
// only through the reconciliation ops tool and always carries an audit entry.
type PaymentStatus string

const (
	PaymentRequiresPaymentMethod PaymentStatus = "REQUIRES_PAYMENT_METHOD"
	PaymentRequiresConfirmation  PaymentStatus = "REQUIRES_CONFIRMATION"
	PaymentProcessing            PaymentStatus = "PROCESSING"
	PaymentSucceeded             PaymentStatus = "SUCCEEDED"
	PaymentCorrected             PaymentStatus = "CORRECTED"
	PaymentCanceled              PaymentStatus = "CANCELED"
)

// Terminal reports whether the payment can no longer change status through
// normal processing. Non-terminal payments are the reconciliation tool's
// candidate set.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSucceeded || s == PaymentCorrected || s == PaymentCanceled
}

// Payment is a payment intent tied 1:1 to a booking. Amounts are stored as
// int64 cents to avoid floating-point inaccuracies with financial data.
type Payment struct {
	ID          uuid.UUID     `json:"id"`
	BookingID   uuid.UUID     `json:"booking_id"`
	Status      PaymentStatus `json:"status"`
	AmountCents int64         `json:"amount_cents"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PaymentListFilter narrows payment listings by status.
type PaymentListFilter struct {
	Status PaymentStatus
}
