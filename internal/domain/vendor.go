/**
 * @description
 * This file defines the core domain models for vendors on the marketplace.
 * A vendor is either a venue owner or a service provider; its verification
 * state controls whether the platform may release payouts to it.
 *
 * @notes
 * - Statuses are stored as upper-case string enums so that API payloads,
 *   database rows, and audit metadata all carry the same literal values.
 * - `PayoutEnabled` is derived state: it is true exactly while the vendor is
 *   in the APPROVED verification state. The verification engine is the only
 *   writer and maintains that equivalence on every transition.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// VendorType distinguishes the two marketplace participant subtypes.
type VendorType string

const (
	VendorTypeVenueOwner      VendorType = "VENUE_OWNER"
	VendorTypeServiceProvider VendorType = "SERVICE_PROVIDER"
)

// VerificationState is the lifecycle status of a vendor's onboarding review.
type VerificationState string

const (
	VerificationPending        VerificationState = "PENDING"
	VerificationApproved       VerificationState = "APPROVED"
	VerificationNeedsChanges   VerificationState = "NEEDS_CHANGES"
	VerificationDisabledPayout VerificationState = "DISABLED_PAYOUT"
)

// VendorSubmission captures the onboarding material a vendor submitted for
// review: who filed it, the supporting documents, and the reviewer-facing
// note attached by the last request-changes action.
type VendorSubmission struct {
	SubmittedBy   string    `json:"submitted_by"`
	Documents     []string  `json:"documents"`
	Note          string    `json:"note,omitempty"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// Vendor represents a marketplace participant eligible to receive payouts.
// This struct maps directly to the `vendors` table in the database.
type Vendor struct {
	ID                uuid.UUID         `json:"id"`
	Type              VendorType        `json:"type"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone,omitempty"`
	VerificationState VerificationState `json:"verification_state"`
	PayoutEnabled     bool              `json:"payout_enabled"`
	Submission        VendorSubmission  `json:"submission"`
	Rating            float64           `json:"rating"`
	CompletedBookings int               `json:"completed_bookings"`
	Version           int               `json:"version"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// VendorListFilter narrows vendor listings. Query matches name or email,
// case-insensitively.
type VendorListFilter struct {
	State VerificationState
	Query string
}
