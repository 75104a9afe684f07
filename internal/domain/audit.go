/**
 * @description
 * This file defines the audit log entry model and the closed set of action
 * verbs the control plane records. Entries are append-only: no component
 * updates or deletes them, and every successful state-mutating operation in
 * the vendor, payout, dispute, and ops engines writes exactly one entry.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit action verbs. One constant per state-mutating operation.
const (
	AuditVendorApproved         = "VENDOR_APPROVED"
	AuditVendorChangesRequested = "VENDOR_CHANGES_REQUESTED"
	AuditVendorPayoutDisabled   = "VENDOR_PAYOUT_DISABLED"
	AuditPayoutApproved         = "PAYOUT_APPROVED"
	AuditPayoutHeld             = "PAYOUT_HELD"
	AuditDisputeResolved        = "DISPUTE_RESOLVED"
	AuditDisputeRejected        = "DISPUTE_REJECTED"
	AuditOpsDataReseeded        = "OPS_DATA_RESEEDED"
	AuditOpsPaymentReconciled   = "OPS_PAYMENT_RECONCILED"
)

// Audit resource types.
const (
	ResourceVendor  = "vendor"
	ResourceBooking = "booking"
	ResourcePayment = "payment"
	ResourcePayout  = "payout"
	ResourceDispute = "dispute"
	ResourceSystem  = "system"
)

// AuditLog is one immutable record of an administrative action.
type AuditLog struct {
	ID           uuid.UUID         `json:"id"`
	Actor        string            `json:"actor"`
	Action       string            `json:"action"`
	ResourceType string            `json:"resource_type"`
	ResourceID   string            `json:"resource_id"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// AuditLogFilter narrows audit listings. Query matches actor, action, or
// resource id, case-insensitively. Retrieval is always newest first.
type AuditLogFilter struct {
	Query        string
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Limit        int
}

// NewAuditLog builds an entry stamped with the current time. Metadata may be
// nil when the action carries no operator note.
func NewAuditLog(actor, action, resourceType string, resourceID uuid.UUID, metadata map[string]string) AuditLog {
	return AuditLog{
		ID:           uuid.New(),
		Actor:        actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID.String(),
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC(),
	}
}
