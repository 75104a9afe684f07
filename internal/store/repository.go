/**
 * @description
 * This file defines the `Repository` interface, which specifies the contract
 * for all data access the admin control plane performs. The engines depend on
 * this interface, never on a concrete database, so the PostgreSQL
 * implementation and the in-memory demo implementation are interchangeable
 * and the engines are testable with stubs.
 *
 * @notes
 * - The Transition* methods are the only write paths for vendor, payout, and
 *   dispute records. Each takes the fully mutated record plus the audit entry
 *   for the transition and must apply both atomically: a state change without
 *   its audit entry (or vice versa) is a correctness bug, not a degraded
 *   write.
 * - Transition* methods enforce optimistic concurrency: the write only
 *   applies while the stored version still equals the version the record was
 *   loaded with, and the stored version is incremented on success. A stale
 *   record yields ErrVersionConflict.
 */

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
)

var (
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPayoutNotFound       = errors.New("payout not found")
	ErrDisputeNotFound      = errors.New("dispute not found")
	ErrVersionConflict      = errors.New("record was modified concurrently")
	ErrNoCorrectablePayment = errors.New("no payment in a correctable status")
)

// Repository defines the set of methods for interacting with the backing
// store.
type Repository interface {
	// Vendor methods
	FindVendorByID(ctx context.Context, vendorID uuid.UUID) (*domain.Vendor, error)
	ListVendors(ctx context.Context, filter domain.VendorListFilter) ([]domain.Vendor, error)
	// TransitionVendor persists the mutated vendor and appends its audit
	// entry in one atomic write, incrementing the vendor's version.
	TransitionVendor(ctx context.Context, vendor *domain.Vendor, entry domain.AuditLog) error

	// Booking and payment read methods. The booking workflow owns these
	// records; the control plane reads them and, via reconciliation only,
	// corrects payments.
	FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter domain.BookingListFilter) ([]domain.Booking, error)
	ListPayments(ctx context.Context, filter domain.PaymentListFilter) ([]domain.Payment, error)

	// Payout methods
	FindPayoutByID(ctx context.Context, payoutID uuid.UUID) (*domain.Payout, error)
	ListPayouts(ctx context.Context, filter domain.PayoutListFilter) ([]domain.Payout, error)
	TransitionPayout(ctx context.Context, payout *domain.Payout, entry domain.AuditLog) error

	// Dispute methods
	FindDisputeByID(ctx context.Context, disputeID uuid.UUID) (*domain.Dispute, error)
	ListDisputes(ctx context.Context, filter domain.DisputeListFilter) ([]domain.Dispute, error)
	ListDisputesByBookingID(ctx context.Context, bookingID uuid.UUID) ([]domain.Dispute, error)
	TransitionDispute(ctx context.Context, dispute *domain.Dispute, entry domain.AuditLog) error

	// Audit log methods. Appends happen only inside the Transition*, reset,
	// and correction writes; listing is newest first and never mutates.
	ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error)

	// Finance overview aggregation methods
	SumPayoutAmountsByStatus(ctx context.Context, statuses ...domain.PayoutStatus) (int64, error)
	CountPayoutsByStatus(ctx context.Context, status domain.PayoutStatus) (int, error)
	CountBookingsActiveBetween(ctx context.Context, from, to time.Time) (int, error)

	// Ops methods
	// ResetDemoData replaces all entity records with the seeded demo
	// dataset, preserving the audit log and appending the given entry.
	ResetDemoData(ctx context.Context, entry domain.AuditLog) error
	// FindOneCorrectablePayment returns the oldest payment in a
	// non-terminal status, or ErrNoCorrectablePayment.
	FindOneCorrectablePayment(ctx context.Context) (*domain.Payment, error)
	// MarkPaymentCorrected forces the payment to CORRECTED and appends the
	// given audit entry atomically.
	MarkPaymentCorrected(ctx context.Context, paymentID uuid.UUID, entry domain.AuditLog) (*domain.Payment, error)
}
