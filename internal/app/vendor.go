/**
 * @description
 * Vendor verification engine. Governs a vendor's onboarding/verification
 * status and, with it, payout eligibility. The engine maintains one
 * equivalence at all times: PayoutEnabled is true exactly while the vendor
 * is APPROVED. Every transition updates both timestamps and appends exactly
 * one audit entry through the store's atomic transition write.
 *
 * State machine: PENDING -> {APPROVED, NEEDS_CHANGES};
 * NEEDS_CHANGES -> APPROVED; APPROVED -> DISABLED_PAYOUT;
 * DISABLED_PAYOUT -> APPROVED. No state is terminal: all states stay
 * reachable through the three operations so the support desk can always
 * correct a record.
 */

package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/internal/store"
	"github.com/eventra/admin-service/pkg/apperrors"
)

// ListVendors returns vendors matching the filter. Absence is an empty
// slice, never an error.
func (s *Service) ListVendors(ctx context.Context, filter domain.VendorListFilter) ([]domain.Vendor, error) {
	return s.repo.ListVendors(ctx, filter)
}

// GetVendor returns one vendor by id.
func (s *Service) GetVendor(ctx context.Context, vendorID uuid.UUID) (*domain.Vendor, error) {
	vendor, err := s.repo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, s.vendorStoreErr(err)
	}
	return vendor, nil
}

// ApproveVendor transitions the vendor to APPROVED from any state, enables
// payouts, and clears the blocking note.
func (s *Service) ApproveVendor(ctx context.Context, actor string, vendorID uuid.UUID) (*domain.Vendor, error) {
	unlock := s.locks.Lock("vendor:" + vendorID.String())
	defer unlock()

	vendor, err := s.repo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, s.vendorStoreErr(err)
	}

	now := time.Now().UTC()
	vendor.VerificationState = domain.VerificationApproved
	vendor.PayoutEnabled = true
	vendor.Submission.Note = ""
	vendor.Submission.LastUpdatedAt = now
	vendor.UpdatedAt = now

	entry := domain.NewAuditLog(actor, domain.AuditVendorApproved, domain.ResourceVendor, vendor.ID, nil)
	if err := s.repo.TransitionVendor(ctx, vendor, entry); err != nil {
		return nil, s.vendorStoreErr(err)
	}
	s.publishAudit(ctx, entry)

	log.Printf("level=info component=vendor_engine action=approve vendor_id=%s actor=%s", vendor.ID, actor)
	return vendor, nil
}

// RequestChanges transitions the vendor to NEEDS_CHANGES with a required
// reviewer note and disables payouts.
func (s *Service) RequestChanges(ctx context.Context, actor string, vendorID uuid.UUID, note string) (*domain.Vendor, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperrors.InvalidArgument("a note describing the required changes is mandatory")
	}

	unlock := s.locks.Lock("vendor:" + vendorID.String())
	defer unlock()

	vendor, err := s.repo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, s.vendorStoreErr(err)
	}

	now := time.Now().UTC()
	vendor.VerificationState = domain.VerificationNeedsChanges
	vendor.PayoutEnabled = false
	vendor.Submission.Note = note
	vendor.Submission.LastUpdatedAt = now
	vendor.UpdatedAt = now

	entry := domain.NewAuditLog(actor, domain.AuditVendorChangesRequested, domain.ResourceVendor, vendor.ID,
		map[string]string{"note": note})
	if err := s.repo.TransitionVendor(ctx, vendor, entry); err != nil {
		return nil, s.vendorStoreErr(err)
	}
	s.publishAudit(ctx, entry)

	log.Printf("level=info component=vendor_engine action=request_changes vendor_id=%s actor=%s", vendor.ID, actor)
	return vendor, nil
}

// DisablePayout trips the payout circuit breaker: the vendor moves to
// DISABLED_PAYOUT regardless of its prior state and payouts stop. The
// optional reason lands in the submission note and the audit metadata.
func (s *Service) DisablePayout(ctx context.Context, actor string, vendorID uuid.UUID, reason string) (*domain.Vendor, error) {
	unlock := s.locks.Lock("vendor:" + vendorID.String())
	defer unlock()

	vendor, err := s.repo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, s.vendorStoreErr(err)
	}

	now := time.Now().UTC()
	vendor.VerificationState = domain.VerificationDisabledPayout
	vendor.PayoutEnabled = false
	reason = strings.TrimSpace(reason)
	if reason != "" {
		vendor.Submission.Note = reason
	}
	vendor.Submission.LastUpdatedAt = now
	vendor.UpdatedAt = now

	var metadata map[string]string
	if reason != "" {
		metadata = map[string]string{"note": reason}
	}
	entry := domain.NewAuditLog(actor, domain.AuditVendorPayoutDisabled, domain.ResourceVendor, vendor.ID, metadata)
	if err := s.repo.TransitionVendor(ctx, vendor, entry); err != nil {
		return nil, s.vendorStoreErr(err)
	}
	s.publishAudit(ctx, entry)

	log.Printf("level=info component=vendor_engine action=disable_payout vendor_id=%s actor=%s", vendor.ID, actor)
	return vendor, nil
}

func (s *Service) vendorStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrVendorNotFound):
		return apperrors.NotFound("vendor")
	case errors.Is(err, store.ErrVersionConflict):
		return apperrors.Conflict("vendor was modified concurrently, retry the operation")
	default:
		return err
	}
}
