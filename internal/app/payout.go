/**
 * @description
 * Payout approval engine. Governs release of held funds to vendors.
 *
 * Approval has two cross-entity guards on top of the state machine, both
 * surfaced as POLICY_VIOLATION so the admin UI can explain the refusal:
 * - the owning vendor must have payouts enabled at approval time;
 * - no dispute on the payout's booking may be OPEN or UNDER_REVIEW
 *   (disputes block at APPROVE; once a dispute is resolved the same call
 *   succeeds with no further action needed).
 *
 * State machine, this engine's slice: PENDING_ADMIN_APPROVAL -> {APPROVED,
 * HELD}; HELD -> APPROVED. REQUESTED payouts have not yet been queued for
 * review, and PAID/REVERSED belong to the settlement side.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/internal/store"
	"github.com/eventra/admin-service/pkg/apperrors"
)

// ListPayouts returns payouts matching the filter.
func (s *Service) ListPayouts(ctx context.Context, filter domain.PayoutListFilter) ([]domain.Payout, error) {
	return s.repo.ListPayouts(ctx, filter)
}

// ApprovePayout releases a payout for settlement.
func (s *Service) ApprovePayout(ctx context.Context, actor string, payoutID uuid.UUID, note string) (*domain.Payout, error) {
	unlock := s.locks.Lock("payout:" + payoutID.String())
	defer unlock()

	payout, err := s.repo.FindPayoutByID(ctx, payoutID)
	if err != nil {
		return nil, s.payoutStoreErr(err)
	}

	if payout.Status != domain.PayoutPendingAdminApproval && payout.Status != domain.PayoutHeld {
		return nil, apperrors.Conflict(fmt.Sprintf("payout in status %s cannot be approved", payout.Status))
	}

	vendor, err := s.repo.FindVendorByID(ctx, payout.VendorID)
	if err != nil {
		return nil, s.vendorStoreErr(err)
	}
	if !vendor.PayoutEnabled {
		return nil, apperrors.PolicyViolation(fmt.Sprintf(
			"vendor %s has payouts disabled (verification state %s)", vendor.ID, vendor.VerificationState))
	}

	disputes, err := s.repo.ListDisputesByBookingID(ctx, payout.BookingID)
	if err != nil {
		return nil, err
	}
	for _, d := range disputes {
		if d.Status.Blocking() {
			return nil, apperrors.PolicyViolation(fmt.Sprintf(
				"booking %s has a dispute in status %s; resolve it before approving the payout",
				payout.BookingID, d.Status))
		}
	}

	return s.transitionPayout(ctx, actor, payout, domain.PayoutApproved, domain.AuditPayoutApproved, note)
}

// HoldPayout parks a payout pending remediation.
func (s *Service) HoldPayout(ctx context.Context, actor string, payoutID uuid.UUID, note string) (*domain.Payout, error) {
	unlock := s.locks.Lock("payout:" + payoutID.String())
	defer unlock()

	payout, err := s.repo.FindPayoutByID(ctx, payoutID)
	if err != nil {
		return nil, s.payoutStoreErr(err)
	}

	if payout.Status != domain.PayoutPendingAdminApproval {
		return nil, apperrors.Conflict(fmt.Sprintf("payout in status %s cannot be held", payout.Status))
	}

	return s.transitionPayout(ctx, actor, payout, domain.PayoutHeld, domain.AuditPayoutHeld, note)
}

func (s *Service) transitionPayout(ctx context.Context, actor string, payout *domain.Payout, status domain.PayoutStatus, action, note string) (*domain.Payout, error) {
	payout.Status = status
	payout.UpdatedAt = time.Now().UTC()
	note = strings.TrimSpace(note)
	var metadata map[string]string
	if note != "" {
		payout.Note = &note
		metadata = map[string]string{"note": note}
	}

	entry := domain.NewAuditLog(actor, action, domain.ResourcePayout, payout.ID, metadata)
	if err := s.repo.TransitionPayout(ctx, payout, entry); err != nil {
		return nil, s.payoutStoreErr(err)
	}
	s.publishAudit(ctx, entry)

	log.Printf("level=info component=payout_engine action=%s payout_id=%s amount=%d actor=%s",
		action, payout.ID, payout.AmountCents, actor)
	return payout, nil
}

func (s *Service) payoutStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrPayoutNotFound):
		return apperrors.NotFound("payout")
	case errors.Is(err, store.ErrVersionConflict):
		return apperrors.Conflict("payout was modified concurrently, retry the operation")
	default:
		return err
	}
}
