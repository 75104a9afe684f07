/**
 * @description
 * Dispute resolution engine. OPEN and UNDER_REVIEW disputes can be closed as
 * RESOLVED or REJECTED; both outcomes are terminal, and resolving an already
 * terminal dispute fails loudly rather than no-oping, so the audit trail
 * stays linear. Closing a dispute is also what un-blocks payout approval for
 * the booking: the payout engine consults current dispute status, so no
 * extra transition is needed here.
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

// ListDisputes returns disputes matching the filter.
func (s *Service) ListDisputes(ctx context.Context, filter domain.DisputeListFilter) ([]domain.Dispute, error) {
	return s.repo.ListDisputes(ctx, filter)
}

// ResolveDispute closes a dispute as RESOLVED or REJECTED.
func (s *Service) ResolveDispute(ctx context.Context, actor string, disputeID uuid.UUID, resolution domain.DisputeStatus, note string) (*domain.Dispute, error) {
	if resolution != domain.DisputeResolved && resolution != domain.DisputeRejected {
		return nil, apperrors.InvalidArgument(fmt.Sprintf(
			"resolution must be %s or %s", domain.DisputeResolved, domain.DisputeRejected))
	}

	unlock := s.locks.Lock("dispute:" + disputeID.String())
	defer unlock()

	dispute, err := s.repo.FindDisputeByID(ctx, disputeID)
	if err != nil {
		return nil, s.disputeStoreErr(err)
	}

	if dispute.Status.Terminal() {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"dispute is already %s; open a new dispute for renewed contention", dispute.Status))
	}

	now := time.Now().UTC()
	dispute.Status = resolution
	dispute.ResolvedBy = &actor
	dispute.ResolvedAt = &now
	dispute.UpdatedAt = now
	note = strings.TrimSpace(note)
	var metadata map[string]string
	if note != "" {
		dispute.Resolution = &note
		metadata = map[string]string{"note": note}
	}

	action := domain.AuditDisputeResolved
	if resolution == domain.DisputeRejected {
		action = domain.AuditDisputeRejected
	}
	entry := domain.NewAuditLog(actor, action, domain.ResourceDispute, dispute.ID, metadata)
	if err := s.repo.TransitionDispute(ctx, dispute, entry); err != nil {
		return nil, s.disputeStoreErr(err)
	}
	s.publishAudit(ctx, entry)

	log.Printf("level=info component=dispute_engine action=%s dispute_id=%s booking_id=%s actor=%s",
		action, dispute.ID, dispute.BookingID, actor)
	return dispute, nil
}

func (s *Service) disputeStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrDisputeNotFound):
		return apperrors.NotFound("dispute")
	case errors.Is(err, store.ErrVersionConflict):
		return apperrors.Conflict("dispute was modified concurrently, retry the operation")
	default:
		return err
	}
}
