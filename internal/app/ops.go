/**
 * @description
 * Privileged ops tools. These are support/demo affordances, not production
 * logic: a full reseed of the demo dataset and a single-payment "manual
 * finance correction". Both are disabled unless explicitly feature-flagged
 * on, refused whole-cloth in read-only mode, rate limited per actor, and
 * audited like every other mutation. An installation backed by a real
 * ledger must replace the reconciliation tool with an actual
 * ledger-matching process.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/internal/store"
	"github.com/eventra/admin-service/pkg/apperrors"
)

const opsRateLimitWindowSeconds = 60

// OpsResetDummyData replaces all entity records with the seeded demo
// dataset. The audit log survives the reset and records it.
func (s *Service) OpsResetDummyData(ctx context.Context, actor string) (*domain.OpsResult, error) {
	if err := s.gateOps(ctx, actor, "ops_reset", "ops tools"); err != nil {
		return nil, err
	}

	entry := domain.AuditLog{
		ID:           uuid.New(),
		Actor:        actor,
		Action:       domain.AuditOpsDataReseeded,
		ResourceType: domain.ResourceSystem,
		ResourceID:   "demo-dataset",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.ResetDemoData(ctx, entry); err != nil {
		return nil, err
	}
	s.publishAudit(ctx, entry)

	log.Printf("level=info component=ops action=reset_dummy_data actor=%s", actor)
	return &domain.OpsResult{Status: "ok", Detail: "demo dataset restored"}, nil
}

// OpsReconcileDummyPayments forces exactly one payment in a non-terminal
// status to CORRECTED, simulating a manual finance correction.
func (s *Service) OpsReconcileDummyPayments(ctx context.Context, actor string) (*domain.OpsResult, error) {
	if err := s.gateOps(ctx, actor, "ops_reconcile", "ops tools"); err != nil {
		return nil, err
	}
	if !s.flags.EnableReconciliation {
		return nil, apperrors.FeatureDisabled("payment reconciliation")
	}

	payment, err := s.repo.FindOneCorrectablePayment(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoCorrectablePayment) {
			return &domain.OpsResult{Status: "noop", Detail: "no payment in a correctable status"}, nil
		}
		return nil, err
	}

	entry := domain.NewAuditLog(actor, domain.AuditOpsPaymentReconciled, domain.ResourcePayment, payment.ID,
		map[string]string{"previous_status": string(payment.Status)})
	corrected, err := s.repo.MarkPaymentCorrected(ctx, payment.ID, entry)
	if err != nil {
		if errors.Is(err, store.ErrPaymentNotFound) {
			return nil, apperrors.NotFound("payment")
		}
		return nil, err
	}
	s.publishAudit(ctx, entry)

	log.Printf("level=info component=ops action=reconcile_dummy_payments payment_id=%s previous_status=%s actor=%s",
		corrected.ID, payment.Status, actor)
	return &domain.OpsResult{
		Status: "ok",
		Detail: fmt.Sprintf("payment %s corrected from %s", corrected.ID, payment.Status),
	}, nil
}

// gateOps applies the feature flag, the read-only switch, and the per-actor
// rate limit shared by both ops tools.
func (s *Service) gateOps(ctx context.Context, actor, scope, feature string) error {
	if !s.flags.EnableOpsTools {
		return apperrors.FeatureDisabled(feature)
	}
	if s.flags.ReadOnlyMode {
		return apperrors.ReadOnlyMode()
	}
	if s.limiter == nil || s.flags.OpsRateLimitPerMinute <= 0 {
		return nil
	}

	count, retryAfter, err := s.limiter.ConsumeRateLimit(ctx, scope, actor, s.flags.OpsRateLimitPerMinute, opsRateLimitWindowSeconds)
	if err != nil {
		// Fail open: a limiter outage must not brick the support tooling.
		log.Printf("level=warn component=ops msg=\"rate limiter unavailable\" scope=%s err=%v", scope, err)
		return nil
	}
	if count > s.flags.OpsRateLimitPerMinute {
		return apperrors.RateLimited(fmt.Sprintf("too many ops invocations, retry in %ds", retryAfter))
	}
	return nil
}
