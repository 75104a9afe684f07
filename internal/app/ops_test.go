package app

import (
	"context"
	"errors"
	"testing"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/internal/store"
	"github.com/eventra/admin-service/pkg/apperrors"
)

func TestOpsTools_DisabledByDefault(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})

	if _, err := svc.OpsResetDummyData(context.Background(), "ops@eventra.example"); !apperrors.IsKind(err, apperrors.KindFeatureDisabled) {
		t.Fatalf("reset: expected FEATURE_DISABLED, got %v", err)
	}
	if _, err := svc.OpsReconcileDummyPayments(context.Background(), "ops@eventra.example"); !apperrors.IsKind(err, apperrors.KindFeatureDisabled) {
		t.Fatalf("reconcile: expected FEATURE_DISABLED, got %v", err)
	}
	if entries := auditEntries(t, svc); len(entries) != 0 {
		t.Fatalf("expected no audit entries, got %d", len(entries))
	}
}

func TestOpsTools_RefusedInReadOnlyMode(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{EnableOpsTools: true, EnableReconciliation: true, ReadOnlyMode: true})

	if _, err := svc.OpsResetDummyData(context.Background(), "ops@eventra.example"); !apperrors.IsKind(err, apperrors.KindReadOnlyMode) {
		t.Fatalf("reset: expected READ_ONLY_MODE, got %v", err)
	}
	if _, err := svc.OpsReconcileDummyPayments(context.Background(), "ops@eventra.example"); !apperrors.IsKind(err, apperrors.KindReadOnlyMode) {
		t.Fatalf("reconcile: expected READ_ONLY_MODE, got %v", err)
	}
}

func TestOpsReconcile_RequiresItsOwnFlag(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{EnableOpsTools: true})

	_, err := svc.OpsReconcileDummyPayments(context.Background(), "ops@eventra.example")
	if !apperrors.IsKind(err, apperrors.KindFeatureDisabled) {
		t.Fatalf("expected FEATURE_DISABLED without reconciliation flag, got %v", err)
	}
}

func TestOpsResetDummyData_RestoresDatasetAndKeepsAuditLog(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{EnableOpsTools: true})
	ctx := context.Background()

	pending := findVendorByState(t, svc, domain.VerificationPending)
	if _, err := svc.ApproveVendor(ctx, "admin@eventra.example", pending.ID); err != nil {
		t.Fatalf("ApproveVendor returned error: %v", err)
	}

	result, err := svc.OpsResetDummyData(ctx, "ops@eventra.example")
	if err != nil {
		t.Fatalf("OpsResetDummyData returned error: %v", err)
	}
	if result.Status != "ok" {
		t.Fatalf("expected status ok, got %s", result.Status)
	}

	// Entity state is back to the seed; the audit log survived the reset.
	restored, err := svc.GetVendor(ctx, pending.ID)
	if err != nil {
		t.Fatalf("GetVendor returned error: %v", err)
	}
	if restored.VerificationState != domain.VerificationPending {
		t.Fatalf("expected vendor restored to PENDING, got %s", restored.VerificationState)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 2 {
		t.Fatalf("expected approval entry plus reseed entry, got %d", len(entries))
	}
	if entries[0].Action != domain.AuditOpsDataReseeded || entries[0].ResourceType != domain.ResourceSystem {
		t.Fatalf("unexpected newest entry: %+v", entries[0])
	}
	if entries[1].Action != domain.AuditVendorApproved {
		t.Fatalf("expected pre-reset approval entry retained, got %s", entries[1].Action)
	}
}

func TestOpsReconcile_CorrectsOldestNonTerminalPayment(t *testing.T) {
	svc, _, pub := newTestService(t, Flags{EnableOpsTools: true, EnableReconciliation: true})
	ctx := context.Background()

	result, err := svc.OpsReconcileDummyPayments(ctx, "ops@eventra.example")
	if err != nil {
		t.Fatalf("OpsReconcileDummyPayments returned error: %v", err)
	}
	if result.Status != "ok" {
		t.Fatalf("expected status ok, got %s", result.Status)
	}

	corrected, err := svc.ListPayments(ctx, domain.PaymentListFilter{Status: domain.PaymentCorrected})
	if err != nil {
		t.Fatalf("ListPayments returned error: %v", err)
	}
	if len(corrected) != 1 {
		t.Fatalf("expected exactly one corrected payment, got %d", len(corrected))
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 || entries[0].Action != domain.AuditOpsPaymentReconciled {
		t.Fatalf("expected one OPS_PAYMENT_RECONCILED entry, got %+v", entries)
	}
	// The seeded PROCESSING payment is the oldest correctable one.
	if entries[0].Metadata["previous_status"] != string(domain.PaymentProcessing) {
		t.Fatalf("expected previous_status %s, got %v", domain.PaymentProcessing, entries[0].Metadata)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected one published audit event, got %d", len(pub.events))
	}
}

func TestOpsReconcile_NoopWhenNothingCorrectable(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{EnableOpsTools: true, EnableReconciliation: true})
	ctx := context.Background()

	// Two seeded payments are non-terminal; a third call has nothing left.
	for i := 0; i < 2; i++ {
		if _, err := svc.OpsReconcileDummyPayments(ctx, "ops@eventra.example"); err != nil {
			t.Fatalf("reconcile call %d returned error: %v", i, err)
		}
	}

	result, err := svc.OpsReconcileDummyPayments(ctx, "ops@eventra.example")
	if err != nil {
		t.Fatalf("final reconcile returned error: %v", err)
	}
	if result.Status != "noop" {
		t.Fatalf("expected noop, got %s", result.Status)
	}
	if entries := auditEntries(t, svc); len(entries) != 2 {
		t.Fatalf("noop must not append an audit entry, got %d entries", len(entries))
	}
}

func TestOpsTools_RateLimited(t *testing.T) {
	limiter := &fakeLimiter{count: 11}
	svc := NewService(store.NewSeededMemoryRepository(), &fakePublisher{}, limiter,
		Flags{EnableOpsTools: true, OpsRateLimitPerMinute: 10})

	_, err := svc.OpsResetDummyData(context.Background(), "ops@eventra.example")
	if !apperrors.IsKind(err, apperrors.KindRateLimited) {
		t.Fatalf("expected RATE_LIMITED, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestOpsTools_RateLimiterFailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis unavailable")}
	svc := NewService(store.NewSeededMemoryRepository(), &fakePublisher{}, limiter,
		Flags{EnableOpsTools: true, OpsRateLimitPerMinute: 10})

	result, err := svc.OpsResetDummyData(context.Background(), "ops@eventra.example")
	if err != nil {
		t.Fatalf("expected fail-open on limiter outage, got %v", err)
	}
	if result.Status != "ok" {
		t.Fatalf("expected status ok, got %s", result.Status)
	}
}

func TestOpsTools_ZeroLimitSkipsLimiter(t *testing.T) {
	limiter := &fakeLimiter{count: 100}
	svc := NewService(store.NewSeededMemoryRepository(), &fakePublisher{}, limiter,
		Flags{EnableOpsTools: true, OpsRateLimitPerMinute: 0})

	if _, err := svc.OpsResetDummyData(context.Background(), "ops@eventra.example"); err != nil {
		t.Fatalf("OpsResetDummyData returned error: %v", err)
	}
	if limiter.calls != 0 {
		t.Fatalf("expected limiter bypassed when limit is zero, got %d calls", limiter.calls)
	}
}
