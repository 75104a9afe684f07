package app

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/pkg/apperrors"
)

func TestApproveVendor_EnablesPayoutsAndClearsNote(t *testing.T) {
	svc, _, pub := newTestService(t, Flags{})
	pending := findVendorByState(t, svc, domain.VerificationPending)

	vendor, err := svc.ApproveVendor(context.Background(), "admin@eventra.example", pending.ID)
	if err != nil {
		t.Fatalf("ApproveVendor returned error: %v", err)
	}
	if vendor.VerificationState != domain.VerificationApproved {
		t.Fatalf("expected APPROVED, got %s", vendor.VerificationState)
	}
	if !vendor.PayoutEnabled {
		t.Fatal("expected PayoutEnabled after approval")
	}
	if vendor.Submission.Note != "" {
		t.Fatalf("expected cleared submission note, got %q", vendor.Submission.Note)
	}
	if vendor.Version != pending.Version+1 {
		t.Fatalf("expected version bump from %d, got %d", pending.Version, vendor.Version)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(entries))
	}
	if entries[0].Action != domain.AuditVendorApproved {
		t.Fatalf("expected action %s, got %s", domain.AuditVendorApproved, entries[0].Action)
	}
	if entries[0].ResourceID != vendor.ID.String() {
		t.Fatalf("audit entry points at %s, want %s", entries[0].ResourceID, vendor.ID)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected one published audit event, got %d", len(pub.events))
	}
}

func TestApproveVendor_RecoversFromNeedsChangesAndDisabled(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})

	for _, state := range []domain.VerificationState{domain.VerificationNeedsChanges, domain.VerificationDisabledPayout} {
		vendor := findVendorByState(t, svc, state)
		approved, err := svc.ApproveVendor(context.Background(), "admin@eventra.example", vendor.ID)
		if err != nil {
			t.Fatalf("ApproveVendor from %s returned error: %v", state, err)
		}
		if approved.VerificationState != domain.VerificationApproved || !approved.PayoutEnabled {
			t.Fatalf("vendor not payout-enabled after approval from %s: state=%s enabled=%t",
				state, approved.VerificationState, approved.PayoutEnabled)
		}
	}
}

func TestRequestChanges_RequiresNote(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	pending := findVendorByState(t, svc, domain.VerificationPending)

	_, err := svc.RequestChanges(context.Background(), "admin@eventra.example", pending.ID, "   ")
	if !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}

	// Refusal must leave no trace: no state change, no audit entry.
	unchanged, err := svc.GetVendor(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("GetVendor returned error: %v", err)
	}
	if unchanged.VerificationState != domain.VerificationPending || unchanged.Version != pending.Version {
		t.Fatalf("vendor mutated by refused request: state=%s version=%d", unchanged.VerificationState, unchanged.Version)
	}
	if entries := auditEntries(t, svc); len(entries) != 0 {
		t.Fatalf("expected no audit entries after refusal, got %d", len(entries))
	}
}

func TestRequestChanges_RecordsNoteAndDisablesPayout(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	pending := findVendorByState(t, svc, domain.VerificationPending)

	vendor, err := svc.RequestChanges(context.Background(), "admin@eventra.example", pending.ID, "Permit is illegible, re-upload")
	if err != nil {
		t.Fatalf("RequestChanges returned error: %v", err)
	}
	if vendor.VerificationState != domain.VerificationNeedsChanges {
		t.Fatalf("expected NEEDS_CHANGES, got %s", vendor.VerificationState)
	}
	if vendor.PayoutEnabled {
		t.Fatal("payouts must be disabled outside APPROVED")
	}
	if vendor.Submission.Note != "Permit is illegible, re-upload" {
		t.Fatalf("unexpected submission note %q", vendor.Submission.Note)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	if entries[0].Action != domain.AuditVendorChangesRequested {
		t.Fatalf("expected action %s, got %s", domain.AuditVendorChangesRequested, entries[0].Action)
	}
	if entries[0].Metadata["note"] != "Permit is illegible, re-upload" {
		t.Fatalf("expected note in audit metadata, got %v", entries[0].Metadata)
	}
}

func TestDisablePayout_TripsBreakerWithReason(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	approved := findVendorByState(t, svc, domain.VerificationApproved)

	vendor, err := svc.DisablePayout(context.Background(), "admin@eventra.example", approved.ID, "fraud review")
	if err != nil {
		t.Fatalf("DisablePayout returned error: %v", err)
	}
	if vendor.VerificationState != domain.VerificationDisabledPayout {
		t.Fatalf("expected DISABLED_PAYOUT, got %s", vendor.VerificationState)
	}
	if vendor.PayoutEnabled {
		t.Fatal("expected payouts disabled")
	}
	if vendor.Submission.Note != "fraud review" {
		t.Fatalf("expected reason stored in submission note, got %q", vendor.Submission.Note)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 || entries[0].Action != domain.AuditVendorPayoutDisabled {
		t.Fatalf("expected one VENDOR_PAYOUT_DISABLED entry, got %+v", entries)
	}
	if entries[0].Metadata["note"] != "fraud review" {
		t.Fatalf("expected reason in audit metadata, got %v", entries[0].Metadata)
	}
}

func TestPayoutEnabledTracksApprovedState(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	ctx := context.Background()
	pending := findVendorByState(t, svc, domain.VerificationPending)

	// PENDING -> APPROVED -> DISABLED_PAYOUT -> APPROVED: the flag must flip
	// in lockstep with the state at every step.
	steps := []struct {
		run  func() (*domain.Vendor, error)
		want bool
	}{
		{func() (*domain.Vendor, error) { return svc.ApproveVendor(ctx, "a", pending.ID) }, true},
		{func() (*domain.Vendor, error) { return svc.DisablePayout(ctx, "a", pending.ID, "") }, false},
		{func() (*domain.Vendor, error) { return svc.ApproveVendor(ctx, "a", pending.ID) }, true},
	}
	for i, step := range steps {
		vendor, err := step.run()
		if err != nil {
			t.Fatalf("step %d returned error: %v", i, err)
		}
		if vendor.PayoutEnabled != step.want {
			t.Fatalf("step %d: PayoutEnabled=%t, want %t (state %s)", i, vendor.PayoutEnabled, step.want, vendor.VerificationState)
		}
		if (vendor.VerificationState == domain.VerificationApproved) != vendor.PayoutEnabled {
			t.Fatalf("step %d: invariant broken, state=%s enabled=%t", i, vendor.VerificationState, vendor.PayoutEnabled)
		}
	}
}

func TestVendorOperations_UnknownVendor(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	missing := uuid.New()

	if _, err := svc.GetVendor(context.Background(), missing); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("GetVendor: expected NOT_FOUND, got %v", err)
	}
	if _, err := svc.ApproveVendor(context.Background(), "a", missing); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("ApproveVendor: expected NOT_FOUND, got %v", err)
	}
	if _, err := svc.DisablePayout(context.Background(), "a", missing, ""); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("DisablePayout: expected NOT_FOUND, got %v", err)
	}
}
