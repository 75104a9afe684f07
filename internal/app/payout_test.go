package app

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/pkg/apperrors"
)

// vendorPayout picks the seeded payout in the given status owned by the
// given vendor.
func vendorPayout(t *testing.T, svc *Service, vendorID uuid.UUID, status domain.PayoutStatus) domain.Payout {
	t.Helper()
	payouts, err := svc.ListPayouts(context.Background(), domain.PayoutListFilter{Status: status, VendorID: vendorID})
	if err != nil {
		t.Fatalf("ListPayouts returned error: %v", err)
	}
	if len(payouts) == 0 {
		t.Fatalf("no seeded payout for vendor %s in status %s", vendorID, status)
	}
	return payouts[0]
}

func TestApprovePayout_ReleasesPendingPayout(t *testing.T) {
	svc, _, pub := newTestService(t, Flags{})
	aurora := findVendorByState(t, svc, domain.VerificationApproved)
	payout := vendorPayout(t, svc, aurora.ID, domain.PayoutPendingAdminApproval)

	approved, err := svc.ApprovePayout(context.Background(), "finance@eventra.example", payout.ID, "quarterly release")
	if err != nil {
		t.Fatalf("ApprovePayout returned error: %v", err)
	}
	if approved.Status != domain.PayoutApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}
	if approved.Note == nil || *approved.Note != "quarterly release" {
		t.Fatalf("expected note stored on payout, got %v", approved.Note)
	}
	if approved.Version != payout.Version+1 {
		t.Fatalf("expected version bump from %d, got %d", payout.Version, approved.Version)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 || entries[0].Action != domain.AuditPayoutApproved {
		t.Fatalf("expected one PAYOUT_APPROVED entry, got %+v", entries)
	}
	if entries[0].Metadata["note"] != "quarterly release" {
		t.Fatalf("expected note in audit metadata, got %v", entries[0].Metadata)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected one published audit event, got %d", len(pub.events))
	}
}

func TestApprovePayout_RefusesWhenVendorPayoutsDisabled(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	lumen := findVendorByState(t, svc, domain.VerificationNeedsChanges)
	payout := vendorPayout(t, svc, lumen.ID, domain.PayoutPendingAdminApproval)

	_, err := svc.ApprovePayout(context.Background(), "finance@eventra.example", payout.ID, "")
	if !apperrors.IsKind(err, apperrors.KindPolicyViolation) {
		t.Fatalf("expected POLICY_VIOLATION, got %v", err)
	}

	unchanged := vendorPayout(t, svc, lumen.ID, domain.PayoutPendingAdminApproval)
	if unchanged.ID != payout.ID || unchanged.Version != payout.Version {
		t.Fatal("refused approval must not mutate the payout")
	}
	if entries := auditEntries(t, svc); len(entries) != 0 {
		t.Fatalf("expected no audit entries after refusal, got %d", len(entries))
	}
}

func TestApprovePayout_DisputeBlocksUntilResolved(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	ctx := context.Background()

	// Enable the vendor so only the dispute stands in the way.
	lumen := findVendorByState(t, svc, domain.VerificationNeedsChanges)
	if _, err := svc.ApproveVendor(ctx, "admin@eventra.example", lumen.ID); err != nil {
		t.Fatalf("ApproveVendor returned error: %v", err)
	}
	payout := vendorPayout(t, svc, lumen.ID, domain.PayoutPendingAdminApproval)

	_, err := svc.ApprovePayout(ctx, "finance@eventra.example", payout.ID, "")
	if !apperrors.IsKind(err, apperrors.KindPolicyViolation) {
		t.Fatalf("expected POLICY_VIOLATION while dispute is under review, got %v", err)
	}

	underReview := findDisputeByStatus(t, svc, domain.DisputeUnderReview)
	if underReview.BookingID != payout.BookingID {
		t.Fatalf("seed mismatch: dispute booking %s, payout booking %s", underReview.BookingID, payout.BookingID)
	}
	if _, err := svc.ResolveDispute(ctx, "admin@eventra.example", underReview.ID, domain.DisputeResolved, "vendor issued partial refund"); err != nil {
		t.Fatalf("ResolveDispute returned error: %v", err)
	}

	// Same call succeeds now: resolution un-blocks approval implicitly.
	approved, err := svc.ApprovePayout(ctx, "finance@eventra.example", payout.ID, "")
	if err != nil {
		t.Fatalf("ApprovePayout after resolution returned error: %v", err)
	}
	if approved.Status != domain.PayoutApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}
}

func TestHoldPayout_ThenApproveReleasesIt(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	ctx := context.Background()
	aurora := findVendorByState(t, svc, domain.VerificationApproved)
	payout := vendorPayout(t, svc, aurora.ID, domain.PayoutPendingAdminApproval)

	held, err := svc.HoldPayout(ctx, "finance@eventra.example", payout.ID, "waiting on signed contract")
	if err != nil {
		t.Fatalf("HoldPayout returned error: %v", err)
	}
	if held.Status != domain.PayoutHeld {
		t.Fatalf("expected HELD, got %s", held.Status)
	}

	// HELD is not terminal: approval is still possible.
	approved, err := svc.ApprovePayout(ctx, "finance@eventra.example", payout.ID, "")
	if err != nil {
		t.Fatalf("ApprovePayout from HELD returned error: %v", err)
	}
	if approved.Status != domain.PayoutApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 2 {
		t.Fatalf("expected two audit entries, got %d", len(entries))
	}
	// newest first
	if entries[0].Action != domain.AuditPayoutApproved || entries[1].Action != domain.AuditPayoutHeld {
		t.Fatalf("unexpected audit sequence: %s, %s", entries[0].Action, entries[1].Action)
	}
}

func TestPayoutTransitions_InvalidSourceStates(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	ctx := context.Background()

	requested := findPayoutByStatus(t, svc, domain.PayoutRequested)
	if _, err := svc.ApprovePayout(ctx, "a", requested.ID, ""); !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("approve REQUESTED: expected CONFLICT, got %v", err)
	}
	if _, err := svc.HoldPayout(ctx, "a", requested.ID, ""); !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("hold REQUESTED: expected CONFLICT, got %v", err)
	}

	held := findPayoutByStatus(t, svc, domain.PayoutHeld)
	if _, err := svc.HoldPayout(ctx, "a", held.ID, ""); !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("hold HELD: expected CONFLICT, got %v", err)
	}

	paid := findPayoutByStatus(t, svc, domain.PayoutPaid)
	if _, err := svc.ApprovePayout(ctx, "a", paid.ID, ""); !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("approve PAID: expected CONFLICT, got %v", err)
	}
}

func TestPayoutOperations_UnknownPayout(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	missing := uuid.New()

	if _, err := svc.ApprovePayout(context.Background(), "a", missing, ""); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("ApprovePayout: expected NOT_FOUND, got %v", err)
	}
	if _, err := svc.HoldPayout(context.Background(), "a", missing, ""); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("HoldPayout: expected NOT_FOUND, got %v", err)
	}
}
