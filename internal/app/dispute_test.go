package app

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/pkg/apperrors"
)

func TestResolveDispute_ClosesOpenDisputeWithNote(t *testing.T) {
	svc, _, pub := newTestService(t, Flags{})
	open := findDisputeByStatus(t, svc, domain.DisputeOpen)

	resolved, err := svc.ResolveDispute(context.Background(), "admin@eventra.example", open.ID, domain.DisputeResolved, "refund issued")
	if err != nil {
		t.Fatalf("ResolveDispute returned error: %v", err)
	}
	if resolved.Status != domain.DisputeResolved {
		t.Fatalf("expected RESOLVED, got %s", resolved.Status)
	}
	if resolved.Resolution == nil || *resolved.Resolution != "refund issued" {
		t.Fatalf("expected resolution note, got %v", resolved.Resolution)
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != "admin@eventra.example" {
		t.Fatalf("expected ResolvedBy stamped, got %v", resolved.ResolvedBy)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("expected ResolvedAt stamped")
	}
	if resolved.Version != open.Version+1 {
		t.Fatalf("expected version bump from %d, got %d", open.Version, resolved.Version)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 || entries[0].Action != domain.AuditDisputeResolved {
		t.Fatalf("expected one DISPUTE_RESOLVED entry, got %+v", entries)
	}
	if entries[0].Metadata["note"] != "refund issued" {
		t.Fatalf("expected note in audit metadata, got %v", entries[0].Metadata)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected one published audit event, got %d", len(pub.events))
	}
}

func TestResolveDispute_RejectsUnderReviewDispute(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	underReview := findDisputeByStatus(t, svc, domain.DisputeUnderReview)

	rejected, err := svc.ResolveDispute(context.Background(), "admin@eventra.example", underReview.ID, domain.DisputeRejected, "")
	if err != nil {
		t.Fatalf("ResolveDispute returned error: %v", err)
	}
	if rejected.Status != domain.DisputeRejected {
		t.Fatalf("expected REJECTED, got %s", rejected.Status)
	}
	if rejected.Resolution != nil {
		t.Fatalf("expected no resolution note, got %v", rejected.Resolution)
	}

	entries := auditEntries(t, svc)
	if len(entries) != 1 || entries[0].Action != domain.AuditDisputeRejected {
		t.Fatalf("expected one DISPUTE_REJECTED entry, got %+v", entries)
	}
}

func TestResolveDispute_TerminalDisputeStaysClosed(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	closed := findDisputeByStatus(t, svc, domain.DisputeResolved)

	_, err := svc.ResolveDispute(context.Background(), "admin@eventra.example", closed.ID, domain.DisputeRejected, "")
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("expected CONFLICT re-resolving a terminal dispute, got %v", err)
	}

	unchanged := findDisputeByStatus(t, svc, domain.DisputeResolved)
	if unchanged.ID != closed.ID || unchanged.Version != closed.Version {
		t.Fatal("terminal dispute must not change on refused re-resolution")
	}
	if entries := auditEntries(t, svc); len(entries) != 0 {
		t.Fatalf("expected no audit entries after refusal, got %d", len(entries))
	}
}

func TestResolveDispute_InvalidResolutionValue(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})
	open := findDisputeByStatus(t, svc, domain.DisputeOpen)

	for _, bad := range []domain.DisputeStatus{domain.DisputeOpen, domain.DisputeUnderReview, "CLOSED"} {
		if _, err := svc.ResolveDispute(context.Background(), "a", open.ID, bad, ""); !apperrors.IsKind(err, apperrors.KindInvalidArgument) {
			t.Fatalf("resolution %q: expected INVALID_ARGUMENT, got %v", bad, err)
		}
	}
}

func TestResolveDispute_UnknownDispute(t *testing.T) {
	svc, _, _ := newTestService(t, Flags{})

	_, err := svc.ResolveDispute(context.Background(), "a", uuid.New(), domain.DisputeResolved, "")
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
