package app

import (
	"context"
	"testing"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/internal/store"
	"github.com/eventra/admin-service/pkg/rabbitmq"
)

// fakePublisher records audit events instead of talking to a broker.
type fakePublisher struct {
	events []rabbitmq.AuditEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	return f.err
}

func (f *fakePublisher) PublishAuditEvent(ctx context.Context, event rabbitmq.AuditEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() {}

// fakeLimiter returns a scripted count so tests can trip or pass the gate.
type fakeLimiter struct {
	count      int
	retryAfter int
	err        error
	calls      int
}

func (f *fakeLimiter) ConsumeRateLimit(ctx context.Context, scope, subject string, limit, windowSeconds int) (int, int, error) {
	f.calls++
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.count, f.retryAfter, nil
}

func newTestService(t *testing.T, flags Flags) (*Service, *store.MemoryRepository, *fakePublisher) {
	t.Helper()
	repo := store.NewSeededMemoryRepository()
	pub := &fakePublisher{}
	return NewService(repo, pub, nil, flags), repo, pub
}

func findVendorByState(t *testing.T, svc *Service, state domain.VerificationState) domain.Vendor {
	t.Helper()
	vendors, err := svc.ListVendors(context.Background(), domain.VendorListFilter{State: state})
	if err != nil {
		t.Fatalf("ListVendors(%s) returned error: %v", state, err)
	}
	if len(vendors) == 0 {
		t.Fatalf("no seeded vendor in state %s", state)
	}
	return vendors[0]
}

func findPayoutByStatus(t *testing.T, svc *Service, status domain.PayoutStatus) domain.Payout {
	t.Helper()
	payouts, err := svc.ListPayouts(context.Background(), domain.PayoutListFilter{Status: status})
	if err != nil {
		t.Fatalf("ListPayouts(%s) returned error: %v", status, err)
	}
	if len(payouts) == 0 {
		t.Fatalf("no seeded payout in status %s", status)
	}
	return payouts[0]
}

func findDisputeByStatus(t *testing.T, svc *Service, status domain.DisputeStatus) domain.Dispute {
	t.Helper()
	disputes, err := svc.ListDisputes(context.Background(), domain.DisputeListFilter{Status: status})
	if err != nil {
		t.Fatalf("ListDisputes(%s) returned error: %v", status, err)
	}
	if len(disputes) == 0 {
		t.Fatalf("no seeded dispute in status %s", status)
	}
	return disputes[0]
}

func auditEntries(t *testing.T, svc *Service) []domain.AuditLog {
	t.Helper()
	entries, err := svc.ListAuditLogs(context.Background(), domain.AuditLogFilter{})
	if err != nil {
		t.Fatalf("ListAuditLogs returned error: %v", err)
	}
	return entries
}
