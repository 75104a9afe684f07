/**
 * @description
 * This file provides the in-memory implementation of the `Repository`
 * interface. It backs demo mode (no DATABASE_URL configured) and the test
 * suite. It is explicitly a stand-in for the PostgreSQL implementation, not
 * a production store, but it honors the same contract: atomic
 * transition+audit writes, optimistic version checks, and newest-first audit
 * retrieval.
 */

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
)

// MemoryRepository is a mutex-guarded in-memory implementation of Repository.
type MemoryRepository struct {
	mu       sync.RWMutex
	vendors  map[uuid.UUID]domain.Vendor
	bookings map[uuid.UUID]domain.Booking
	payments map[uuid.UUID]domain.Payment
	payouts  map[uuid.UUID]domain.Payout
	disputes map[uuid.UUID]domain.Dispute
	audit    []domain.AuditLog // append order; reads reverse it
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		vendors:  make(map[uuid.UUID]domain.Vendor),
		bookings: make(map[uuid.UUID]domain.Booking),
		payments: make(map[uuid.UUID]domain.Payment),
		payouts:  make(map[uuid.UUID]domain.Payout),
		disputes: make(map[uuid.UUID]domain.Dispute),
	}
}

// NewSeededMemoryRepository creates an in-memory repository preloaded with
// the demo dataset.
func NewSeededMemoryRepository() *MemoryRepository {
	repo := NewMemoryRepository()
	repo.loadDataset(demoDataset())
	return repo
}

func (m *MemoryRepository) loadDataset(ds dataset) {
	m.vendors = make(map[uuid.UUID]domain.Vendor, len(ds.Vendors))
	for _, v := range ds.Vendors {
		m.vendors[v.ID] = cloneVendor(v)
	}
	m.bookings = make(map[uuid.UUID]domain.Booking, len(ds.Bookings))
	for _, b := range ds.Bookings {
		m.bookings[b.ID] = cloneBooking(b)
	}
	m.payments = make(map[uuid.UUID]domain.Payment, len(ds.Payments))
	for _, p := range ds.Payments {
		m.payments[p.ID] = p
	}
	m.payouts = make(map[uuid.UUID]domain.Payout, len(ds.Payouts))
	for _, p := range ds.Payouts {
		m.payouts[p.ID] = clonePayout(p)
	}
	m.disputes = make(map[uuid.UUID]domain.Dispute, len(ds.Disputes))
	for _, d := range ds.Disputes {
		m.disputes[d.ID] = cloneDispute(d)
	}
}

// -------------------- Vendors --------------------

func (m *MemoryRepository) FindVendorByID(ctx context.Context, vendorID uuid.UUID) (*domain.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vendors[vendorID]
	if !ok {
		return nil, ErrVendorNotFound
	}
	clone := cloneVendor(v)
	return &clone, nil
}

func (m *MemoryRepository) ListVendors(ctx context.Context, filter domain.VendorListFilter) ([]domain.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Vendor, 0, len(m.vendors))
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, v := range m.vendors {
		if filter.State != "" && v.VerificationState != filter.State {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(v.Name), query) &&
			!strings.Contains(strings.ToLower(v.Email), query) {
			continue
		}
		out = append(out, cloneVendor(v))
	}
	sortByCreatedAtDesc(out, func(v domain.Vendor) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return out, nil
}

func (m *MemoryRepository) TransitionVendor(ctx context.Context, vendor *domain.Vendor, entry domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.vendors[vendor.ID]
	if !ok {
		return ErrVendorNotFound
	}
	if current.Version != vendor.Version {
		return ErrVersionConflict
	}
	vendor.Version++
	m.vendors[vendor.ID] = cloneVendor(*vendor)
	m.audit = append(m.audit, cloneAuditLog(entry))
	return nil
}

// -------------------- Bookings and payments --------------------

func (m *MemoryRepository) FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	clone := cloneBooking(b)
	return &clone, nil
}

func (m *MemoryRepository) ListBookings(ctx context.Context, filter domain.BookingListFilter) ([]domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if filter.State != "" && b.State != filter.State {
			continue
		}
		out = append(out, cloneBooking(b))
	}
	sortByCreatedAtDesc(out, func(b domain.Booking) (time.Time, uuid.UUID) { return b.CreatedAt, b.ID })
	return out, nil
}

func (m *MemoryRepository) ListPayments(ctx context.Context, filter domain.PaymentListFilter) ([]domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	sortByCreatedAtDesc(out, func(p domain.Payment) (time.Time, uuid.UUID) { return p.CreatedAt, p.ID })
	return out, nil
}

// -------------------- Payouts --------------------

func (m *MemoryRepository) FindPayoutByID(ctx context.Context, payoutID uuid.UUID) (*domain.Payout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.payouts[payoutID]
	if !ok {
		return nil, ErrPayoutNotFound
	}
	clone := clonePayout(p)
	return &clone, nil
}

func (m *MemoryRepository) ListPayouts(ctx context.Context, filter domain.PayoutListFilter) ([]domain.Payout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Payout, 0, len(m.payouts))
	for _, p := range m.payouts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.VendorID != uuid.Nil && p.VendorID != filter.VendorID {
			continue
		}
		out = append(out, clonePayout(p))
	}
	sortByCreatedAtDesc(out, func(p domain.Payout) (time.Time, uuid.UUID) { return p.CreatedAt, p.ID })
	return out, nil
}

func (m *MemoryRepository) TransitionPayout(ctx context.Context, payout *domain.Payout, entry domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.payouts[payout.ID]
	if !ok {
		return ErrPayoutNotFound
	}
	if current.Version != payout.Version {
		return ErrVersionConflict
	}
	payout.Version++
	m.payouts[payout.ID] = clonePayout(*payout)
	m.audit = append(m.audit, cloneAuditLog(entry))
	return nil
}

// -------------------- Disputes --------------------

func (m *MemoryRepository) FindDisputeByID(ctx context.Context, disputeID uuid.UUID) (*domain.Dispute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.disputes[disputeID]
	if !ok {
		return nil, ErrDisputeNotFound
	}
	clone := cloneDispute(d)
	return &clone, nil
}

func (m *MemoryRepository) ListDisputes(ctx context.Context, filter domain.DisputeListFilter) ([]domain.Dispute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Dispute, 0, len(m.disputes))
	for _, d := range m.disputes {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, cloneDispute(d))
	}
	sortByCreatedAtDesc(out, func(d domain.Dispute) (time.Time, uuid.UUID) { return d.CreatedAt, d.ID })
	return out, nil
}

func (m *MemoryRepository) ListDisputesByBookingID(ctx context.Context, bookingID uuid.UUID) ([]domain.Dispute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Dispute
	for _, d := range m.disputes {
		if d.BookingID == bookingID {
			out = append(out, cloneDispute(d))
		}
	}
	sortByCreatedAtDesc(out, func(d domain.Dispute) (time.Time, uuid.UUID) { return d.CreatedAt, d.ID })
	return out, nil
}

func (m *MemoryRepository) TransitionDispute(ctx context.Context, dispute *domain.Dispute, entry domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.disputes[dispute.ID]
	if !ok {
		return ErrDisputeNotFound
	}
	if current.Version != dispute.Version {
		return ErrVersionConflict
	}
	dispute.Version++
	m.disputes[dispute.ID] = cloneDispute(*dispute)
	m.audit = append(m.audit, cloneAuditLog(entry))
	return nil
}

// -------------------- Audit log --------------------

func (m *MemoryRepository) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]domain.AuditLog, 0, len(m.audit))
	// newest first
	for i := len(m.audit) - 1; i >= 0; i-- {
		entry := m.audit[i]
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && entry.ResourceType != filter.ResourceType {
			continue
		}
		if filter.From != nil && entry.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && entry.CreatedAt.After(*filter.To) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(entry.Actor), query) &&
			!strings.Contains(strings.ToLower(entry.Action), query) &&
			!strings.Contains(strings.ToLower(entry.ResourceID), query) {
			continue
		}
		out = append(out, cloneAuditLog(entry))
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// -------------------- Finance aggregation --------------------

func (m *MemoryRepository) SumPayoutAmountsByStatus(ctx context.Context, statuses ...domain.PayoutStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, p := range m.payouts {
		for _, status := range statuses {
			if p.Status == status {
				total += p.AmountCents
				break
			}
		}
	}
	return total, nil
}

func (m *MemoryRepository) CountPayoutsByStatus(ctx context.Context, status domain.PayoutStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, p := range m.payouts {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemoryRepository) CountBookingsActiveBetween(ctx context.Context, from, to time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, b := range m.bookings {
		if b.State != domain.BookingActive {
			continue
		}
		if b.EventDate.Before(from) || !b.EventDate.Before(to) {
			continue
		}
		count++
	}
	return count, nil
}

// -------------------- Ops --------------------

func (m *MemoryRepository) ResetDemoData(ctx context.Context, entry domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadDataset(demoDataset())
	m.audit = append(m.audit, cloneAuditLog(entry))
	return nil
}

func (m *MemoryRepository) FindOneCorrectablePayment(ctx context.Context) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var candidate *domain.Payment
	for id := range m.payments {
		p := m.payments[id]
		if p.Status.Terminal() {
			continue
		}
		if candidate == nil || p.CreatedAt.Before(candidate.CreatedAt) {
			clone := p
			candidate = &clone
		}
	}
	if candidate == nil {
		return nil, ErrNoCorrectablePayment
	}
	return candidate, nil
}

func (m *MemoryRepository) MarkPaymentCorrected(ctx context.Context, paymentID uuid.UUID, entry domain.AuditLog) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.payments[paymentID]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	p.Status = domain.PaymentCorrected
	p.UpdatedAt = time.Now().UTC()
	m.payments[paymentID] = p
	m.audit = append(m.audit, cloneAuditLog(entry))
	return &p, nil
}

// -------------------- helpers --------------------

func sortByCreatedAtDesc[T any](items []T, key func(T) (time.Time, uuid.UUID)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi.String() < idj.String()
	})
}

func cloneVendor(v domain.Vendor) domain.Vendor {
	v.Submission.Documents = append([]string(nil), v.Submission.Documents...)
	return v
}

func cloneBooking(b domain.Booking) domain.Booking {
	b.Milestones = append([]domain.Milestone(nil), b.Milestones...)
	if b.CancellationReason != nil {
		reason := *b.CancellationReason
		b.CancellationReason = &reason
	}
	return b
}

func clonePayout(p domain.Payout) domain.Payout {
	if p.Note != nil {
		note := *p.Note
		p.Note = &note
	}
	return p
}

func cloneDispute(d domain.Dispute) domain.Dispute {
	if d.Resolution != nil {
		resolution := *d.Resolution
		d.Resolution = &resolution
	}
	if d.ResolvedBy != nil {
		resolvedBy := *d.ResolvedBy
		d.ResolvedBy = &resolvedBy
	}
	if d.ResolvedAt != nil {
		resolvedAt := *d.ResolvedAt
		d.ResolvedAt = &resolvedAt
	}
	return d
}

func cloneAuditLog(entry domain.AuditLog) domain.AuditLog {
	if entry.Metadata != nil {
		metadata := make(map[string]string, len(entry.Metadata))
		for k, v := range entry.Metadata {
			metadata[k] = v
		}
		entry.Metadata = metadata
	}
	return entry
}
