package app

import (
	"context"
	"time"

	"github.com/eventra/admin-service/internal/domain"
)

// ListBookings returns bookings matching the filter. The booking workflow
// owns these records; this is a read-only view.
func (s *Service) ListBookings(ctx context.Context, filter domain.BookingListFilter) ([]domain.Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

// ListPayments returns payments matching the filter.
func (s *Service) ListPayments(ctx context.Context, filter domain.PaymentListFilter) ([]domain.Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

// ListAuditLogs returns audit entries matching the filter, newest first.
func (s *Service) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx, filter)
}

// GetFinanceOverview recomputes the dashboard summary from current store
// contents. Pure read: no caching, no side effects, safe to call
// concurrently and repeatedly.
func (s *Service) GetFinanceOverview(ctx context.Context) (*domain.FinanceOverview, error) {
	held, err := s.repo.SumPayoutAmountsByStatus(ctx, domain.PayoutHeld, domain.PayoutPendingAdminApproval)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.SumPayoutAmountsByStatus(ctx, domain.PayoutPaid)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountPayoutsByStatus(ctx, domain.PayoutPendingAdminApproval)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	active, err := s.repo.CountBookingsActiveBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListAuditLogs(ctx, domain.AuditLogFilter{Limit: s.flags.OverviewAuditLimit})
	if err != nil {
		return nil, err
	}

	return &domain.FinanceOverview{
		TotalHeldFundsCents:     held,
		TotalPaidOutCents:       paid,
		PendingPayoutCount:      pending,
		ActiveBookingsThisMonth: active,
		RecentAuditLogs:         recent,
	}, nil
}
