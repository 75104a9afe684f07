package domain

// FinanceOverview is the read-only projection the admin dashboard renders.
// It is recomputed from current store contents on every call; nothing is
// cached.
type FinanceOverview struct {
	TotalHeldFundsCents     int64      `json:"total_held_funds_cents"`
	TotalPaidOutCents       int64      `json:"total_paid_out_cents"`
	PendingPayoutCount      int        `json:"pending_payout_count"`
	ActiveBookingsThisMonth int        `json:"active_bookings_this_month"`
	RecentAuditLogs         []AuditLog `json:"recent_audit_logs"`
}

// OpsResult reports the outcome of a privileged ops tool invocation.
type OpsResult struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}
