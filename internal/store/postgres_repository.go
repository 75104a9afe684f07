/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository`
 * interface. It contains the SQL for the vendors, bookings, payments,
 * payouts, disputes, and audit_logs tables.
 *
 * @notes
 * - Every Transition* method runs inside a single transaction: the
 *   version-checked UPDATE and the audit INSERT commit together or not at
 *   all. Zero rows affected with an existing id means a stale version.
 * - Document lists, milestone logs, and audit metadata are stored as JSONB.
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventra/admin-service/internal/domain"
)

// PostgresRepository is a concrete implementation of the Repository
// interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const vendorColumns = `id, type, name, email, phone, verification_state, payout_enabled,
	submission_submitted_by, submission_documents, submission_note, submission_updated_at,
	rating, completed_bookings, version, created_at, updated_at`

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var v domain.Vendor
	var documents []byte
	err := row.Scan(
		&v.ID, &v.Type, &v.Name, &v.Email, &v.Phone, &v.VerificationState, &v.PayoutEnabled,
		&v.Submission.SubmittedBy, &documents, &v.Submission.Note, &v.Submission.LastUpdatedAt,
		&v.Rating, &v.CompletedBookings, &v.Version, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &v.Submission.Documents); err != nil {
			return nil, fmt.Errorf("failed to decode vendor documents: %w", err)
		}
	}
	return &v, nil
}

// FindVendorByID retrieves a vendor by its id.
func (r *PostgresRepository) FindVendorByID(ctx context.Context, vendorID uuid.UUID) (*domain.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM vendors WHERE id = $1`, vendorColumns)
	v, err := scanVendor(r.db.QueryRow(ctx, query, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListVendors returns vendors matching the filter, newest first.
func (r *PostgresRepository) ListVendors(ctx context.Context, filter domain.VendorListFilter) ([]domain.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM vendors`, vendorColumns)
	var conditions []string
	var args []interface{}
	if filter.State != "" {
		args = append(args, filter.State)
		conditions = append(conditions, fmt.Sprintf("verification_state = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		conditions = append(conditions, fmt.Sprintf("(lower(name) LIKE $%d OR lower(email) LIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

// TransitionVendor applies a vendor state transition and its audit entry
// atomically, guarded by the optimistic version check.
func (r *PostgresRepository) TransitionVendor(ctx context.Context, vendor *domain.Vendor, entry domain.AuditLog) error {
	documents, err := json.Marshal(vendor.Submission.Documents)
	if err != nil {
		return fmt.Errorf("failed to encode vendor documents: %w", err)
	}

	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE vendors SET
				verification_state = $1, payout_enabled = $2,
				submission_submitted_by = $3, submission_documents = $4,
				submission_note = $5, submission_updated_at = $6,
				version = version + 1, updated_at = $7
			WHERE id = $8 AND version = $9
		`, vendor.VerificationState, vendor.PayoutEnabled,
			vendor.Submission.SubmittedBy, documents,
			vendor.Submission.Note, vendor.Submission.LastUpdatedAt,
			vendor.UpdatedAt, vendor.ID, vendor.Version)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.classifyStaleWrite(ctx, tx, "vendors", vendor.ID, ErrVendorNotFound)
		}
		if err := insertAuditLog(ctx, tx, entry); err != nil {
			return err
		}
		vendor.Version++
		return nil
	})
}

// -------------------- Bookings and payments --------------------

const bookingColumns = `id, organizer_id, vendor_id, event_name, event_date, state,
	cancellation_reason, milestones, total_amount_cents, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var milestones []byte
	err := row.Scan(
		&b.ID, &b.OrganizerID, &b.VendorID, &b.EventName, &b.EventDate, &b.State,
		&b.CancellationReason, &milestones, &b.TotalAmountCents, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(milestones) > 0 {
		if err := json.Unmarshal(milestones, &b.Milestones); err != nil {
			return nil, fmt.Errorf("failed to decode booking milestones: %w", err)
		}
	}
	return &b, nil
}

func (r *PostgresRepository) FindBookingByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	b, err := scanBooking(r.db.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PostgresRepository) ListBookings(ctx context.Context, filter domain.BookingListFilter) ([]domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings`, bookingColumns)
	var args []interface{}
	if filter.State != "" {
		args = append(args, filter.State)
		query += " WHERE state = $1"
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PostgresRepository) ListPayments(ctx context.Context, filter domain.PaymentListFilter) ([]domain.Payment, error) {
	query := `SELECT id, booking_id, status, amount_cents, created_at, updated_at FROM payments`
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Status, &p.AmountCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// -------------------- Payouts --------------------

const payoutColumns = `id, vendor_id, booking_id, payment_id, type, status, amount_cents,
	note, version, created_at, updated_at`

func scanPayout(row pgx.Row) (*domain.Payout, error) {
	var p domain.Payout
	err := row.Scan(
		&p.ID, &p.VendorID, &p.BookingID, &p.PaymentID, &p.Type, &p.Status, &p.AmountCents,
		&p.Note, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) FindPayoutByID(ctx context.Context, payoutID uuid.UUID) (*domain.Payout, error) {
	query := fmt.Sprintf(`SELECT %s FROM payouts WHERE id = $1`, payoutColumns)
	p, err := scanPayout(r.db.QueryRow(ctx, query, payoutID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) ListPayouts(ctx context.Context, filter domain.PayoutListFilter) ([]domain.Payout, error) {
	query := fmt.Sprintf(`SELECT %s FROM payouts`, payoutColumns)
	var conditions []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.VendorID != uuid.Nil {
		args = append(args, filter.VendorID)
		conditions = append(conditions, fmt.Sprintf("vendor_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payouts := []domain.Payout{}
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, *p)
	}
	return payouts, rows.Err()
}

func (r *PostgresRepository) TransitionPayout(ctx context.Context, payout *domain.Payout, entry domain.AuditLog) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE payouts SET status = $1, note = $2, version = version + 1, updated_at = $3
			WHERE id = $4 AND version = $5
		`, payout.Status, payout.Note, payout.UpdatedAt, payout.ID, payout.Version)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.classifyStaleWrite(ctx, tx, "payouts", payout.ID, ErrPayoutNotFound)
		}
		if err := insertAuditLog(ctx, tx, entry); err != nil {
			return err
		}
		payout.Version++
		return nil
	})
}

// -------------------- Disputes --------------------

const disputeColumns = `id, booking_id, opened_by, reason, status, resolution,
	resolved_by, resolved_at, version, created_at, updated_at`

func scanDispute(row pgx.Row) (*domain.Dispute, error) {
	var d domain.Dispute
	err := row.Scan(
		&d.ID, &d.BookingID, &d.OpenedBy, &d.Reason, &d.Status, &d.Resolution,
		&d.ResolvedBy, &d.ResolvedAt, &d.Version, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) FindDisputeByID(ctx context.Context, disputeID uuid.UUID) (*domain.Dispute, error) {
	query := fmt.Sprintf(`SELECT %s FROM disputes WHERE id = $1`, disputeColumns)
	d, err := scanDispute(r.db.QueryRow(ctx, query, disputeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDisputeNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *PostgresRepository) ListDisputes(ctx context.Context, filter domain.DisputeListFilter) ([]domain.Dispute, error) {
	query := fmt.Sprintf(`SELECT %s FROM disputes`, disputeColumns)
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC, id"
	return r.queryDisputes(ctx, query, args...)
}

func (r *PostgresRepository) ListDisputesByBookingID(ctx context.Context, bookingID uuid.UUID) ([]domain.Dispute, error) {
	query := fmt.Sprintf(`SELECT %s FROM disputes WHERE booking_id = $1 ORDER BY created_at DESC, id`, disputeColumns)
	return r.queryDisputes(ctx, query, bookingID)
}

func (r *PostgresRepository) queryDisputes(ctx context.Context, query string, args ...interface{}) ([]domain.Dispute, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	disputes := []domain.Dispute{}
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, *d)
	}
	return disputes, rows.Err()
}

func (r *PostgresRepository) TransitionDispute(ctx context.Context, dispute *domain.Dispute, entry domain.AuditLog) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE disputes SET status = $1, resolution = $2, resolved_by = $3,
				resolved_at = $4, version = version + 1, updated_at = $5
			WHERE id = $6 AND version = $7
		`, dispute.Status, dispute.Resolution, dispute.ResolvedBy,
			dispute.ResolvedAt, dispute.UpdatedAt, dispute.ID, dispute.Version)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.classifyStaleWrite(ctx, tx, "disputes", dispute.ID, ErrDisputeNotFound)
		}
		if err := insertAuditLog(ctx, tx, entry); err != nil {
			return err
		}
		dispute.Version++
		return nil
	})
}

// -------------------- Audit log --------------------

func insertAuditLog(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error {
	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode audit metadata: %w", err)
		}
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO audit_logs (id, actor, action, resource_type, resource_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.Actor, entry.Action, entry.ResourceType, entry.ResourceID, metadata, entry.CreatedAt)
	return err
}

func (r *PostgresRepository) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	query := `SELECT id, actor, action, resource_type, resource_id, metadata, created_at FROM audit_logs`
	var conditions []string
	var args []interface{}
	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		conditions = append(conditions, fmt.Sprintf("resource_type = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(lower(actor) LIKE $%d OR lower(action) LIKE $%d OR lower(resource_id) LIKE $%d)",
			len(args), len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var entry domain.AuditLog
		var metadata []byte
		if err := rows.Scan(&entry.ID, &entry.Actor, &entry.Action, &entry.ResourceType, &entry.ResourceID, &metadata, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode audit metadata: %w", err)
			}
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// -------------------- Finance aggregation --------------------

func (r *PostgresRepository) SumPayoutAmountsByStatus(ctx context.Context, statuses ...domain.PayoutStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM payouts WHERE status = ANY($1)`,
		values,
	).Scan(&total)
	return total, err
}

func (r *PostgresRepository) CountPayoutsByStatus(ctx context.Context, status domain.PayoutStatus) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payouts WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *PostgresRepository) CountBookingsActiveBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE state = $1 AND event_date >= $2 AND event_date < $3`,
		domain.BookingActive, from, to,
	).Scan(&count)
	return count, err
}

// -------------------- Ops --------------------

// ResetDemoData truncates the entity tables and reinserts the seeded demo
// dataset. The audit log is never truncated; the reseed itself is recorded.
func (r *PostgresRepository) ResetDemoData(ctx context.Context, entry domain.AuditLog) error {
	ds := demoDataset()
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE vendors, bookings, payments, payouts, disputes`); err != nil {
			return err
		}
		for _, v := range ds.Vendors {
			documents, err := json.Marshal(v.Submission.Documents)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, fmt.Sprintf(`
				INSERT INTO vendors (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			`, vendorColumns), v.ID, v.Type, v.Name, v.Email, v.Phone, v.VerificationState, v.PayoutEnabled,
				v.Submission.SubmittedBy, documents, v.Submission.Note, v.Submission.LastUpdatedAt,
				v.Rating, v.CompletedBookings, v.Version, v.CreatedAt, v.UpdatedAt); err != nil {
				return err
			}
		}
		for _, b := range ds.Bookings {
			milestones, err := json.Marshal(b.Milestones)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, fmt.Sprintf(`
				INSERT INTO bookings (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			`, bookingColumns), b.ID, b.OrganizerID, b.VendorID, b.EventName, b.EventDate, b.State,
				b.CancellationReason, milestones, b.TotalAmountCents, b.CreatedAt, b.UpdatedAt); err != nil {
				return err
			}
		}
		for _, p := range ds.Payments {
			if _, err := tx.Exec(ctx, `
				INSERT INTO payments (id, booking_id, status, amount_cents, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, p.ID, p.BookingID, p.Status, p.AmountCents, p.CreatedAt, p.UpdatedAt); err != nil {
				return err
			}
		}
		for _, p := range ds.Payouts {
			if _, err := tx.Exec(ctx, fmt.Sprintf(`
				INSERT INTO payouts (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			`, payoutColumns), p.ID, p.VendorID, p.BookingID, p.PaymentID, p.Type, p.Status, p.AmountCents,
				p.Note, p.Version, p.CreatedAt, p.UpdatedAt); err != nil {
				return err
			}
		}
		for _, d := range ds.Disputes {
			if _, err := tx.Exec(ctx, fmt.Sprintf(`
				INSERT INTO disputes (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			`, disputeColumns), d.ID, d.BookingID, d.OpenedBy, d.Reason, d.Status, d.Resolution,
				d.ResolvedBy, d.ResolvedAt, d.Version, d.CreatedAt, d.UpdatedAt); err != nil {
				return err
			}
		}
		return insertAuditLog(ctx, tx, entry)
	})
}

func (r *PostgresRepository) FindOneCorrectablePayment(ctx context.Context) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.QueryRow(ctx, `
		SELECT id, booking_id, status, amount_cents, created_at, updated_at
		FROM payments
		WHERE status NOT IN ($1, $2, $3)
		ORDER BY created_at, id
		LIMIT 1
	`, domain.PaymentSucceeded, domain.PaymentCorrected, domain.PaymentCanceled).Scan(
		&p.ID, &p.BookingID, &p.Status, &p.AmountCents, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCorrectablePayment
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) MarkPaymentCorrected(ctx context.Context, paymentID uuid.UUID, entry domain.AuditLog) (*domain.Payment, error) {
	var corrected *domain.Payment
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var p domain.Payment
		err := tx.QueryRow(ctx, `
			UPDATE payments SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING id, booking_id, status, amount_cents, created_at, updated_at
		`, domain.PaymentCorrected, paymentID).Scan(
			&p.ID, &p.BookingID, &p.Status, &p.AmountCents, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPaymentNotFound
			}
			return err
		}
		if err := insertAuditLog(ctx, tx, entry); err != nil {
			return err
		}
		corrected = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return corrected, nil
}

// -------------------- helpers --------------------

func (r *PostgresRepository) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// classifyStaleWrite distinguishes a missing row from a version conflict
// after an UPDATE touched zero rows.
func (r *PostgresRepository) classifyStaleWrite(ctx context.Context, tx pgx.Tx, table string, id uuid.UUID, notFound error) error {
	var exists bool
	if err := tx.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return ErrVersionConflict
}
