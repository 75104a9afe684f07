/**
 * @description
 * HTTP handlers for the finance surfaces: payout approval, dispute
 * resolution, the read-only booking/payment ledgers, the audit log, and the
 * finance overview dashboard.
 */

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/pkg/apperrors"
)

// ListBookingsHandler returns bookings, optionally filtered by state.
func (h *AdminHandlers) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.BookingListFilter{
		State: domain.BookingState(r.URL.Query().Get("state")),
	}

	bookings, err := h.service.ListBookings(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, "list_bookings", err)
		return
	}
	h.writeJSON(w, http.StatusOK, bookings)
}

// ListPaymentsHandler returns payments, optionally filtered by status.
func (h *AdminHandlers) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.PaymentListFilter{
		Status: domain.PaymentStatus(r.URL.Query().Get("status")),
	}

	payments, err := h.service.ListPayments(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, "list_payments", err)
		return
	}
	h.writeJSON(w, http.StatusOK, payments)
}

// ListAuditLogsHandler returns audit entries newest first. Supports free-text
// search (?q=), exact action and resource type filters, an RFC3339 time
// window (?from=&to=), and a result cap (?limit=).
func (h *AdminHandlers) ListAuditLogsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseOptionalTime(q.Get("from"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid 'from' timestamp, expected RFC3339")
		return
	}
	to, err := parseOptionalTime(q.Get("to"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid 'to' timestamp, expected RFC3339")
		return
	}
	limit, err := parseOptionalInt(q.Get("limit"), 0)
	if err != nil || limit < 0 {
		h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid limit")
		return
	}

	filter := domain.AuditLogFilter{
		Query:        q.Get("q"),
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
		From:         from,
		To:           to,
		Limit:        limit,
	}

	entries, err := h.service.ListAuditLogs(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, "list_audit_logs", err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// ListPayoutsHandler returns payouts, optionally filtered by status and
// owning vendor.
func (h *AdminHandlers) ListPayoutsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.PayoutListFilter{
		Status: domain.PayoutStatus(r.URL.Query().Get("status")),
	}
	if raw := r.URL.Query().Get("vendor_id"); raw != "" {
		vendorID, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid vendor_id format")
			return
		}
		filter.VendorID = vendorID
	}

	payouts, err := h.service.ListPayouts(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, "list_payouts", err)
		return
	}
	h.writeJSON(w, http.StatusOK, payouts)
}

// ApprovePayoutHandler releases a payout for settlement.
func (h *AdminHandlers) ApprovePayoutHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestActor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeNote(w, r)
	if !ok {
		return
	}

	payout, err := h.service.ApprovePayout(r.Context(), actor, id, req.Note)
	if err != nil {
		h.writeServiceError(w, "approve_payout", err)
		return
	}

	log.Printf("level=info component=api endpoint=approve_payout outcome=ok payout_id=%s actor=%s", payout.ID, actor)
	h.writeJSON(w, http.StatusOK, payout)
}

// HoldPayoutHandler parks a payout pending remediation.
func (h *AdminHandlers) HoldPayoutHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestActor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeNote(w, r)
	if !ok {
		return
	}

	payout, err := h.service.HoldPayout(r.Context(), actor, id, req.Note)
	if err != nil {
		h.writeServiceError(w, "hold_payout", err)
		return
	}

	log.Printf("level=info component=api endpoint=hold_payout outcome=ok payout_id=%s actor=%s", payout.ID, actor)
	h.writeJSON(w, http.StatusOK, payout)
}

// ListDisputesHandler returns disputes, optionally filtered by status.
func (h *AdminHandlers) ListDisputesHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.DisputeListFilter{
		Status: domain.DisputeStatus(r.URL.Query().Get("status")),
	}

	disputes, err := h.service.ListDisputes(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, "list_disputes", err)
		return
	}
	h.writeJSON(w, http.StatusOK, disputes)
}

// ResolveDisputeHandler closes a dispute as RESOLVED or REJECTED with an
// optional resolution note.
func (h *AdminHandlers) ResolveDisputeHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestActor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Resolution domain.DisputeStatus `json:"resolution"`
		Note       string               `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid request body")
		return
	}

	dispute, err := h.service.ResolveDispute(r.Context(), actor, id, req.Resolution, req.Note)
	if err != nil {
		h.writeServiceError(w, "resolve_dispute", err)
		return
	}

	log.Printf("level=info component=api endpoint=resolve_dispute outcome=ok dispute_id=%s resolution=%s actor=%s", dispute.ID, dispute.Status, actor)
	h.writeJSON(w, http.StatusOK, dispute)
}

// FinanceOverviewHandler returns the recomputed finance dashboard summary.
func (h *AdminHandlers) FinanceOverviewHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.GetFinanceOverview(r.Context())
	if err != nil {
		h.writeServiceError(w, "finance_overview", err)
		return
	}
	h.writeJSON(w, http.StatusOK, overview)
}
