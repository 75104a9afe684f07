/**
 * @description
 * HTTP handlers for the vendor verification workflow: listing and inspecting
 * vendors, approving submissions, requesting changes, and disabling payouts.
 */

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/eventra/admin-service/internal/domain"
	"github.com/eventra/admin-service/pkg/apperrors"
)

// ListVendorsHandler returns vendors, optionally filtered by verification
// state (?status=) and a name/email substring (?q=).
func (h *AdminHandlers) ListVendorsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.VendorListFilter{
		State: domain.VerificationState(r.URL.Query().Get("status")),
		Query: r.URL.Query().Get("q"),
	}

	vendors, err := h.service.ListVendors(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, "list_vendors", err)
		return
	}
	h.writeJSON(w, http.StatusOK, vendors)
}

// GetVendorHandler returns a single vendor with its full submission detail.
func (h *AdminHandlers) GetVendorHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	vendor, err := h.service.GetVendor(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "get_vendor", err)
		return
	}
	h.writeJSON(w, http.StatusOK, vendor)
}

// ApproveVendorHandler approves a vendor's verification submission and
// enables payouts for it.
func (h *AdminHandlers) ApproveVendorHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestActor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	vendor, err := h.service.ApproveVendor(r.Context(), actor, id)
	if err != nil {
		h.writeServiceError(w, "approve_vendor", err)
		return
	}

	log.Printf("level=info component=api endpoint=approve_vendor outcome=ok vendor_id=%s actor=%s", vendor.ID, actor)
	h.writeJSON(w, http.StatusOK, vendor)
}

// RequestVendorChangesHandler sends a submission back to the vendor with a
// mandatory note explaining what must change.
func (h *AdminHandlers) RequestVendorChangesHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestActor(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid request body")
		return
	}

	vendor, err := h.service.RequestChanges(r.Context(), actor, id, req.Note)
	if err != nil {
		h.writeServiceError(w, "request_vendor_changes", err)
		return
	}

	log.Printf("level=info component=api endpoint=request_vendor_changes outcome=ok vendor_id=%s actor=%s", vendor.ID, actor)
	h.writeJSON(w, http.StatusOK, vendor)
}

// DisableVendorPayoutHandler cuts off payouts for a vendor. The note is
// optional; compliance reviews usually attach one.
func (h *AdminHandlers) DisableVendorPayoutHandler(w http.ResponseWriter, r *http.Request) {
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

	vendor, err := h.service.DisablePayout(r.Context(), actor, id, req.Note)
	if err != nil {
		h.writeServiceError(w, "disable_vendor_payout", err)
		return
	}

	log.Printf("level=info component=api endpoint=disable_vendor_payout outcome=ok vendor_id=%s actor=%s", vendor.ID, actor)
	h.writeJSON(w, http.StatusOK, vendor)
}
