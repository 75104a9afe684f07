/**
 * @description
 * HTTP handlers for the privileged ops tools. Gating (feature flags,
 * read-only mode, rate limiting) lives in the service layer; these handlers
 * only translate the outcome.
 */

package api

import (
	"log"
	"net/http"
)

// OpsResetDummyDataHandler reseeds the demo dataset.
func (h *AdminHandlers) OpsResetDummyDataHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.OpsResetDummyData(r.Context(), actor)
	if err != nil {
		h.writeServiceError(w, "ops_reset_dummy_data", err)
		return
	}

	log.Printf("level=info component=api endpoint=ops_reset_dummy_data outcome=%s actor=%s", result.Status, actor)
	h.writeJSON(w, http.StatusOK, result)
}

// OpsReconcileDummyPaymentsHandler forces one correctable payment to
// CORRECTED.
func (h *AdminHandlers) OpsReconcileDummyPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestActor(w, r)
	if !ok {
		return
	}

	result, err := h.service.OpsReconcileDummyPayments(r.Context(), actor)
	if err != nil {
		h.writeServiceError(w, "ops_reconcile_dummy_payments", err)
		return
	}

	log.Printf("level=info component=api endpoint=ops_reconcile_dummy_payments outcome=%s actor=%s", result.Status, actor)
	h.writeJSON(w, http.StatusOK, result)
}
