/**
 * @description
 * This file contains the shared plumbing for the admin-service's HTTP
 * handlers. Handlers parse incoming requests, call the appropriate methods on
 * the application service, and write the HTTP response. Errors carry a kind
 * from pkg/apperrors, so the status mapping here is mechanical and the
 * response body always has the shape {"error": {"code", "message"}}.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, pkg/apperrors: For service logic and the error taxonomy.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eventra/admin-service/internal/app"
	"github.com/eventra/admin-service/pkg/apperrors"
)

// AdminHandlers holds the application service that handlers will use.
type AdminHandlers struct {
	service *app.Service
}

// NewAdminHandlers creates a new instance of AdminHandlers.
func NewAdminHandlers(service *app.Service) *AdminHandlers {
	return &AdminHandlers{service: service}
}

type errorBody struct {
	Code    apperrors.Kind `json:"code"`
	Message string         `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeJSON is a helper for writing JSON responses.
func (h *AdminHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a kinded JSON error response.
func (h *AdminHandlers) writeError(w http.ResponseWriter, status int, code apperrors.Kind, message string) {
	h.writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// writeServiceError maps an application error to its HTTP response. Errors
// without a kind are treated as internal and not echoed to the client.
func (h *AdminHandlers) writeServiceError(w http.ResponseWriter, endpoint string, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		h.writeError(w, appErr.HTTPStatus(), appErr.Kind, appErr.Message)
		return
	}
	log.Printf("level=error component=api endpoint=%s outcome=failed err=%v", endpoint, err)
	h.writeError(w, http.StatusInternalServerError, apperrors.KindInternal, "Internal server error")
}

// requestActor pulls the authenticated admin identity from the context. The
// auth middleware guarantees it is present on every protected route.
func (h *AdminHandlers) requestActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actor, ok := GetAdminActor(r.Context())
	if !ok {
		h.writeError(w, http.StatusInternalServerError, apperrors.KindInternal, "Could not get actor from context")
		return "", false
	}
	return actor, true
}

// pathID parses the {id} URL parameter as a UUID.
func (h *AdminHandlers) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid resource ID format")
		return uuid.Nil, false
	}
	return id, true
}

// noteRequest is the shared body for actions that carry an optional or
// required free-text note.
type noteRequest struct {
	Note string `json:"note"`
}

// decodeNote parses the request body into a noteRequest. An empty body is
// accepted and yields an empty note.
func (h *AdminHandlers) decodeNote(w http.ResponseWriter, r *http.Request) (noteRequest, bool) {
	var req noteRequest
	if r.Body == nil || r.ContentLength == 0 {
		return req, true
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, apperrors.KindInvalidArgument, "Invalid request body")
		return req, false
	}
	return req, true
}

func parseOptionalInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func parseOptionalTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
