package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/docchat-ai/docchat/internal/appointments"
	"github.com/docchat-ai/docchat/internal/contacts"
	"github.com/docchat-ai/docchat/pkg/logging"
)

// ContactLister returns collected contact records, newest first.
type ContactLister interface {
	ListRecent(ctx context.Context, limit int) ([]contacts.Record, error)
}

// AppointmentCanceler frees a booked slot.
type AppointmentCanceler interface {
	Cancel(ctx context.Context, id string) error
}

// AdminHandler exposes the operator endpoints: reviewing collected contacts
// and cancelling appointments.
type AdminHandler struct {
	contacts ContactLister
	appts    AppointmentCanceler
	logger   *logging.Logger
}

// NewAdminHandler creates the handler.
func NewAdminHandler(contactStore ContactLister, appts AppointmentCanceler, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{
		contacts: contactStore,
		appts:    appts,
		logger:   logger,
	}
}

// HandleListContacts returns recent contact records. ?limit= caps the page.
func (h *AdminHandler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.contacts.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("admin: contact listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": records,
		"count":    len(records),
	})
}

// HandleCancelAppointment cancels one appointment, freeing its slot.
func (h *AdminHandler) HandleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")

	if err := h.appts.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, appointments.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no confirmed appointment with that id")
			return
		}
		h.logger.Error("admin: cancel failed", "appointment_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to cancel appointment")
		return
	}

	h.logger.Info("admin: appointment cancelled", "appointment_id", id)
	w.WriteHeader(http.StatusNoContent)
}
