package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/invoices"
)

type InvoicesHandler struct {
	svc    *invoices.Service
	logger *slog.Logger
}

func NewInvoicesHandler(svc *invoices.Service, logger *slog.Logger) *InvoicesHandler {
	return &InvoicesHandler{svc: svc, logger: logger}
}

var invoiceFields = []string{invoices.FieldCustomerID, invoices.FieldAmount, invoices.FieldStatus}

func (h *InvoicesHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		rows, err := h.svc.List(r.Context(), r.URL.Query().Get("query"), page)
		if err != nil {
			h.logger.Error("list invoices failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]any{"data": rows})
	}
}

func (h *InvoicesHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid form body")
			return
		}
		if _, err := h.svc.Create(r.Context(), presentValues(r, invoiceFields...)); err != nil {
			h.writeFailure(w, r, err)
			return
		}
		http.Redirect(w, r, invoices.ListingPath, http.StatusSeeOther)
	}
}

func (h *InvoicesHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.invoiceID(w, r)
		if !ok {
			return
		}
		if err := parseForm(r); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid form body")
			return
		}
		if err := h.svc.Update(r.Context(), id, presentValues(r, invoiceFields...)); err != nil {
			h.writeFailure(w, r, err)
			return
		}
		http.Redirect(w, r, invoices.ListingPath, http.StatusSeeOther)
	}
}

func (h *InvoicesHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.invoiceID(w, r)
		if !ok {
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, FormError{Message: "Deleted Invoice."})
	}
}

func (h *InvoicesHandler) invoiceID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid invoice id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *InvoicesHandler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, invoices.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "invoice not found")
		return
	}
	var f *invoices.Failure
	if !errors.As(err, &f) {
		h.logger.Error("unexpected invoice error", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	status := http.StatusInternalServerError
	if errors.Is(f, invoices.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, r, status, FormError{Errors: f.Fields, Message: f.Message})
}
