package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/export"
	"github.com/MrJamesThe3rd/rateio/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/bills.csv", h.billsCSV)
	r.Get("/statements/{personID}", h.statement)
	r.Get("/archive", h.archive)
}

func (h *Handler) billsCSV(w http.ResponseWriter, r *http.Request) {
	period, err := respond.Period(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.svc.BillsCSV(r.Context(), &buf, period); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Attachment(w, "text/csv; charset=utf-8", "bills"+suffix(period)+".csv")
	write(w, buf.Bytes())
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	personID, ok := respond.UUID(w, "personID", chi.URLParam(r, "personID"))
	if !ok {
		return
	}

	period, err := respond.Period(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	text, err := h.svc.Statement(r.Context(), personID, period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	write(w, []byte(text))
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	period, err := respond.Period(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.Archive(r.Context(), &buf, period); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Attachment(w, "application/zip", "rateio"+suffix(period)+".zip")
	write(w, buf.Bytes())
}

func suffix(period *bill.Period) string {
	if period == nil {
		return ""
	}

	return fmt.Sprintf("_%d-%02d", period.Year, int(period.Month))
}

func write(w http.ResponseWriter, b []byte) {
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
