// Package respond writes JSON responses and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/category"
	"github.com/MrJamesThe3rd/rateio/internal/matching"
	"github.com/MrJamesThe3rd/rateio/internal/person"
	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

type errorResponse struct {
	Error   string      `json:"error"`
	Field   string      `json:"field,omitempty"`
	Created []uuid.UUID `json:"created,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Message writes an error body with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// Error maps err onto a status code. Unknown errors are logged and reported as 500
// without their text.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve      *validation.Error
		partial *bill.PartialPlanError
	)

	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.As(err, &partial):
		slog.Error("installment plan incomplete", "path", r.URL.Path, "plan_id", partial.PlanID, "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: partial.Error(), Created: partial.Created})
	case errors.Is(err, bill.ErrNotFound),
		errors.Is(err, bill.ErrSplitNotFound),
		errors.Is(err, person.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, matching.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, person.ErrDuplicateName), errors.Is(err, category.ErrDuplicateName):
		Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, bill.ErrNothingImported):
		Message(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		Message(w, http.StatusInternalServerError, "internal error")
	}
}

// Decode reads a JSON body into v, writing a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Message(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	return true
}

// UUID parses a path or query value, writing a 400 on failure.
func UUID(w http.ResponseWriter, name, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		Message(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}

	return id, true
}

// Period reads the month and year query parameters. Both absent means no period;
// a month without a year uses the current year.
func Period(r *http.Request) (*bill.Period, error) {
	q := r.URL.Query()
	month, year := q.Get("month"), q.Get("year")

	if month == "" && year == "" {
		return nil, nil
	}

	if month == "" {
		return nil, validation.New("month", "is required with year")
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return nil, validation.New("month", "must be between 1 and 12")
	}

	y := time.Now().Year()
	if year != "" {
		if y, err = strconv.Atoi(year); err != nil || y < 1 {
			return nil, validation.New("year", "must be a positive number")
		}
	}

	return &bill.Period{Month: time.Month(m), Year: y}, nil
}

// Date parses an optional YYYY-MM-DD query parameter.
func Date(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, validation.New(name, "must be a date in %s format", time.DateOnly)
	}

	return &t, nil
}

// Year parses the year query parameter, defaulting to the current year.
func Year(r *http.Request) (int, error) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return time.Now().Year(), nil
	}

	y, err := strconv.Atoi(s)
	if err != nil || y < 1 {
		return 0, validation.New("year", "must be a positive number")
	}

	return y, nil
}

// Attachment sets the headers for a file download.
func Attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
