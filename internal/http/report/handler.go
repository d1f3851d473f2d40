package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/http/respond"
	"github.com/MrJamesThe3rd/rateio/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes takes month and year query parameters on every endpoint except evolution,
// which takes only year.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/people", h.perPerson)
	r.Get("/people/{id}", h.personDetail)
	r.Get("/categories", h.byCategory)
	r.Get("/comparison", h.comparison)
	r.Get("/evolution", h.evolution)
	r.Get("/monthly", h.monthly)
}

type personTotalResponse struct {
	PersonID       uuid.UUID        `json:"person_id"`
	Name           string           `json:"name"`
	Color          string           `json:"color"`
	Total          decimal.Decimal  `json:"total"`
	TotalPaid      decimal.Decimal  `json:"total_paid"`
	TotalPending   decimal.Decimal  `json:"total_pending"`
	PercentOfTotal *decimal.Decimal `json:"percent_of_total,omitempty"`
}

type summaryResponse struct {
	BillCount int             `json:"bill_count"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Pending   decimal.Decimal `json:"pending"`
}

type monthSummaryResponse struct {
	Month int `json:"month"`
	summaryResponse
}

type categoryTotalResponse struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
}

type splitLineResponse struct {
	BillID           uuid.UUID       `json:"bill_id"`
	Description      string          `json:"description"`
	InstallmentIndex int             `json:"installment_index"`
	InstallmentCount int             `json:"installment_count"`
	DueDate          *string         `json:"due_date,omitempty"`
	Status           bill.Status     `json:"status"`
	Amount           decimal.Decimal `json:"amount"`
	Paid             bool            `json:"paid"`
}

type personDetailResponse struct {
	PersonID     uuid.UUID           `json:"person_id"`
	Name         string              `json:"name"`
	BillCount    int                 `json:"bill_count"`
	Total        decimal.Decimal     `json:"total"`
	TotalPaid    decimal.Decimal     `json:"total_paid"`
	TotalPending decimal.Decimal     `json:"total_pending"`
	Lines        []splitLineResponse `json:"lines"`
}

type monthlyBillResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *string         `json:"due_date,omitempty"`
}

type monthlyResponse struct {
	Month      int                     `json:"month"`
	Year       int                     `json:"year"`
	Summary    summaryResponse         `json:"summary"`
	People     []personTotalResponse   `json:"people"`
	Categories []categoryTotalResponse `json:"categories"`
	Pending    []monthlyBillResponse   `json:"pending"`
	Paid       []monthlyBillResponse   `json:"paid"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	s, err := h.svc.GeneralSummary(r.Context(), period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummary(s))
}

func (h *Handler) perPerson(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	totals, err := h.svc.TotalPerPerson(r.Context(), period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPersonTotals(totals))
}

func (h *Handler) personDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	period, ok := h.period(w, r)
	if !ok {
		return
	}

	d, err := h.svc.PersonDetail(r.Context(), id, period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := personDetailResponse{
		PersonID:     d.Person.ID,
		Name:         d.Person.Name,
		BillCount:    d.BillCount,
		Total:        d.Total,
		TotalPaid:    d.TotalPaid,
		TotalPending: d.TotalPending,
		Lines:        make([]splitLineResponse, len(d.Lines)),
	}

	for i, l := range d.Lines {
		resp.Lines[i] = splitLineResponse{
			BillID:           l.BillID,
			Description:      l.Description,
			InstallmentIndex: l.InstallmentIndex,
			InstallmentCount: l.InstallmentCount,
			DueDate:          formatDate(l.DueDate),
			Status:           l.Status,
			Amount:           l.Amount,
			Paid:             l.Paid,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	totals, err := h.svc.ByCategory(r.Context(), period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryTotals(totals))
}

func (h *Handler) comparison(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	shares, err := h.svc.Comparison(r.Context(), period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]personTotalResponse, len(shares))
	for i, s := range shares {
		resp[i] = toPersonTotal(s.PersonTotal)
		resp[i].PercentOfTotal = &s.PercentOfTotal
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) evolution(w http.ResponseWriter, r *http.Request) {
	year, err := respond.Year(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	months, err := h.svc.MonthlyEvolution(r.Context(), year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]monthSummaryResponse, len(months))
	for i, m := range months {
		resp[i] = monthSummaryResponse{Month: int(m.Month), summaryResponse: toSummary(m.Summary)}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	if period == nil {
		now := time.Now()
		period = &bill.Period{Month: now.Month(), Year: now.Year()}
	}

	m, err := h.svc.Monthly(r.Context(), *period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, monthlyResponse{
		Month:      int(m.Period.Month),
		Year:       m.Period.Year,
		Summary:    toSummary(m.Summary),
		People:     toPersonTotals(m.People),
		Categories: toCategoryTotals(m.Categories),
		Pending:    toMonthlyBills(m.Pending),
		Paid:       toMonthlyBills(m.Paid),
	})
}

func (h *Handler) period(w http.ResponseWriter, r *http.Request) (*bill.Period, bool) {
	p, err := respond.Period(r)
	if err != nil {
		respond.Error(w, r, err)
		return nil, false
	}

	return p, true
}

func toSummary(s report.Summary) summaryResponse {
	return summaryResponse{BillCount: s.BillCount, Total: s.Total, Paid: s.Paid, Pending: s.Pending}
}

func toPersonTotal(t report.PersonTotal) personTotalResponse {
	return personTotalResponse{
		PersonID:     t.PersonID,
		Name:         t.Name,
		Color:        t.Color,
		Total:        t.Total,
		TotalPaid:    t.TotalPaid,
		TotalPending: t.TotalPending,
	}
}

func toPersonTotals(totals []report.PersonTotal) []personTotalResponse {
	resp := make([]personTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = toPersonTotal(t)
	}

	return resp
}

func toCategoryTotals(totals []report.CategoryTotal) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(totals))
	for i, c := range totals {
		resp[i] = categoryTotalResponse{CategoryID: c.CategoryID, Name: c.Name, Icon: c.Icon, Count: c.Count, Total: c.Total}
	}

	return resp
}

func toMonthlyBills(bills []*bill.Bill) []monthlyBillResponse {
	resp := make([]monthlyBillResponse, len(bills))
	for i, b := range bills {
		resp[i] = monthlyBillResponse{ID: b.ID, Description: b.Description, Amount: b.Amount, DueDate: formatDate(b.DueDate)}
	}

	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
}

