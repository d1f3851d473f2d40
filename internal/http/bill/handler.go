package bill

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/http/respond"
	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

type Handler struct {
	svc *bill.Service
}

func NewHandler(svc *bill.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/paid", h.markPaid)
	r.Post("/{id}/splits/{personID}/paid", h.markSplitPaid)
}

func (h *Handler) PlanRoutes(r chi.Router) {
	r.Get("/{planID}", h.listPlan)
	r.Delete("/{planID}", h.deletePlan)
}

type splitRequest struct {
	PersonID   uuid.UUID        `json:"person_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

type createRequest struct {
	Description                string          `json:"description"`
	Amount                     decimal.Decimal `json:"amount"`
	InstallmentIndex           int             `json:"installment_index"`
	InstallmentCount           int             `json:"installment_count"`
	DueDate                    *string         `json:"due_date"`
	CategoryID                 *uuid.UUID      `json:"category_id"`
	Note                       string          `json:"note"`
	Splits                     []splitRequest  `json:"splits"`
	GenerateFutureInstallments bool            `json:"generate_future_installments"`
}

type createResponse struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ids, err := h.svc.Create(r.Context(), bill.CreateParams{
		Description:                req.Description,
		Amount:                     req.Amount,
		InstallmentIndex:           req.InstallmentIndex,
		InstallmentCount:           req.InstallmentCount,
		DueDate:                    due,
		CategoryID:                 req.CategoryID,
		Note:                       req.Note,
		Splits:                     toSplitParams(req.Splits),
		GenerateFutureInstallments: req.GenerateFutureInstallments,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, createResponse{IDs: ids})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	bills, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bills))
}

// listFilter reads month/year, or start_date/end_date when no period is given.
func listFilter(r *http.Request) (bill.ListFilter, error) {
	period, err := respond.Period(r)
	if err != nil {
		return bill.ListFilter{}, err
	}

	filter := bill.FilterFor(period)

	if period == nil {
		if filter.StartDate, err = respond.Date(r, "start_date"); err != nil {
			return bill.ListFilter{}, err
		}

		if filter.EndDate, err = respond.Date(r, "end_date"); err != nil {
			return bill.ListFilter{}, err
		}
	}

	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		status := bill.Status(s)
		if !status.Valid() {
			return bill.ListFilter{}, validation.New("status", "unknown status %q", s)
		}

		filter.Status = &status
	}

	for name, dst := range map[string]**uuid.UUID{"plan_id": &filter.PlanID, "person_id": &filter.PersonID} {
		if s := q.Get(name); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return bill.ListFilter{}, validation.New(name, "must be a UUID")
			}

			*dst = &id
		}
	}

	return filter, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

type updateRequest struct {
	Description      *string          `json:"description"`
	Amount           *decimal.Decimal `json:"amount"`
	InstallmentIndex *int             `json:"installment_index"`
	InstallmentCount *int             `json:"installment_count"`
	DueDate          *string          `json:"due_date"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	Note             *string          `json:"note"`
	Status           *string          `json:"status"`
	Splits           []splitRequest   `json:"splits"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req updateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if req.Status != nil {
		respond.Error(w, r, validation.New("status", "can only change through the paid endpoint"))
		return
	}

	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	params := bill.UpdateParams{
		Patch: bill.Patch{
			Description:      req.Description,
			Amount:           req.Amount,
			InstallmentIndex: req.InstallmentIndex,
			InstallmentCount: req.InstallmentCount,
			DueDate:          due,
			CategoryID:       req.CategoryID,
			Note:             req.Note,
		},
	}

	// An explicit empty list clears the splits; an absent one leaves them alone.
	if req.Splits != nil {
		params.Splits = toSplitParams(req.Splits)
	}

	b, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

type deleteResponse struct {
	Deleted int `json:"deleted"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	n, err := h.svc.Delete(r.Context(), id, r.URL.Query().Get("whole_plan") == "true")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, deleteResponse{Deleted: n})
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.svc.MarkPaid(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markSplitPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	personID, ok := respond.UUID(w, "person id", chi.URLParam(r, "personID"))
	if !ok {
		return
	}

	if err := h.svc.MarkSplitPaid(r.Context(), id, personID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := respond.UUID(w, "plan id", chi.URLParam(r, "planID"))
	if !ok {
		return
	}

	bills, err := h.svc.ListPlan(r.Context(), planID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bills))
}

func (h *Handler) deletePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := respond.UUID(w, "plan id", chi.URLParam(r, "planID"))
	if !ok {
		return
	}

	n, err := h.svc.DeletePlan(r.Context(), planID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, deleteResponse{Deleted: n})
}

func toSplitParams(reqs []splitRequest) []bill.SplitParams {
	params := make([]bill.SplitParams, len(reqs))
	for i, s := range reqs {
		params[i] = bill.SplitParams{PersonID: s.PersonID, Amount: s.Amount, Percentage: s.Percentage}
	}

	return params
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, validation.New(field, "must be a date in %s format", time.DateOnly)
	}

	return &t, nil
}
