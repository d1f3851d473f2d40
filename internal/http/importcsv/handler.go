package importcsv

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/http/respond"
	"github.com/MrJamesThe3rd/rateio/internal/importer"
	"github.com/MrJamesThe3rd/rateio/internal/matching"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	billSvc   *bill.Service
	matchSvc  *matching.Service
}

func NewHandler(importSvc *importer.Service, billSvc *bill.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		billSvc:   billSvc,
		matchSvc:  matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/banks", h.banks)
	r.Post("/", h.preview)
	r.Post("/save", h.save)
}

type lineDTO struct {
	Description      string          `json:"description"`
	RawDescription   string          `json:"raw_description,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Date             string          `json:"date"`
	InstallmentIndex int             `json:"installment_index"`
	InstallmentCount int             `json:"installment_count"`
	CategoryID       *uuid.UUID      `json:"category_id,omitempty"`
}

type previewResponse struct {
	Bank  importer.Bank `json:"bank"`
	Lines []lineDTO     `json:"lines"`
}

type allocationDTO struct {
	PersonID   uuid.UUID        `json:"person_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

type saveRequest struct {
	Lines                      []lineDTO       `json:"lines"`
	CategoryID                 *uuid.UUID      `json:"category_id"`
	Allocation                 []allocationDTO `json:"allocation"`
	GenerateFutureInstallments bool            `json:"generate_future_installments"`
}

type failureDTO struct {
	Line        int    `json:"line"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

type saveResponse struct {
	Saved    int          `json:"saved"`
	BillIDs  []uuid.UUID  `json:"bill_ids"`
	Failures []failureDTO `json:"failures"`
}

func (h *Handler) banks(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.importSvc.Banks())
}

// preview parses an uploaded statement and applies the learned rules without saving anything.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		respond.Message(w, http.StatusBadRequest, "bank field is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	txs, err := h.importSvc.Import(bank, file)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err = h.matchSvc.Annotate(r.Context(), txs)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := previewResponse{Bank: bank, Lines: make([]lineDTO, len(txs))}
	for i, tx := range txs {
		resp.Lines[i] = lineDTO{
			Description:      tx.Description,
			RawDescription:   tx.RawDescription,
			Amount:           tx.Amount,
			Date:             tx.Date.Format(time.DateOnly),
			InstallmentIndex: tx.InstallmentIndex,
			InstallmentCount: tx.InstallmentCount,
			CategoryID:       tx.CategoryID,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

// save stores the reviewed lines. Rejected lines are reported next to the saved ones;
// a batch where nothing could be saved answers 422.
func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	txs := make([]bill.ImportedTransaction, len(req.Lines))
	for i, l := range req.Lines {
		date, err := time.Parse(time.DateOnly, l.Date)
		if err != nil {
			respond.Message(w, http.StatusBadRequest, "invalid date on line "+l.Description)
			return
		}

		txs[i] = bill.ImportedTransaction{
			Description:      l.Description,
			RawDescription:   l.RawDescription,
			Amount:           l.Amount,
			Date:             date,
			InstallmentIndex: l.InstallmentIndex,
			InstallmentCount: l.InstallmentCount,
			CategoryID:       l.CategoryID,
		}
	}

	allocation := make([]bill.SplitParams, len(req.Allocation))
	for i, a := range req.Allocation {
		allocation[i] = bill.SplitParams{PersonID: a.PersonID, Amount: a.Amount, Percentage: a.Percentage}
	}

	res, err := h.billSvc.SaveImported(r.Context(), txs, bill.ImportOptions{
		CategoryID:                 req.CategoryID,
		Allocation:                 allocation,
		GenerateFutureInstallments: req.GenerateFutureInstallments,
	})

	status := http.StatusCreated

	switch {
	case errors.Is(err, bill.ErrNothingImported):
		status = http.StatusUnprocessableEntity
	case err != nil:
		respond.Error(w, r, err)
		return
	}

	resp := saveResponse{Saved: res.Saved, BillIDs: res.BillIDs, Failures: make([]failureDTO, len(res.Failures))}
	for i, f := range res.Failures {
		resp.Failures[i] = failureDTO{Line: f.Line, Description: f.Description, Error: f.Err.Error()}
	}

	respond.JSON(w, status, resp)
}
