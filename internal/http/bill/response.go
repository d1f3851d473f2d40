package bill

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
)

type billResponse struct {
	ID               uuid.UUID       `json:"id"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	InstallmentIndex int             `json:"installment_index"`
	InstallmentCount int             `json:"installment_count"`
	DueDate          *string         `json:"due_date,omitempty"`
	CategoryID       *uuid.UUID      `json:"category_id,omitempty"`
	Note             string          `json:"note,omitempty"`
	Status           bill.Status     `json:"status"`
	PlanID           *uuid.UUID      `json:"plan_id,omitempty"`
	Splits           []splitResponse `json:"splits"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type splitResponse struct {
	PersonID   uuid.UUID        `json:"person_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Paid       bool             `json:"paid"`
	PaidAt     *time.Time       `json:"paid_at,omitempty"`
}

func toResponse(b *bill.Bill) billResponse {
	resp := billResponse{
		ID:               b.ID,
		Description:      b.Description,
		Amount:           b.Amount,
		InstallmentIndex: b.InstallmentIndex,
		InstallmentCount: b.InstallmentCount,
		CategoryID:       b.CategoryID,
		Note:             b.Note,
		Status:           b.Status,
		PlanID:           b.PlanID,
		Splits:           make([]splitResponse, len(b.Splits)),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.DueDate != nil {
		resp.DueDate = new(b.DueDate.Format(time.DateOnly))
	}

	for i, s := range b.Splits {
		resp.Splits[i] = splitResponse{
			PersonID:   s.PersonID,
			Amount:     s.Amount,
			Percentage: s.Percentage,
			Paid:       s.Paid,
			PaidAt:     s.PaidAt,
		}
	}

	return resp
}

func toResponseList(bills []*bill.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}
