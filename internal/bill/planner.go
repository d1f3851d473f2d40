package bill

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/allocation"
	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

// DefaultMaxInstallments caps InstallmentCount when no limit is configured.
const DefaultMaxInstallments = 48

// SplitParams assigns part of a bill to a person. For a plan the amounts act as weights
// against the purchase total.
type SplitParams struct {
	PersonID   uuid.UUID
	Amount     decimal.Decimal
	Percentage *decimal.Decimal
}

type PlanParams struct {
	Description      string
	TotalAmount      decimal.Decimal
	InstallmentCount int
	StartDueDate     time.Time
	CategoryID       *uuid.UUID
	Note             string
	Allocation       []SplitParams
}

type PlanResult struct {
	PlanID  uuid.UUID
	BillIDs []uuid.UUID
}

// PartialPlanError reports a plan that failed part way. The bills in Created were
// persisted and are left in place.
type PartialPlanError struct {
	PlanID    uuid.UUID
	Created   []uuid.UUID
	Requested int
	Err       error
}

func (e *PartialPlanError) Error() string {
	return fmt.Sprintf("plan %s: created %d of %d installments: %v", e.PlanID, len(e.Created), e.Requested, e.Err)
}

func (e *PartialPlanError) Unwrap() error {
	return e.Err
}

// Planner expands one purchase into monthly installment bills.
type Planner struct {
	repo            Repository
	maxInstallments int
}

func NewPlanner(repo Repository, maxInstallments int) *Planner {
	if maxInstallments <= 0 {
		maxInstallments = DefaultMaxInstallments
	}

	return &Planner{repo: repo, maxInstallments: maxInstallments}
}

// Plan creates InstallmentCount bills one month apart, all sharing a new plan id.
// Each installment is TotalAmount/InstallmentCount rounded to cents, and its splits are
// the allocation scaled to that amount. Zero shares are not stored.
func (p *Planner) Plan(ctx context.Context, params PlanParams) (*PlanResult, error) {
	if params.InstallmentCount < 1 || params.InstallmentCount > p.maxInstallments {
		return nil, validation.New("installment_count", "must be between 1 and %d", p.maxInstallments)
	}

	if !params.TotalAmount.IsPositive() {
		return nil, validation.New("amount", "must be greater than zero")
	}

	weights := make([]allocation.Weight, len(params.Allocation))
	for i, a := range params.Allocation {
		weights[i] = allocation.Weight{Recipient: a.PersonID, Amount: a.Amount}
	}

	perInstallment := params.TotalAmount.Div(decimal.NewFromInt(int64(params.InstallmentCount)))
	if !perInstallment.Round(2).IsPositive() {
		return nil, validation.New("amount", "is too small to split into %d installments", params.InstallmentCount)
	}

	shares, err := allocation.SplitProportional(perInstallment, weights)
	if err != nil {
		return nil, validation.New("splits", "split amounts must not be negative")
	}

	planID := uuid.New()
	result := &PlanResult{PlanID: planID, BillIDs: make([]uuid.UUID, 0, params.InstallmentCount)}

	for i := range params.InstallmentCount {
		b := &Bill{
			Description:      strings.TrimSpace(params.Description),
			Amount:           perInstallment.Round(2),
			InstallmentIndex: i + 1,
			InstallmentCount: params.InstallmentCount,
			DueDate:          new(AddMonths(params.StartDueDate, i)),
			CategoryID:       params.CategoryID,
			Note:             params.Note,
			Status:           StatusPending,
			PlanID:           &planID,
		}

		if err := p.repo.CreateBill(ctx, b); err != nil {
			return nil, p.partial(result, params.InstallmentCount, fmt.Errorf("creating installment %d: %w", i+1, err))
		}

		result.BillIDs = append(result.BillIDs, b.ID)

		for j, share := range shares {
			if !share.Amount.IsPositive() {
				continue
			}

			split := &Split{
				BillID:     b.ID,
				PersonID:   share.Recipient,
				Amount:     share.Amount,
				Percentage: params.Allocation[j].Percentage,
			}

			if err := p.repo.UpsertSplit(ctx, split); err != nil {
				return nil, p.partial(result, params.InstallmentCount, fmt.Errorf("creating split for installment %d: %w", i+1, err))
			}
		}
	}

	slog.Info("installment plan created",
		"plan_id", planID,
		"installments", params.InstallmentCount,
		"total", params.TotalAmount.StringFixed(2),
	)

	return result, nil
}

func (p *Planner) partial(result *PlanResult, requested int, err error) error {
	slog.Error("installment plan interrupted",
		"plan_id", result.PlanID,
		"created", len(result.BillIDs),
		"requested", requested,
		"error", err,
	)

	return &PartialPlanError{
		PlanID:    result.PlanID,
		Created:   result.BillIDs,
		Requested: requested,
		Err:       err,
	}
}
