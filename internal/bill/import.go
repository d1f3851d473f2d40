package bill

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/metrics"
)

type ImportOptions struct {
	// CategoryID overrides the category suggested for each line.
	CategoryID *uuid.UUID
	// Allocation applies to every line. Entries carrying a Percentage are resolved
	// against each line's amount; the rest are used as given.
	Allocation                 []SplitParams
	GenerateFutureInstallments bool
}

// ImportFailure is a statement line that could not be saved.
type ImportFailure struct {
	Line        int
	Description string
	Err         error
}

type ImportResult struct {
	BillIDs  []uuid.UUID
	Saved    int
	Failures []ImportFailure
}

// SaveImported creates a bill for every imported line. A line that is one installment
// of a purchase becomes a full plan only when GenerateFutureInstallments is set; the
// line amount is then the plan total, split across the installments from index 1.
// Failing lines are collected instead of aborting the batch.
func (s *Service) SaveImported(ctx context.Context, txs []ImportedTransaction, opts ImportOptions) (*ImportResult, error) {
	res := &ImportResult{}

	for i, tx := range txs {
		params := CreateParams{
			Description:      tx.Description,
			Amount:           tx.Amount,
			InstallmentIndex: tx.InstallmentIndex,
			InstallmentCount: tx.InstallmentCount,
			DueDate:          new(tx.Date),
			CategoryID:       tx.CategoryID,
		}

		if opts.CategoryID != nil {
			params.CategoryID = opts.CategoryID
		}

		if opts.GenerateFutureInstallments && tx.IsInstallment() {
			params.GenerateFutureInstallments = true
			params.InstallmentIndex = 1
		}

		params.Splits = resolveAllocation(params.Amount, opts.Allocation)

		ids, err := s.Create(ctx, params)
		if err != nil {
			metrics.ImportLines.WithLabelValues("failed").Inc()

			res.Failures = append(res.Failures, ImportFailure{Line: i + 1, Description: tx.Description, Err: err})

			continue
		}

		metrics.ImportLines.WithLabelValues("saved").Inc()

		res.Saved++
		res.BillIDs = append(res.BillIDs, ids...)
	}

	logImport(res)

	if res.Saved == 0 && len(txs) > 0 {
		return res, ErrNothingImported
	}

	return res, nil
}

func resolveAllocation(amount decimal.Decimal, alloc []SplitParams) []SplitParams {
	if len(alloc) == 0 {
		return nil
	}

	hundred := decimal.NewFromInt(100)
	splits := make([]SplitParams, len(alloc))

	for i, a := range alloc {
		splits[i] = a
		if a.Percentage != nil {
			splits[i].Amount = amount.Mul(*a.Percentage).Div(hundred).Round(2)
		}
	}

	return splits
}

func logImport(res *ImportResult) {
	if len(res.Failures) == 0 {
		slog.Info("import saved", "saved", res.Saved)
		return
	}

	for _, f := range res.Failures {
		slog.Warn("import line rejected", "line", f.Line, "description", f.Description, "error", f.Err)
	}

	slog.Warn("import saved with failures", "saved", res.Saved, "failed", len(res.Failures))
}
