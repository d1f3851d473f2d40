// Package allocation divides an amount of money between recipients.
//
// Every share is rounded to cents on its own, half away from zero. The shares are not
// adjusted to add back up to the total, so a split of 100.00 in three gives 33.33 each.
package allocation

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for negative totals or weights.
var ErrInvalidInput = errors.New("invalid allocation input")

// Weight is one recipient's relative claim on a total.
type Weight struct {
	Recipient uuid.UUID
	Amount    decimal.Decimal
}

// Share is the part of a total assigned to a recipient.
type Share struct {
	Recipient uuid.UUID
	Amount    decimal.Decimal
}

// SplitEven gives every recipient round(total/n, 2).
func SplitEven(total decimal.Decimal, recipients []uuid.UUID) ([]Share, error) {
	if total.IsNegative() {
		return nil, ErrInvalidInput
	}

	if len(recipients) == 0 {
		return []Share{}, nil
	}

	each := total.Div(decimal.NewFromInt(int64(len(recipients)))).Round(2)

	shares := make([]Share, len(recipients))
	for i, r := range recipients {
		shares[i] = Share{Recipient: r, Amount: each}
	}

	return shares, nil
}

// SplitProportional gives every recipient round(total * w / sum(w), 2).
// When all weights are zero each recipient gets a zero share.
func SplitProportional(total decimal.Decimal, weights []Weight) ([]Share, error) {
	if total.IsNegative() {
		return nil, ErrInvalidInput
	}

	sum := decimal.Zero

	for _, w := range weights {
		if w.Amount.IsNegative() {
			return nil, ErrInvalidInput
		}

		sum = sum.Add(w.Amount)
	}

	shares := make([]Share, len(weights))

	for i, w := range weights {
		shares[i] = Share{Recipient: w.Recipient, Amount: decimal.Zero}

		if sum.IsZero() {
			continue
		}

		shares[i].Amount = total.Mul(w.Amount).Div(sum).Round(2)
	}

	return shares, nil
}

// Sum adds the share amounts.
func Sum(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}

	return total
}
