package allocation_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rateio/internal/allocation"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}

	return out
}

func TestSplitEven(t *testing.T) {
	type args struct {
		total      string
		recipients int
	}

	type testCase struct {
		name    string
		args    args
		want    string
		wantErr error
	}

	tests := []testCase{
		{name: "ExactDivision", args: args{total: "90.00", recipients: 3}, want: "30"},
		{name: "RepeatingDecimal", args: args{total: "100.00", recipients: 3}, want: "33.33"},
		{name: "RoundsHalfUp", args: args{total: "0.05", recipients: 2}, want: "0.03"},
		{name: "SingleRecipient", args: args{total: "12.34", recipients: 1}, want: "12.34"},
		{name: "ZeroTotal", args: args{total: "0", recipients: 4}, want: "0"},
		{name: "NegativeTotal", args: args{total: "-1", recipients: 2}, wantErr: allocation.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.args.total)
			recipients := ids(tt.args.recipients)

			got, err := allocation.SplitEven(total, recipients)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, tt.args.recipients)

			want := decimal.RequireFromString(tt.want)
			for i, s := range got {
				assert.Equal(t, recipients[i], s.Recipient)
				assert.True(t, want.Equal(s.Amount), "share %d = %s, want %s", i, s.Amount, want)
			}

			diff := allocation.Sum(got).Sub(total).Abs()
			assert.True(t, diff.LessThanOrEqual(decimal.New(1, -2).Mul(decimal.NewFromInt(int64(len(got))))))
		})
	}
}

func TestSplitEven_NoRecipients(t *testing.T) {
	got, err := allocation.SplitEven(decimal.NewFromInt(10), nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSplitProportional(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	type args struct {
		total   string
		weights []allocation.Weight
	}

	type testCase struct {
		name    string
		args    args
		want    []string
		wantErr error
	}

	w := func(id uuid.UUID, amount string) allocation.Weight {
		return allocation.Weight{Recipient: id, Amount: decimal.RequireFromString(amount)}
	}

	tests := []testCase{
		{
			name: "SixtyForty",
			args: args{total: "100", weights: []allocation.Weight{w(a, "60"), w(b, "40")}},
			want: []string{"60", "40"},
		},
		{
			name: "ScalesWeightsToTotal",
			args: args{total: "50", weights: []allocation.Weight{w(a, "60"), w(b, "40")}},
			want: []string{"30", "20"},
		},
		{
			name: "ThreeWayRounding",
			args: args{total: "10", weights: []allocation.Weight{w(a, "1"), w(b, "1"), w(c, "1")}},
			want: []string{"3.33", "3.33", "3.33"},
		},
		{
			name: "ZeroWeightGetsNothing",
			args: args{total: "80", weights: []allocation.Weight{w(a, "80"), w(b, "0")}},
			want: []string{"80", "0"},
		},
		{
			name: "AllWeightsZero",
			args: args{total: "80", weights: []allocation.Weight{w(a, "0"), w(b, "0")}},
			want: []string{"0", "0"},
		},
		{
			name:    "NegativeWeight",
			args:    args{total: "80", weights: []allocation.Weight{w(a, "-1"), w(b, "2")}},
			wantErr: allocation.ErrInvalidInput,
		},
		{
			name:    "NegativeTotal",
			args:    args{total: "-80", weights: []allocation.Weight{w(a, "1")}},
			wantErr: allocation.ErrInvalidInput,
		},
		{
			name: "NoWeights",
			args: args{total: "80"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.args.total)

			got, err := allocation.SplitProportional(total, tt.args.weights)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i, s := range got {
				want := decimal.RequireFromString(tt.want[i])
				assert.Equal(t, tt.args.weights[i].Recipient, s.Recipient)
				assert.True(t, want.Equal(s.Amount), "share %d = %s, want %s", i, s.Amount, want)
			}

			if len(got) > 0 && !allocation.Sum(got).IsZero() {
				diff := allocation.Sum(got).Sub(total).Abs()
				assert.True(t, diff.LessThanOrEqual(decimal.New(1, -2).Mul(decimal.NewFromInt(int64(len(got))))))
			}
		})
	}
}

func TestSplitProportional_InstallmentShare(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	perInstallment := decimal.NewFromInt(100).Div(decimal.NewFromInt(3))

	got, err := allocation.SplitProportional(perInstallment, []allocation.Weight{
		{Recipient: a, Amount: decimal.NewFromInt(60)},
		{Recipient: b, Amount: decimal.NewFromInt(40)},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "20.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "13.33", got[1].Amount.StringFixed(2))
}
