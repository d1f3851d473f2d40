package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/matching"
	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

func TestService_Learn(t *testing.T) {
	categoryID := uuid.New()

	type args struct {
		pattern     string
		description string
		categoryID  *uuid.UUID
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *matching.MockRepository)
		wantField string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "DescriptionAndCategory",
			args: args{pattern: " UBER *TRIP ", description: " Uber ", categoryID: &categoryID},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().
					SaveRule(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *matching.Rule) error {
						assert.Equal(t, "UBER *TRIP", r.Pattern)
						assert.Equal(t, "Uber", r.Description)
						assert.Equal(t, categoryID, *r.CategoryID)
						r.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name: "CategoryOnly",
			args: args{pattern: "NETFLIX", categoryID: &categoryID},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().SaveRule(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "MissingPattern",
			args:      args{pattern: "  ", description: "Uber"},
			wantField: "pattern",
		},
		{
			name:      "NothingToApply",
			args:      args{pattern: "UBER"},
			wantField: "description",
		},
		{
			name: "StoreError",
			args: args{pattern: "UBER", description: "Uber"},
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().SaveRule(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := matching.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			r, err := matching.NewService(m).Learn(context.Background(), tt.args.pattern, tt.args.description, tt.args.categoryID)

			switch {
			case tt.wantField != "":
				require.True(t, validation.Is(err))
				assert.Equal(t, tt.wantField, validation.Field(err))
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotNil(t, r)
			}
		})
	}
}

func TestService_Annotate(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := matching.NewMockRepository(ctrl)

	transport := uuid.New()
	streaming := uuid.New()
	own := uuid.New()

	m.EXPECT().FindRule(gomock.Any(), "UBER *TRIP HELP.UBER.COM").
		Return(&matching.Rule{Pattern: "uber", Description: "Uber", CategoryID: &transport}, nil)
	m.EXPECT().FindRule(gomock.Any(), "NETFLIX.COM").
		Return(&matching.Rule{Pattern: "netflix", CategoryID: &streaming}, nil)
	m.EXPECT().FindRule(gomock.Any(), "Padaria Real").Return(nil, nil)
	m.EXPECT().FindRule(gomock.Any(), "MERCADO LIVRE 2/5").
		Return(&matching.Rule{Pattern: "mercado", Description: "Mercado Livre", CategoryID: &streaming}, nil)

	txs := []bill.ImportedTransaction{
		{Description: "UBER *TRIP HELP.UBER.COM", RawDescription: "UBER *TRIP HELP.UBER.COM", Amount: decimal.NewFromInt(20)},
		{Description: "NETFLIX.COM", RawDescription: "NETFLIX.COM", Amount: decimal.NewFromInt(55)},
		{Description: "Padaria Real", Amount: decimal.NewFromInt(10)},
		{Description: "MERCADO LIVRE", RawDescription: "MERCADO LIVRE 2/5", CategoryID: &own, InstallmentIndex: 2, InstallmentCount: 5},
	}

	got, err := matching.NewService(m).Annotate(context.Background(), txs)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Uber", got[0].Description)
	assert.Equal(t, transport, *got[0].CategoryID)

	assert.Equal(t, "NETFLIX.COM", got[1].Description, "rule without description keeps the line's")
	assert.Equal(t, streaming, *got[1].CategoryID)

	assert.Equal(t, "Padaria Real", got[2].Description)
	assert.Nil(t, got[2].CategoryID)

	assert.Equal(t, "Mercado Livre", got[3].Description)
	assert.Equal(t, own, *got[3].CategoryID, "existing category wins")
	assert.Equal(t, 5, got[3].InstallmentCount)

	assert.Nil(t, txs[0].CategoryID, "input is not modified")
}

func TestService_AnnotateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := matching.NewMockRepository(ctrl)

	m.EXPECT().FindRule(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := matching.NewService(m).Annotate(context.Background(), []bill.ImportedTransaction{{Description: "X"}})
	assert.ErrorContains(t, err, "db down")
}
