package bill_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/person"
	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Create(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	type args struct {
		params bill.CreateParams
	}

	type testCase struct {
		name       string
		args       args
		wantBills  int
		wantSplits int
		wantField  string
		wantErr    bool
	}

	tests := []testCase{
		{
			name: "SingleBill",
			args: args{params: bill.CreateParams{
				Description: "Rent",
				Amount:      dec("1500"),
				DueDate:     &due,
				Splits: []bill.SplitParams{
					{PersonID: alice, Amount: dec("750")},
					{PersonID: bob, Amount: dec("750")},
				},
			}},
			wantBills:  1,
			wantSplits: 2,
		},
		{
			name: "ZeroSplitSkipped",
			args: args{params: bill.CreateParams{
				Description: "Water",
				Amount:      dec("80"),
				Splits: []bill.SplitParams{
					{PersonID: alice, Amount: dec("80")},
					{PersonID: bob, Amount: decimal.Zero},
				},
			}},
			wantBills:  1,
			wantSplits: 1,
		},
		{
			name: "InstallmentWithoutGeneration",
			args: args{params: bill.CreateParams{
				Description:      "TV",
				Amount:           dec("250"),
				InstallmentIndex: 2,
				InstallmentCount: 10,
			}},
			wantBills: 1,
		},
		{
			name: "GeneratesPlan",
			args: args{params: bill.CreateParams{
				Description:                "TV",
				Amount:                     dec("1200"),
				InstallmentCount:           3,
				DueDate:                    &due,
				GenerateFutureInstallments: true,
				Splits:                     []bill.SplitParams{{PersonID: alice, Amount: dec("1200")}},
			}},
			wantBills:  3,
			wantSplits: 3,
		},
		{
			name: "IndexAboveCount",
			args: args{params: bill.CreateParams{
				Description: "TV", Amount: dec("10"), InstallmentIndex: 5, InstallmentCount: 3,
			}},
			wantField: "installment_index",
			wantErr:   true,
		},
		{
			name:      "BlankDescription",
			args:      args{params: bill.CreateParams{Description: "   ", Amount: dec("10")}},
			wantField: "description",
			wantErr:   true,
		},
		{
			name:      "DescriptionTooLong",
			args:      args{params: bill.CreateParams{Description: strings.Repeat("a", 201), Amount: dec("10")}},
			wantField: "description",
			wantErr:   true,
		},
		{
			name:      "NonPositiveAmount",
			args:      args{params: bill.CreateParams{Description: "x", Amount: dec("0")}},
			wantField: "amount",
			wantErr:   true,
		},
		{
			name:      "AmountRoundsToZero",
			args:      args{params: bill.CreateParams{Description: "x", Amount: dec("0.004")}},
			wantField: "amount",
			wantErr:   true,
		},
		{
			name: "PlanInstallmentRoundsToZero",
			args: args{params: bill.CreateParams{
				Description: "x", Amount: dec("0.02"), InstallmentCount: 5, GenerateFutureInstallments: true,
			}},
			wantField: "amount",
			wantErr:   true,
		},
		{
			name:      "TooManyInstallments",
			args:      args{params: bill.CreateParams{Description: "x", Amount: dec("10"), InstallmentCount: 49}},
			wantField: "installment_count",
			wantErr:   true,
		},
		{
			name:      "NoteTooLong",
			args:      args{params: bill.CreateParams{Description: "x", Amount: dec("10"), Note: strings.Repeat("n", 501)}},
			wantField: "note",
			wantErr:   true,
		},
		{
			name: "DuplicatePerson",
			args: args{params: bill.CreateParams{
				Description: "x",
				Amount:      dec("10"),
				Splits: []bill.SplitParams{
					{PersonID: alice, Amount: dec("5")},
					{PersonID: alice, Amount: dec("5")},
				},
			}},
			wantField: "splits",
			wantErr:   true,
		},
		{
			name: "NegativeSplit",
			args: args{params: bill.CreateParams{
				Description: "x",
				Amount:      dec("10"),
				Splits:      []bill.SplitParams{{PersonID: alice, Amount: dec("-5")}},
			}},
			wantField: "splits",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bill.NewMockRepository(ctrl)

			rec := &recordingRepo{}
			if !tt.wantErr {
				rec.expect(repo)
			}

			svc := bill.NewService(repo, 48)
			ids, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantField, validation.Field(err))
				assert.Nil(t, ids)

				return
			}

			require.NoError(t, err)
			assert.Len(t, ids, tt.wantBills)
			assert.Len(t, rec.bills, tt.wantBills)
			assert.Len(t, rec.splits, tt.wantSplits)
		})
	}
}

func TestService_Create_SingleBillFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)

	rec := &recordingRepo{}
	rec.expect(repo)

	ids, err := bill.NewService(repo, 48).Create(context.Background(), bill.CreateParams{
		Description:      " Phone ",
		Amount:           dec("99.999"),
		InstallmentIndex: 4,
		InstallmentCount: 12,
	})
	require.NoError(t, err)
	require.Len(t, rec.bills, 1)

	b := rec.bills[0]
	assert.Equal(t, ids[0], b.ID)
	assert.Equal(t, "Phone", b.Description)
	assert.Equal(t, "100.00", b.Amount.StringFixed(2))
	assert.Equal(t, 4, b.InstallmentIndex)
	assert.Equal(t, 12, b.InstallmentCount)
	assert.Nil(t, b.PlanID)
	assert.Nil(t, b.DueDate)
}

func TestService_Create_PlanDefaultsToToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)

	rec := &recordingRepo{}
	rec.expect(repo)

	_, err := bill.NewService(repo, 48).Create(context.Background(), bill.CreateParams{
		Description:                "Course",
		Amount:                     dec("200"),
		InstallmentCount:           2,
		GenerateFutureInstallments: true,
	})
	require.NoError(t, err)
	require.Len(t, rec.bills, 2)
	require.NotNil(t, rec.bills[0].DueDate)
	assert.Equal(t, time.Now().Format(time.DateOnly), rec.bills[0].DueDate.Format(time.DateOnly))
}

func TestService_Create_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)

	repo.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	ids, err := bill.NewService(repo, 48).Create(context.Background(), bill.CreateParams{
		Description: "Rent",
		Amount:      dec("10"),
	})

	assert.Error(t, err)
	assert.False(t, validation.Is(err))
	assert.Nil(t, ids)
}

func TestService_UnknownPerson(t *testing.T) {
	alice, ghost := uuid.New(), uuid.New()
	billID := uuid.New()
	dbErr := errors.New("connection reset")

	splits := []bill.SplitParams{
		{PersonID: alice, Amount: dec("60")},
		{PersonID: ghost, Amount: dec("40")},
	}

	type testCase struct {
		name      string
		call      func(svc *bill.Service) error
		setupMock func(repo *bill.MockRepository, people *bill.MockPersonLookup)
		wantErr   error
	}

	lookup := func(people *bill.MockPersonLookup, err error) {
		people.EXPECT().Get(gomock.Any(), alice).Return(&person.Person{ID: alice, Name: "Alice"}, nil)
		people.EXPECT().Get(gomock.Any(), ghost).Return(nil, err)
	}

	tests := []testCase{
		{
			name: "CreateSingle",
			call: func(svc *bill.Service) error {
				_, err := svc.Create(context.Background(), bill.CreateParams{Description: "Rent", Amount: dec("100"), Splits: splits})
				return err
			},
			setupMock: func(_ *bill.MockRepository, people *bill.MockPersonLookup) {
				lookup(people, person.ErrNotFound)
			},
			wantErr: person.ErrNotFound,
		},
		{
			name: "CreatePlan",
			call: func(svc *bill.Service) error {
				_, err := svc.Create(context.Background(), bill.CreateParams{
					Description: "TV", Amount: dec("300"), InstallmentCount: 3, GenerateFutureInstallments: true, Splits: splits,
				})
				return err
			},
			setupMock: func(_ *bill.MockRepository, people *bill.MockPersonLookup) {
				lookup(people, person.ErrNotFound)
			},
			wantErr: person.ErrNotFound,
		},
		{
			name: "UpdateSplits",
			call: func(svc *bill.Service) error {
				_, err := svc.Update(context.Background(), billID, bill.UpdateParams{Splits: splits})
				return err
			},
			setupMock: func(repo *bill.MockRepository, people *bill.MockPersonLookup) {
				repo.EXPECT().GetBill(gomock.Any(), billID).Return(&bill.Bill{
					ID: billID, Description: "Rent", Amount: dec("100"), InstallmentIndex: 1, InstallmentCount: 1,
				}, nil)
				lookup(people, person.ErrNotFound)
			},
			wantErr: person.ErrNotFound,
		},
		{
			name: "LookupFails",
			call: func(svc *bill.Service) error {
				_, err := svc.Create(context.Background(), bill.CreateParams{Description: "Rent", Amount: dec("100"), Splits: splits})
				return err
			},
			setupMock: func(_ *bill.MockRepository, people *bill.MockPersonLookup) {
				lookup(people, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bill.NewMockRepository(ctrl)
			people := bill.NewMockPersonLookup(ctrl)
			tt.setupMock(repo, people)

			// CreateBill, UpdateBill, DeleteSplits and UpsertSplit are not expected.
			err := tt.call(bill.NewService(repo, 48).WithPeople(people))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Create_KnownPeople(t *testing.T) {
	alice := uuid.New()

	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)
	people := bill.NewMockPersonLookup(ctrl)

	rec := &recordingRepo{}
	rec.expect(repo)
	people.EXPECT().Get(gomock.Any(), alice).Return(&person.Person{ID: alice}, nil)

	ids, err := bill.NewService(repo, 48).WithPeople(people).Create(context.Background(), bill.CreateParams{
		Description: "Rent", Amount: dec("100"), Splits: []bill.SplitParams{{PersonID: alice, Amount: dec("100")}},
	})
	require.NoError(t, err)
	assert.Len(t, ids, 1)
	assert.Len(t, rec.splits, 1)
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	alice := uuid.New()

	stored := func() *bill.Bill {
		return &bill.Bill{
			ID:               id,
			Description:      "Internet",
			Amount:           dec("120"),
			InstallmentIndex: 1,
			InstallmentCount: 3,
			Status:           bill.StatusPending,
		}
	}

	type args struct {
		params bill.UpdateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock  func(m *bill.MockRepository)
		wantField  string
		wantErr    error
		wantStatus bill.Status
	}

	tests := []testCase{
		{
			name: "PatchOnly",
			args: args{params: bill.UpdateParams{Patch: bill.Patch{Description: new(" Fiber ")}}},
			setupMock: func(m *bill.MockRepository) {
				gomock.InOrder(
					m.EXPECT().GetBill(gomock.Any(), id).Return(stored(), nil),
					m.EXPECT().
						UpdateBill(gomock.Any(), id, gomock.Any()).
						DoAndReturn(func(_ context.Context, _ uuid.UUID, p bill.Patch) error {
							require.NotNil(t, p.Description)
							assert.Equal(t, "Fiber", *p.Description)
							assert.Nil(t, p.Amount)

							return nil
						}),
					m.EXPECT().GetBill(gomock.Any(), id).Return(stored(), nil),
				)
			},
		},
		{
			name: "ReplaceSplits",
			args: args{params: bill.UpdateParams{Splits: []bill.SplitParams{
				{PersonID: alice, Amount: dec("120")},
			}}},
			setupMock: func(m *bill.MockRepository) {
				gomock.InOrder(
					m.EXPECT().GetBill(gomock.Any(), id).Return(stored(), nil),
					m.EXPECT().DeleteSplits(gomock.Any(), id).Return(nil),
					m.EXPECT().
						UpsertSplit(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, s *bill.Split) error {
							assert.Equal(t, id, s.BillID)
							assert.Equal(t, alice, s.PersonID)

							return nil
						}),
					m.EXPECT().GetBill(gomock.Any(), id).Return(stored(), nil),
				)
			},
		},
		{
			name: "ClearSplits",
			args: args{params: bill.UpdateParams{Splits: []bill.SplitParams{}}},
			setupMock: func(m *bill.MockRepository) {
				gomock.InOrder(
					m.EXPECT().GetBill(gomock.Any(), id).Return(stored(), nil),
					m.EXPECT().DeleteSplits(gomock.Any(), id).Return(nil),
					m.EXPECT().GetBill(gomock.Any(), id).Return(stored(), nil),
				)
			},
		},
		{
			name: "MergedIndexInvalid",
			args: args{params: bill.UpdateParams{Patch: bill.Patch{InstallmentIndex: new(4)}}},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), id).Return(stored(), nil)
			},
			wantField: "installment_index",
		},
		{
			name: "PaidBillStaysPaid",
			args: args{params: bill.UpdateParams{Patch: bill.Patch{Amount: new(dec("130"))}}},
			setupMock: func(m *bill.MockRepository) {
				paid := stored()
				paid.Status = bill.StatusPaid

				gomock.InOrder(
					m.EXPECT().GetBill(gomock.Any(), id).Return(paid, nil),
					m.EXPECT().
						UpdateBill(gomock.Any(), id, gomock.Any()).
						DoAndReturn(func(_ context.Context, _ uuid.UUID, p bill.Patch) error {
							require.NotNil(t, p.Amount)
							assert.Equal(t, "130.00", p.Amount.StringFixed(2))

							return nil
						}),
					m.EXPECT().GetBill(gomock.Any(), id).Return(paid, nil),
				)
				m.EXPECT().MarkPaid(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatus: bill.StatusPaid,
		},
		{
			name: "NotFound",
			args: args{params: bill.UpdateParams{Patch: bill.Patch{Note: new("x")}}},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), id).Return(nil, bill.ErrNotFound)
			},
			wantErr: bill.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bill.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := bill.NewService(repo, 48).Update(context.Background(), id, tt.args.params)

			switch {
			case tt.wantField != "":
				require.Error(t, err)
				assert.Equal(t, tt.wantField, validation.Field(err))
				assert.Nil(t, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, id, got.ID)

				if tt.wantStatus != "" {
					assert.Equal(t, tt.wantStatus, got.Status)
				}
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()
	planID := uuid.New()

	type args struct {
		wholePlan bool
		planID    *uuid.UUID
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *bill.MockRepository)
		want      int
	}

	tests := []testCase{
		{
			name: "WholePlan",
			args: args{wholePlan: true, planID: &planID},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().DeletePlan(gomock.Any(), planID).Return(3, nil)
			},
			want: 3,
		},
		{
			name: "SingleInstallment",
			args: args{wholePlan: false, planID: &planID},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().DeleteBill(gomock.Any(), id).Return(nil)
			},
			want: 1,
		},
		{
			name: "WholePlanWithoutPlan",
			args: args{wholePlan: true},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().DeleteBill(gomock.Any(), id).Return(nil)
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bill.NewMockRepository(ctrl)

			repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, PlanID: tt.args.planID}, nil)
			tt.setupMock(repo)

			got, err := bill.NewService(repo, 48).Delete(context.Background(), id, tt.args.wholePlan)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)

	repo.EXPECT().GetBill(gomock.Any(), gomock.Any()).Return(nil, bill.ErrNotFound)

	n, err := bill.NewService(repo, 48).Delete(context.Background(), uuid.New(), true)

	assert.ErrorIs(t, err, bill.ErrNotFound)
	assert.Zero(t, n)
}

func TestService_DeletePlan(t *testing.T) {
	planID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)

	repo.EXPECT().DeletePlan(gomock.Any(), planID).Return(0, nil)

	_, err := bill.NewService(repo, 48).DeletePlan(context.Background(), planID)
	assert.ErrorIs(t, err, bill.ErrNotFound)
}

func TestService_MarkPaid(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		status    bill.Status
		setupMock func(m *bill.MockRepository)
	}

	tests := []testCase{
		{
			name:   "Pending",
			status: bill.StatusPending,
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().MarkPaid(gomock.Any(), id).Return(nil)
			},
		},
		{
			name:      "AlreadyPaid",
			status:    bill.StatusPaid,
			setupMock: func(m *bill.MockRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bill.NewMockRepository(ctrl)

			repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, Status: tt.status}, nil)
			tt.setupMock(repo)

			assert.NoError(t, bill.NewService(repo, 48).MarkPaid(context.Background(), id))
		})
	}
}

func TestService_MarkSplitPaid(t *testing.T) {
	id := uuid.New()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	stored := &bill.Bill{
		ID: id,
		Splits: []bill.Split{
			{BillID: id, PersonID: alice, Amount: dec("10")},
			{BillID: id, PersonID: bob, Amount: dec("10"), Paid: true},
		},
	}

	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().GetBill(gomock.Any(), id).Return(stored, nil).Times(3)
	repo.EXPECT().
		MarkSplitPaid(gomock.Any(), id, alice, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, paidAt time.Time) error {
			assert.Equal(t, time.Now().Format(time.DateOnly), paidAt.Format(time.DateOnly))
			return nil
		})

	svc := bill.NewService(repo, 48)

	assert.NoError(t, svc.MarkSplitPaid(context.Background(), id, alice))
	assert.NoError(t, svc.MarkSplitPaid(context.Background(), id, bob))
	assert.ErrorIs(t, svc.MarkSplitPaid(context.Background(), id, carol), bill.ErrSplitNotFound)
}
