package bill_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	billhttp "github.com/MrJamesThe3rd/rateio/internal/http/bill"
	"github.com/MrJamesThe3rd/rateio/internal/person"
)

func newRouter(t *testing.T) (http.Handler, *bill.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)

	h := billhttp.NewHandler(bill.NewService(repo, 48))

	r := chi.NewRouter()
	r.Route("/bills", h.Routes)
	r.Route("/plans", h.PlanRoutes)

	return r, repo
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	ana := uuid.New()
	id := uuid.New()

	h, repo := newRouter(t)

	repo.EXPECT().
		CreateBill(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *bill.Bill) error {
			assert.Equal(t, "Internet", b.Description)
			assert.Equal(t, "99.90", b.Amount.StringFixed(2))
			require.NotNil(t, b.DueDate)
			assert.Equal(t, "2024-03-10", b.DueDate.Format(time.DateOnly))
			b.ID = id

			return nil
		})
	repo.EXPECT().
		UpsertSplit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *bill.Split) error {
			assert.Equal(t, ana, s.PersonID)
			assert.Equal(t, id, s.BillID)

			return nil
		})

	body := `{"description":"Internet","amount":"99.90","due_date":"2024-03-10",
		"splits":[{"person_id":"` + ana.String() + `","amount":"99.90"}]}`

	rec := do(t, h, http.MethodPost, "/bills/", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		IDs []uuid.UUID `json:"ids"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []uuid.UUID{id}, resp.IDs)
}

func TestHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *bill.MockRepository)
		wantStatus int
		wantField  string
		wantIDs    int
	}{
		{
			name:       "malformed body",
			body:       `{"description":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad due date",
			body:       `{"description":"Rent","amount":"10","due_date":"10/03/2024"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "due_date",
		},
		{
			name:       "index above count",
			body:       `{"description":"Rent","amount":"10","installment_index":5,"installment_count":3}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "installment_index",
		},
		{
			name: "plan interrupted",
			body: `{"description":"TV","amount":"300","installment_count":3,"due_date":"2024-01-31","generate_future_installments":true}`,
			setupMock: func(m *bill.MockRepository) {
				gomock.InOrder(
					m.EXPECT().CreateBill(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *bill.Bill) error {
						b.ID = uuid.New()
						return nil
					}),
					m.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(errors.New("connection reset")),
				)
			},
			wantStatus: http.StatusInternalServerError,
			wantIDs:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newRouter(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := do(t, h, http.MethodPost, "/bills/", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp struct {
				Field   string      `json:"field"`
				Created []uuid.UUID `json:"created"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantField, resp.Field)
			assert.Len(t, resp.Created, tt.wantIDs)
		})
	}
}

func TestHandler_CreateUnknownPerson(t *testing.T) {
	ghost := uuid.New()

	ctrl := gomock.NewController(t)
	repo := bill.NewMockRepository(ctrl)
	people := bill.NewMockPersonLookup(ctrl)
	people.EXPECT().Get(gomock.Any(), ghost).Return(nil, person.ErrNotFound)

	r := chi.NewRouter()
	r.Route("/bills", billhttp.NewHandler(bill.NewService(repo, 48).WithPeople(people)).Routes)

	rec := do(t, r, http.MethodPost, "/bills/",
		`{"description":"Rent","amount":"100","splits":[{"person_id":"`+ghost.String()+`","amount":"100"}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()
	ana := uuid.New()

	h, repo := newRouter(t)

	repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{
		ID:               id,
		Description:      "Power",
		Amount:           decimal.RequireFromString("120.5"),
		InstallmentIndex: 1,
		InstallmentCount: 1,
		DueDate:          new(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		Status:           bill.StatusPending,
		Splits:           []bill.Split{{PersonID: ana, Amount: decimal.RequireFromString("120.5")}},
	}, nil)

	rec := do(t, h, http.MethodGet, "/bills/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Power", resp["description"])
	assert.Equal(t, "120.5", resp["amount"])
	assert.Equal(t, "2024-03-05", resp["due_date"])
	assert.Len(t, resp["splits"], 1)
}

func TestHandler_GetErrors(t *testing.T) {
	h, repo := newRouter(t)

	rec := do(t, h, http.MethodGet, "/bills/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repo.EXPECT().GetBill(gomock.Any(), gomock.Any()).Return(nil, bill.ErrNotFound)

	rec = do(t, h, http.MethodGet, "/bills/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_List(t *testing.T) {
	h, repo := newRouter(t)
	personID := uuid.New()

	repo.EXPECT().
		ListBills(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f bill.ListFilter) ([]*bill.Bill, error) {
			require.NotNil(t, f.StartDate)
			require.NotNil(t, f.EndDate)
			assert.Equal(t, "2024-02-01", f.StartDate.Format(time.DateOnly))
			assert.Equal(t, "2024-03-01", f.EndDate.Format(time.DateOnly))
			assert.Equal(t, bill.StatusPaid, *f.Status)
			assert.Equal(t, personID, *f.PersonID)
			assert.Nil(t, f.PlanID)

			return []*bill.Bill{}, nil
		})

	rec := do(t, h, http.MethodGet, "/bills/?month=2&year=2024&status=paid&person_id="+personID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/bills/?status=late", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/bills/?month=13&year=2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.New()
	planID := uuid.New()

	tests := []struct {
		name      string
		target    string
		setupMock func(m *bill.MockRepository)
		want      int
	}{
		{
			name:   "single",
			target: "/bills/" + id.String(),
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, PlanID: &planID}, nil)
				m.EXPECT().DeleteBill(gomock.Any(), id).Return(nil)
			},
			want: 1,
		},
		{
			name:   "whole plan",
			target: "/bills/" + id.String() + "?whole_plan=true",
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, PlanID: &planID}, nil)
				m.EXPECT().DeletePlan(gomock.Any(), planID).Return(4, nil)
			},
			want: 4,
		},
		{
			name:   "plan endpoint",
			target: "/plans/" + planID.String(),
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().DeletePlan(gomock.Any(), planID).Return(4, nil)
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newRouter(t)
			tt.setupMock(repo)

			rec := do(t, h, http.MethodDelete, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				Deleted int `json:"deleted"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.want, resp.Deleted)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	id := uuid.New()
	h, repo := newRouter(t)

	current := &bill.Bill{
		ID: id, Description: "Water", Amount: decimal.NewFromInt(80),
		InstallmentIndex: 1, InstallmentCount: 1, Status: bill.StatusPending,
	}

	gomock.InOrder(
		repo.EXPECT().GetBill(gomock.Any(), id).Return(current, nil),
		repo.EXPECT().
			UpdateBill(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, p bill.Patch) error {
				require.NotNil(t, p.Amount)
				assert.Equal(t, "85.00", p.Amount.StringFixed(2))
				assert.Nil(t, p.Description)

				return nil
			}),
		repo.EXPECT().DeleteSplits(gomock.Any(), id).Return(nil),
		repo.EXPECT().GetBill(gomock.Any(), id).Return(current, nil),
	)

	rec := do(t, h, http.MethodPatch, "/bills/"+id.String(), `{"amount":"85","splits":[]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UpdateStatusRejected(t *testing.T) {
	id := uuid.New()

	// No repository call is expected: the status field is refused before the bill is read.
	h, _ := newRouter(t)

	for _, body := range []string{`{"status":"pending"}`, `{"status":"cancelled","note":"x"}`} {
		rec := do(t, h, http.MethodPatch, "/bills/"+id.String(), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Field string `json:"field"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "status", resp.Field)
	}
}

func TestHandler_MarkPaid(t *testing.T) {
	id := uuid.New()
	ana := uuid.New()

	h, repo := newRouter(t)

	repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id, Status: bill.StatusPending}, nil)
	repo.EXPECT().MarkPaid(gomock.Any(), id).Return(nil)

	rec := do(t, h, http.MethodPost, "/bills/"+id.String()+"/paid", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	repo.EXPECT().GetBill(gomock.Any(), id).Return(&bill.Bill{ID: id}, nil)

	rec = do(t, h, http.MethodPost, "/bills/"+id.String()+"/splits/"+ana.String()+"/paid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
