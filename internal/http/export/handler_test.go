package export_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/category"
	"github.com/MrJamesThe3rd/rateio/internal/export"
	exporthttp "github.com/MrJamesThe3rd/rateio/internal/http/export"
	"github.com/MrJamesThe3rd/rateio/internal/person"
	"github.com/MrJamesThe3rd/rateio/internal/report"
)

type mocks struct {
	bills      *report.MockBillReader
	people     *report.MockPersonReader
	categories *report.MockCategoryReader
}

func newRouter(t *testing.T) (http.Handler, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		bills:      report.NewMockBillReader(ctrl),
		people:     report.NewMockPersonReader(ctrl),
		categories: report.NewMockCategoryReader(ctrl),
	}

	reports := report.NewService(m.bills, m.people, m.categories)
	svc := export.NewService(m.bills, m.people, m.categories, reports)

	r := chi.NewRouter()
	r.Route("/export", exporthttp.NewHandler(svc).Routes)

	return r, m
}

func TestHandler_BillsCSV(t *testing.T) {
	h, m := newRouter(t)
	ana := &person.Person{ID: uuid.New(), Name: "Ana", Active: true}

	m.bills.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*bill.Bill{{
		ID: uuid.New(), Description: "Luz", Amount: decimal.RequireFromString("80"),
		Status: bill.StatusPending, DueDate: new(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
		InstallmentIndex: 1, InstallmentCount: 1,
		Splits: []bill.Split{{PersonID: ana.ID, Amount: decimal.RequireFromString("80")}},
	}}, nil)
	m.people.EXPECT().List(gomock.Any(), true).Return([]*person.Person{ana}, nil)
	m.categories.EXPECT().List(gomock.Any()).Return([]*category.Category{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/bills.csv?month=3&year=2024", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="bills_2024-03.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "description,installment,amount,due_date,status,category,Ana\nLuz,1/1,80.00,2024-03-10,pending,,80.00\n", rec.Body.String())
}

func TestHandler_BillsCSV_Errors(t *testing.T) {
	h, m := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/bills.csv?month=13", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	m.bills.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/bills.csv", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestHandler_Statement(t *testing.T) {
	h, m := newRouter(t)
	ana := &person.Person{ID: uuid.New(), Name: "Ana", Active: true}

	m.people.EXPECT().Get(gomock.Any(), ana.ID).Return(ana, nil)
	m.bills.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/statements/"+ana.ID.String()+"?month=3&year=2024", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Ana, 03/2024\n\n\nBills: 0\nTotal: 0.00\nPaid: 0.00\nPending: 0.00\n", rec.Body.String())

	m.people.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, person.ErrNotFound)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/statements/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/statements/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
