package category_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rateio/internal/category"
	categoryhttp "github.com/MrJamesThe3rd/rateio/internal/http/category"
)

func TestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Route("/categories", categoryhttp.NewHandler(category.NewService(repo)).Routes)

	repo.EXPECT().GetCategoryByName(gomock.Any(), "Pets").Return(nil, category.ErrNotFound)
	repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *category.Category) error {
		c.ID = uuid.New()
		return nil
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories/", strings.NewReader(`{"name":"Pets"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"icon":"📦"`)

	repo.EXPECT().ListCategories(gomock.Any()).Return([]*category.Category{{Name: "Luz", Icon: "💡"}}, nil)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Luz"`)

	repo.EXPECT().GetCategory(gomock.Any(), gomock.Any()).Return(nil, category.ErrNotFound)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
