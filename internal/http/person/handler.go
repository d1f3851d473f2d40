package person

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rateio/internal/http/respond"
	"github.com/MrJamesThe3rd/rateio/internal/person"
)

type Handler struct {
	svc *person.Service
}

func NewHandler(svc *person.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/suggested-color", h.suggestColor)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/deactivate", h.deactivate)
	r.Post("/{id}/reactivate", h.reactivate)
}

type personRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type personResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(p *person.Person) personResponse {
	return personResponse{
		ID:        p.ID,
		Name:      p.Name,
		Color:     p.Color,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

// list returns active people unless ?all=true.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	people, err := h.svc.List(r.Context(), r.URL.Query().Get("all") != "true")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]personResponse, len(people))
	for i, p := range people {
		resp[i] = toResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req personRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), id, req.Name, req.Color)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.Deactivate)
}

func (h *Handler) reactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.Reactivate)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) error) {
	id, ok := respond.UUID(w, "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := fn(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type colorResponse struct {
	Color string `json:"color"`
}

func (h *Handler) suggestColor(w http.ResponseWriter, r *http.Request) {
	color, err := h.svc.SuggestColor(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, colorResponse{Color: color})
}
