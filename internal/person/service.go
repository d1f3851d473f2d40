package person

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

const maxNameLen = 100

var colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=person
type Repository interface {
	CreatePerson(ctx context.Context, p *Person) error
	GetPerson(ctx context.Context, id uuid.UUID) (*Person, error)
	GetPersonByName(ctx context.Context, name string) (*Person, error)
	ListPeople(ctx context.Context, activeOnly bool) ([]*Person, error)
	CountPeople(ctx context.Context) (int, error)
	UpdatePerson(ctx context.Context, p *Person) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an active person. An empty color picks the next one from the palette.
func (s *Service) Create(ctx context.Context, name, color string) (*Person, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	if color == "" {
		suggested, err := s.SuggestColor(ctx)
		if err != nil {
			return nil, err
		}

		color = suggested
	}

	if !colorPattern.MatchString(color) {
		return nil, validation.New("color", "must be a hex colour like #3498db")
	}

	p := &Person{Name: name, Color: color, Active: true}
	if err := s.repo.CreatePerson(ctx, p); err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, name, color string) (*Person, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPerson(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, name, id); err != nil {
		return nil, err
	}

	if color != "" {
		if !colorPattern.MatchString(color) {
			return nil, validation.New("color", "must be a hex colour like #3498db")
		}

		p.Color = color
	}

	p.Name = name

	if err := s.repo.UpdatePerson(ctx, p); err != nil {
		return nil, fmt.Errorf("updating person: %w", err)
	}

	return p, nil
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, true)
}

func (s *Service) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.repo.GetPerson(ctx, id); err != nil {
		return err
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("setting person active=%t: %w", active, err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Person, error) {
	return s.repo.GetPerson(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Person, error) {
	return s.repo.GetPersonByName(ctx, strings.TrimSpace(name))
}

// List returns people ordered by name.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Person, error) {
	return s.repo.ListPeople(ctx, activeOnly)
}

// SuggestColor picks the palette entry after the one used by the last person created,
// counting inactive people too.
func (s *Service) SuggestColor(ctx context.Context) (string, error) {
	n, err := s.repo.CountPeople(ctx)
	if err != nil {
		return "", fmt.Errorf("counting people: %w", err)
	}

	return Palette[n%len(Palette)], nil
}

func (s *Service) ensureUnique(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.GetPersonByName(ctx, name)

	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("looking up person by name: %w", err)
	case existing.ID == self:
		return nil
	}

	return ErrDuplicateName
}

func validateName(name string) error {
	if name == "" {
		return validation.New("name", "is required")
	}

	if len([]rune(name)) > maxNameLen {
		return validation.New("name", "must be at most %d characters", maxNameLen)
	}

	return nil
}
