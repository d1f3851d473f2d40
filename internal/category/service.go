package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/rateio/internal/validation"
)

const maxNameLen = 100

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name, icon string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation.New("name", "is required")
	}

	if len([]rune(name)) > maxNameLen {
		return nil, validation.New("name", "must be at most %d characters", maxNameLen)
	}

	_, err := s.repo.GetCategoryByName(ctx, name)
	if err == nil {
		return nil, ErrDuplicateName
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("looking up category by name: %w", err)
	}

	if strings.TrimSpace(icon) == "" {
		icon = DefaultIcon
	}

	c := &Category{Name: name, Icon: icon}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Category, error) {
	return s.repo.GetCategoryByName(ctx, strings.TrimSpace(name))
}

// List returns every category ordered by name.
func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}
