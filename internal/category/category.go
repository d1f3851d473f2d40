package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateName = errors.New("a category with this name already exists")
)

// DefaultIcon is used when a category is created without one.
const DefaultIcon = "📦"

type Category struct {
	ID        uuid.UUID
	Name      string
	Icon      string
	CreatedAt time.Time
}
