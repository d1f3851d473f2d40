// Package matching remembers how statement descriptions should be renamed and categorised.
package matching

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("rule not found")

// Rule maps any description containing Pattern (case-insensitive) to a preferred
// description and category. Either target may be empty.
type Rule struct {
	ID          uuid.UUID
	Pattern     string
	Description string
	CategoryID  *uuid.UUID
	CreatedAt   time.Time
}
