package person

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("person not found")
	ErrDuplicateName = errors.New("a person with this name already exists")
)

// Person is someone who shares bills. People are deactivated, never deleted, so their
// history stays in the reports.
type Person struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Active    bool
	CreatedAt time.Time
}

// Palette is cycled through when a person is created without a colour.
var Palette = []string{
	"#3498db",
	"#e74c3c",
	"#27ae60",
	"#9b59b6",
	"#f39c12",
	"#1abc9c",
	"#e91e63",
	"#00bcd4",
	"#ff5722",
	"#795548",
}
