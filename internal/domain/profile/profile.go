package profile

import (
	"errors"
	"strings"
	"time"

	"github.com/factdojo/backend/internal/id"
)

var ErrEmptyName = errors.New("profile name cannot be empty")

// Profile owns one mastery map. Deleting it or resetting its mastery is the
// only way scores are ever removed.
type Profile struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// New creates a Profile with a generated ID.
func New(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Profile{
		ID:        id.GenerateID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
