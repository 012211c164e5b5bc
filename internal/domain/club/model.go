package club

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Club is a football club that can appear in match results.
type Club struct {
	ID      string
	Name    string
	LogoURL string
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return crerr.New("club id is required")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return crerr.New("club name is required")
	}
	if len(name) > 50 {
		return crerr.New("club name must be at most 50 characters")
	}

	return nil
}

// ErrNameTaken is returned by repositories when another club already uses the name.
var ErrNameTaken = crerr.New("club name already registered")

// ErrNotFound is returned by Update when no club has the id.
var ErrNotFound = crerr.New("club not found")
