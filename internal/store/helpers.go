package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/schompf/internal/model"
)

var (
	newID = uuid.NewString
	now   = func() time.Time { return time.Now().UTC() }
)

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", model.ErrNotFound, kind, id)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{model.ErrValidation}, args...)...)
}

// requiredName trims name and rejects it when empty.
func requiredName(name *string, field string) (string, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return "", invalid("%s is required", field)
	}
	return strings.TrimSpace(*name), nil
}

// emptyToNil maps an empty string to nil.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func indexOf[T any](items []T, match func(*T) bool) int {
	for i := range items {
		if match(&items[i]) {
			return i
		}
	}
	return -1
}
