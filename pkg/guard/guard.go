// Package guard implements the pre-delete referential check shared by
// mentors, service techs and service offerings: an entity still referenced
// by join rows must not be removed, and the refusal names the parents.
package guard

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Conflict is returned when dependent rows still reference the target.
// The message is user-facing, the admin frontend shows it verbatim.
type Conflict struct {
	Entity    string   // what the caller tried to delete, e.g. "mentor"
	Dependent string   // what blocks it, e.g. "training"
	Labels    []string // human-readable labels of the referencing parents
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("Cannot delete %s. Currently referenced by %d %s(s): %s",
		c.Entity, len(c.Labels), c.Dependent, strings.Join(c.Labels, ", "))
}

// CheckDeletable inspects the dependent rows found for a deletion target.
// No rows means the deletion may proceed. Otherwise it returns a *Conflict
// enumerating the labels extracted from each referencing row.
func CheckDeletable[T any](entity, dependent string, rows []T, label func(T) string) error {
	if len(rows) == 0 {
		return nil
	}
	return &Conflict{
		Entity:    entity,
		Dependent: dependent,
		Labels:    lo.Map(rows, func(row T, _ int) string { return label(row) }),
	}
}
