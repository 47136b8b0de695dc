package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

// Tag labels entries. Predefined tags are seeded on first run; custom tags are
// created by users on demand.
type Tag struct {
	ID           uint
	Name         string
	IsPredefined bool
}

// TagNameKey is the lookup key of a tag name: surrounding whitespace removed and
// case folded, so "  Work" and "WORK" share one key. A Caser is stateful,
// hence one per call.
func TagNameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
