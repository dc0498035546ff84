package core

import "fmt"

// SortOrder controls how lists of ideas are ordered.
type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortOldest       SortOrder = "oldest"
	SortAlphabetical SortOrder = "alphabetical"
	SortCategory     SortOrder = "category"
)

// ViewMode controls how lists of ideas are laid out.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// Valid reports whether s is a known sort order.
func (s SortOrder) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortAlphabetical, SortCategory:
		return true
	}
	return false
}

// Valid reports whether v is a known view mode.
func (v ViewMode) Valid() bool {
	return v == ViewList || v == ViewGrid
}

// ParseSortOrder converts s into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	o := SortOrder(s)
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
	return o, nil
}

// ParseViewMode converts s into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	v := ViewMode(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
	return v, nil
}

// Preferences is the singleton user preferences record.
type Preferences struct {
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding" yaml:"hasCompletedOnboarding"`
	SortOrder              SortOrder `json:"sortOrder" yaml:"sortOrder"`
	ViewMode               ViewMode  `json:"viewMode" yaml:"viewMode"`
}

// DefaultPreferences returns the record created on first launch.
func DefaultPreferences() Preferences {
	return Preferences{
		HasCompletedOnboarding: false,
		SortOrder:              SortNewest,
		ViewMode:               ViewList,
	}
}

// Normalize replaces unknown enum values with their defaults.
func (p Preferences) Normalize() Preferences {
	def := DefaultPreferences()
	if !p.SortOrder.Valid() {
		p.SortOrder = def.SortOrder
	}
	if !p.ViewMode.Valid() {
		p.ViewMode = def.ViewMode
	}
	return p
}
