// Package query derives views from a snapshot of ideas: search, filters,
// ordering and frequency statistics.
//
// Every function is pure and recomputes its result from scratch; inputs are
// never modified. Results share Idea values (including tag slices) with the
// input, so callers that mutate them must Clone first.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aretw0/ideastash/pkg/core"
)

// Search returns the ideas whose title, description or any tag contains q,
// ignoring case. An empty query returns the input unchanged.
func Search(ideas []core.Idea, q string) []core.Idea {
	if q == "" {
		return ideas
	}
	needle := strings.ToLower(q)
	return filter(ideas, func(i core.Idea) bool {
		return matches(i, needle)
	})
}

func matches(i core.Idea, needle string) bool {
	if strings.Contains(strings.ToLower(i.Title), needle) ||
		strings.Contains(strings.ToLower(i.Description), needle) {
		return true
	}
	for _, tag := range i.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// FilterByCategory keeps ideas of category. A nil category keeps everything.
func FilterByCategory(ideas []core.Idea, category *core.Category) []core.Idea {
	if category == nil {
		return ideas
	}
	return filter(ideas, func(i core.Idea) bool {
		return i.Category == *category
	})
}

// FilterByTag keeps ideas carrying tag, compared case-insensitively.
// An empty tag keeps everything.
func FilterByTag(ideas []core.Idea, tag string) []core.Idea {
	tag = core.NormalizeTag(tag)
	if tag == "" {
		return ideas
	}
	return filter(ideas, func(i core.Idea) bool { return i.HasTag(tag) })
}

// Favorites keeps favorite ideas.
func Favorites(ideas []core.Idea) []core.Idea {
	return filter(ideas, func(i core.Idea) bool { return i.IsFavorite })
}

// Implemented keeps ideas marked as implemented.
func Implemented(ideas []core.Idea) []core.Idea {
	return filter(ideas, func(i core.Idea) bool { return i.IsImplemented })
}

// Criteria combines the list filters. Zero values disable a filter.
type Criteria struct {
	Query         string
	Category      *core.Category
	Tag           string
	FavoritesOnly bool
}

// Filter applies every criterion; an idea must satisfy all of them.
func Filter(ideas []core.Idea, c Criteria) []core.Idea {
	out := Search(ideas, c.Query)
	out = FilterByCategory(out, c.Category)
	out = FilterByTag(out, c.Tag)
	if c.FavoritesOnly {
		out = Favorites(out)
	}
	return out
}

// Sort returns a sorted copy of ideas. Unknown orders fall back to newest first.
//
//   - newest, oldest: by createdAt
//   - alphabetical: by title, ignoring case
//   - category: by category display order, newest first within a category
func Sort(ideas []core.Idea, order core.SortOrder) []core.Idea {
	out := slices.Clone(ideas)
	newest := func(a, b core.Idea) int { return b.CreatedAt.Compare(a.CreatedAt) }

	switch order {
	case core.SortOldest:
		slices.SortStableFunc(out, func(a, b core.Idea) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case core.SortAlphabetical:
		slices.SortStableFunc(out, func(a, b core.Idea) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	case core.SortCategory:
		rank := categoryRank()
		slices.SortStableFunc(out, func(a, b core.Idea) int {
			if c := cmp.Compare(rank(a.Category), rank(b.Category)); c != 0 {
				return c
			}
			return newest(a, b)
		})
	default:
		slices.SortStableFunc(out, newest)
	}
	return out
}

func categoryRank() func(core.Category) int {
	all := core.Categories()
	return func(c core.Category) int {
		if i := slices.Index(all, c); i >= 0 {
			return i
		}
		return len(all)
	}
}

func filter(ideas []core.Idea, keep func(core.Idea) bool) []core.Idea {
	out := make([]core.Idea, 0, len(ideas))
	for _, i := range ideas {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}
