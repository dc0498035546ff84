package query

import (
	"slices"

	"github.com/aretw0/ideastash/pkg/core"
)

// TagCount is one entry of a tag frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CategoryCount is one entry of a category frequency table.
type CategoryCount struct {
	Category core.Category `json:"category"`
	Count    int           `json:"count"`
}

// TagFrequency counts every (idea, tag) pair. Entries are ordered by
// descending count; ties keep the order in which tags were first seen.
// Tags are counted exactly as stored.
func TagFrequency(ideas []core.Idea) []TagCount {
	var out []TagCount
	index := make(map[string]int)
	for _, i := range ideas {
		for _, tag := range i.Tags {
			if pos, ok := index[tag]; ok {
				out[pos].Count++
				continue
			}
			index[tag] = len(out)
			out = append(out, TagCount{Tag: tag, Count: 1})
		}
	}
	slices.SortStableFunc(out, func(a, b TagCount) int { return b.Count - a.Count })
	return out
}

// CategoryFrequency counts ideas per category, ordered like TagFrequency.
func CategoryFrequency(ideas []core.Idea) []CategoryCount {
	var out []CategoryCount
	index := make(map[core.Category]int)
	for _, i := range ideas {
		if pos, ok := index[i.Category]; ok {
			out[pos].Count++
			continue
		}
		index[i.Category] = len(out)
		out = append(out, CategoryCount{Category: i.Category, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b CategoryCount) int { return b.Count - a.Count })
	return out
}

// Stats is the aggregate shown on the statistics screen.
type Stats struct {
	Total       int             `json:"total"`
	Favorites   int             `json:"favorites"`
	Implemented int             `json:"implemented"`
	Tags        []TagCount      `json:"tags"`
	Categories  []CategoryCount `json:"categories"`
}

// Summarize computes Stats for ideas.
func Summarize(ideas []core.Idea) Stats {
	s := Stats{
		Total:      len(ideas),
		Tags:       TagFrequency(ideas),
		Categories: CategoryFrequency(ideas),
	}
	for _, i := range ideas {
		if i.IsFavorite {
			s.Favorites++
		}
		if i.IsImplemented {
			s.Implemented++
		}
	}
	return s
}
