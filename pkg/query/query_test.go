package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/query"
)

var base = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixture() []core.Idea {
	return []core.Idea{
		{ID: "1", Title: "Meal Planner", Description: "AI plans meals", Category: core.CategoryTech,
			Tags: []string{"AI", "health"}, IsFavorite: true, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "2", Title: "artist market", Description: "Sell local art", Category: core.CategoryBusiness,
			Tags: []string{"art", "community"}, IsFavorite: true, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "3", Title: "Morning Routine", Description: "Build habits", Category: core.CategoryPersonal,
			Tags: []string{"habits"}, IsImplemented: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Title: "Language Meetup", Description: "Practice together", Category: core.CategoryTech,
			Tags: []string{"community", "learning"}, CreatedAt: base},
	}
}

func ids(ideas []core.Idea) []string {
	out := make([]string, 0, len(ideas))
	for _, i := range ideas {
		out = append(out, i.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	ideas := fixture()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Empty Query Matches All", "", []string{"1", "2", "3", "4"}},
		{"Title Case Insensitive", "MEAL", []string{"1"}},
		{"Description", "local", []string{"2"}},
		{"Tag", "ai", []string{"1"}},
		{"Tag Substring", "commun", []string{"2", "4"}},
		{"Order Preserved", "e", []string{"1", "2", "3", "4"}},
		{"No Match", "zebra", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(query.Search(ideas, tt.query)))
		})
	}

	// input untouched
	assert.Equal(t, fixture(), ideas)
}

func TestFilterByCategory(t *testing.T) {
	ideas := fixture()
	assert.Equal(t, ids(ideas), ids(query.FilterByCategory(ideas, nil)))

	tech := core.CategoryTech
	assert.Equal(t, []string{"1", "4"}, ids(query.FilterByCategory(ideas, &tech)))

	other := core.CategoryOther
	assert.Empty(t, query.FilterByCategory(ideas, &other))
}

func TestFilterByTag(t *testing.T) {
	ideas := fixture()
	assert.Equal(t, []string{"1"}, ids(query.FilterByTag(ideas, " ai ")))
	assert.Equal(t, []string{"2", "4"}, ids(query.FilterByTag(ideas, "community")))
	assert.Len(t, query.FilterByTag(ideas, ""), 4)
	// whole tag, not substring
	assert.Empty(t, query.FilterByTag(ideas, "commun"))
}

func TestFavoritesAndImplemented(t *testing.T) {
	ideas := fixture()
	assert.Equal(t, []string{"1", "2"}, ids(query.Favorites(ideas)))
	assert.Equal(t, []string{"3"}, ids(query.Implemented(ideas)))
}

func TestFilter(t *testing.T) {
	ideas := fixture()
	tech := core.CategoryTech

	got := query.Filter(ideas, query.Criteria{Query: "e", Category: &tech})
	assert.Equal(t, []string{"1", "4"}, ids(got))

	got = query.Filter(ideas, query.Criteria{Category: &tech, FavoritesOnly: true})
	assert.Equal(t, []string{"1"}, ids(got))

	got = query.Filter(ideas, query.Criteria{Tag: "community", Query: "market"})
	assert.Equal(t, []string{"2"}, ids(got))

	assert.Equal(t, ids(ideas), ids(query.Filter(ideas, query.Criteria{})))
}

func TestSort(t *testing.T) {
	ideas := fixture()

	tests := []struct {
		order core.SortOrder
		want  []string
	}{
		{core.SortNewest, []string{"1", "3", "2", "4"}},
		{core.SortOldest, []string{"4", "2", "3", "1"}},
		{core.SortAlphabetical, []string{"2", "4", "1", "3"}},
		{core.SortCategory, []string{"2", "1", "4", "3"}},
		{core.SortOrder("bogus"), []string{"1", "3", "2", "4"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(query.Sort(ideas, tt.order)))
		})
	}
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(ideas), "input must not be reordered")
}

func TestTagFrequency(t *testing.T) {
	ideas := fixture()
	got := query.TagFrequency(ideas)

	require.NotEmpty(t, got)
	assert.Equal(t, query.TagCount{Tag: "community", Count: 2}, got[0])
	// ties keep first-seen order
	assert.Equal(t, []string{"community", "AI", "health", "art", "habits", "learning"}, tagNames(got))

	pairs := 0
	for _, i := range ideas {
		pairs += len(i.Tags)
	}
	sum := 0
	for _, tc := range got {
		sum += tc.Count
	}
	assert.Equal(t, pairs, sum)

	assert.Empty(t, query.TagFrequency(nil))
}

func tagNames(tcs []query.TagCount) []string {
	out := make([]string, 0, len(tcs))
	for _, tc := range tcs {
		out = append(out, tc.Tag)
	}
	return out
}

func TestCategoryFrequency(t *testing.T) {
	got := query.CategoryFrequency(fixture())
	assert.Equal(t, []query.CategoryCount{
		{Category: core.CategoryTech, Count: 2},
		{Category: core.CategoryBusiness, Count: 1},
		{Category: core.CategoryPersonal, Count: 1},
	}, got)
}

func TestSummarize(t *testing.T) {
	s := query.Summarize(fixture())
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Favorites)
	assert.Equal(t, 1, s.Implemented)
	assert.Len(t, s.Tags, 6)
	assert.Len(t, s.Categories, 3)
}
