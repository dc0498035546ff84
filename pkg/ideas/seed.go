package ideas

import (
	"time"

	"github.com/aretw0/ideastash/pkg/core"
)

// SeedFunc produces the collection installed on first load. now is the
// repository clock at load time.
type SeedFunc func(now time.Time) []core.Idea

// SampleSet is the seed shipped with the application: five example ideas.
var SampleSet SeedFunc = Samples

// Samples returns the sample ideas, all stamped with now.
func Samples(now time.Time) []core.Idea {
	sample := func(id, title, description string, cat core.Category, fav bool, tags ...string) core.Idea {
		return core.Idea{
			ID:          id,
			Title:       title,
			Description: description,
			Category:    cat,
			Tags:        tags,
			IsFavorite:  fav,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	return []core.Idea{
		sample("1", "AI-Powered Meal Planner",
			"An app that generates weekly meal plans based on dietary preferences, budget, and available ingredients using AI.",
			core.CategoryTech, true, "AI", "health", "productivity"),
		sample("2", "Local Artist Marketplace",
			"A platform connecting local artists with buyers. Features include virtual galleries, commission requests, and event listings.",
			core.CategoryBusiness, true, "marketplace", "art", "community"),
		sample("3", "Morning Routine App",
			"Guided morning routines with customizable checklists, affirmations, and habit tracking. Focus on building consistent morning habits.",
			core.CategoryPersonal, false, "habits", "productivity", "wellness"),
		sample("4", "Podcast Clip Generator",
			"Automatically generate short video clips from long-form podcast episodes for social media sharing.",
			core.CategoryCreative, false, "content", "social media", "audio"),
		sample("5", "Language Exchange Meetup App",
			"Find and organize language exchange meetups in your area. Match with native speakers for mutual learning.",
			core.CategoryEducation, false, "language", "community", "learning"),
	}
}
