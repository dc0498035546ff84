package core

import (
	"fmt"
	"slices"
	"time"
)

// Category is the closed set of idea categories.
type Category string

const (
	CategoryBusiness  Category = "business"
	CategoryTech      Category = "tech"
	CategoryCreative  Category = "creative"
	CategoryPersonal  Category = "personal"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryLifestyle Category = "lifestyle"
	CategoryOther     Category = "other"
)

var categories = []Category{
	CategoryBusiness,
	CategoryTech,
	CategoryCreative,
	CategoryPersonal,
	CategoryHealth,
	CategoryEducation,
	CategoryLifestyle,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryBusiness:  "Business",
	CategoryTech:      "Tech",
	CategoryCreative:  "Creative",
	CategoryPersonal:  "Personal",
	CategoryHealth:    "Health",
	CategoryEducation: "Education",
	CategoryLifestyle: "Lifestyle",
	CategoryOther:     "Other",
}

var categoryColors = map[Category]string{
	CategoryBusiness:  "#10B981",
	CategoryTech:      "#3B82F6",
	CategoryCreative:  "#F59E0B",
	CategoryPersonal:  "#EC4899",
	CategoryHealth:    "#14B8A6",
	CategoryEducation: "#8B5CF6",
	CategoryLifestyle: "#F97316",
	CategoryOther:     "#6B7280",
}

// Categories returns every category in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Color returns the hex colour associated with the category.
func (c Category) Color() string {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return categoryColors[CategoryOther]
}

// ParseCategory converts s into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Idea is one captured idea. The JSON field names are the persisted layout.
type Idea struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description" yaml:"description"`
	Category      Category  `json:"category" yaml:"category"`
	Tags          []string  `json:"tags" yaml:"tags"`
	IsFavorite    bool      `json:"isFavorite" yaml:"isFavorite"`
	IsImplemented bool      `json:"isImplemented" yaml:"isImplemented"`
	CreatedAt     time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a deep copy of the idea.
func (i Idea) Clone() Idea {
	i.Tags = slices.Clone(i.Tags)
	return i
}

// HasTag reports whether the idea carries tag, ignoring case and surrounding blanks.
func (i Idea) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	return slices.ContainsFunc(i.Tags, func(t string) bool { return NormalizeTag(t) == tag })
}

// IdeaFields are the user supplied fields of a new idea.
type IdeaFields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Tags        []string `json:"tags"`
}

// IdeaPatch describes a partial update. Nil fields are left unchanged.
type IdeaPatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Category      *Category `json:"category,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	IsFavorite    *bool     `json:"isFavorite,omitempty"`
	IsImplemented *bool     `json:"isImplemented,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p IdeaPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Tags == nil && p.IsFavorite == nil && p.IsImplemented == nil
}

// Apply returns a copy of idea with the patch fields replaced.
// Timestamps and the ID are never touched here.
func (p IdeaPatch) Apply(idea Idea) Idea {
	out := idea.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Tags != nil {
		out.Tags = slices.Clone(p.Tags)
	}
	if p.IsFavorite != nil {
		out.IsFavorite = *p.IsFavorite
	}
	if p.IsImplemented != nil {
		out.IsImplemented = *p.IsImplemented
	}
	return out
}
