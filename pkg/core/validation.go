package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Limits enforced by the caller-side validation. Repositories accept any input.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
	MaxTags              = 10
)

// NormalizeTag trims and lowercases a tag.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags normalizes every tag, drops empty ones and removes duplicates
// keeping the first occurrence.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ValidateFields checks and normalizes the fields of a new idea.
func ValidateFields(f IdeaFields) (IdeaFields, error) {
	title, err := validateTitle(f.Title)
	if err != nil {
		return IdeaFields{}, err
	}
	desc, err := validateDescription(f.Description)
	if err != nil {
		return IdeaFields{}, err
	}
	if !f.Category.Valid() {
		return IdeaFields{}, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", f.Category)}
	}
	tags, err := validateTags(f.Tags)
	if err != nil {
		return IdeaFields{}, err
	}
	return IdeaFields{Title: title, Description: desc, Category: f.Category, Tags: tags}, nil
}

// ValidatePatch applies the ValidateFields rules to the fields present in p.
func ValidatePatch(p IdeaPatch) (IdeaPatch, error) {
	if p.Title != nil {
		title, err := validateTitle(*p.Title)
		if err != nil {
			return IdeaPatch{}, err
		}
		p.Title = &title
	}
	if p.Description != nil {
		desc, err := validateDescription(*p.Description)
		if err != nil {
			return IdeaPatch{}, err
		}
		p.Description = &desc
	}
	if p.Category != nil && !p.Category.Valid() {
		return IdeaPatch{}, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", *p.Category)}
	}
	if p.Tags != nil {
		tags, err := validateTags(p.Tags)
		if err != nil {
			return IdeaPatch{}, err
		}
		p.Tags = tags
	}
	return p, nil
}

func validateTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "title", Reason: "please enter an idea title"}
	}
	if utf8.RuneCountInString(s) > MaxTitleLength {
		return "", &ValidationError{Field: "title", Reason: fmt.Sprintf("must be at most %d characters", MaxTitleLength)}
	}
	return s, nil
}

func validateDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: "description", Reason: "please enter a description"}
	}
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return "", &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength)}
	}
	return s, nil
}

func validateTags(tags []string) ([]string, error) {
	norm := NormalizeTags(tags)
	if len(norm) > MaxTags {
		return nil, &ValidationError{Field: "tags", Reason: fmt.Sprintf("at most %d tags allowed, got %d", MaxTags, len(norm))}
	}
	return norm, nil
}
