package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/ideastash/pkg/core"
)

// printIdea writes the one-line listing of i: id, flags, title, category and tags.
func printIdea(w io.Writer, i core.Idea) {
	flags := []byte("  ")
	if i.IsFavorite {
		flags[0] = '*'
	}
	if i.IsImplemented {
		flags[1] = 'x'
	}

	line := fmt.Sprintf("%s %s %s (%s)", i.ID, flags, i.Title, i.Category.Label())
	if len(i.Tags) > 0 {
		line += " #" + strings.Join(i.Tags, " #")
	}
	fmt.Fprintln(w, line)
}

func printIdeaDetail(w io.Writer, i core.Idea) {
	fmt.Fprintf(w, "ID:          %s\n", i.ID)
	fmt.Fprintf(w, "Title:       %s\n", i.Title)
	fmt.Fprintf(w, "Category:    %s\n", i.Category.Label())
	fmt.Fprintf(w, "Tags:        %s\n", strings.Join(i.Tags, ", "))
	fmt.Fprintf(w, "Favorite:    %t\n", i.IsFavorite)
	fmt.Fprintf(w, "Implemented: %t\n", i.IsImplemented)
	fmt.Fprintf(w, "Created:     %s\n", i.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "Updated:     %s\n", i.UpdatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "\n%s\n", i.Description)
}
