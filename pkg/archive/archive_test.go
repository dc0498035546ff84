package archive_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ideastash/pkg/archive"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/ideas"
)

var now = time.Date(2025, 6, 1, 8, 30, 0, 123456789, time.UTC)

func snapshot() archive.Snapshot {
	prefs := core.Preferences{HasCompletedOnboarding: true, SortOrder: core.SortCategory, ViewMode: core.ViewGrid}
	list := ideas.Samples(now)
	list[0].IsImplemented = true
	list[3].Description = "quotes \"and\", commas; semicolons\nnewlines"
	return archive.New(list, &prefs, now)
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []string{".json", ".yaml", ".yml", "json"} {
		t.Run(format, func(t *testing.T) {
			want := snapshot()
			var buf bytes.Buffer
			require.NoError(t, archive.Export(&buf, format, want))

			got, err := archive.Import(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRoundTrip_CSV(t *testing.T) {
	want := snapshot()
	var buf bytes.Buffer
	require.NoError(t, archive.Export(&buf, ".csv", want))
	assert.True(t, strings.HasPrefix(buf.String(), "id,title,description,category,tags,"))

	got, err := archive.Import(&buf, ".csv")
	require.NoError(t, err)
	assert.Equal(t, want.Ideas, got.Ideas)
	assert.Nil(t, got.Preferences)
	assert.Equal(t, archive.CurrentVersion, got.Version)
}

func TestRoundTrip_CSVTagSeparators(t *testing.T) {
	fields, err := core.ValidateFields(core.IdeaFields{
		Title:       "Compiler notes",
		Description: "Collect notes about toolchains",
		Category:    core.CategoryTech,
		Tags:        []string{"c;c++", `say "hi", ok`, "go"},
	})
	require.NoError(t, err)

	want := archive.New([]core.Idea{{
		ID: "1", Title: fields.Title, Description: fields.Description, Category: fields.Category,
		Tags: fields.Tags, CreatedAt: now, UpdatedAt: now,
	}, {
		ID: "2", Title: "Untagged", Description: "No tags at all", Category: core.CategoryOther,
		Tags: []string{}, CreatedAt: now, UpdatedAt: now,
	}}, nil, now)

	var buf bytes.Buffer
	require.NoError(t, archive.Export(&buf, ".csv", want))
	got, err := archive.Import(&buf, ".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"c;c++", `say "hi", ok`, "go"}, got.Ideas[0].Tags)
	assert.Equal(t, []string{}, got.Ideas[1].Tags)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, ".yaml", archive.Format("/tmp/backup.YAML"))
	assert.Equal(t, ".json", archive.Format("stash.json"))
	assert.Equal(t, "", archive.Format("stash"))
}

func TestUnsupportedFormat(t *testing.T) {
	err := archive.Export(&bytes.Buffer{}, ".toml", snapshot())
	assert.ErrorIs(t, err, archive.ErrUnsupportedFormat)

	_, err = archive.Import(strings.NewReader(""), ".md")
	assert.ErrorIs(t, err, archive.ErrUnsupportedFormat)
}

func TestImportValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"Future Version", `{"version":2,"ideas":[]}`, archive.ErrUnsupportedVersion},
		{"Missing Version", `{"ideas":[]}`, archive.ErrUnsupportedVersion},
		{"Duplicate IDs", `{"version":1,"ideas":[{"id":"a"},{"id":"a"}]}`, archive.ErrDuplicateID},
		{"Missing ID", `{"version":1,"ideas":[{"title":"x"}]}`, archive.ErrMissingID},
		{"Empty Title", ideaDoc(`"title":" "`), archive.ErrInvalidIdea},
		{"Empty Description", ideaDoc(`"description":""`), archive.ErrInvalidIdea},
		{"Unknown Category", ideaDoc(`"category":"bogus"`), core.ErrInvalidCategory},
		{"Missing CreatedAt", ideaDoc(`"createdAt":"0001-01-01T00:00:00Z"`), archive.ErrInvalidIdea},
		{"UpdatedAt Before CreatedAt", ideaDoc(`"updatedAt":"2024-01-01T00:00:00Z"`), archive.ErrInvalidIdea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := archive.Import(strings.NewReader(tt.doc), ".json")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ideaDoc returns a valid single-idea archive with override replacing one field.
func ideaDoc(override string) string {
	fields := map[string]string{
		"id":          `"id":"x"`,
		"title":       `"title":"Tiny garden"`,
		"description": `"description":"Balcony herbs"`,
		"category":    `"category":"lifestyle"`,
		"createdAt":   `"createdAt":"2025-02-01T00:00:00Z"`,
		"updatedAt":   `"updatedAt":"2025-02-02T00:00:00Z"`,
	}
	name := strings.Trim(strings.SplitN(override, ":", 2)[0], `"`)
	fields[name] = override
	parts := make([]string, 0, len(fields))
	for _, key := range []string{"id", "title", "description", "category", "createdAt", "updatedAt"} {
		parts = append(parts, fields[key])
	}
	return `{"version":1,"ideas":[{` + strings.Join(parts, ",") + `}]}`
}

func TestImport_MissingTags(t *testing.T) {
	got, err := archive.Import(strings.NewReader(ideaDoc(`"id":"x"`)), ".json")
	require.NoError(t, err)
	require.Len(t, got.Ideas, 1)
	assert.NotNil(t, got.Ideas[0].Tags)
	assert.Empty(t, got.Ideas[0].Tags)
}

func TestImport_EmptyIdeas(t *testing.T) {
	got, err := archive.Import(strings.NewReader("version: 1\n"), ".yaml")
	require.NoError(t, err)
	assert.NotNil(t, got.Ideas)
	assert.Empty(t, got.Ideas)
}

func TestImport_Malformed(t *testing.T) {
	_, err := archive.Import(strings.NewReader("{"), ".json")
	assert.Error(t, err)

	_, err = archive.Import(strings.NewReader("id,title\n1,x\n"), ".csv")
	assert.ErrorContains(t, err, "missing column")
}
