package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ideastash"
	"github.com/aretw0/ideastash/pkg/adapters/sqlite"
	"github.com/aretw0/ideastash/pkg/archive"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/entitlement"
	"github.com/aretw0/ideastash/pkg/query"
)

// journal runs commands against one sqlite journal in a temporary directory.
type journal struct {
	t    *testing.T
	data string
}

func newJournal(t *testing.T, seed string) *journal {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("IDEASTASH_SEED", seed)
	t.Setenv("IDEASTASH_ENTITLEMENT", "local")
	return &journal{t: t, data: t.TempDir()}
}

func (j *journal) run(args ...string) (string, error) {
	j.t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--adapter", "sqlite", "--data", j.data}, args...))
	err := root.Execute()
	return out.String(), err
}

func (j *journal) mustRun(args ...string) string {
	j.t.Helper()
	out, err := j.run(args...)
	require.NoError(j.t, err, "ideastash %s", strings.Join(args, " "))
	return out
}

func (j *journal) ideas(args ...string) []core.Idea {
	j.t.Helper()
	var ideas []core.Idea
	require.NoError(j.t, json.Unmarshal([]byte(j.mustRun(append([]string{"list", "--json"}, args...)...)), &ideas))
	return ideas
}

func TestCLI_Version(t *testing.T) {
	root := NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "ideastash version "+strings.TrimSpace(ideastash.Version)+"\n", buf.String())
}

func TestCLI_SeedAndList(t *testing.T) {
	j := newJournal(t, "samples")

	out := j.mustRun("list", "--sort", "alphabetical")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "AI-Powered Meal Planner")
	assert.Contains(t, lines[4], "Podcast Clip Generator")
	assert.True(t, strings.HasPrefix(lines[0], "1 *  "), lines[0])

	favs := j.ideas("--favorites")
	assert.Len(t, favs, 2)

	byTag := j.ideas("--tag", "community")
	assert.Len(t, byTag, 2)

	tech := j.ideas("--category", "tech", "-q", "meal")
	require.Len(t, tech, 1)
	assert.Equal(t, "1", tech[0].ID)

	_, err := j.run("list", "--category", "space")
	assert.ErrorIs(t, err, core.ErrInvalidCategory)
	_, err = j.run("list", "--sort", "random")
	assert.ErrorIs(t, err, core.ErrInvalidSortOrder)
}

func TestCLI_IdeaLifecycle(t *testing.T) {
	j := newJournal(t, "none")

	assert.Equal(t, "No ideas found.\n", j.mustRun("list"))

	out := j.mustRun("add", "-t", "  Tiny garden kit ", "-d", "Balcony herbs in a box", "-c", "lifestyle",
		"--tag", "Plants", "--tag", "plants", "--tag", " DIY ")
	fields := strings.Fields(out)
	require.Len(t, fields, 3)
	id := fields[1]

	var idea core.Idea
	require.NoError(t, json.Unmarshal([]byte(j.mustRun("show", id, "--json")), &idea))
	assert.Equal(t, "Tiny garden kit", idea.Title)
	assert.Equal(t, core.CategoryLifestyle, idea.Category)
	assert.Equal(t, []string{"plants", "diy"}, idea.Tags)
	assert.False(t, idea.IsFavorite)
	assert.Equal(t, idea.CreatedAt, idea.UpdatedAt)

	j.mustRun("update", id, "--title", "Garden kit", "--clear-tags")
	assert.Equal(t, "Idea "+id+" is now favorite.\n", j.mustRun("fav", id))
	assert.Equal(t, "Idea "+id+" is now implemented.\n", j.mustRun("done", id))

	require.NoError(t, json.Unmarshal([]byte(j.mustRun("show", id, "--json")), &idea))
	assert.Equal(t, "Garden kit", idea.Title)
	assert.Equal(t, "Balcony herbs in a box", idea.Description)
	assert.Empty(t, idea.Tags)
	assert.True(t, idea.IsFavorite)
	assert.True(t, idea.IsImplemented)
	assert.True(t, idea.UpdatedAt.After(idea.CreatedAt))

	assert.Len(t, j.ideas("--implemented"), 1)

	j.mustRun("delete", id)
	_, err := j.run("show", id)
	assert.ErrorContains(t, err, "not found")
	_, err = j.run("delete", id)
	assert.ErrorContains(t, err, "not found")
}

func TestCLI_AddValidation(t *testing.T) {
	j := newJournal(t, "none")

	tags := []string{"add", "-t", "x", "-d", "y"}
	for i := range core.MaxTags + 1 {
		tags = append(tags, "--tag", string(rune('a'+i)))
	}

	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"Blank title", []string{"add", "-t", "   ", "-d", "y"}, "title"},
		{"Blank description", []string{"add", "-t", "x", "-d", " "}, "description"},
		{"Unknown category", []string{"add", "-t", "x", "-d", "y", "-c", "space"}, "category"},
		{"Too many tags", tags, "tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.run(tt.args...)
			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err := j.run("update", "whatever")
	assert.ErrorContains(t, err, "nothing to update")
	assert.Empty(t, j.ideas())
}

func TestCLI_Stats(t *testing.T) {
	j := newJournal(t, "samples")

	var stats query.Stats
	require.NoError(t, json.Unmarshal([]byte(j.mustRun("stats", "--json")), &stats))
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Favorites)
	assert.Equal(t, 0, stats.Implemented)

	out := j.mustRun("tags", "-n", "2")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "#productivity")
	assert.Contains(t, lines[1], "#community")
}

func TestCLI_Prefs(t *testing.T) {
	j := newJournal(t, "none")

	var p core.Preferences
	require.NoError(t, json.Unmarshal([]byte(j.mustRun("prefs", "--json")), &p))
	assert.Equal(t, core.DefaultPreferences(), p)

	j.mustRun("prefs", "set", "--sort", "oldest", "--view", "grid")
	assert.Equal(t, "Onboarding completed.\n", j.mustRun("prefs", "onboard"))
	assert.Equal(t, "Onboarding already completed.\n", j.mustRun("prefs", "onboard"))

	require.NoError(t, json.Unmarshal([]byte(j.mustRun("prefs", "--json")), &p))
	assert.Equal(t, core.Preferences{HasCompletedOnboarding: true, SortOrder: core.SortOldest, ViewMode: core.ViewGrid}, p)

	_, err := j.run("prefs", "set", "--sort", "random")
	assert.ErrorIs(t, err, core.ErrInvalidSortOrder)
	_, err = j.run("prefs", "set", "--view", "table")
	assert.ErrorIs(t, err, core.ErrInvalidViewMode)
	_, err = j.run("prefs", "set")
	assert.Error(t, err)

	j.mustRun("prefs", "reset")
	require.NoError(t, json.Unmarshal([]byte(j.mustRun("prefs", "--json")), &p))
	assert.Equal(t, core.DefaultPreferences(), p)
}

func TestCLI_Pro(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		j := newJournal(t, "none")

		assert.Equal(t, "Premium: inactive\n", j.mustRun("pro", "status"))
		assert.Equal(t, "No previous purchase found.\n", j.mustRun("pro", "restore"))
		assert.Contains(t, j.mustRun("pro", "offerings"), "annual")

		_, err := j.run("pro", "purchase", "weekly")
		assert.ErrorIs(t, err, entitlement.ErrUnknownPackage)

		assert.Contains(t, j.mustRun("pro", "purchase", "annual"), "Premium is active")
		assert.Equal(t, "Premium: active\n", j.mustRun("pro", "status"))
		assert.Equal(t, "Premium is already active.\n", j.mustRun("pro", "purchase", "monthly"))
		assert.Equal(t, "Purchase restored. Premium is active.\n", j.mustRun("pro", "restore"))

		var info entitlement.CustomerInfo
		require.NoError(t, json.Unmarshal([]byte(j.mustRun("pro", "status", "--json")), &info))
		assert.True(t, info.IsPremium())
	})

	t.Run("Stub", func(t *testing.T) {
		j := newJournal(t, "none")
		t.Setenv("IDEASTASH_ENTITLEMENT", "stub")

		assert.Equal(t, "Purchase was not completed.\n", j.mustRun("pro", "purchase", "annual"))
		assert.Equal(t, "Premium: inactive\n", j.mustRun("pro", "status"))
	})
}

func TestCLI_ExportImport(t *testing.T) {
	j := newJournal(t, "samples")
	j.mustRun("prefs", "set", "--view", "grid")

	for _, name := range []string{"backup.json", "backup.yaml", "backup.csv"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			j.mustRun("export", path)

			_, err := j.run("clear")
			assert.Error(t, err)
			assert.Equal(t, "Journal cleared.\n", j.mustRun("clear", "--yes"))
			assert.Empty(t, j.ideas())

			assert.Equal(t, "Imported 5 ideas.\n", j.mustRun("import", path))
			ideas := j.ideas("--sort", "alphabetical")
			require.Len(t, ideas, 5)
			assert.Equal(t, "AI-Powered Meal Planner", ideas[0].Title)

			// only the structured formats carry preferences
			j.mustRun("prefs", "set", "--view", "grid")
		})
	}

	t.Run("Stdout", func(t *testing.T) {
		var snap archive.Snapshot
		require.NoError(t, json.Unmarshal([]byte(j.mustRun("export")), &snap))
		assert.Equal(t, archive.CurrentVersion, snap.Version)
		assert.Len(t, snap.Ideas, 5)
		require.NotNil(t, snap.Preferences)
		assert.Equal(t, core.ViewGrid, snap.Preferences.ViewMode)
	})

	t.Run("Unknown format", func(t *testing.T) {
		_, err := j.run("export", filepath.Join(t.TempDir(), "backup.txt"))
		assert.ErrorIs(t, err, archive.ErrUnsupportedFormat)
		_, err = j.run("export", filepath.Join(t.TempDir(), "backup"))
		assert.ErrorContains(t, err, "--format")
	})

	t.Run("Invalid archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dup.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"ideas":[{"id":"a"},{"id":"a"}]}`), 0o644))
		_, err := j.run("import", path)
		assert.ErrorIs(t, err, archive.ErrDuplicateID)
		assert.Len(t, j.ideas(), 5)
	})
}

func TestCLI_ConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	data := t.TempDir()
	cfg := "storage:\n  adapter: sqlite\n  data_dir: " + data + "\nseed: none\n"
	require.NoError(t, os.WriteFile("ideastash.yaml", []byte(cfg), 0o644))

	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"add", "-t", "From config", "-d", "yaml configured journal"})
	require.NoError(t, root.Execute())

	assert.FileExists(t, filepath.Join(data, "ideastash.db"))
}

func TestCLI_Errors(t *testing.T) {
	j := newJournal(t, "none")

	_, err := j.run("watch")
	assert.ErrorIs(t, err, ideastash.ErrWatchUnsupported)

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--adapter", "postgres", "list"})
	assert.ErrorContains(t, root.Execute(), "storage.adapter")
}

func TestCLI_UnreadableJournal(t *testing.T) {
	j := newJournal(t, "samples")
	ctx := context.Background()

	store := sqlite.New(filepath.Join(j.data, "ideastash.db"), nil)
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Set(ctx, core.KeyIdeas, []byte("not json")))
	require.NoError(t, store.Close())

	_, err := j.run("export", filepath.Join(t.TempDir(), "ideas.json"))
	assert.Error(t, err)
	_, err = j.run("add", "--title", "Lost", "--description", "Never saved")
	assert.Error(t, err)

	root := NewRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs([]string{"--adapter", "sqlite", "--data", j.data, "stats"})
	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "Ideas:       0")
	assert.Contains(t, stderr.String(), "warning:")
}
