package archive

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/ideastash/pkg/core"
)

// --- JSON Serializer ---

// JSONSerializer writes indented JSON.
type JSONSerializer struct{}

func (JSONSerializer) Encode(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func (JSONSerializer) Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("invalid json: %w", err)
	}
	return s, nil
}

// --- YAML Serializer ---

// YAMLSerializer writes YAML with two-space indentation.
type YAMLSerializer struct{}

func (YAMLSerializer) Encode(w io.Writer, s Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func (YAMLSerializer) Decode(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("invalid yaml: %w", err)
	}
	return s, nil
}

// --- CSV Serializer ---

// CSVSerializer writes one row per idea. The tags cell holds a JSON array so
// tags keep any character.
// Preferences are not carried and the version is implied.
type CSVSerializer struct{}

var csvHeader = []string{"id", "title", "description", "category", "tags", "isFavorite", "isImplemented", "createdAt", "updatedAt"}

func (CSVSerializer) Encode(w io.Writer, s Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, i := range s.Ideas {
		tags, err := encodeTags(i.Tags)
		if err != nil {
			return err
		}
		row := []string{
			i.ID,
			i.Title,
			i.Description,
			string(i.Category),
			tags,
			strconv.FormatBool(i.IsFavorite),
			strconv.FormatBool(i.IsImplemented),
			i.CreatedAt.Format(time.RFC3339Nano),
			i.UpdatedAt.Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (CSVSerializer) Decode(r io.Reader) (Snapshot, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return Snapshot{}, fmt.Errorf("invalid csv: missing header")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range csvHeader {
		if _, ok := col[name]; !ok {
			return Snapshot{}, fmt.Errorf("invalid csv: missing column %q", name)
		}
	}

	s := Snapshot{Version: CurrentVersion, Ideas: make([]core.Idea, 0, len(records)-1)}
	for n, rec := range records[1:] {
		idea, err := parseRow(rec, col)
		if err != nil {
			return Snapshot{}, fmt.Errorf("invalid csv row %d: %w", n+2, err)
		}
		s.Ideas = append(s.Ideas, idea)
	}
	return s, nil
}

func parseRow(rec []string, col map[string]int) (core.Idea, error) {
	get := func(name string) string { return rec[col[name]] }

	fav, err := strconv.ParseBool(get("isFavorite"))
	if err != nil {
		return core.Idea{}, fmt.Errorf("isFavorite: %w", err)
	}
	done, err := strconv.ParseBool(get("isImplemented"))
	if err != nil {
		return core.Idea{}, fmt.Errorf("isImplemented: %w", err)
	}
	created, err := time.Parse(time.RFC3339Nano, get("createdAt"))
	if err != nil {
		return core.Idea{}, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, get("updatedAt"))
	if err != nil {
		return core.Idea{}, fmt.Errorf("updatedAt: %w", err)
	}

	tags, err := decodeTags(get("tags"))
	if err != nil {
		return core.Idea{}, fmt.Errorf("tags: %w", err)
	}

	return core.Idea{
		ID:            get("id"),
		Title:         get("title"),
		Description:   get("description"),
		Category:      core.Category(get("category")),
		Tags:          tags,
		IsFavorite:    fav,
		IsImplemented: done,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if strings.TrimSpace(raw) == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
