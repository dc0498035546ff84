// Package archive exports and imports the whole journal as a single document.
package archive

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/ideastash/pkg/core"
)

// CurrentVersion is the snapshot format written by Export.
const CurrentVersion = 1

var (
	ErrUnsupportedFormat  = errors.New("unsupported archive format")
	ErrUnsupportedVersion = errors.New("unsupported archive version")
	ErrDuplicateID        = errors.New("duplicate idea id")
	ErrMissingID          = errors.New("idea without id")
	ErrInvalidIdea        = errors.New("invalid idea")
)

// Snapshot is the exported journal. Preferences is nil when the format
// cannot carry them (CSV).
type Snapshot struct {
	Version     int               `json:"version" yaml:"version"`
	ExportedAt  time.Time         `json:"exportedAt" yaml:"exportedAt"`
	Ideas       []core.Idea       `json:"ideas" yaml:"ideas"`
	Preferences *core.Preferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// New builds a snapshot of the current version.
func New(ideas []core.Idea, prefs *core.Preferences, now time.Time) Snapshot {
	if ideas == nil {
		ideas = []core.Idea{}
	}
	return Snapshot{
		Version:     CurrentVersion,
		ExportedAt:  now.UTC(),
		Ideas:       ideas,
		Preferences: prefs,
	}
}

// Validate checks the version, that every idea has a unique id and that every
// idea holds a title, a description, a known category and consistent timestamps.
func (s Snapshot) Validate() error {
	if s.Version < 1 || s.Version > CurrentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	seen := make(map[string]struct{}, len(s.Ideas))
	for i, idea := range s.Ideas {
		if idea.ID == "" {
			return fmt.Errorf("%w at index %d", ErrMissingID, i)
		}
		if _, dup := seen[idea.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, idea.ID)
		}
		seen[idea.ID] = struct{}{}
	}
	for _, idea := range s.Ideas {
		if err := validateIdea(idea); err != nil {
			return fmt.Errorf("%w %s: %w", ErrInvalidIdea, idea.ID, err)
		}
	}
	return nil
}

func validateIdea(idea core.Idea) error {
	switch {
	case strings.TrimSpace(idea.Title) == "":
		return errors.New("empty title")
	case strings.TrimSpace(idea.Description) == "":
		return errors.New("empty description")
	case !idea.Category.Valid():
		return fmt.Errorf("%w: %q", core.ErrInvalidCategory, idea.Category)
	case idea.CreatedAt.IsZero(), idea.UpdatedAt.IsZero():
		return errors.New("missing timestamps")
	case idea.UpdatedAt.Before(idea.CreatedAt):
		return errors.New("updatedAt before createdAt")
	}
	return nil
}

// Serializer reads and writes snapshots in one format.
type Serializer interface {
	Encode(w io.Writer, s Snapshot) error
	Decode(r io.Reader) (Snapshot, error)
}

// DefaultSerializers returns the serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": JSONSerializer{},
		".yaml": YAMLSerializer{},
		".yml":  YAMLSerializer{},
		".csv":  CSVSerializer{},
	}
}

// Format returns the format of path, derived from its extension.
func Format(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func serializerFor(format string) (Serializer, error) {
	if format != "" && !strings.HasPrefix(format, ".") {
		format = "." + format
	}
	s, ok := DefaultSerializers()[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return s, nil
}

// Export writes s in format (".json", "yaml", ...).
func Export(w io.Writer, format string, s Snapshot) error {
	ser, err := serializerFor(format)
	if err != nil {
		return err
	}
	if err := ser.Encode(w, s); err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	return nil
}

// Import reads a snapshot in format and validates it.
func Import(r io.Reader, format string) (Snapshot, error) {
	ser, err := serializerFor(format)
	if err != nil {
		return Snapshot{}, err
	}
	s, err := ser.Decode(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode archive: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	if s.Ideas == nil {
		s.Ideas = []core.Idea{}
	}
	for i := range s.Ideas {
		if s.Ideas[i].Tags == nil {
			s.Ideas[i].Tags = []string{}
		}
	}
	return s, nil
}
