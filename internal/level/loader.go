package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed layouts/*.yaml
var embeddedLayouts embed.FS

// DefaultID is the level played when none is chosen.
const DefaultID = "christmas"

// Embedded returns the layouts shipped with the binary, sorted by ID.
func Embedded() ([]Layout, error) {
	entries, err := fs.ReadDir(embeddedLayouts, "layouts")
	if err != nil {
		return nil, fmt.Errorf("reading embedded layouts: %w", err)
	}

	layouts := make([]Layout, 0, len(entries))
	for _, e := range entries {
		data, err := embeddedLayouts.ReadFile(path.Join("layouts", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded layout %s: %w", e.Name(), err)
		}
		layout, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded layout %s: %w", e.Name(), err)
		}
		layouts = append(layouts, layout)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})
	return layouts, nil
}

// EmbeddedByID returns one shipped layout.
func EmbeddedByID(id string) (Layout, error) {
	layouts, err := Embedded()
	if err != nil {
		return Layout{}, err
	}
	for _, l := range layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("level not found: %s", id)
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// UserLevelsDir returns ~/.arcade/levels, or empty if home is unavailable.
func UserLevelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "levels")
}

// LoadAll recursively scans and loads all layout files.
// Files that fail to parse or build are skipped. Returns layouts sorted by ID.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLayoutFile(p) {
			return nil
		}

		layout, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})
	return layouts, nil
}

// LoadFile loads and validates a single layout file.
// A layout without an ID takes the file name.
func (l *Loader) LoadFile(p string) (Layout, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	layout, err := ParseYAML(data)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if layout.ID == "" {
		layout.ID = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	if _, err := Build(layout); err != nil {
		return Layout{}, fmt.Errorf("invalid layout %s: %w", p, err)
	}
	return layout, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}
	for _, lay := range layouts {
		if lay.ID == id {
			return lay, nil
		}
	}
	return Layout{}, fmt.Errorf("level not found: %s", id)
}

func isLayoutFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}
