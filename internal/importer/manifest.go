package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Source is one spreadsheet to import. Table overrides the name derived
// from the file name.
type Source struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table,omitempty"`
}

// Manifest lists import sources.
type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// LoadManifest reads a YAML manifest. Relative local paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrapf(err, "importer: parse manifest %s", path)
	}

	base := filepath.Dir(path)
	for i, s := range m.Sources {
		if strings.TrimSpace(s.Path) == "" {
			return nil, eris.Errorf("importer: manifest %s: source %d has no path", path, i+1)
		}
		if !strings.Contains(s.Path, "://") && !filepath.IsAbs(s.Path) {
			m.Sources[i].Path = filepath.Join(base, s.Path)
		}
	}
	return &m, nil
}

// TableName derives a table name from a file name: the base name without
// the .xlsx extension and with underscores removed.
func TableName(file string) string {
	name := filepath.Base(file)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".xlsx") {
		name = name[:len(name)-len(ext)]
	}
	return strings.ReplaceAll(name, "_", "")
}

// ignored reports whether a file should be left out of an import.
func ignored(file string) bool {
	return strings.Contains(filepath.Base(file), "#")
}

// expandDir lists the .xlsx files of a directory in name order.
func expandDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read dir %s", dir)
	}
	var out []Source
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
			continue
		}
		out = append(out, Source{Path: filepath.Join(dir, e.Name())})
	}
	return out, nil
}
