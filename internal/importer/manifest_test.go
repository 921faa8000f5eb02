package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableName(t *testing.T) {
	assert.Equal(t, "FastFactsSchool", TableName("data/Fast_Facts_School.xlsx"))
	assert.Equal(t, "LEAs", TableName("LEAs.XLSX"))
	assert.Equal(t, "CohortFourYear", TableName("/tmp/Cohort_Four_Year.xlsx"))
	assert.Equal(t, "notes.csv", TableName("notes.csv"))
}

func TestIgnored(t *testing.T) {
	assert.True(t, ignored("data/#draft_Schools.xlsx"))
	assert.True(t, ignored("Schools#old.xlsx"))
	assert.False(t, ignored("Schools.xlsx"))
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.yaml")
	content := `
sources:
  - path: data/Schools.xlsx
  - path: /abs/LEAs.xlsx
    table: LEAs
  - path: https://example.org/files/AFR_Revenue.xlsx
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []Source{
		{Path: filepath.Join(dir, "data", "Schools.xlsx")},
		{Path: "/abs/LEAs.xlsx", Table: "LEAs"},
		{Path: "https://example.org/files/AFR_Revenue.xlsx"},
	}, m.Sources)
}

func TestLoadManifest_MissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - table: Schools\n"), 0o644))

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no path")
}

func TestLoadManifest_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: [\n"), 0o644))

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse manifest")
}

func TestLoadManifest_NotFound(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
}

func TestExpandSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_Schools.xlsx", "a_LEAs.xlsx", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0o755))

	got, err := expandSources([]Source{
		{Path: dir},
		{Path: "ftp://example.org/Fast_Facts.xlsx"},
		{Path: "single.xlsx", Table: "Single"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Source{
		{Path: filepath.Join(dir, "a_LEAs.xlsx")},
		{Path: filepath.Join(dir, "b_Schools.xlsx")},
		{Path: "ftp://example.org/Fast_Facts.xlsx"},
		{Path: "single.xlsx", Table: "Single"},
	}, got)
}
