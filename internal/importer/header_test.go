package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sells-group/schooldata/internal/db"
)

func nopLog() *zap.Logger { return zap.NewNop() }

func TestParseHeader_TypesAndKeys(t *testing.T) {
	layout, err := ParseHeader("LEAs", []string{"aun PK_INTEGER", "lea_name TEXT", "pct_poverty REAL"}, nopLog())
	require.NoError(t, err)

	assert.Equal(t, db.TableSpec{
		Name: "LEAs",
		Columns: []db.Column{
			{Name: "aun", Type: db.TypeInteger},
			{Name: "lea_name", Type: db.TypeText},
			{Name: "pct_poverty", Type: db.TypeReal},
		},
		PrimaryKey: []string{"aun"},
	}, layout.Spec)
	assert.Equal(t, []int{0, 1, 2}, layout.Source)
}

func TestParseHeader_CompositeKeyLowerCaseType(t *testing.T) {
	layout, err := ParseHeader("FastFactsSchool", []string{"school_id PK_INTEGER", "year pk_integer", "enrollment integer"}, nopLog())
	require.NoError(t, err)
	assert.Equal(t, []string{"school_id", "year"}, layout.Spec.PrimaryKey)
	assert.Equal(t, db.TypeInteger, layout.Spec.Columns[2].Type)
}

func TestParseHeader_MissingTypeDefaultsToText(t *testing.T) {
	layout, err := ParseHeader("Schools", []string{"school_id PK_INTEGER", "school_name"}, nopLog())
	require.NoError(t, err)
	assert.Equal(t, db.Column{Name: "school_name", Type: db.TypeText}, layout.Spec.Columns[1])
}

func TestParseHeader_MalformedSkippedWithColumn(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	layout, err := ParseHeader("Schools", []string{
		"school_id PK_INTEGER",
		"school name TEXT",
		"city VARCHAR",
		"county-name TEXT",
		"",
		"county TEXT",
	}, zap.New(core))
	require.NoError(t, err)

	require.Len(t, layout.Spec.Columns, 2)
	assert.Equal(t, "county", layout.Spec.Columns[1].Name)
	assert.Equal(t, []int{0, 5}, layout.Source)
	assert.Equal(t, 4, logs.FilterMessage("skipping malformed header").Len())
}

func TestParseHeader_DefaultsKeyToFirstColumn(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	layout, err := ParseHeader("Cities", []string{"city TEXT", "county TEXT"}, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, []string{"city"}, layout.Spec.PrimaryKey)
	assert.Equal(t, 1, logs.FilterMessage("no primary key declared, defaulting to first column").Len())
}

func TestParseHeader_NoUsableColumns(t *testing.T) {
	_, err := ParseHeader("Empty", []string{"a b c", ""}, nopLog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable columns")
}

func TestParseHeader_DuplicateColumn(t *testing.T) {
	_, err := ParseHeader("Dup", []string{"id PK_INTEGER", "name TEXT", "NAME TEXT"}, nopLog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestParseHeader_InvalidTableName(t *testing.T) {
	_, err := ParseHeader("bad-name", []string{"id PK_INTEGER"}, nopLog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")
}

func TestLayoutRow(t *testing.T) {
	layout, err := ParseHeader("LEAs", []string{"aun PK_INTEGER", "bad header cell", "lea_name TEXT", "pct REAL"}, nopLog())
	require.NoError(t, err)

	row := layout.Row([]string{"101", "ignored", "Erie City SD", "12.5"}, nopLog())
	assert.Equal(t, []any{int64(101), "Erie City SD", 12.5}, row)

	short := layout.Row([]string{"102"}, nopLog())
	assert.Equal(t, []any{int64(102), nil, nil}, short)
}
