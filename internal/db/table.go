package db

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// Dialect selects identifier and type spelling for generated DDL.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// ColumnType is the declared type of an imported column.
type ColumnType string

const (
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
	TypeText    ColumnType = "TEXT"
)

// ParseColumnType accepts INTEGER, REAL or TEXT in any case.
func ParseColumnType(s string) (ColumnType, bool) {
	switch ColumnType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeInteger:
		return TypeInteger, true
	case TypeReal:
		return TypeReal, true
	case TypeText:
		return TypeText, true
	}
	return "", false
}

// Column is a named, typed column of a TableSpec.
type Column struct {
	Name string
	Type ColumnType
}

// TableSpec describes a table created by a bulk import.
type TableSpec struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is safe to use as a table or column name.
func ValidIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// Validate checks identifiers and that every primary key names a column.
func (t TableSpec) Validate() error {
	if !ValidIdentifier(t.Name) {
		return eris.Errorf("db: invalid table name %q", t.Name)
	}
	if len(t.Columns) == 0 {
		return eris.Errorf("db: table %s has no columns", t.Name)
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if !ValidIdentifier(c.Name) {
			return eris.Errorf("db: table %s: invalid column name %q", t.Name, c.Name)
		}
		if _, ok := ParseColumnType(string(c.Type)); !ok {
			return eris.Errorf("db: table %s: column %s has unsupported type %q", t.Name, c.Name, c.Type)
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return eris.Errorf("db: table %s: duplicate column %s", t.Name, c.Name)
		}
		seen[key] = true
	}
	for _, pk := range t.PrimaryKey {
		if !seen[strings.ToLower(pk)] {
			return eris.Errorf("db: table %s: primary key %s is not a column", t.Name, pk)
		}
	}
	return nil
}

// ColumnNames returns the column names in declaration order, spelled for d.
func (t TableSpec) ColumnNames(d Dialect) []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = ident(d, c.Name)
	}
	return names
}

// TableName returns the table name spelled for d.
func (t TableSpec) TableName(d Dialect) string {
	return ident(d, t.Name)
}

// DropSQL returns a DROP TABLE IF EXISTS statement.
func (t TableSpec) DropSQL(d Dialect) string {
	return "DROP TABLE IF EXISTS " + quote(d, t.Name)
}

// CreateSQL returns the CREATE TABLE statement for the spec.
func (t TableSpec) CreateSQL(d Dialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (", quote(d, t.Name))
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", quote(d, c.Name), sqlType(d, c.Type))
	}
	if len(t.PrimaryKey) > 0 {
		pks := make([]string, len(t.PrimaryKey))
		for i, pk := range t.PrimaryKey {
			pks[i] = quote(d, pk)
		}
		fmt.Fprintf(&b, ", PRIMARY KEY (%s)", strings.Join(pks, ", "))
	}
	b.WriteString(")")
	return b.String()
}

// InsertSQL returns a parameterized INSERT with ? placeholders.
func (t TableSpec) InsertSQL(d Dialect) string {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quote(d, c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(d, t.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// Postgres folds unquoted identifiers to lower case, so imported names are
// lowered to stay reachable from hand-written queries.
func ident(d Dialect, name string) string {
	if d == Postgres {
		return strings.ToLower(name)
	}
	return name
}

func quote(d Dialect, name string) string {
	return pgx.Identifier{ident(d, name)}.Sanitize()
}

func sqlType(d Dialect, t ColumnType) string {
	if d == Postgres {
		switch t {
		case TypeInteger:
			return "BIGINT"
		case TypeReal:
			return "DOUBLE PRECISION"
		}
	}
	return string(t)
}
