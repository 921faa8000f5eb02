package importer

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/schooldata/internal/db"
)

const pkPrefix = "PK_"

// Layout is a parsed header row: the table spec plus, for every spec column,
// the index of the source cell that feeds it.
type Layout struct {
	Spec   db.TableSpec
	Source []int
}

// ParseHeader turns header cells of the form "name TYPE" into a Layout.
// A PK_ prefix on the type marks a primary-key column, a missing type
// defaults to TEXT, and malformed cells are skipped along with their
// column. Without an explicit key the first column becomes the key.
func ParseHeader(table string, cells []string, log *zap.Logger) (Layout, error) {
	layout := Layout{Spec: db.TableSpec{Name: table}}

	for i, cell := range cells {
		tokens := strings.Fields(cell)
		var name, rawType string
		switch len(tokens) {
		case 1:
			name, rawType = tokens[0], string(db.TypeText)
			log.Info("header has no type, defaulting to TEXT",
				zap.String("table", table), zap.String("column", name))
		case 2:
			name, rawType = tokens[0], tokens[1]
		default:
			log.Warn("skipping malformed header",
				zap.String("table", table), zap.Int("index", i), zap.String("header", cell))
			continue
		}

		isPK := false
		if strings.HasPrefix(strings.ToUpper(rawType), pkPrefix) {
			isPK = true
			rawType = rawType[len(pkPrefix):]
		}

		typ, ok := db.ParseColumnType(rawType)
		if !ok || !db.ValidIdentifier(name) {
			log.Warn("skipping malformed header",
				zap.String("table", table), zap.Int("index", i), zap.String("header", cell))
			continue
		}

		layout.Spec.Columns = append(layout.Spec.Columns, db.Column{Name: name, Type: typ})
		layout.Source = append(layout.Source, i)
		if isPK {
			layout.Spec.PrimaryKey = append(layout.Spec.PrimaryKey, name)
		}
	}

	if len(layout.Spec.Columns) == 0 {
		return Layout{}, eris.Errorf("importer: %s: header has no usable columns", table)
	}
	if len(layout.Spec.PrimaryKey) == 0 {
		first := layout.Spec.Columns[0].Name
		log.Warn("no primary key declared, defaulting to first column",
			zap.String("table", table), zap.String("column", first))
		layout.Spec.PrimaryKey = []string{first}
	}
	if err := layout.Spec.Validate(); err != nil {
		return Layout{}, eris.Wrapf(err, "importer: %s", table)
	}
	return layout, nil
}

// Row converts one data row according to the layout. Missing trailing
// cells become NULL.
func (l Layout) Row(cells []string, log *zap.Logger) []any {
	out := make([]any, len(l.Spec.Columns))
	for i, col := range l.Spec.Columns {
		src := l.Source[i]
		if src >= len(cells) {
			continue
		}
		out[i] = ConvertCell(cells[src], col.Type, log)
	}
	return out
}
