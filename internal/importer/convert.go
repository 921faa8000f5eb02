package importer

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/schooldata/internal/db"
)

// ConvertCell converts a spreadsheet cell to the Go value stored for the
// column type. Empty cells and numbers that fail to parse become nil.
func ConvertCell(raw string, typ db.ColumnType, log *zap.Logger) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	switch typ {
	case db.TypeInteger:
		n := strings.ReplaceAll(s, ",", "")
		if v, err := strconv.ParseInt(n, 10, 64); err == nil {
			return v
		}
		// Spreadsheets often render whole numbers as "12.0".
		if f, err := strconv.ParseFloat(n, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		log.Debug("unparsable integer cell", zap.String("value", raw))
		return nil
	case db.TypeReal:
		n := strings.ReplaceAll(s, ",", "")
		if v, err := strconv.ParseFloat(n, 64); err == nil {
			return v
		}
		log.Debug("unparsable real cell", zap.String("value", raw))
		return nil
	default:
		return raw
	}
}
