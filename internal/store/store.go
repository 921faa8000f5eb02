package store

import (
	"context"
	"errors"

	"github.com/sells-group/schooldata/internal/db"
	"github.com/sells-group/schooldata/internal/model"
)

// ErrNotFound is returned when a lookup by identifier matches no row.
var ErrNotFound = errors.New("not found")

// DirectoryLimit caps the number of rows returned by SearchDirectory.
const DirectoryLimit = 100

// Store defines the data access used by the query service.
type Store interface {
	// School records
	ListSchools(ctx context.Context) ([]model.School, error)
	GetSchool(ctx context.Context, id int64) (*model.School, error)
	SearchSchools(ctx context.Context, query string) ([]model.School, error)
	CreateSchool(ctx context.Context, in model.SchoolInput) (int64, error)
	UpdateSchool(ctx context.Context, id int64, in model.SchoolInput) error
	DeleteSchool(ctx context.Context, id int64) error
	DeleteAllSchools(ctx context.Context) (int64, error)

	// Analytics over the star schema
	Demographics(ctx context.Context) ([]model.DemographicRecord, error)
	GraduationRates(ctx context.Context, aun string) ([]model.GraduationRecord, error)
	FinancialAnalysis(ctx context.Context) ([]model.FinancialRecord, error)
	SchoolPerformance(ctx context.Context) ([]model.PerformanceRecord, error)
	SearchDirectory(ctx context.Context, term string, sort model.SortKey) ([]model.DirectoryResult, error)

	// Bulk load
	ImportTable(ctx context.Context, spec db.TableSpec, rows [][]any) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
