package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/schooldata/internal/db"
	"github.com/sells-group/schooldata/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// Every connection to :memory: is a separate database.
	if strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sqlDB}, nil
}

var sqliteMigration = `
CREATE TABLE IF NOT EXISTS school_records (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	school_name TEXT NOT NULL,
	location    TEXT
);

CREATE TABLE IF NOT EXISTS LEAs (
	aun      TEXT PRIMARY KEY,
	lea_name TEXT,
	county   TEXT
);

CREATE TABLE IF NOT EXISTS Schools (
	school_id           TEXT PRIMARY KEY,
	aun                 TEXT,
	school_name         TEXT,
	school_address_city TEXT
);

CREATE TABLE IF NOT EXISTS FastFactsSchool (
	school_id                     TEXT,
	year                          INTEGER,
	ai_an                         REAL,
	asian                         REAL,
	nh_pi                         REAL,
	african_american              REAL,
	hispanic                      REAL,
	white                         REAL,
	multiracial                   REAL,
	economically_disadvantaged    REAL,
	english_learner               REAL,
	special_education             REAL,
	female_school                 REAL,
	male_school                   REAL,
	school_enrollment             INTEGER,
	grades_offered                TEXT,
	title_i_school                TEXT,
	essa_school_designation       TEXT,
	career_and_technical_programs TEXT,
	PRIMARY KEY (school_id, year)
);
` + cohortTablesSQLite + `
CREATE TABLE IF NOT EXISTS AFRRevenue (
	aun               TEXT,
	year              INTEGER,
	local_taxes       REAL,
	state_revenue     REAL,
	federal_revenue   REAL,
	steb_market_value REAL,
	PRIMARY KEY (aun, year)
);

CREATE TABLE IF NOT EXISTS AFRExpenditure (
	aun                TEXT,
	year               INTEGER,
	instruction        REAL,
	support_services   REAL,
	transportation     REAL,
	total_expenditures REAL,
	PRIMARY KEY (aun, year)
);

CREATE TABLE IF NOT EXISTS AidRatios (
	aun             TEXT,
	year            INTEGER,
	mv_pi_aid_ratio REAL,
	PRIMARY KEY (aun, year)
);

CREATE INDEX IF NOT EXISTS idx_schools_aun ON Schools(aun);
CREATE INDEX IF NOT EXISTS idx_fastfacts_year ON FastFactsSchool(year);
`

var cohortTablesSQLite = cohortTables("INTEGER", "REAL")

func cohortTables(intType, realType string) string {
	var b strings.Builder
	for _, name := range []string{"CohortFourYear", "CohortFiveYear", "CohortSixYear"} {
		b.WriteString(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	aun                                  TEXT,
	year                                 INTEGER,
	total_grads                          ` + intType + `,
	total_cohort                         ` + intType + `,
	white_grad_rate                      ` + realType + `,
	african_american_grad_rate           ` + realType + `,
	hispanic_grad_rate                   ` + realType + `,
	economically_disadvantaged_grad_rate ` + realType + `,
	PRIMARY KEY (aun, year)
);
`)
	}
	return b.String()
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListSchools(ctx context.Context) ([]model.School, error) {
	rows, err := s.db.QueryContext(ctx, listSchoolsSQL)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list schools")
	}
	return collectSQL(rows, scanSchool, "list schools")
}

func (s *SQLiteStore) GetSchool(ctx context.Context, id int64) (*model.School, error) {
	school, err := scanSchool(s.db.QueryRowContext(ctx, getSchoolSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get school %d", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get school %d", id)
	}
	return &school, nil
}

func (s *SQLiteStore) SearchSchools(ctx context.Context, query string) ([]model.School, error) {
	rows, err := s.db.QueryContext(ctx, searchSchoolsSQL, containsPattern(query))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: search schools")
	}
	return collectSQL(rows, scanSchool, "search schools")
}

func (s *SQLiteStore) CreateSchool(ctx context.Context, in model.SchoolInput) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO school_records (school_name, location) VALUES (?, ?)`,
		in.SchoolName, in.Location,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: insert school")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: last insert id")
	}
	return id, nil
}

func (s *SQLiteStore) UpdateSchool(ctx context.Context, id int64, in model.SchoolInput) error {
	_, err := s.db.ExecContext(ctx, updateSchoolSQL, in.SchoolName, in.Location, id)
	return eris.Wrapf(err, "sqlite: update school %d", id)
}

func (s *SQLiteStore) DeleteSchool(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, deleteSchoolSQL, id)
	return eris.Wrapf(err, "sqlite: delete school %d", id)
}

func (s *SQLiteStore) DeleteAllSchools(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteAllSQL)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete all schools")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return n, nil
}

func (s *SQLiteStore) Demographics(ctx context.Context) ([]model.DemographicRecord, error) {
	rows, err := s.db.QueryContext(ctx, demographicsSQL)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: demographics")
	}
	return collectSQL(rows, scanDemographic, "demographics")
}

func (s *SQLiteStore) GraduationRates(ctx context.Context, aun string) ([]model.GraduationRecord, error) {
	q, args := graduationQuery(aun)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: graduation rates")
	}
	return collectSQL(rows, scanGraduation, "graduation rates")
}

func (s *SQLiteStore) FinancialAnalysis(ctx context.Context) ([]model.FinancialRecord, error) {
	rows, err := s.db.QueryContext(ctx, financialSQL)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: financial analysis")
	}
	return collectSQL(rows, scanFinancial, "financial analysis")
}

func (s *SQLiteStore) SchoolPerformance(ctx context.Context) ([]model.PerformanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, performanceSQL)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: school performance")
	}
	return collectSQL(rows, scanPerformance, "school performance")
}

func (s *SQLiteStore) SearchDirectory(ctx context.Context, term string, sort model.SortKey) ([]model.DirectoryResult, error) {
	q, args := directoryQuery(term, sort)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: search directory")
	}
	return collectSQL(rows, scanDirectory, "search directory")
}

func (s *SQLiteStore) ImportTable(ctx context.Context, spec db.TableSpec, rows [][]any) (int64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: import: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, spec.DropSQL(db.SQLite)); err != nil {
		return 0, eris.Wrapf(err, "sqlite: import: drop %s", spec.Name)
	}
	if _, err := tx.ExecContext(ctx, spec.CreateSQL(db.SQLite)); err != nil {
		return 0, eris.Wrapf(err, "sqlite: import: create %s", spec.Name)
	}

	stmt, err := tx.PrepareContext(ctx, spec.InsertSQL(db.SQLite))
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: import: prepare insert %s", spec.Name)
	}
	defer stmt.Close() //nolint:errcheck

	var n int64
	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: import: insert %s row %d", spec.Name, i+1)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: import: commit tx")
	}
	return n, nil
}

// collectSQL scans every row with scan and always returns a non-nil slice.
func collectSQL[T any](rows *sql.Rows, scan func(scannable) (T, error), what string) ([]T, error) {
	defer rows.Close() //nolint:errcheck

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan %s", what)
		}
		out = append(out, v)
	}
	return out, eris.Wrapf(rows.Err(), "sqlite: %s iterate", what)
}
