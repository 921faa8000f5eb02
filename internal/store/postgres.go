package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/schooldata/internal/db"
	"github.com/sells-group/schooldata/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

var postgresMigration = `
CREATE TABLE IF NOT EXISTS school_records (
	id          BIGSERIAL PRIMARY KEY,
	school_name TEXT NOT NULL,
	location    TEXT
);

CREATE TABLE IF NOT EXISTS leas (
	aun      TEXT PRIMARY KEY,
	lea_name TEXT,
	county   TEXT
);

CREATE TABLE IF NOT EXISTS schools (
	school_id           TEXT PRIMARY KEY,
	aun                 TEXT,
	school_name         TEXT,
	school_address_city TEXT
);

CREATE TABLE IF NOT EXISTS fastfactsschool (
	school_id                     TEXT,
	year                          INTEGER,
	ai_an                         DOUBLE PRECISION,
	asian                         DOUBLE PRECISION,
	nh_pi                         DOUBLE PRECISION,
	african_american              DOUBLE PRECISION,
	hispanic                      DOUBLE PRECISION,
	white                         DOUBLE PRECISION,
	multiracial                   DOUBLE PRECISION,
	economically_disadvantaged    DOUBLE PRECISION,
	english_learner               DOUBLE PRECISION,
	special_education             DOUBLE PRECISION,
	female_school                 DOUBLE PRECISION,
	male_school                   DOUBLE PRECISION,
	school_enrollment             BIGINT,
	grades_offered                TEXT,
	title_i_school                TEXT,
	essa_school_designation       TEXT,
	career_and_technical_programs TEXT,
	PRIMARY KEY (school_id, year)
);
` + cohortTables("BIGINT", "DOUBLE PRECISION") + `
CREATE TABLE IF NOT EXISTS afrrevenue (
	aun               TEXT,
	year              INTEGER,
	local_taxes       DOUBLE PRECISION,
	state_revenue     DOUBLE PRECISION,
	federal_revenue   DOUBLE PRECISION,
	steb_market_value DOUBLE PRECISION,
	PRIMARY KEY (aun, year)
);

CREATE TABLE IF NOT EXISTS afrexpenditure (
	aun                TEXT,
	year               INTEGER,
	instruction        DOUBLE PRECISION,
	support_services   DOUBLE PRECISION,
	transportation     DOUBLE PRECISION,
	total_expenditures DOUBLE PRECISION,
	PRIMARY KEY (aun, year)
);

CREATE TABLE IF NOT EXISTS aidratios (
	aun             TEXT,
	year            INTEGER,
	mv_pi_aid_ratio DOUBLE PRECISION,
	PRIMARY KEY (aun, year)
);

CREATE INDEX IF NOT EXISTS idx_schools_aun ON schools(aun);
CREATE INDEX IF NOT EXISTS idx_fastfacts_year ON fastfactsschool(year);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) ListSchools(ctx context.Context) ([]model.School, error) {
	rows, err := s.pool.Query(ctx, listSchoolsSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list schools")
	}
	return collectPG(rows, scanSchool, "list schools")
}

func (s *PostgresStore) GetSchool(ctx context.Context, id int64) (*model.School, error) {
	school, err := scanSchool(s.pool.QueryRow(ctx, rebind(getSchoolSQL), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get school %d", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get school %d", id)
	}
	return &school, nil
}

func (s *PostgresStore) SearchSchools(ctx context.Context, query string) ([]model.School, error) {
	rows, err := s.pool.Query(ctx, rebind(searchSchoolsSQL), containsPattern(query))
	if err != nil {
		return nil, eris.Wrap(err, "postgres: search schools")
	}
	return collectPG(rows, scanSchool, "search schools")
}

func (s *PostgresStore) CreateSchool(ctx context.Context, in model.SchoolInput) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO school_records (school_name, location) VALUES ($1, $2) RETURNING id`,
		in.SchoolName, in.Location,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: insert school")
	}
	return id, nil
}

func (s *PostgresStore) UpdateSchool(ctx context.Context, id int64, in model.SchoolInput) error {
	_, err := s.pool.Exec(ctx, rebind(updateSchoolSQL), in.SchoolName, in.Location, id)
	return eris.Wrapf(err, "postgres: update school %d", id)
}

func (s *PostgresStore) DeleteSchool(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, rebind(deleteSchoolSQL), id)
	return eris.Wrapf(err, "postgres: delete school %d", id)
}

func (s *PostgresStore) DeleteAllSchools(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, deleteAllSQL)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete all schools")
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) Demographics(ctx context.Context) ([]model.DemographicRecord, error) {
	rows, err := s.pool.Query(ctx, demographicsSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: demographics")
	}
	return collectPG(rows, scanDemographic, "demographics")
}

func (s *PostgresStore) GraduationRates(ctx context.Context, aun string) ([]model.GraduationRecord, error) {
	q, args := graduationQuery(aun)
	rows, err := s.pool.Query(ctx, rebind(q), args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: graduation rates")
	}
	return collectPG(rows, scanGraduation, "graduation rates")
}

func (s *PostgresStore) FinancialAnalysis(ctx context.Context) ([]model.FinancialRecord, error) {
	rows, err := s.pool.Query(ctx, financialSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: financial analysis")
	}
	return collectPG(rows, scanFinancial, "financial analysis")
}

func (s *PostgresStore) SchoolPerformance(ctx context.Context) ([]model.PerformanceRecord, error) {
	rows, err := s.pool.Query(ctx, performanceSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: school performance")
	}
	return collectPG(rows, scanPerformance, "school performance")
}

func (s *PostgresStore) SearchDirectory(ctx context.Context, term string, sort model.SortKey) ([]model.DirectoryResult, error) {
	q, args := directoryQuery(term, sort)
	rows, err := s.pool.Query(ctx, rebind(q), args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: search directory")
	}
	return collectPG(rows, scanDirectory, "search directory")
}

func (s *PostgresStore) ImportTable(ctx context.Context, spec db.TableSpec, rows [][]any) (int64, error) {
	n, err := db.ReplaceTable(ctx, s.pool, spec, rows)
	return n, eris.Wrapf(err, "postgres: import %s", spec.Name)
}

// collectPG scans every row with scan and always returns a non-nil slice.
func collectPG[T any](rows pgx.Rows, scan func(scannable) (T, error), what string) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: scan %s", what)
		}
		out = append(out, v)
	}
	return out, eris.Wrapf(rows.Err(), "postgres: %s iterate", what)
}
