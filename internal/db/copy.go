package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// CopyFrom bulk-inserts rows into a table using PostgreSQL COPY protocol.
func CopyFrom(ctx context.Context, c Copier, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := c.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s", table)
	}

	return n, nil
}

// ReplaceTable drops and recreates the table described by spec, then COPYs
// rows into it. All three steps share one transaction.
func ReplaceTable(ctx context.Context, pool Pool, spec TableSpec, rows [][]any) (int64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "db: replace: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, spec.DropSQL(Postgres)); err != nil {
		return 0, eris.Wrapf(err, "db: replace: drop %s", spec.Name)
	}
	if _, err := tx.Exec(ctx, spec.CreateSQL(Postgres)); err != nil {
		return 0, eris.Wrapf(err, "db: replace: create %s", spec.Name)
	}

	n, err := CopyFrom(ctx, tx, spec.TableName(Postgres), spec.ColumnNames(Postgres), rows)
	if err != nil {
		return 0, eris.Wrapf(err, "db: replace: load %s", spec.Name)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "db: replace: commit tx")
	}
	return n, nil
}
