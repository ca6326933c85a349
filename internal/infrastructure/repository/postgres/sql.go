package postgres

import (
	"context"
	"errors"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const sqlStateInvalidStatementName = "26000"

// isUnnamedPreparedStatementMissing matches the error transaction-mode
// poolers produce when the unnamed statement was parsed on another backend.
func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateInvalidStatementName {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unnamed prepared statement does not exist") ||
		strings.Contains(msg, "("+sqlStateInvalidStatementName+")")
}

// queryMaps streams every result row to fn as a column map. The query is
// retried once when a pooler lost the prepared statement.
func queryMaps(ctx context.Context, db *sqlx.DB, query string, fn func(rec map[string]any) error) error {
	err := scanMaps(ctx, db, query, fn)
	if isUnnamedPreparedStatementMissing(err) {
		err = scanMaps(ctx, db, query, fn)
	}
	return err
}

func scanMaps(ctx context.Context, db *sqlx.DB, query string, fn func(rec map[string]any) error) error {
	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		rec := make(map[string]any, 64)
		if err := rows.MapScan(rec); err != nil {
			return crerr.Wrap(err, "scan row")
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}
