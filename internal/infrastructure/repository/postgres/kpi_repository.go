package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/record"
	qb "github.com/riskibarqy/scouting-panel/internal/platform/querybuilder"
)

// KPIRepository reads the precomputed window views. Views carry a dynamic
// set of avg_<CODE> columns, so rows are scanned into maps.
type KPIRepository struct {
	db     *sqlx.DB
	schema string
}

func NewKPIRepository(db *sqlx.DB, schema string) *KPIRepository {
	return &KPIRepository{db: db, schema: schema}
}

func (r *KPIRepository) ListByWindow(ctx context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error) {
	query, err := windowQuery(window, r.schema)
	if err != nil {
		return nil, err
	}

	out := make([]kpi.PlayerRow, 0, 256)
	err = queryMaps(ctx, r.db, query, func(rec map[string]any) error {
		row, err := record.PlayerRow(rec)
		if err != nil {
			return crerr.Wrapf(err, "decode %s row %d", window.View, len(out))
		}
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "select %s", window.View)
	}

	return out, nil
}

func windowQuery(window kpi.WindowSpec, schema string) (string, error) {
	column, descending := window.Ordering.Column()
	direction := qb.Asc
	if descending {
		direction = qb.Desc
	}

	query, err := qb.Select("*").
		From(schema, window.View).
		OrderByNullsLast(column, direction).
		ToSQL()
	if err != nil {
		return "", crerr.Wrapf(err, "build %s query", window.View)
	}
	return query, nil
}
