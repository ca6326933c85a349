package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	"github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/record"
	qb "github.com/riskibarqy/scouting-panel/internal/platform/querybuilder"
)

const scoutPointsTable = "scout_points"

type ScoutRepository struct {
	db     *sqlx.DB
	schema string
}

func NewScoutRepository(db *sqlx.DB, schema string) *ScoutRepository {
	return &ScoutRepository{db: db, schema: schema}
}

func (r *ScoutRepository) ListCodes(ctx context.Context) ([]scout.Code, error) {
	query, err := scoutQuery(r.schema)
	if err != nil {
		return nil, err
	}

	out := make([]scout.Code, 0, 24)
	err = queryMaps(ctx, r.db, query, func(rec map[string]any) error {
		code, err := record.ScoutCode(rec)
		if err != nil {
			return crerr.Wrap(err, "decode scout points row")
		}
		out = append(out, code)
		return nil
	})
	if err != nil {
		return nil, crerr.Wrap(err, "select scout points")
	}

	return out, nil
}

func scoutQuery(schema string) (string, error) {
	query, err := qb.Select("code", "description_en", "points").
		From(schema, scoutPointsTable).
		ToSQL()
	if err != nil {
		return "", crerr.Wrap(err, "build scout points query")
	}
	return query, nil
}
