package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	qb "github.com/riskibarqy/scouting-panel/internal/platform/querybuilder"
)

const windowStatsTable = "player_window_stats"

// SeedData is what BootstrapSeed writes into an empty local warehouse.
type SeedData struct {
	Codes []scout.Code
	Rows  map[kpi.Window][]kpi.PlayerRow
}

// BootstrapSeed fills the local warehouse tables when scout_points is
// empty. It is meant for development databases created by the migrations.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, schema string, data SeedData) error {
	var count int
	countQuery := "SELECT COUNT(1) FROM " + qb.Postgres.QuoteIdent(schema, scoutPointsTable)
	if err := db.GetContext(ctx, &count, countQuery); err != nil {
		return fmt.Errorf("count scout points for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertCode := fmt.Sprintf(`
INSERT INTO %s (code, description_en, points)
VALUES (:code, :description_en, :points)
ON CONFLICT (code) DO NOTHING`, qb.Postgres.QuoteIdent(schema, scoutPointsTable))
	for _, c := range data.Codes {
		sqlQuery, args, err := sqlx.Named(insertCode, map[string]any{
			"code":           c.Code,
			"description_en": c.Description,
			"points":         c.Points,
		})
		if err != nil {
			return fmt.Errorf("bind seed scout %s query: %w", c.Code, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed scout %s: %w", c.Code, err)
		}
	}

	insertRow := windowStatsInsert(schema, data.Codes)
	for _, spec := range kpi.Windows() {
		for i, row := range data.Rows[spec.Window] {
			sqlQuery, args, err := sqlx.Named(insertRow, windowStatsArgs(spec.Window, row, data.Codes))
			if err != nil {
				return fmt.Errorf("bind seed %s row %d query: %w", spec.View, i, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
				return fmt.Errorf("seed %s row %d: %w", spec.View, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

var windowStatsColumns = []string{
	kpi.KeyName, kpi.KeyClub, kpi.KeyPosition,
	kpi.KeyPtsAvg, kpi.KeyBaseAvg,
	kpi.KeyADPPosAvg, kpi.KeyADPPosBase, kpi.KeyADPGenAvg, kpi.KeyADPGenBase,
	kpi.KeyDVSPosAvg, kpi.KeyDVSPosBase, kpi.KeyDVSGenAvg, kpi.KeyDVSGenBase,
	kpi.KeyZScorePosAvg, kpi.KeyZScorePosBase, kpi.KeyZScoreGenAvg, kpi.KeyZScoreGenBase,
	kpi.KeyAvailability, kpi.KeyMatchesCounted,
}

// windowStatsInsert builds the named insert. Scout columns keep their upper
// case code, so they are quoted.
func windowStatsInsert(schema string, codes []scout.Code) string {
	columns := []string{"window_id"}
	params := []string{":window_id"}
	for _, key := range windowStatsColumns {
		columns = append(columns, key)
		params = append(params, ":"+key)
	}
	for _, code := range sortedCodes(codes) {
		columns = append(columns, qb.Postgres.QuoteIdent(kpi.ScoutFieldKey(code)))
		params = append(params, ":"+kpi.ScoutFieldKey(code))
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		qb.Postgres.QuoteIdent(schema, windowStatsTable),
		strings.Join(columns, ", "),
		strings.Join(params, ", "),
	)
}

func windowStatsArgs(window kpi.Window, row kpi.PlayerRow, codes []scout.Code) map[string]any {
	args := map[string]any{"window_id": string(window)}
	for _, key := range windowStatsColumns {
		args[key] = nullable(row.Metric(key))
	}
	for _, code := range sortedCodes(codes) {
		args[kpi.ScoutFieldKey(code)] = nullable(row.Metric(kpi.ScoutFieldKey(code)))
	}
	return args
}

func nullable(v kpi.Value) any {
	if v.Missing() {
		return nil
	}
	return v.Raw()
}

func sortedCodes(codes []scout.Code) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, c.Code)
	}
	sort.Strings(out)
	return out
}
