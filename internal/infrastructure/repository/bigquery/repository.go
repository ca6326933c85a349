// Package bigquery reads the scouting warehouse from Google BigQuery.
package bigquery

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/bigquery"
	crerr "github.com/cockroachdb/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	"github.com/riskibarqy/scouting-panel/internal/infrastructure/repository/record"
	qb "github.com/riskibarqy/scouting-panel/internal/platform/querybuilder"
)

type ClientOptions struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

// NewClient builds a BigQuery client. Without explicit credentials the
// application default credentials are used.
func NewClient(ctx context.Context, opts ClientOptions) (*bigquery.Client, error) {
	projectID := strings.TrimSpace(opts.ProjectID)
	if projectID == "" {
		return nil, crerr.New("bigquery project id is required")
	}

	clientOpts := make([]option.ClientOption, 0, 1)
	switch {
	case strings.TrimSpace(opts.CredentialsJSON) != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(opts.CredentialsJSON)))
	case strings.TrimSpace(opts.CredentialsFile) != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, projectID, clientOpts...)
	if err != nil {
		return nil, crerr.Wrap(err, "create bigquery client")
	}
	return client, nil
}

type warehouse struct {
	client  *bigquery.Client
	dataset string
}

func (w warehouse) table(name string) []string {
	return []string{w.client.Project(), w.dataset, name}
}

// each runs query and hands every row to fn with plain Go values.
func (w warehouse) each(ctx context.Context, query string, fn func(rec map[string]any) error) error {
	it, err := w.client.Query(query).Read(ctx)
	if err != nil {
		return err
	}

	for {
		var row map[string]bigquery.Value
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}

		rec := make(map[string]any, len(row))
		for key, value := range row {
			rec[key] = value
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

type KPIRepository struct {
	warehouse
}

func NewKPIRepository(client *bigquery.Client, dataset string) *KPIRepository {
	return &KPIRepository{warehouse{client: client, dataset: dataset}}
}

func (r *KPIRepository) ListByWindow(ctx context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error) {
	query, err := windowQuery(window, r.table(window.View)...)
	if err != nil {
		return nil, err
	}

	out := make([]kpi.PlayerRow, 0, 256)
	err = r.each(ctx, query, func(rec map[string]any) error {
		row, err := record.PlayerRow(rec)
		if err != nil {
			return crerr.Wrapf(err, "decode %s row %d", window.View, len(out))
		}
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "query %s", window.View)
	}
	return out, nil
}

type ScoutRepository struct {
	warehouse
}

func NewScoutRepository(client *bigquery.Client, dataset string) *ScoutRepository {
	return &ScoutRepository{warehouse{client: client, dataset: dataset}}
}

func (r *ScoutRepository) ListCodes(ctx context.Context) ([]scout.Code, error) {
	query, err := scoutQuery(r.table("scout_points")...)
	if err != nil {
		return nil, err
	}

	out := make([]scout.Code, 0, 24)
	err = r.each(ctx, query, func(rec map[string]any) error {
		code, err := record.ScoutCode(rec)
		if err != nil {
			return crerr.Wrap(err, "decode scout points row")
		}
		out = append(out, code)
		return nil
	})
	if err != nil {
		return nil, crerr.Wrap(err, "query scout points")
	}
	return out, nil
}

func windowQuery(window kpi.WindowSpec, table ...string) (string, error) {
	column, descending := window.Ordering.Column()
	direction := qb.Asc
	if descending {
		direction = qb.Desc
	}

	query, err := qb.Select("*").
		Dialect(qb.BigQuery).
		From(table...).
		OrderByNullsLast(column, direction).
		ToSQL()
	if err != nil {
		return "", crerr.Wrapf(err, "build %s query", window.View)
	}
	return query, nil
}

func scoutQuery(table ...string) (string, error) {
	query, err := qb.Select("code", "description_en", "points").
		Dialect(qb.BigQuery).
		From(table...).
		ToSQL()
	if err != nil {
		return "", crerr.Wrap(err, "build scout points query")
	}
	return query, nil
}
