package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/scouting-panel/internal/domain/comparison"
	"github.com/riskibarqy/scouting-panel/internal/domain/display"
	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
	"github.com/riskibarqy/scouting-panel/internal/platform/metrics"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// CacheInvalidator drops cached warehouse reads and reports how many
// entries went away.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) int
}

type PanelService struct {
	kpiRepo      kpi.Repository
	scoutRepo    scout.Repository
	logger       *logging.Logger
	metrics      *metrics.Manager
	invalidators []CacheInvalidator
}

func NewPanelService(
	kpiRepo kpi.Repository,
	scoutRepo scout.Repository,
	logger *logging.Logger,
	m *metrics.Manager,
	invalidators ...CacheInvalidator,
) *PanelService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PanelService{
		kpiRepo:      kpiRepo,
		scoutRepo:    scoutRepo,
		logger:       logger,
		metrics:      m,
		invalidators: invalidators,
	}
}

// ViewQuery selects and orders the rows of a table view. An empty Sort keeps
// the warehouse order.
type ViewQuery struct {
	Window   string
	Criteria kpi.Criteria
	Sort     string
	Order    string
}

type DetailsQuery struct {
	ViewQuery
	Scope string
}

type TableView struct {
	Window kpi.WindowSpec
	Spec   display.ViewSpec
	Scope  display.Scope
	Rows   []display.Projection
	// Total counts the window rows before filtering.
	Total int
}

type FilterOptions struct {
	Window    kpi.WindowSpec
	Clubs     []string
	Positions []string
}

type CompareQuery struct {
	Window   string
	Names    []string
	Criteria kpi.Criteria
}

type ComparisonView struct {
	Window kpi.WindowSpec
	comparison.Comparison
}

type PlayerScouts struct {
	Window   kpi.WindowSpec
	Player   comparison.Player
	Sections []display.BreakdownSection
}

type InvalidateResult struct {
	Entries int
}

func (s *PanelService) Windows() []kpi.WindowSpec {
	return kpi.Windows()
}

func (s *PanelService) ScoutGroups(ctx context.Context) (scout.Groups, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.ScoutGroups")
	defer span.End()

	return s.loadGroups(ctx)
}

// Filters lists the selectable clubs and positions of a window, each with
// the "All" sentinel first.
func (s *PanelService) Filters(ctx context.Context, windowID string) (FilterOptions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.Filters")
	defer span.End()

	window, rows, err := s.loadWindow(ctx, windowID)
	if err != nil {
		return FilterOptions{}, err
	}

	clubs := append([]string{kpi.FilterAll}, kpi.Clubs(rows)...)
	positions := make([]string, 0, len(kpi.Positions)+1)
	positions = append(positions, kpi.FilterAll)
	for _, p := range kpi.Positions {
		positions = append(positions, string(p))
	}

	return FilterOptions{Window: window, Clubs: clubs, Positions: positions}, nil
}

func (s *PanelService) Rankings(ctx context.Context, query ViewQuery) (TableView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.Rankings")
	defer span.End()

	return s.table(ctx, query, display.RankingsView(), "")
}

func (s *PanelService) Details(ctx context.Context, query DetailsQuery) (TableView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.Details")
	defer span.End()

	scope, err := display.ParseScope(query.Scope)
	if err != nil {
		return TableView{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.table(ctx, query.ViewQuery, display.DetailsView(scope), scope)
}

func (s *PanelService) table(ctx context.Context, query ViewQuery, spec display.ViewSpec, scope display.Scope) (TableView, error) {
	descending, err := parseOrder(query.Order)
	if err != nil {
		return TableView{}, err
	}
	sortKey := strings.TrimSpace(query.Sort)
	if sortKey != "" {
		if _, ok := spec.Column(sortKey); !ok {
			return TableView{}, fmt.Errorf("%w: %w: %s", ErrInvalidInput, display.ErrUnknownColumn, sortKey)
		}
	}

	window, rows, err := s.loadWindow(ctx, query.Window)
	if err != nil {
		return TableView{}, err
	}

	projected := display.Project(kpi.Filter(rows, query.Criteria), spec)
	if sortKey != "" {
		if err := display.SortProjections(projected, spec, sortKey, descending); err != nil {
			return TableView{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	return TableView{
		Window: window,
		Spec:   spec,
		Scope:  scope,
		Rows:   projected,
		Total:  len(rows),
	}, nil
}

// Compare builds the side-by-side view of up to comparison.MaxPlayers
// players picked from the filtered rows.
func (s *PanelService) Compare(ctx context.Context, query CompareQuery) (ComparisonView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.Compare")
	defer span.End()

	if len(query.Names) > comparison.MaxPlayers {
		return ComparisonView{}, fmt.Errorf("%w: %w: got %d, max %d", ErrInvalidInput, comparison.ErrTooManyPlayers, len(query.Names), comparison.MaxPlayers)
	}
	if len(query.Names) == 0 {
		return ComparisonView{}, fmt.Errorf("%w: %w", ErrInvalidInput, comparison.ErrNoPlayers)
	}

	window, rows, err := s.loadWindow(ctx, query.Window)
	if err != nil {
		return ComparisonView{}, err
	}
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return ComparisonView{}, err
	}

	built, err := comparison.Build(kpi.Filter(rows, query.Criteria), query.Names, groups)
	if err != nil {
		return ComparisonView{}, comparisonError(err)
	}
	return ComparisonView{Window: window, Comparison: built}, nil
}

// PlayerScouts returns the scout breakdown of the first row named name.
func (s *PanelService) PlayerScouts(ctx context.Context, windowID, name string) (PlayerScouts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.PlayerScouts")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return PlayerScouts{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	window, rows, err := s.loadWindow(ctx, windowID)
	if err != nil {
		return PlayerScouts{}, err
	}
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return PlayerScouts{}, err
	}

	for _, row := range rows {
		if row.DisplayName() != name {
			continue
		}
		return PlayerScouts{
			Window: window,
			Player: comparison.Player{
				Name:     name,
				Position: row.Position.OrElse(""),
				Club:     row.Club.OrElse(""),
			},
			Sections: display.Breakdown(row, groups),
		}, nil
	}
	return PlayerScouts{}, fmt.Errorf("%w: player=%s window=%s", ErrNotFound, name, window.Window)
}

// InvalidateCache drops every cached query result and the reference table.
func (s *PanelService) InvalidateCache(ctx context.Context) InvalidateResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.PanelService.InvalidateCache")
	defer span.End()

	var result InvalidateResult
	for _, inv := range s.invalidators {
		result.Entries += inv.Invalidate(ctx)
	}
	s.logger.InfoContext(ctx, "cache invalidated", "entries", result.Entries)
	return result
}

func (s *PanelService) loadWindow(ctx context.Context, windowID string) (kpi.WindowSpec, []kpi.PlayerRow, error) {
	window, err := kpi.LookupWindow(windowID)
	if err != nil {
		return kpi.WindowSpec{}, nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	rows, err := s.kpiRepo.ListByWindow(ctx, window)
	if err != nil {
		return kpi.WindowSpec{}, nil, warehouseError("list "+window.View, err)
	}
	return window, rows, nil
}

func (s *PanelService) loadGroups(ctx context.Context) (scout.Groups, error) {
	codes, err := s.scoutRepo.ListCodes(ctx)
	if err != nil {
		return scout.Groups{}, warehouseError("list scout points", err)
	}
	return scout.GroupScouts(scout.NewTable(codes)), nil
}

func parseOrder(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", OrderAsc:
		return false, nil
	case OrderDesc:
		return true, nil
	}
	return false, fmt.Errorf("%w: order must be %s or %s", ErrInvalidInput, OrderAsc, OrderDesc)
}

func comparisonError(err error) error {
	if errors.Is(err, comparison.ErrPlayerNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
