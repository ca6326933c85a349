package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/platform/logging"
	"github.com/riskibarqy/scouting-panel/internal/usecase"
)

const maxRequestBody = 64 << 10

type Handler struct {
	panelService *usecase.PanelService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(panelService *usecase.PanelService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		panelService: panelService,
		logger:       logger,
		validator:    validator.New(),
	}
}

type compareRequest struct {
	Names    []string `json:"names" validate:"required,dive,required,max=120"`
	Name     string   `json:"name" validate:"omitempty,max=120"`
	Club     string   `json:"club" validate:"omitempty,max=40"`
	Position string   `json:"position" validate:"omitempty,max=8"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListWindows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWindows")
	defer span.End()

	windows := h.panelService.Windows()
	items := make([]windowDTO, 0, len(windows))
	for _, spec := range windows {
		items = append(items, windowToDTO(spec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListScoutGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoutGroups")
	defer span.End()

	groups, err := h.panelService.ScoutGroups(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list scout groups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupsToDTO(groups))
}

func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFilters")
	defer span.End()

	window := r.PathValue("window")
	opts, err := h.panelService.Filters(ctx, window)
	if err != nil {
		h.logError(ctx, "get filters failed", err, "window", window)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, filtersDTO{
		Window:    windowToDTO(opts.Window),
		Clubs:     opts.Clubs,
		Positions: opts.Positions,
	})
}

func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRankings")
	defer span.End()

	query := viewQueryFromRequest(r)
	view, err := h.panelService.Rankings(ctx, query)
	if err != nil {
		h.logError(ctx, "get rankings failed", err, "window", query.Window)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tableToDTO(view))
}

func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDetails")
	defer span.End()

	query := usecase.DetailsQuery{
		ViewQuery: viewQueryFromRequest(r),
		Scope:     r.URL.Query().Get("scope"),
	}
	view, err := h.panelService.Details(ctx, query)
	if err != nil {
		h.logError(ctx, "get details failed", err, "window", query.Window, "scope", query.Scope)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tableToDTO(view))
}

func (h *Handler) GetPlayerScouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerScouts")
	defer span.End()

	window := r.PathValue("window")
	name := r.PathValue("name")
	view, err := h.panelService.PlayerScouts(ctx, window, name)
	if err != nil {
		h.logError(ctx, "get player scouts failed", err, "window", window, "player", name)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerScoutsToDTO(view))
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Compare")
	defer span.End()

	var req compareRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	window := r.PathValue("window")
	view, err := h.panelService.Compare(ctx, usecase.CompareQuery{
		Window: window,
		Names:  req.Names,
		Criteria: kpi.Criteria{
			Name:     req.Name,
			Club:     req.Club,
			Position: req.Position,
		},
	})
	if err != nil {
		h.logError(ctx, "compare players failed", err, "window", window, "players", len(req.Names))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparisonToDTO(view))
}

func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InvalidateCache")
	defer span.End()

	result := h.panelService.InvalidateCache(ctx)
	writeSuccess(ctx, w, http.StatusOK, invalidateDTO{Entries: result.Entries})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// logError logs client mistakes at warn and everything else at error.
func (h *Handler) logError(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrNotFound), errors.Is(err, context.Canceled):
		h.logger.WarnContext(ctx, msg, args...)
	default:
		h.logger.ErrorContext(ctx, msg, args...)
	}
}

func viewQueryFromRequest(r *http.Request) usecase.ViewQuery {
	q := r.URL.Query()
	return usecase.ViewQuery{
		Window:   r.PathValue("window"),
		Criteria: criteriaFromQuery(q),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	}
}

func criteriaFromQuery(q url.Values) kpi.Criteria {
	return kpi.Criteria{
		Name:     q.Get("name"),
		Club:     q.Get("club"),
		Position: q.Get("position"),
	}
}

func decodeJSONBody(r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
