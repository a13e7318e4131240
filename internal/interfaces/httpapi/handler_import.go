package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/leematt95/football-stats-app/internal/usecase"
)

type importPlayersRequest struct {
	League string `json:"league" validate:"omitempty,max=60"`
	Season string `json:"season" validate:"omitempty,numeric"`
}

type importSummaryDTO struct {
	League      string   `json:"league"`
	Season      string   `json:"season"`
	Fetched     int      `json:"fetched"`
	Inserted    int      `json:"inserted"`
	Updated     int      `json:"updated"`
	Skipped     int      `json:"skipped"`
	SkipReasons []string `json:"skipReasons,omitempty"`
	DurationMS  int64    `json:"durationMs"`
}

// RunImportPlayersJob triggers a synchronous import run. The body is
// optional; absent fields fall back to the configured league and season.
func (h *Handler) RunImportPlayersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunImportPlayersJob")
	defer span.End()

	req := importPlayersRequest{}
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	league := strings.TrimSpace(req.League)
	if league == "" {
		league = h.defaultLeague
	}
	season := strings.TrimSpace(req.Season)
	if season == "" {
		season = h.defaultSeason
	}

	summary, err := h.importService.Run(ctx, league, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "import players job failed", "league", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.playerService.PurgeCache(ctx)

	writeSuccess(ctx, w, http.StatusOK, importSummaryDTO{
		League:      summary.League,
		Season:      summary.Season,
		Fetched:     summary.Fetched,
		Inserted:    summary.Inserted,
		Updated:     summary.Updated,
		Skipped:     summary.Skipped,
		SkipReasons: summary.SkipReasons,
		DurationMS:  summary.Duration.Milliseconds(),
	})
}
