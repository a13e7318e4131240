package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leematt95/football-stats-app/internal/domain/player"
	"github.com/leematt95/football-stats-app/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	offset, err := parseQueryInt(query.Get("offset"), 0)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: offset must be an integer", usecase.ErrInvalidInput))
		return
	}
	limit, err := parseQueryInt(query.Get("limit"), 0)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
		return
	}

	req := listPlayersRequest{
		Search: strings.TrimSpace(query.Get("search")),
		Offset: offset,
		Limit:  limit,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.playerService.List(ctx, req.Search, req.Offset, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "search", req.Search, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(result.Players))
	for _, p := range result.Players {
		items = append(items, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, playerListDTO{
		Items:  items,
		Total:  result.Total,
		Offset: result.Offset,
		Limit:  result.Limit,
	})
}

func (h *Handler) GetPlayerByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerByID")
	defer span.End()

	rawID := r.PathValue("playerID")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: player id %q is not an integer", usecase.ErrInvalidInput, rawID))
		return
	}

	p, err := h.playerService.GetByID(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, p))
}

func parseQueryInt(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

type listPlayersRequest struct {
	Search string `validate:"max=120"`
	Offset int    `validate:"min=0"`
	Limit  int    `validate:"min=0,max=100"`
}

type playerListDTO struct {
	Items  []playerDTO `json:"items"`
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
}

type playerDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Position    string  `json:"position"`
	Matches     int     `json:"matches"`
	Minutes     int     `json:"minutes"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	Shots       int     `json:"shots"`
	KeyPasses   int     `json:"keyPasses"`
	YellowCards int     `json:"yellowCards"`
	RedCards    int     `json:"redCards"`
	XG          float64 `json:"xg"`
	XA          float64 `json:"xa"`
	LastUpdated string  `json:"lastUpdatedAt"`
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:          v.ID,
		Name:        v.Name,
		Team:        v.Team,
		Position:    v.Position,
		Matches:     v.Matches,
		Minutes:     v.Minutes,
		Goals:       v.Goals,
		Assists:     v.Assists,
		Shots:       v.Shots,
		KeyPasses:   v.KeyPasses,
		YellowCards: v.YellowCards,
		RedCards:    v.RedCards,
		XG:          v.XG,
		XA:          v.XA,
		LastUpdated: v.LastUpdated.UTC().Format(time.RFC3339),
	}
}
