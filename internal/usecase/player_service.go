package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/leematt95/football-stats-app/internal/domain/player"
	"github.com/leematt95/football-stats-app/internal/platform/cache"
	"github.com/leematt95/football-stats-app/internal/platform/logging"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// PlayerListResult is one page of players plus the unpaginated total.
type PlayerListResult struct {
	Players []player.Player
	Total   int
	Offset  int
	Limit   int
}

type PlayerService struct {
	repo   player.Repository
	cache  *cache.Store
	logger *logging.Logger
}

func NewPlayerService(repo player.Repository, cacheStore *cache.Store, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		repo:   repo,
		cache:  cacheStore,
		logger: logger,
	}
}

// List returns one page of players, optionally filtered by a
// case-insensitive substring match on name.
func (s *PlayerService) List(ctx context.Context, nameQuery string, offset, limit int) (PlayerListResult, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.List")
	defer span.End()

	if offset < 0 {
		return PlayerListResult{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}
	if limit < 0 {
		return PlayerListResult{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	nameQuery = strings.TrimSpace(nameQuery)

	cacheKey := fmt.Sprintf("players:list:q=%s:o=%d:l=%d", strings.ToLower(nameQuery), offset, limit)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			if result, castOK := cached.(PlayerListResult); castOK {
				return result, nil
			}
		}
	}

	players, total, err := s.repo.List(ctx, player.ListFilter{
		NameQuery: nameQuery,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return PlayerListResult{}, fmt.Errorf("list players: %w", err)
	}

	result := PlayerListResult{Players: players, Total: total, Offset: offset, Limit: limit}
	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, result)
	}
	return result, nil
}

// GetByID returns a single player or ErrNotFound.
func (s *PlayerService) GetByID(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.GetByID")
	defer span.End()

	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	cacheKey := fmt.Sprintf("players:id:%d", id)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			if p, castOK := cached.(player.Player); castOK {
				return p, nil
			}
		}
	}

	p, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player id=%d", ErrNotFound, id)
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, p)
	}
	return p, nil
}

// PurgeCache drops all cached query results. Callers invoke it after a
// successful import so reads observe the fresh season data.
func (s *PlayerService) PurgeCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Purge(ctx)
	s.logger.DebugContext(ctx, "player cache purged")
}
