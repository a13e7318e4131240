package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leematt95/football-stats-app/internal/domain/player"
	"github.com/leematt95/football-stats-app/internal/platform/logging"
)

// StatsFetcher pulls the season player table from the remote stats provider.
type StatsFetcher interface {
	LeaguePlayers(ctx context.Context, league, season string) ([]ProviderPlayerRecord, error)
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	League      string        `json:"league"`
	Season      string        `json:"season"`
	Fetched     int           `json:"fetched"`
	Inserted    int           `json:"inserted"`
	Updated     int           `json:"updated"`
	Skipped     int           `json:"skipped"`
	SkipReasons []string      `json:"skipReasons,omitempty"`
	Duration    time.Duration `json:"-"`
}

type ImportService struct {
	fetcher StatsFetcher
	tx      player.TxRunner
	logger  *logging.Logger
	now     func() time.Time
}

func NewImportService(fetcher StatsFetcher, tx player.TxRunner, logger *logging.Logger) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		fetcher: fetcher,
		tx:      tx,
		logger:  logger,
		now:     time.Now,
	}
}

// Run fetches the season player table and reconciles it against the store
// inside a single transaction. A fetch or storage failure aborts the run
// with nothing persisted; invalid records are skipped one at a time and
// counted in the summary. Re-running with unchanged provider data converges
// to pure updates.
func (s *ImportService) Run(ctx context.Context, league, season string) (ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.Run")
	defer span.End()

	started := s.now()
	summary := ImportSummary{League: league, Season: season}

	league = strings.TrimSpace(league)
	season = strings.TrimSpace(season)
	if league == "" {
		return summary, fmt.Errorf("%w: league is required", ErrInvalidInput)
	}
	if _, err := strconv.Atoi(season); err != nil {
		return summary, fmt.Errorf("%w: season %q is not an integer", ErrInvalidInput, season)
	}

	records, err := s.fetcher.LeaguePlayers(ctx, league, season)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	summary.Fetched = len(records)
	s.logger.InfoContext(ctx, "fetched provider player records",
		"league", league, "season", season, "count", len(records))

	err = s.tx.WithinTx(ctx, func(store player.Store) error {
		for _, rec := range records {
			p, normErr := NormalizePlayerRecord(rec, s.now())
			if normErr == nil {
				if vErr := p.Validate(); vErr != nil {
					normErr = fmt.Errorf("%w: %v", ErrValidation, vErr)
				}
			}
			if normErr != nil {
				summary.Skipped++
				summary.SkipReasons = append(summary.SkipReasons, normErr.Error())
				s.logger.WarnContext(ctx, "skipping provider record", "reason", normErr.Error())
				continue
			}

			existing, found, findErr := store.FindByKey(ctx, p.Name, p.Team)
			if findErr != nil {
				return fmt.Errorf("find player %s: %w", p.Key(), findErr)
			}
			if found {
				p.ID = existing.ID
				if updErr := store.Update(ctx, p); updErr != nil {
					return fmt.Errorf("update player %s: %w", p.Key(), updErr)
				}
				summary.Updated++
				continue
			}

			if _, insErr := store.Insert(ctx, p); insErr != nil {
				return fmt.Errorf("insert player %s: %w", p.Key(), insErr)
			}
			summary.Inserted++
		}
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	summary.Duration = s.now().Sub(started)
	s.logger.InfoContext(ctx, "import run finished",
		"league", league,
		"season", season,
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"duration", summary.Duration.String(),
	)
	return summary, nil
}
