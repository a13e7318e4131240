package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/leematt95/football-stats-app/external/understat"
	"github.com/leematt95/football-stats-app/internal/config"
	"github.com/leematt95/football-stats-app/internal/domain/player"
	"github.com/leematt95/football-stats-app/internal/infrastructure/repository/memory"
	"github.com/leematt95/football-stats-app/internal/infrastructure/repository/postgres"
	"github.com/leematt95/football-stats-app/internal/interfaces/httpapi"
	"github.com/leematt95/football-stats-app/internal/platform/cache"
	"github.com/leematt95/football-stats-app/internal/platform/logging"
	"github.com/leematt95/football-stats-app/internal/platform/resilience"
	"github.com/leematt95/football-stats-app/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type playerBackend interface {
	player.Repository
	player.TxRunner
}

// Services bundles the use cases shared by the API server and the import
// command.
type Services struct {
	Players *usecase.PlayerService
	Import  *usecase.ImportService
	Close   func() error
}

// BuildServices wires repositories, the stats provider client, and the use
// cases. An empty DB_URL selects the seeded in-memory backend.
func BuildServices(cfg config.Config, logger *logging.Logger) (Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		backend playerBackend
		closeFn = func() error { return nil }
	)
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL is empty, using seeded in-memory repository")
		backend = memory.NewPlayerRepository(memory.SeedPlayers())
	} else {
		db, err := openDB(cfg)
		if err != nil {
			return Services{}, fmt.Errorf("open database: %w", err)
		}
		backend = postgres.NewPlayerRepository(db)
		closeFn = db.Close
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	fetcher := understat.NewClient(understat.ClientConfig{
		BaseURL:    cfg.UnderstatBaseURL,
		Timeout:    cfg.UnderstatTimeout,
		MaxRetries: cfg.UnderstatMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.UnderstatCircuitEnabled,
			FailureThreshold: cfg.UnderstatCircuitFailures,
			OpenTimeout:      cfg.UnderstatCircuitOpenWait,
			ProbeLimit:       cfg.UnderstatCircuitProbeReqs,
		},
	})

	return Services{
		Players: usecase.NewPlayerService(backend, cacheStore, logger),
		Import:  usecase.NewImportService(fetcher, backend, logger),
		Close:   closeFn,
	}, nil
}

func NewHTTPServer(cfg config.Config, svcs Services, logger *slog.Logger) (*http.Server, error) {
	handler := httpapi.NewHandler(svcs.Players, svcs.Import, cfg.League, cfg.Season, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}
