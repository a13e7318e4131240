package understat

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/leematt95/football-stats-app/internal/platform/logging"
	"github.com/leematt95/football-stats-app/internal/platform/resilience"
	"github.com/leematt95/football-stats-app/internal/usecase"
)

const (
	defaultBaseURL  = "https://understat.com"
	maxResponseSize = 8 << 20
)

// The league page inlines the season player table as a JS-escaped JSON blob.
var playersDataRegex = regexp.MustCompile(`playersData\s*=\s*JSON\.parse\('([^']*)'\)`)

var errUnderstatTransient = crerr.New("understat transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

// Client fetches season player statistics from Understat league pages.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.Breaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.ProbeLimit),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// LeaguePlayers fetches the full season player table for one league. The
// result is a finite materialized slice in provider order; any transport
// error or unparseable payload fails the whole call.
func (c *Client) LeaguePlayers(ctx context.Context, league, season string) ([]usecase.ProviderPlayerRecord, error) {
	league = strings.TrimSpace(league)
	season = strings.TrimSpace(season)
	if league == "" {
		return nil, fmt.Errorf("league is required")
	}
	if season == "" {
		return nil, fmt.Errorf("season is required")
	}

	fullURL := c.baseURL + "/league/" + leaguePathSegment(league) + "/" + season

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "understat circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errUnderstatTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	page, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	players, err := parsePlayersPayload(page)
	if err != nil {
		return nil, fmt.Errorf("parse league players page: %w", err)
	}

	records := make([]usecase.ProviderPlayerRecord, 0, len(players))
	for _, item := range players {
		records = append(records, usecase.ProviderPlayerRecord{
			Name:        item.PlayerName.String(),
			Team:        item.TeamTitle.String(),
			Position:    item.Position.String(),
			Games:       item.Games.String(),
			Minutes:     item.Time.String(),
			Goals:       item.Goals.String(),
			Assists:     item.Assists.String(),
			Shots:       item.Shots.String(),
			KeyPasses:   item.KeyPasses.String(),
			YellowCards: item.YellowCards.String(),
			RedCards:    item.RedCards.String(),
			XG:          item.XG.String(),
			XA:          item.XA.String(),
		})
	}

	return records, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/html")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errUnderstatTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errUnderstatTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errUnderstatTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "understat request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func parsePlayersPayload(page []byte) ([]rawPlayer, error) {
	match := playersDataRegex.FindSubmatch(page)
	if len(match) < 2 {
		return nil, fmt.Errorf("players payload not found in page")
	}

	decoded, err := decodeJSEscapes(string(match[1]))
	if err != nil {
		return nil, fmt.Errorf("decode players payload: %w", err)
	}

	var players []rawPlayer
	if err := sonic.Unmarshal(decoded, &players); err != nil {
		return nil, fmt.Errorf("decode players json: %w", err)
	}

	return players, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Understat spells multi-word league names with underscores (e.g. La_liga).
func leaguePathSegment(league string) string {
	return strings.ReplaceAll(league, " ", "_")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
