package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/leematt95/football-stats-app/internal/domain/player"
	"github.com/leematt95/football-stats-app/internal/platform/logging"
)

type stubFetcher struct {
	records []ProviderPlayerRecord
	err     error
	calls   int
}

func (f *stubFetcher) LeaguePlayers(ctx context.Context, league, season string) ([]ProviderPlayerRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

// stubTxRunner mimics transactional semantics: mutations apply to a staged
// copy and publish only when the callback succeeds.
type stubTxRunner struct {
	players map[string]player.Player
	nextID  int64

	failInsert bool
	failFind   bool
}

func newStubTxRunner() *stubTxRunner {
	return &stubTxRunner{players: map[string]player.Player{}, nextID: 1}
}

func (r *stubTxRunner) WithinTx(ctx context.Context, fn func(player.Store) error) error {
	staged := &stubStore{
		players:    make(map[string]player.Player, len(r.players)),
		nextID:     r.nextID,
		failInsert: r.failInsert,
		failFind:   r.failFind,
	}
	for k, v := range r.players {
		staged.players[k] = v
	}
	if err := fn(staged); err != nil {
		return err
	}
	r.players = staged.players
	r.nextID = staged.nextID
	return nil
}

type stubStore struct {
	players    map[string]player.Player
	nextID     int64
	failInsert bool
	failFind   bool
}

func storeKey(name, team string) string { return name + "|" + team }

func (s *stubStore) FindByKey(ctx context.Context, name, team string) (player.Player, bool, error) {
	if s.failFind {
		return player.Player{}, false, fmt.Errorf("connection reset")
	}
	p, ok := s.players[storeKey(name, team)]
	return p, ok, nil
}

func (s *stubStore) Insert(ctx context.Context, p player.Player) (int64, error) {
	if s.failInsert {
		return 0, fmt.Errorf("disk full")
	}
	p.ID = s.nextID
	s.nextID++
	s.players[storeKey(p.Name, p.Team)] = p
	return p.ID, nil
}

func (s *stubStore) Update(ctx context.Context, p player.Player) error {
	s.players[storeKey(p.Name, p.Team)] = p
	return nil
}

func record(name, team, goals string) ProviderPlayerRecord {
	rec := validRecord()
	rec.Name = name
	rec.Team = team
	rec.Goals = goals
	return rec
}

func TestImportRun_InsertsUpdatesAndSkips(t *testing.T) {
	t.Parallel()

	tx := newStubTxRunner()
	tx.players[storeKey("Erling Haaland", "Manchester City")] = player.Player{
		ID: 1, Name: "Erling Haaland", Team: "Manchester City", Goals: 20,
	}
	tx.nextID = 2

	fetcher := &stubFetcher{records: []ProviderPlayerRecord{
		record("Erling Haaland", "Manchester City", "27"),
		record("Cole Palmer", "Chelsea", "15"),
		record("", "Everton", "2"),
	}}

	svc := NewImportService(fetcher, tx, logging.NewNop())
	summary, err := svc.Run(context.Background(), "epl", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Fetched != 3 || summary.Inserted != 1 || summary.Updated != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.SkipReasons) != 1 {
		t.Fatalf("expected one skip reason, got=%v", summary.SkipReasons)
	}

	updated := tx.players[storeKey("Erling Haaland", "Manchester City")]
	if updated.ID != 1 {
		t.Fatalf("update must keep the surrogate id, got=%d", updated.ID)
	}
	if updated.Goals != 27 {
		t.Fatalf("expected goals overwritten to 27, got=%d", updated.Goals)
	}

	inserted := tx.players[storeKey("Cole Palmer", "Chelsea")]
	if inserted.ID == 0 {
		t.Fatalf("insert must assign a surrogate id")
	}
}

func TestImportRun_DuplicateKeyLastWriteWins(t *testing.T) {
	t.Parallel()

	tx := newStubTxRunner()
	fetcher := &stubFetcher{records: []ProviderPlayerRecord{
		record("Mohamed Salah", "Liverpool", "5"),
		record("Mohamed Salah", "Liverpool", "9"),
	}}

	svc := NewImportService(fetcher, tx, logging.NewNop())
	summary, err := svc.Run(context.Background(), "epl", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 1 || summary.Updated != 1 {
		t.Fatalf("expected duplicate sighting to update, got: %+v", summary)
	}
	if len(tx.players) != 1 {
		t.Fatalf("expected a single row, got=%d", len(tx.players))
	}
	if got := tx.players[storeKey("Mohamed Salah", "Liverpool")].Goals; got != 9 {
		t.Fatalf("expected last sighting to win, goals=%d", got)
	}
}

func TestImportRun_RerunConvergesToUpdates(t *testing.T) {
	t.Parallel()

	tx := newStubTxRunner()
	fetcher := &stubFetcher{records: []ProviderPlayerRecord{
		record("Bukayo Saka", "Arsenal", "16"),
		record("Cole Palmer", "Chelsea", "15"),
	}}

	svc := NewImportService(fetcher, tx, logging.NewNop())
	first, err := svc.Run(context.Background(), "epl", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Inserted != 2 || first.Updated != 0 {
		t.Fatalf("unexpected first run: %+v", first)
	}

	second, err := svc.Run(context.Background(), "epl", "2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Inserted != 0 || second.Updated != 2 {
		t.Fatalf("expected re-run to only update, got: %+v", second)
	}
	if len(tx.players) != 2 {
		t.Fatalf("expected row count unchanged, got=%d", len(tx.players))
	}
}

func TestImportRun_FetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	tx := newStubTxRunner()
	fetcher := &stubFetcher{err: fmt.Errorf("connect timeout")}

	svc := NewImportService(fetcher, tx, logging.NewNop())
	_, err := svc.Run(context.Background(), "epl", "2025")
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got: %v", err)
	}
	if len(tx.players) != 0 {
		t.Fatalf("fetch failure must persist nothing")
	}
}

func TestImportRun_StorageFailureRollsBack(t *testing.T) {
	t.Parallel()

	tx := newStubTxRunner()
	tx.players[storeKey("Erling Haaland", "Manchester City")] = player.Player{
		ID: 1, Name: "Erling Haaland", Team: "Manchester City", Goals: 20,
	}
	tx.nextID = 2
	tx.failInsert = true

	fetcher := &stubFetcher{records: []ProviderPlayerRecord{
		record("Erling Haaland", "Manchester City", "27"),
		record("Cole Palmer", "Chelsea", "15"),
	}}

	svc := NewImportService(fetcher, tx, logging.NewNop())
	_, err := svc.Run(context.Background(), "epl", "2025")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected storage failure, got: %v", err)
	}

	// The staged update to Haaland must not have been published.
	if got := tx.players[storeKey("Erling Haaland", "Manchester City")].Goals; got != 20 {
		t.Fatalf("expected pre-run state preserved, goals=%d", got)
	}
	if len(tx.players) != 1 {
		t.Fatalf("expected no partial writes, rows=%d", len(tx.players))
	}
}

func TestImportRun_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc := NewImportService(&stubFetcher{}, newStubTxRunner(), logging.NewNop())

	if _, err := svc.Run(context.Background(), "", "2025"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank league, got: %v", err)
	}
	if _, err := svc.Run(context.Background(), "epl", "twenty25"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for non-integer season, got: %v", err)
	}
}

func TestImportRun_AllRecordsInvalid(t *testing.T) {
	t.Parallel()

	tx := newStubTxRunner()
	fetcher := &stubFetcher{records: []ProviderPlayerRecord{
		record("", "Arsenal", "1"),
		record("Someone", "", "2"),
	}}

	svc := NewImportService(fetcher, tx, logging.NewNop())
	summary, err := svc.Run(context.Background(), "epl", "2025")
	if err != nil {
		t.Fatalf("a run of skips is still a successful run: %v", err)
	}
	if summary.Skipped != 2 || summary.Inserted != 0 || summary.Updated != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.SkipReasons) != 2 {
		t.Fatalf("expected two skip reasons, got=%v", summary.SkipReasons)
	}
}
