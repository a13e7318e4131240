package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/leematt95/football-stats-app/internal/domain/player"
	qb "github.com/leematt95/football-stats-app/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"team",
	"position",
	"matches",
	"minutes",
	"goals",
	"assists",
	"shots",
	"key_passes",
	"yellow_cards",
	"red_cards",
	"xg",
	"xa",
	"last_updated",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, int, error) {
	var conditions []qb.Condition
	if filter.NameQuery != "" {
		conditions = append(conditions, qb.ILike("name", filter.NameQuery))
	}

	countQuery, countArgs, err := qb.Select("COUNT(*)").From("players").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count players query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count players: %w", err)
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(conditions...).
		OrderBy("name", "team").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, total, nil
}

// WithinTx runs fn against a transaction-scoped store. The callback's reads
// observe its own staged writes, so a second sighting of the same
// (name, team) pair inside one run resolves to an update instead of a
// duplicate insert.
func (r *PlayerRepository) WithinTx(ctx context.Context, fn func(player.Store) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	store := &txPlayerStore{tx: tx}
	if err := fn(store); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txPlayerStore struct {
	tx *sqlx.Tx
}

func (s *txPlayerStore) FindByKey(ctx context.Context, name, team string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("name", name),
			qb.Eq("team", team),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by key query: %w", err)
	}

	var row playerTableModel
	if err := s.tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by key: %w", err)
	}

	return row.toDomain(), true, nil
}

func (s *txPlayerStore) Insert(ctx context.Context, p player.Player) (int64, error) {
	query, args, err := qb.InsertInto("players").
		Columns(
			"name", "team", "position",
			"matches", "minutes", "goals", "assists", "shots", "key_passes",
			"yellow_cards", "red_cards", "xg", "xa", "last_updated",
		).
		Values(
			p.Name, p.Team, p.Position,
			p.Matches, p.Minutes, p.Goals, p.Assists, p.Shots, p.KeyPasses,
			p.YellowCards, p.RedCards, p.XG, p.XA, p.LastUpdated,
		).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := s.tx.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("player %s already exists: %w", p.Key(), err)
		}
		return 0, fmt.Errorf("insert player: %w", err)
	}
	return id, nil
}

func (s *txPlayerStore) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.Update("players").
		Set("position", p.Position).
		Set("matches", p.Matches).
		Set("minutes", p.Minutes).
		Set("goals", p.Goals).
		Set("assists", p.Assists).
		Set("shots", p.Shots).
		Set("key_passes", p.KeyPasses).
		Set("yellow_cards", p.YellowCards).
		Set("red_cards", p.RedCards).
		Set("xg", p.XG).
		Set("xa", p.XA).
		Set("last_updated", p.LastUpdated).
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	if _, err := s.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}
