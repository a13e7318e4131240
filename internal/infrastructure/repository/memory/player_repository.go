package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/leematt95/football-stats-app/internal/domain/player"
)

// PlayerRepository keeps the full player table in process memory. It backs
// local development and tests when no database is reachable.
type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	nextID int64
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	var maxID int64
	for _, p := range players {
		items[playerKey(p.Name, p.Team)] = p
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	return &PlayerRepository{items: items, nextID: maxID + 1}
}

func playerKey(name, team string) string {
	return name + "\x00" + team
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.ID == id {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(filter.NameQuery)
	matched := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].Team < matched[j].Team
	})

	total := len(matched)
	if filter.Offset >= total {
		return []player.Player{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	out := make([]player.Player, len(matched))
	copy(out, matched)
	return out, total, nil
}

// WithinTx stages all writes on a copy of the table and publishes the copy
// only when fn succeeds, mirroring database transaction semantics.
func (r *PlayerRepository) WithinTx(_ context.Context, fn func(player.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := &stagedPlayerStore{
		items:  make(map[string]player.Player, len(r.items)),
		nextID: r.nextID,
	}
	for k, v := range r.items {
		staged.items[k] = v
	}

	if err := fn(staged); err != nil {
		return err
	}

	r.items = staged.items
	r.nextID = staged.nextID
	return nil
}

type stagedPlayerStore struct {
	items  map[string]player.Player
	nextID int64
}

func (s *stagedPlayerStore) FindByKey(_ context.Context, name, team string) (player.Player, bool, error) {
	p, ok := s.items[playerKey(name, team)]
	if !ok {
		return player.Player{}, false, nil
	}
	return p, true, nil
}

func (s *stagedPlayerStore) Insert(_ context.Context, p player.Player) (int64, error) {
	p.ID = s.nextID
	s.nextID++
	s.items[playerKey(p.Name, p.Team)] = p
	return p.ID, nil
}

func (s *stagedPlayerStore) Update(_ context.Context, p player.Player) error {
	s.items[playerKey(p.Name, p.Team)] = p
	return nil
}
