package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/leematt95/football-stats-app/internal/domain/player"
	playermock "github.com/leematt95/football-stats-app/internal/mocks/domain/player"
	"github.com/leematt95/football-stats-app/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestPlayerService_List_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	svc := NewPlayerService(repo, nil, logging.NewNop())

	expected := []player.Player{
		{ID: 1, Name: "Bukayo Saka", Team: "Arsenal", Position: "Forward / Midfielder"},
		{ID: 2, Name: "Declan Rice", Team: "Arsenal", Position: "Midfielder"},
	}

	repo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), player.ListFilter{
			NameQuery: "arsenal",
			Offset:    0,
			Limit:     defaultListLimit,
		}).
		Return(expected, 2, nil).
		Once()

	result, err := svc.List(ctx, "arsenal", 0, 0)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(result.Players) != len(expected) {
		t.Fatalf("unexpected player count: got=%d want=%d", len(result.Players), len(expected))
	}
	if result.Total != 2 {
		t.Fatalf("unexpected total: got=%d want=2", result.Total)
	}
	if result.Players[0].ID != expected[0].ID {
		t.Fatalf("unexpected player id: got=%d want=%d", result.Players[0].ID, expected[0].ID)
	}
}

func TestPlayerService_GetByID_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := playermock.NewRepository(t)
	svc := NewPlayerService(repo, nil, logging.NewNop())

	repo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), int64(42)).
		Return(player.Player{}, false, nil).
		Once()

	_, err := svc.GetByID(ctx, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
