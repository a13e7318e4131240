package memory

import (
	"time"

	"github.com/leematt95/football-stats-app/internal/domain/player"
)

// SeedPlayers returns a small fixed roster for local development runs
// against the in-memory repository.
func SeedPlayers() []player.Player {
	now := time.Now().UTC()
	return []player.Player{
		{
			ID: 1, Name: "Bukayo Saka", Team: "Arsenal", Position: "Forward / Midfielder",
			Matches: 30, Minutes: 2612, Goals: 16, Assists: 9, Shots: 77, KeyPasses: 61,
			YellowCards: 4, RedCards: 0, XG: 13.92, XA: 8.04, LastUpdated: now,
		},
		{
			ID: 2, Name: "Erling Haaland", Team: "Manchester City", Position: "Forward",
			Matches: 31, Minutes: 2558, Goals: 27, Assists: 5, Shots: 110, KeyPasses: 18,
			YellowCards: 2, RedCards: 0, XG: 25.31, XA: 3.77, LastUpdated: now,
		},
		{
			ID: 3, Name: "Mohamed Salah", Team: "Liverpool", Position: "Forward / Midfielder",
			Matches: 32, Minutes: 2795, Goals: 22, Assists: 13, Shots: 104, KeyPasses: 64,
			YellowCards: 1, RedCards: 0, XG: 19.48, XA: 10.2, LastUpdated: now,
		},
		{
			ID: 4, Name: "Cole Palmer", Team: "Chelsea", Position: "Midfielder / Forward",
			Matches: 33, Minutes: 2874, Goals: 15, Assists: 11, Shots: 95, KeyPasses: 71,
			YellowCards: 5, RedCards: 0, XG: 13.05, XA: 9.33, LastUpdated: now,
		},
		{
			ID: 5, Name: "Jordan Pickford", Team: "Everton", Position: "Goalkeeper",
			Matches: 34, Minutes: 3060, Goals: 0, Assists: 1, Shots: 0, KeyPasses: 2,
			YellowCards: 1, RedCards: 0, XG: 0, XA: 0.38, LastUpdated: now,
		},
	}
}
