package postgres

import (
	"time"

	"github.com/leematt95/football-stats-app/internal/domain/player"
)

type playerTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Team        string    `db:"team"`
	Position    string    `db:"position"`
	Matches     int       `db:"matches"`
	Minutes     int       `db:"minutes"`
	Goals       int       `db:"goals"`
	Assists     int       `db:"assists"`
	Shots       int       `db:"shots"`
	KeyPasses   int       `db:"key_passes"`
	YellowCards int       `db:"yellow_cards"`
	RedCards    int       `db:"red_cards"`
	XG          float64   `db:"xg"`
	XA          float64   `db:"xa"`
	LastUpdated time.Time `db:"last_updated"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		Name:        m.Name,
		Team:        m.Team,
		Position:    m.Position,
		Matches:     m.Matches,
		Minutes:     m.Minutes,
		Goals:       m.Goals,
		Assists:     m.Assists,
		Shots:       m.Shots,
		KeyPasses:   m.KeyPasses,
		YellowCards: m.YellowCards,
		RedCards:    m.RedCards,
		XG:          m.XG,
		XA:          m.XA,
		LastUpdated: m.LastUpdated,
	}
}
