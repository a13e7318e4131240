package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is a normalized season-stats row for one athlete at one club.
// Identity across import runs is the (Name, Team) natural key; ID is the
// store-assigned surrogate and is zero until the row is persisted.
type Player struct {
	ID          int64
	Name        string
	Team        string
	Position    string
	Matches     int
	Minutes     int
	Goals       int
	Assists     int
	Shots       int
	KeyPasses   int
	YellowCards int
	RedCards    int
	XG          float64
	XA          float64
	LastUpdated time.Time
}

// Key returns the natural key used to decide insert-vs-update.
func (p Player) Key() Key {
	return Key{Name: p.Name, Team: p.Team}
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.TrimSpace(p.Team) == "" {
		return fmt.Errorf("player team is required")
	}
	for _, counter := range []struct {
		label string
		value int
	}{
		{"matches", p.Matches},
		{"minutes", p.Minutes},
		{"goals", p.Goals},
		{"assists", p.Assists},
		{"shots", p.Shots},
		{"key_passes", p.KeyPasses},
		{"yellow_cards", p.YellowCards},
		{"red_cards", p.RedCards},
	} {
		if counter.value < 0 {
			return fmt.Errorf("player %s cannot be negative", counter.label)
		}
	}
	if p.XG < 0 || p.XA < 0 {
		return fmt.Errorf("player expected goals/assists cannot be negative")
	}

	return nil
}

// Key is the (name, team) pair that identifies a row across import runs.
type Key struct {
	Name string
	Team string
}

func (k Key) String() string {
	return k.Name + " (" + k.Team + ")"
}
