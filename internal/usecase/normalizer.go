package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leematt95/football-stats-app/internal/domain/player"
)

// ProviderPlayerRecord is one season row as the stats provider serves it.
// All values are kept textual; normalization owns the numeric parsing.
type ProviderPlayerRecord struct {
	Name        string
	Team        string
	Position    string
	Games       string
	Minutes     string
	Goals       string
	Assists     string
	Shots       string
	KeyPasses   string
	YellowCards string
	RedCards    string
	XG          string
	XA          string
}

var positionNames = map[string]string{
	"GK": "Goalkeeper",
	"D":  "Defender",
	"M":  "Midfielder",
	"F":  "Forward",
}

// NormalizePlayerRecord converts one provider row into a domain player.
// Numeric fields are lenient: anything unparseable or negative counts as
// zero, so stat fields never go below zero. Only a missing name or team
// rejects the record, wrapped in ErrValidation.
func NormalizePlayerRecord(rec ProviderPlayerRecord, now time.Time) (player.Player, error) {
	name := strings.TrimSpace(rec.Name)
	team := strings.TrimSpace(rec.Team)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: missing player name (team=%q)", ErrValidation, team)
	}
	if team == "" {
		return player.Player{}, fmt.Errorf("%w: missing team for player %q", ErrValidation, name)
	}

	return player.Player{
		Name:        name,
		Team:        team,
		Position:    expandPosition(rec.Position),
		Matches:     toInt(rec.Games),
		Minutes:     toInt(rec.Minutes),
		Goals:       toInt(rec.Goals),
		Assists:     toInt(rec.Assists),
		Shots:       toInt(rec.Shots),
		KeyPasses:   toInt(rec.KeyPasses),
		YellowCards: toInt(rec.YellowCards),
		RedCards:    toInt(rec.RedCards),
		XG:          toFloat(rec.XG),
		XA:          toFloat(rec.XA),
		LastUpdated: now.UTC(),
	}, nil
}

// expandPosition rewrites provider position codes ("F M S") into readable
// names joined with " / ". Unknown codes pass through untouched.
func expandPosition(raw string) string {
	codes := strings.Fields(raw)
	if len(codes) == 0 {
		return ""
	}
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if name, ok := positionNames[code]; ok {
			names = append(names, name)
			continue
		}
		names = append(names, code)
	}
	return strings.Join(names, " / ")
}

func toInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func toFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
