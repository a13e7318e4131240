package usecase

import (
	"errors"
	"testing"
	"time"
)

func validRecord() ProviderPlayerRecord {
	return ProviderPlayerRecord{
		Name:        "Bukayo Saka",
		Team:        "Arsenal",
		Position:    "F M",
		Games:       "30",
		Minutes:     "2612",
		Goals:       "16",
		Assists:     "9",
		Shots:       "77",
		KeyPasses:   "61",
		YellowCards: "4",
		RedCards:    "0",
		XG:          "13.92",
		XA:          "8.04",
	}
}

func TestNormalizePlayerRecord_MapsAllFields(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	p, err := NormalizePlayerRecord(validRecord(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Bukayo Saka" || p.Team != "Arsenal" {
		t.Fatalf("unexpected identity: name=%q team=%q", p.Name, p.Team)
	}
	if p.Position != "Forward / Midfielder" {
		t.Fatalf("unexpected position: %q", p.Position)
	}
	if p.Matches != 30 || p.Minutes != 2612 || p.Goals != 16 || p.Assists != 9 {
		t.Fatalf("unexpected counters: %+v", p)
	}
	if p.Shots != 77 || p.KeyPasses != 61 || p.YellowCards != 4 || p.RedCards != 0 {
		t.Fatalf("unexpected counters: %+v", p)
	}
	if p.XG != 13.92 || p.XA != 8.04 {
		t.Fatalf("unexpected expected-goal values: xg=%v xa=%v", p.XG, p.XA)
	}
	if !p.LastUpdated.Equal(now) {
		t.Fatalf("expected last_updated=%v, got=%v", now, p.LastUpdated)
	}
}

func TestNormalizePlayerRecord_LenientNumerics(t *testing.T) {
	t.Parallel()

	rec := validRecord()
	rec.Goals = ""
	rec.Assists = "n/a"
	rec.Minutes = " 90 "
	rec.XG = "not-a-number"
	rec.XA = ""

	p, err := NormalizePlayerRecord(rec, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Goals != 0 {
		t.Fatalf("expected unparseable goals to become 0, got=%d", p.Goals)
	}
	if p.Assists != 0 {
		t.Fatalf("expected unparseable assists to become 0, got=%d", p.Assists)
	}
	if p.Minutes != 90 {
		t.Fatalf("expected padded minutes to parse, got=%d", p.Minutes)
	}
	if p.XG != 0 || p.XA != 0 {
		t.Fatalf("expected unparseable floats to become 0, got xg=%v xa=%v", p.XG, p.XA)
	}
}

func TestNormalizePlayerRecord_NegativeNumericsClampToZero(t *testing.T) {
	t.Parallel()

	rec := validRecord()
	rec.Goals = "-3"
	rec.RedCards = "-1"
	rec.XG = "-1.5"

	p, err := NormalizePlayerRecord(rec, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Goals != 0 {
		t.Fatalf("expected negative goals to clamp to 0, got=%d", p.Goals)
	}
	if p.RedCards != 0 {
		t.Fatalf("expected negative red cards to clamp to 0, got=%d", p.RedCards)
	}
	if p.XG != 0 {
		t.Fatalf("expected negative xg to clamp to 0, got=%v", p.XG)
	}
	if verr := p.Validate(); verr != nil {
		t.Fatalf("normalized player should pass validation: %v", verr)
	}
}

func TestNormalizePlayerRecord_RejectsMissingIdentity(t *testing.T) {
	t.Parallel()

	rec := validRecord()
	rec.Name = "   "
	if _, err := NormalizePlayerRecord(rec, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got: %v", err)
	}

	rec = validRecord()
	rec.Team = ""
	if _, err := NormalizePlayerRecord(rec, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank team, got: %v", err)
	}
}

func TestExpandPosition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"GK", "Goalkeeper"},
		{"D", "Defender"},
		{"M", "Midfielder"},
		{"F", "Forward"},
		{"F M", "Forward / Midfielder"},
		{"M F", "Midfielder / Forward"},
		{"S", "S"},
		{"D M S", "Defender / Midfielder / S"},
		{"", ""},
		{"   ", ""},
		{"Forward", "Forward"},
	}
	for _, tc := range cases {
		if got := expandPosition(tc.in); got != tc.want {
			t.Fatalf("expandPosition(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpandPosition_Deterministic(t *testing.T) {
	t.Parallel()

	first := expandPosition("F M")
	for i := 0; i < 10; i++ {
		if got := expandPosition("F M"); got != first {
			t.Fatalf("expansion not deterministic: %q vs %q", got, first)
		}
	}
	if expandPosition("Forward") != "Forward" {
		t.Fatalf("unrecognized token must pass through unchanged")
	}
}
