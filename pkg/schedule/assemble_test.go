package schedule

import (
	"testing"
	"time"

	"laptudirm.com/x/rally/pkg/pairing"
)

func TestCourtLabel(t *testing.T) {
	for i, want := range map[int]string{
		0:  "Court A",
		1:  "Court B",
		25: "Court Z",
		26: "Court AA",
		27: "Court AB",
		51: "Court AZ",
		52: "Court BA",
	} {
		if got := CourtLabel(i); got != want {
			t.Errorf("CourtLabel(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNewAssemblerDefaults(t *testing.T) {
	assembler := NewAssembler(Params{Format: pairing.Singles, Mode: Random, Courts: 1 << 60})

	for i, want := range []string{"Court A", "Court B", "Court C"} {
		if got := assembler.Court(i); got != want {
			t.Errorf("court %d = %q, want %q", i, got, want)
		}
	}

	if assembler.Interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", assembler.Interval, DefaultInterval)
	}

	if assembler.Start.IsZero() || assembler.Start.Before(time.Now()) || assembler.Start.Minute() != 0 {
		t.Errorf("start = %v, want the next full hour", assembler.Start)
	}
}

func TestAssemblerRound(t *testing.T) {
	assembler := NewAssembler(Params{
		Format:     pairing.Singles,
		Mode:       Team,
		CourtNames: []string{"Centre", "Outside"},
		Start:      start,
		Interval:   time.Hour,
	})

	candidate := pairing.Candidate{
		Matchups: []pairing.Matchup{
			{Team1: pairing.Players("a"), Team2: pairing.Players("b")},
			{Team1: pairing.Players("c"), Team2: pairing.Players("d")},
		},
		Idle:  pairing.Players("e"),
		Score: 3,
	}

	round := assembler.Round(3, candidate)

	if round.Label != "Round 3" || !round.Time.Equal(start.Add(2*time.Hour)) || round.Conflict != 3 {
		t.Fatalf("unexpected round %+v", round)
	}

	if len(round.Idle) != 1 || round.Idle[0] != "e" {
		t.Fatalf("idle = %v, want [e]", round.Idle)
	}

	second := round.Matches[1]
	if second.Court != "Outside" || second.Team1[0] != "c" || second.Team2[0] != "d" || second.Format != "singles" {
		t.Fatalf("unexpected match %+v", second)
	}

	if second.Notes != "team singles pairing - Round 3" {
		t.Fatalf("notes = %q", second.Notes)
	}
}
