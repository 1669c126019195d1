package pairing

import (
	"reflect"
	"testing"
)

func doubles(a, b, c, d string) Matchup {
	return Matchup{
		Team1: Players(a, b),
		Team2: Players(c, d),
	}
}

func TestPairs(t *testing.T) {
	teammates, opponents := Pairs(doubles("a", "b", "c", "d"))

	wantTeammates := []Pair{{"a", "b"}, {"c", "d"}}
	wantOpponents := []Pair{{"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}}

	if !reflect.DeepEqual(teammates, wantTeammates) {
		t.Errorf("teammates = %v, want %v", teammates, wantTeammates)
	}

	if !reflect.DeepEqual(opponents, wantOpponents) {
		t.Errorf("opponents = %v, want %v", opponents, wantOpponents)
	}
}

func TestHistoryIsSymmetric(t *testing.T) {
	h := NewHistory()
	h.Record([]Pair{{"a", "b"}}, []Pair{{"a", "c"}})

	if !h.HasTeammate("a", "b") || !h.HasTeammate("b", "a") {
		t.Error("teammate pair is not symmetric")
	}

	if !h.HasOpponent("a", "c") || !h.HasOpponent("c", "a") {
		t.Error("opponent pair is not symmetric")
	}

	if h.HasTeammate("a", "c") || h.HasOpponent("a", "b") {
		t.Error("teammate and opponent pairs are mixed up")
	}
}

func TestHistoryIgnoresSelfPairs(t *testing.T) {
	h := NewHistory()
	h.Record([]Pair{{"a", "a"}}, []Pair{{"b", "b"}})

	if teammates, opponents := h.Size(); teammates != 0 || opponents != 0 {
		t.Fatalf("size = %d, %d; want 0, 0", teammates, opponents)
	}
}

func TestHistoryScore(t *testing.T) {
	h := NewHistory()
	m := doubles("a", "b", "c", "d")

	if score := h.Score(m); score != 0 {
		t.Fatalf("score against empty history = %d, want 0", score)
	}

	h.Commit([]Matchup{m})

	// 2 teammate pairs and 4 opponent pairs, all repeated.
	if score, want := h.Score(m), 2*TeammateWeight+4*OpponentWeight; score != want {
		t.Fatalf("score of a repeated matchup = %d, want %d", score, want)
	}

	// Only a-d and c-b meet again, the new partners never partnered.
	swapped := doubles("a", "c", "b", "d")
	if score, want := h.Score(swapped), 2*OpponentWeight; score != want {
		t.Fatalf("score = %d, want %d", score, want)
	}

	if got := h.ScoreRound([]Matchup{m, swapped}); got != h.Score(m)+h.Score(swapped) {
		t.Fatalf("round score %d is not the sum of its matchups", got)
	}
}

func TestHistoryOnlyGrows(t *testing.T) {
	h := NewHistory()
	rounds := [][]Matchup{
		{doubles("a", "b", "c", "d")},
		{doubles("a", "c", "b", "d")},
		{doubles("a", "d", "b", "c")},
	}

	prevTeammates, prevOpponents := 0, 0
	for _, round := range rounds {
		h.Commit(round)

		teammates, opponents := h.Size()
		if teammates < prevTeammates || opponents < prevOpponents {
			t.Fatalf("history shrank to %d, %d", teammates, opponents)
		}
		prevTeammates, prevOpponents = teammates, opponents
	}

	if want := []string{"b", "c", "d"}; !reflect.DeepEqual(h.Teammates("a"), want) {
		t.Errorf("teammates of a = %v, want %v", h.Teammates("a"), want)
	}

	if want := []string{"b", "c", "d"}; !reflect.DeepEqual(h.Opponents("a"), want) {
		t.Errorf("opponents of a = %v, want %v", h.Opponents("a"), want)
	}

	if teammates, opponents := h.Size(); teammates != 6 || opponents != 6 {
		t.Errorf("size = %d, %d; want 6, 6", teammates, opponents)
	}
}
