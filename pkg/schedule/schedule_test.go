package schedule

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"laptudirm.com/x/rally/pkg/pairing"
)

var start = time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC)

func mustRun(t *testing.T, players []pairing.Participant, params Params, seed int64) *Schedule {
	t.Helper()

	sched, err := Run(players, params, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	return sched
}

func TestRunTeamDoubles(t *testing.T) {
	players := roster(8)
	params := teamDoubles(2)
	params.Start = start
	params.Interval = 45 * time.Minute
	params.CourtNames = []string{"Centre", "Court 2"}

	sched := mustRun(t, players, params, 1)

	if sched.Format != "doubles" || sched.Mode != "team" {
		t.Fatalf("format %s, mode %s", sched.Format, sched.Mode)
	}

	if len(sched.Rounds) != 3 {
		t.Fatalf("got %d rounds, want 3", len(sched.Rounds))
	}

	inA := make(map[string]bool)
	for _, id := range sched.Groups.A {
		inA[id] = true
	}

	for i, round := range sched.Rounds {
		if round.Number != i+1 || round.Label != "Round "+string(rune('1'+i)) {
			t.Errorf("round %d is numbered %d %q", i+1, round.Number, round.Label)
		}

		if want := start.Add(time.Duration(i) * 45 * time.Minute); !round.Time.Equal(want) {
			t.Errorf("round %d starts at %v, want %v", round.Number, round.Time, want)
		}

		if len(round.Matches) != 2 {
			t.Fatalf("round %d has %d matches", round.Number, len(round.Matches))
		}

		seen := make(map[string]bool)
		for j, match := range round.Matches {
			if match.Court != params.CourtNames[j] {
				t.Errorf("match %d is on %s, want %s", j, match.Court, params.CourtNames[j])
			}

			if match.Status != StatusScheduled || match.Winner != 0 || match.Sets != [3]SetScore{} {
				t.Errorf("match %d has a result before being played: %+v", j, match)
			}

			if !strings.HasSuffix(match.Notes, round.Label) {
				t.Errorf("notes %q do not name the round", match.Notes)
			}

			for _, id := range match.Team1 {
				if !inA[id] {
					t.Errorf("team1 member %s is not in group A", id)
				}
			}

			for _, id := range match.Team2 {
				if inA[id] {
					t.Errorf("team2 member %s is in group A", id)
				}
			}

			for _, id := range append(match.Team1, match.Team2...) {
				if seen[id] {
					t.Errorf("round %d: %s plays twice", round.Number, id)
				}
				seen[id] = true
			}
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	params := Params{Format: pairing.Doubles, Mode: Random, Rounds: 4, Courts: 3, Start: start}

	first := mustRun(t, roster(12), params, 77)
	second := mustRun(t, roster(12), params, 77)

	if !reflect.DeepEqual(first.Rounds, second.Rounds) {
		t.Fatal("same seed gave different schedules")
	}

	params.Workers = 8
	parallel := mustRun(t, roster(12), params, 77)
	if !reflect.DeepEqual(first.Rounds, parallel.Rounds) {
		t.Fatal("parallel search gave a different schedule")
	}
}

func TestRunConflictMatchesHistory(t *testing.T) {
	params := Params{Format: pairing.Doubles, Mode: Random, Rounds: 6, Courts: 2, Start: start}
	sched := mustRun(t, roster(8), params, 5)

	history := pairing.NewHistory()
	prev := 0
	for _, round := range sched.Rounds {
		matchups := make([]pairing.Matchup, len(round.Matches))
		for i, match := range round.Matches {
			matchups[i] = match.Matchup
		}

		if score := history.ScoreRound(matchups); score != round.Conflict {
			t.Errorf("round %d conflict = %d, recomputed %d", round.Number, round.Conflict, score)
		}

		history.Commit(matchups)

		teammates, opponents := history.Size()
		if teammates+opponents < prev {
			t.Fatalf("history shrank after round %d", round.Number)
		}
		prev = teammates + opponents
	}

	gotTeammates, gotOpponents := sched.History.Size()
	wantTeammates, wantOpponents := history.Size()
	if gotTeammates != wantTeammates || gotOpponents != wantOpponents {
		t.Fatalf("final history %d/%d, want %d/%d", gotTeammates, gotOpponents, wantTeammates, wantOpponents)
	}
}

func TestRunFirstRoundIsConflictFree(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		sched := mustRun(t, roster(16), teamDoubles(4), seed)
		if sched.Rounds[0].Conflict != 0 {
			t.Fatalf("seed %d: first round has conflict %d", seed, sched.Rounds[0].Conflict)
		}
	}
}

func TestRunShortRound(t *testing.T) {
	params := Params{Format: pairing.Singles, Mode: Random, Rounds: 2, Courts: 3, Start: start}

	sched := mustRun(t, roster(4), params, 1)
	for _, round := range sched.Rounds {
		if round.Short != 1 || len(round.Matches) != 2 {
			t.Fatalf("round %d: %d matches, %d short", round.Number, len(round.Matches), round.Short)
		}
	}

	if len(sched.Warnings) != 2 {
		t.Fatalf("got warnings %q, want one per round", sched.Warnings)
	}

	params.Strict = true
	_, err := Run(roster(4), params, rand.New(rand.NewSource(1)))

	var short *ShortRoundError
	if !errors.As(err, &short) {
		t.Fatalf("err = %v, want a *ShortRoundError", err)
	}

	if short.Round != 1 || short.Short != 1 || short.Courts != 3 {
		t.Fatalf("unexpected error %+v", short)
	}
}

func TestRunIdleParticipants(t *testing.T) {
	params := Params{Format: pairing.Singles, Mode: Random, Rounds: 3, Courts: 2, Start: start}
	sched := mustRun(t, roster(6), params, 3)

	for _, round := range sched.Rounds {
		if len(round.Idle) != 2 || round.Short != 0 {
			t.Fatalf("round %d: %d idle, %d short", round.Number, len(round.Idle), round.Short)
		}
	}

	if len(sched.Warnings) != len(sched.Rounds) {
		t.Fatalf("got warnings %q, want one per round", sched.Warnings)
	}

	for i, round := range sched.Rounds {
		warning := sched.Warnings[i]
		if !strings.Contains(warning, "sitting out") || !strings.Contains(warning, round.Idle[0]) {
			t.Errorf("round %d: warning %q does not name %v", round.Number, warning, round.Idle)
		}
	}
}

func TestRunManyCourts(t *testing.T) {
	params := Params{Format: pairing.Singles, Mode: Random, Rounds: 1, Courts: 1 << 60, Start: start}
	sched := mustRun(t, roster(4), params, 1)

	round := sched.Rounds[0]
	if len(round.Matches) != 2 || round.Short != 1<<60-2 {
		t.Fatalf("%d matches, %d short", len(round.Matches), round.Short)
	}

	if round.Matches[1].Court != "Court B" {
		t.Fatalf("second match is on %q, want Court B", round.Matches[1].Court)
	}
}

func TestRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunContext(ctx, roster(8), teamDoubles(2), rand.New(rand.NewSource(1)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestScheduleByRound(t *testing.T) {
	params := teamDoubles(2)
	params.Start = start
	sched := mustRun(t, roster(8), params, 4)

	rounds := sched.ByRound()
	if len(rounds) != 3 {
		t.Fatalf("got %d rounds, want 3", len(rounds))
	}

	for _, round := range sched.Rounds {
		matches := rounds[round.Number]
		if len(matches) != 2 {
			t.Fatalf("round %d has %d matches, want 2", round.Number, len(matches))
		}

		for _, match := range matches {
			if match.Round != round.Number {
				t.Errorf("match on %s of round %d is numbered %d", match.Court, round.Number, match.Round)
			}
		}
	}

	if _, ok := rounds[0]; ok {
		t.Error("rounds are numbered from 1")
	}
}

func TestRunRoundRobin(t *testing.T) {
	params := Params{Format: pairing.Singles, Mode: Rotation, Rounds: 5, Courts: 3, Start: start}
	sched := mustRun(t, roster(6), params, 11)

	for _, round := range sched.Rounds {
		if round.Conflict != 0 {
			t.Fatalf("round %d repeats a pairing", round.Number)
		}
	}

	if _, opponents := sched.History.Size(); opponents != 15 {
		t.Fatalf("%d pairs met, want 15", opponents)
	}

	params.Rounds = 6
	sched = mustRun(t, roster(6), params, 11)
	if len(sched.Warnings) != 1 || sched.Rounds[5].Conflict == 0 {
		t.Fatalf("repeating the cycle: warnings %q, conflict %d", sched.Warnings, sched.Rounds[5].Conflict)
	}
}

func TestRunRejectsInvalidParams(t *testing.T) {
	_, err := Run(roster(7), teamDoubles(2), rand.New(rand.NewSource(1)))

	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want a *ValidationError", err)
	}
}
