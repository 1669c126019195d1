package schedule

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"laptudirm.com/x/rally/pkg/pairing"
)

func roster(n int) []pairing.Participant {
	players := make([]pairing.Participant, n)
	for i := range players {
		players[i] = pairing.Player{Name: fmt.Sprintf("p%d", i+1), Score: float64(n - i)}
	}

	return players
}

func teamDoubles(courts int) Params {
	return Params{
		Format:     pairing.Doubles,
		Mode:       Team,
		Rounds:     3,
		Courts:     courts,
		FixedCount: true,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		roster  []pairing.Participant
		params  Params
		wantErr []string // substrings of the error, nil for success
	}{
		{
			name:   "doubles fills every court",
			roster: roster(8),
			params: teamDoubles(2),
		},
		{
			name:    "one player short",
			roster:  roster(7),
			params:  teamDoubles(2),
			wantErr: []string{"7", "8"},
		},
		{
			name:    "odd roster",
			roster:  roster(9),
			params:  teamDoubles(2),
			wantErr: []string{"even"},
		},
		{
			name:    "no courts",
			roster:  roster(8),
			params:  teamDoubles(0),
			wantErr: []string{"court"},
		},
		{
			name:    "no rounds",
			roster:  roster(8),
			params:  Params{Format: pairing.Doubles, Mode: Team, Courts: 2},
			wantErr: []string{"round count"},
		},
		{
			name:    "too many rounds",
			roster:  roster(8),
			params:  Params{Format: pairing.Doubles, Mode: Team, Rounds: MaxRounds + 1, Courts: 2},
			wantErr: []string{"at most 1000"},
		},
		{
			name:    "negative attempts",
			roster:  roster(8),
			params:  Params{Format: pairing.Doubles, Mode: Team, Rounds: 1, Courts: 2, Attempts: -1},
			wantErr: []string{"attempts"},
		},
		{
			name:    "too many attempts",
			roster:  roster(4),
			params:  Params{Format: pairing.Singles, Mode: Random, Rounds: 1, Courts: 1, Attempts: 1 << 60},
			wantErr: []string{"attempts must be between 0 and 10000"},
		},
		{
			name:    "too many workers",
			roster:  roster(4),
			params:  Params{Format: pairing.Singles, Mode: Random, Rounds: 1, Courts: 1, Workers: MaxWorkers + 1},
			wantErr: []string{"workers"},
		},
		{
			name:   "doubles without a fixed count",
			roster: roster(12),
			params: Params{Format: pairing.Doubles, Mode: Random, Rounds: 1, Courts: 2},
		},
		{
			name:    "doubles needs multiples of four",
			roster:  roster(10),
			params:  Params{Format: pairing.Doubles, Mode: Random, Rounds: 1, Courts: 2},
			wantErr: []string{"multiple of 4"},
		},
		{
			name:    "singles needs an even roster",
			roster:  roster(5),
			params:  Params{Format: pairing.Singles, Mode: Random, Rounds: 1, Courts: 2},
			wantErr: []string{"even"},
		},
		{
			name:    "random singles needs four players",
			roster:  roster(2),
			params:  Params{Format: pairing.Singles, Mode: Random, Rounds: 1, Courts: 1},
			wantErr: []string{"at least 4"},
		},
		{
			name:   "round robin takes odd rosters",
			roster: roster(5),
			params: Params{Format: pairing.Singles, Mode: Rotation, Rounds: 5, Courts: 2},
		},
		{
			name:    "round robin needs enough courts",
			roster:  roster(8),
			params:  Params{Format: pairing.Singles, Mode: Rotation, Rounds: 1, Courts: 2},
			wantErr: []string{"needs 4 courts"},
		},
		{
			name:    "round robin is singles only",
			roster:  roster(8),
			params:  Params{Format: pairing.Doubles, Mode: Rotation, Rounds: 1, Courts: 2},
			wantErr: []string{"singles"},
		},
		{
			name:    "duplicate participants",
			roster:  append(roster(7), pairing.Player{Name: "p1"}),
			params:  teamDoubles(2),
			wantErr: []string{`duplicate participant "p1"`},
		},
		{
			name:    "duplicate court names",
			roster:  roster(8),
			params:  Params{Format: pairing.Doubles, Mode: Team, Rounds: 1, CourtNames: []string{"A", "A"}, FixedCount: true},
			wantErr: []string{`duplicate court name "A"`},
		},
		{
			name:    "team singles needs both groups",
			roster:  roster(2),
			params:  Params{Format: pairing.Singles, Mode: Team, Rounds: 1, Courts: 1},
			wantErr: []string{"each group needs at least 1"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(test.roster, test.params)

			if test.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var invalid *ValidationError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want a *ValidationError", err)
			}

			for _, want := range test.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	err := Validate(roster(7), Params{Format: pairing.Doubles, Mode: Team, Courts: 2, FixedCount: true})

	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want a *ValidationError", err)
	}

	// rounds, count mismatch and parity
	if len(invalid.Problems) < 3 {
		t.Fatalf("got problems %q, want at least 3", invalid.Problems)
	}
}

func TestValidateGroups(t *testing.T) {
	players := roster(8)
	params := teamDoubles(2)

	split, err := pairing.Resolve(players, []string{"p1", "p2", "p3", "p4"}, []string{"p5", "p6", "p7", "p1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	params.Groups = &split
	err = Validate(players, params)
	if err == nil {
		t.Fatal("expected an error for an overlapping split")
	}

	for _, want := range []string{`"p1" is in both groups`, `"p8" is in neither group`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
