// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schedule

import (
	"strings"

	"laptudirm.com/x/rally/pkg/pairing"
)

// Validate checks that a schedule with the given parameters can be built
// for the roster. Every failed check is reported in the returned
// *ValidationError; nil means the run may start.
func Validate(roster []pairing.Participant, params Params) error {
	var err ValidationError

	n := len(roster)
	courts := params.CourtCount()

	if courts <= 0 {
		err.add("court count must be greater than 0, got %d", courts)
	}

	switch {
	case params.Rounds <= 0:
		err.add("round count must be greater than 0, got %d", params.Rounds)
	case params.Rounds > MaxRounds:
		err.add("round count must be at most %d, got %d", MaxRounds, params.Rounds)
	}

	if params.Attempts < 0 || params.Attempts > MaxAttempts {
		err.add("attempts must be between 0 and %d, got %d", MaxAttempts, params.Attempts)
	}

	if params.Workers < 0 || params.Workers > MaxWorkers {
		err.add("workers must be between 0 and %d, got %d", MaxWorkers, params.Workers)
	}

	seen := make(map[string]bool, len(params.CourtNames))
	for _, name := range params.CourtNames {
		switch {
		case strings.TrimSpace(name) == "":
			err.add("court names must not be empty")
		case seen[name]:
			err.add("duplicate court name %q", name)
		}
		seen[name] = true
	}

	ids := make(map[string]bool, n)
	for _, p := range roster {
		if ids[p.ID()] {
			err.add("duplicate participant %q", p.ID())
		}
		ids[p.ID()] = true
	}

	switch params.Format {
	case pairing.Singles:
		validateSingles(&err, n, params)
	case pairing.Doubles:
		validateDoubles(&err, n, courts, params)
	default:
		err.add("unknown match format")
	}

	if params.Mode == Team {
		validateGroups(&err, roster, params)
	}

	if len(err.Problems) > 0 {
		return &err
	}

	return nil
}

func validateSingles(err *ValidationError, n int, params Params) {
	switch params.Mode {
	case Rotation:
		if n < 2 {
			err.add("round robin needs at least 2 participants, got %d", n)
		}

		// Byes take care of odd rosters, but every pair must get a court.
		if courts := params.CourtCount(); courts > 0 && courts < n/2 {
			err.add("round robin needs %d courts for %d participants, got %d", n/2, n, courts)
		}

		return

	case Random:
		if n < 4 {
			err.add("singles needs at least 4 participants, got %d", n)
		}
	}

	if n%2 != 0 {
		err.add("participant count must be even, got %d", n)
	}
}

func validateDoubles(err *ValidationError, n, courts int, params Params) {
	if params.Mode == Rotation {
		err.add("round robin only supports singles")
		return
	}

	if params.FixedCount {
		if need := courts * 4; courts > 0 && n != need {
			err.add("participant count mismatch: need %d (%d courts × 4), got %d", need, courts, n)
		}
	} else if n < 4 || n%4 != 0 {
		err.add("doubles needs a multiple of 4 participants (at least 4), got %d", n)
	}

	if n%2 != 0 {
		err.add("participant count must be even, got %d", n)
	}
}

func validateGroups(err *ValidationError, roster []pairing.Participant, params Params) {
	groups := params.Groups
	if groups == nil {
		split := pairing.Partition(roster)
		groups = &split
	} else {
		validateSplit(err, roster, *groups)
	}

	need := params.Format.TeamSize()
	if len(groups.A) < need || len(groups.B) < need {
		err.add(
			"each group needs at least %d participants for %s, got %d and %d",
			need, params.Format, len(groups.A), len(groups.B),
		)
	}
}

// validateSplit checks that a predefined split partitions the roster.
func validateSplit(err *ValidationError, roster []pairing.Participant, groups pairing.Groups) {
	side := make(map[string]string, groups.Len())
	sides := []struct {
		name    string
		members []pairing.Participant
	}{{"A", groups.A}, {"B", groups.B}}

	for _, group := range sides {
		for _, p := range group.members {
			if other, found := side[p.ID()]; found && other != group.name {
				err.add("%q is in both groups", p.ID())
			}
			side[p.ID()] = group.name
		}
	}

	for _, p := range roster {
		if _, found := side[p.ID()]; !found {
			err.add("%q is in neither group", p.ID())
		}
	}

	if len(side) > len(roster) {
		err.add("groups contain participants which are not on the roster")
	}
}
