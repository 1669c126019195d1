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

package pairing

import (
	"fmt"
	"sort"
)

// Groups are the two opposing sides of a team mode run. Team1 of every
// matchup is drawn from A and team2 from B.
type Groups struct {
	A []Participant
	B []Participant
}

// Len returns the total number of participants in both groups.
func (g Groups) Len() int {
	return len(g.A) + len(g.B)
}

// Partition splits the roster into two groups of balanced strength. The
// roster is sorted by rating, highest first, and dealt out in blocks of
// two: 1,2 → A, 3,4 → B, 5,6 → A and so on. Ties keep roster order.
func Partition(roster []Participant) Groups {
	sorted := make([]Participant, len(roster))
	copy(sorted, roster)

	sort.SliceStable(sorted, func(i, j int) bool {
		return RatingOf(sorted[i]) > RatingOf(sorted[j])
	})

	var groups Groups
	for i, p := range sorted {
		if (i/2)%2 == 0 {
			groups.A = append(groups.A, p)
		} else {
			groups.B = append(groups.B, p)
		}
	}

	return groups
}

// Resolve maps the identifiers of a predefined split onto the roster's
// participants. Unknown identifiers are an error.
func Resolve(roster []Participant, a, b []string) (Groups, error) {
	byID := make(map[string]Participant, len(roster))
	for _, p := range roster {
		byID[p.ID()] = p
	}

	lookup := func(ids []string) ([]Participant, error) {
		group := make([]Participant, len(ids))
		for i, id := range ids {
			p, found := byID[id]
			if !found {
				return nil, fmt.Errorf("resolve groups: %q is not on the roster", id)
			}

			group[i] = p
		}

		return group, nil
	}

	var groups Groups
	var err error
	if groups.A, err = lookup(a); err != nil {
		return Groups{}, err
	}

	if groups.B, err = lookup(b); err != nil {
		return Groups{}, err
	}

	return groups, nil
}
