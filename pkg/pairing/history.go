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

import "sort"

// Conflict weights. A repeated partnership is worse than meeting the same
// opponent again.
const (
	TeammateWeight = 2
	OpponentWeight = 1
)

// Pair is an unordered pair of participant identifiers.
type Pair struct {
	A, B string
}

type set map[string]struct{}

// History records who has already played with and against whom during a
// single scheduling run. It only ever grows.
type History struct {
	teammates map[string]set
	opponents map[string]set
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{
		teammates: make(map[string]set),
		opponents: make(map[string]set),
	}
}

// Record adds the given teammate and opponent pairs to the history. Both
// directions of every pair are stored.
func (h *History) Record(teammates, opponents []Pair) {
	for _, pair := range teammates {
		link(h.teammates, pair)
	}

	for _, pair := range opponents {
		link(h.opponents, pair)
	}
}

// Commit records every pairing of the given matchups.
func (h *History) Commit(matchups []Matchup) {
	for _, m := range matchups {
		h.Record(Pairs(m))
	}
}

// Score returns the conflict score of the matchup against the history:
// TeammateWeight for every known teammate pair and OpponentWeight for
// every known opponent pair.
func (h *History) Score(m Matchup) int {
	teammates, opponents := Pairs(m)

	score := 0
	for _, pair := range teammates {
		if h.HasTeammate(pair.A, pair.B) {
			score += TeammateWeight
		}
	}

	for _, pair := range opponents {
		if h.HasOpponent(pair.A, pair.B) {
			score += OpponentWeight
		}
	}

	return score
}

// ScoreRound sums Score over every matchup of a round.
func (h *History) ScoreRound(matchups []Matchup) int {
	total := 0
	for _, m := range matchups {
		total += h.Score(m)
	}

	return total
}

func (h *History) HasTeammate(a, b string) bool {
	_, found := h.teammates[a][b]
	return found
}

func (h *History) HasOpponent(a, b string) bool {
	_, found := h.opponents[a][b]
	return found
}

// Teammates returns the sorted identifiers of everyone id has partnered.
func (h *History) Teammates(id string) []string {
	return members(h.teammates[id])
}

// Opponents returns the sorted identifiers of everyone id has faced.
func (h *History) Opponents(id string) []string {
	return members(h.opponents[id])
}

// Size returns the number of distinct teammate and opponent pairs.
func (h *History) Size() (teammates, opponents int) {
	for _, s := range h.teammates {
		teammates += len(s)
	}

	for _, s := range h.opponents {
		opponents += len(s)
	}

	// every pair is stored in both directions
	return teammates / 2, opponents / 2
}

// Pairs splits a matchup into its teammate pairs (within each team) and
// opponent pairs (every team1 member against every team2 member).
func Pairs(m Matchup) (teammates, opponents []Pair) {
	for _, team := range [2][]Participant{m.Team1, m.Team2} {
		for i := 0; i < len(team); i++ {
			for j := i + 1; j < len(team); j++ {
				teammates = append(teammates, Pair{team[i].ID(), team[j].ID()})
			}
		}
	}

	for _, p1 := range m.Team1 {
		for _, p2 := range m.Team2 {
			opponents = append(opponents, Pair{p1.ID(), p2.ID()})
		}
	}

	return teammates, opponents
}

func link(sets map[string]set, pair Pair) {
	if pair.A == pair.B {
		return
	}

	add(sets, pair.A, pair.B)
	add(sets, pair.B, pair.A)
}

func add(sets map[string]set, from, to string) {
	if sets[from] == nil {
		sets[from] = make(set)
	}

	sets[from][to] = struct{}{}
}

func members(s set) []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}
