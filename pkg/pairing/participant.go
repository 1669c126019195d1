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

// Package pairing implements the history aware pairing search used to build
// the rounds of a schedule. Anything with a stable identity can be paired.
package pairing

import "strings"

// Participant is anything which can be placed on a court. The identifier
// must be stable and unique within a roster.
type Participant interface {
	ID() string
}

// Rated is implemented by participants which carry a skill rating. The
// rating is only used when splitting a roster into two groups.
type Rated interface {
	Participant
	Rating() float64
}

// Player is the plain name based Participant.
type Player struct {
	Name  string  `yaml:"name" json:"name"`
	Score float64 `yaml:"rating,omitempty" json:"rating,omitempty"`
}

func (player Player) ID() string { return player.Name }
func (player Player) Rating() float64 { return player.Score }
func (player Player) String() string { return player.Name }

// Players converts a list of names into unrated Participants.
func Players(names ...string) []Participant {
	players := make([]Participant, len(names))
	for i, name := range names {
		players[i] = Player{Name: name}
	}

	return players
}

// RatingOf returns the rating of the given participant, or zero if it
// does not carry one.
func RatingOf(p Participant) float64 {
	if rated, ok := p.(Rated); ok {
		return rated.Rating()
	}

	return 0
}

// Matchup is a single contest between two teams on one court. Singles
// teams have one member, doubles teams two.
type Matchup struct {
	Team1 []Participant
	Team2 []Participant
}

// Participants returns every member of the matchup, team1 first.
func (m Matchup) Participants() []Participant {
	all := make([]Participant, 0, len(m.Team1)+len(m.Team2))
	all = append(all, m.Team1...)
	return append(all, m.Team2...)
}

func (m Matchup) String() string {
	return teamString(m.Team1) + " vs " + teamString(m.Team2)
}

func teamString(team []Participant) string {
	names := make([]string, len(team))
	for i, p := range team {
		names[i] = p.ID()
	}

	return strings.Join(names, " & ")
}

// IDs returns the identifiers of the given participants in order.
func IDs(team []Participant) []string {
	ids := make([]string, len(team))
	for i, p := range team {
		ids[i] = p.ID()
	}

	return ids
}
