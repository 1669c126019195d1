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
	"fmt"
	"time"

	"laptudirm.com/x/rally/pkg/pairing"
)

// StatusScheduled is the status of a match which has not been played.
const StatusScheduled = "scheduled"

// SetScore is the score of a single set.
type SetScore struct {
	Team1 int `yaml:"team1" json:"team1"`
	Team2 int `yaml:"team2" json:"team2"`
}

// Match is a single finalized entry of a schedule.
type Match struct {
	Round      int       `yaml:"round" json:"round"`
	RoundLabel string    `yaml:"round-label" json:"round_label"`
	Court      string    `yaml:"court" json:"court"`
	Time       time.Time `yaml:"time" json:"scheduled_time"`
	Format     string    `yaml:"format" json:"format"`

	Team1 []string `yaml:"team1" json:"team1"`
	Team2 []string `yaml:"team2" json:"team2"`

	// Result fields are filled in once the match has been played, which
	// is outside the scheduler's concern.
	Status string      `yaml:"status" json:"status"`
	Winner int         `yaml:"winner" json:"winner_team"`
	Sets   [3]SetScore `yaml:"sets" json:"sets"`
	Notes  string      `yaml:"notes,omitempty" json:"notes,omitempty"`

	// Matchup holds the scheduled participants themselves.
	Matchup pairing.Matchup `yaml:"-" json:"-"`
}

// Round is one time slot of a schedule with one match per filled court.
type Round struct {
	Number  int       `yaml:"number" json:"number"`
	Label   string    `yaml:"label" json:"label"`
	Time    time.Time `yaml:"time" json:"scheduled_time"`
	Matches []Match   `yaml:"matches" json:"matches"`

	// Conflict is the total repeat score of the round's pairings.
	Conflict int `yaml:"conflict" json:"conflict"`

	// Short is the number of courts which were left empty and Idle the
	// participants who sat the round out.
	Short int      `yaml:"short,omitempty" json:"short,omitempty"`
	Idle  []string `yaml:"idle,omitempty" json:"idle,omitempty"`
}

// Assembler places the matchups of a round onto courts and time slots.
type Assembler struct {
	// Courts are the given court names, see Court.
	Courts   []string
	Start    time.Time
	Interval time.Duration
	Format   pairing.Format
	Notes    string
}

// NewAssembler returns the Assembler for a run with the given parameters.
func NewAssembler(params Params) *Assembler {
	assembler := Assembler{
		Courts:   params.CourtNames,
		Start:    params.Start,
		Interval: params.Interval,
		Format:   params.Format,
	}

	if assembler.Interval <= 0 {
		assembler.Interval = DefaultInterval
	}

	if assembler.Start.IsZero() {
		assembler.Start = time.Now().Truncate(time.Hour).Add(time.Hour)
	}

	assembler.Notes = fmt.Sprintf("%s %s pairing", params.Mode, params.Format)
	return &assembler
}

// Time returns the start time of the given round. Every court of a round
// starts at the same time.
func (assembler *Assembler) Time(round int) time.Time {
	return assembler.Start.Add(time.Duration(round-1) * assembler.Interval)
}

// Round turns the chosen arrangement of a round into schedule entries.
// Courts are assigned to matchups in order.
func (assembler *Assembler) Round(number int, candidate pairing.Candidate) Round {
	round := Round{
		Number:   number,
		Label:    fmt.Sprintf("Round %d", number),
		Time:     assembler.Time(number),
		Conflict: candidate.Score,
		Short:    candidate.Short,
		Idle:     pairing.IDs(candidate.Idle),
	}

	for i, matchup := range candidate.Matchups {
		round.Matches = append(round.Matches, Match{
			Round:      number,
			RoundLabel: round.Label,
			Court:      assembler.Court(i),
			Time:       round.Time,
			Format:     assembler.Format.String(),

			Team1: pairing.IDs(matchup.Team1),
			Team2: pairing.IDs(matchup.Team2),

			Status: StatusScheduled,
			Notes:  fmt.Sprintf("%s - %s", assembler.Notes, round.Label),

			Matchup: matchup,
		})
	}

	return round
}

// Court returns the label of the i-th court. Courts without a given name
// are labelled with CourtLabel.
func (assembler *Assembler) Court(i int) string {
	if i < len(assembler.Courts) {
		return assembler.Courts[i]
	}

	return CourtLabel(i)
}

// CourtLabel synthesizes the label of the i-th court: "Court A" through
// "Court Z", then "Court AA", "Court AB" and so on.
func CourtLabel(i int) string {
	letters := ""
	for i++; i > 0; i = (i - 1) / 26 {
		letters = string(rune('A'+(i-1)%26)) + letters
	}

	return "Court " + letters
}
