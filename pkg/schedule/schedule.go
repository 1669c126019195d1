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

// Package schedule builds multi-round court schedules. A run validates its
// parameters, splits the roster into groups in team mode, and then pairs
// every round in order, each round avoiding the pairings of the ones
// before it.
package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rally/pkg/pairing"
)

// Schedule is the output of a run.
type Schedule struct {
	Rule   string `yaml:"rule,omitempty" json:"rule,omitempty"`
	Format string `yaml:"format" json:"format"`
	Mode   string `yaml:"mode" json:"mode"`
	Seed   int64  `yaml:"seed,omitempty" json:"seed,omitempty"`

	Groups *GroupNames `yaml:"groups,omitempty" json:"groups,omitempty"`
	Rounds []Round     `yaml:"rounds" json:"rounds"`

	Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`

	// History is the pairing history after the last round.
	History *pairing.History `yaml:"-" json:"-"`
}

// GroupNames is the team mode split of a schedule.
type GroupNames struct {
	A []string `yaml:"a" json:"a"`
	B []string `yaml:"b" json:"b"`
}

// ByRound returns the matches of the schedule keyed by round number.
func (schedule *Schedule) ByRound() map[int][]Match {
	rounds := make(map[int][]Match, len(schedule.Rounds))
	for _, round := range schedule.Rounds {
		rounds[round.Number] = round.Matches
	}

	return rounds
}

// Matches returns every match of the schedule in round and court order.
func (schedule *Schedule) Matches() []Match {
	var matches []Match
	for _, round := range schedule.Rounds {
		matches = append(matches, round.Matches...)
	}

	return matches
}

// state is the phase a run is in.
type state int

const (
	validating state = iota
	partitioning
	scheduling
	complete
)

func (s state) String() string {
	return [...]string{"validating", "partitioning", "scheduling", "complete"}[s]
}

type run struct {
	ctx context.Context

	roster []pairing.Participant
	params Params
	rng    *rand.Rand

	history   *pairing.History
	assembler *Assembler
	schedule  *Schedule

	state state
}

func (r *run) enter(s state) {
	r.state = s
	logrus.WithField("state", s).Debug("schedule run")
}

// Run builds a schedule for the roster. The rng is the only source of
// randomness, so a run is reproducible from its seed; a nil rng is seeded
// from the clock.
func Run(roster []pairing.Participant, params Params, rng *rand.Rand) (*Schedule, error) {
	return RunContext(context.Background(), roster, params, rng)
}

// RunContext is Run which gives up with the context's error once ctx is
// done. The context is checked as every round is committed.
func RunContext(ctx context.Context, roster []pairing.Participant, params Params, rng *rand.Rand) (*Schedule, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	r := run{
		ctx:     ctx,
		roster:  roster,
		params:  params,
		rng:     rng,
		history: pairing.NewHistory(),
		schedule: &Schedule{
			Format: params.Format.String(),
			Mode:   params.Mode.String(),
		},
	}

	r.enter(validating)
	if err := Validate(roster, params); err != nil {
		return nil, err
	}

	r.assembler = NewAssembler(params)

	var err error
	switch params.Mode {
	case Team:
		err = r.teams()
	case Rotation:
		err = r.rotation()
	default:
		err = r.search(pairing.RandomPool(roster))
	}

	if err != nil {
		return nil, err
	}

	r.enter(complete)
	r.schedule.History = r.history
	return r.schedule, nil
}

func (r *run) teams() error {
	r.enter(partitioning)

	var groups pairing.Groups
	if r.params.Groups != nil {
		groups = *r.params.Groups
	} else {
		groups = pairing.Partition(r.roster)
	}

	r.schedule.Groups = &GroupNames{
		A: pairing.IDs(groups.A),
		B: pairing.IDs(groups.B),
	}

	logrus.WithFields(logrus.Fields{
		"a": len(groups.A),
		"b": len(groups.B),
	}).Debug("groups assigned")

	return r.search(pairing.TeamPool(groups))
}

func (r *run) search(pool pairing.Pool) error {
	r.enter(scheduling)

	search := pairing.Search{
		Format:   r.params.Format,
		Courts:   r.params.CourtCount(),
		Attempts: r.params.Attempts,
		Workers:  r.params.Workers,
	}

	for number := 1; number <= r.params.Rounds; number++ {
		best := search.Best(r.rng, r.history, pool)
		if err := r.commit(number, best); err != nil {
			return err
		}
	}

	return nil
}

func (r *run) rotation() error {
	r.enter(scheduling)

	// Random seating keeps round robin runs varied but reproducible.
	seating := make([]pairing.Participant, len(r.roster))
	copy(seating, r.roster)
	r.rng.Shuffle(len(seating), func(i, j int) {
		seating[i], seating[j] = seating[j], seating[i]
	})

	rotation := pairing.NewRotation(seating)
	if r.params.Rounds > rotation.Cycle() {
		r.warn("%d rounds exceed the round robin cycle of %d, pairings will repeat", r.params.Rounds, rotation.Cycle())
	}

	for number := 1; number <= r.params.Rounds; number++ {
		matchups, idle := rotation.Next()
		candidate := pairing.Candidate{
			Matchups: matchups,
			Idle:     idle,
			Short:    r.params.CourtCount() - len(matchups),
			Score:    r.history.ScoreRound(matchups),
		}

		if err := r.commit(number, candidate); err != nil {
			return err
		}
	}

	return nil
}

// commit records the round's pairings in the history and assembles it.
// A strict run fails before a short round is committed.
func (r *run) commit(number int, candidate pairing.Candidate) error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("round %d: %w", number, err)
	}

	if candidate.Short > 0 {
		if r.params.Strict {
			return &ShortRoundError{
				Round:  number,
				Courts: r.params.CourtCount(),
				Short:  candidate.Short,
			}
		}

		r.warn("round %d: %d of %d courts left empty", number, candidate.Short, r.params.CourtCount())
	}

	if len(candidate.Idle) > 0 {
		r.warn("round %d: %s sitting out", number, strings.Join(pairing.IDs(candidate.Idle), ", "))
	}

	r.history.Commit(candidate.Matchups)

	round := r.assembler.Round(number, candidate)
	r.schedule.Rounds = append(r.schedule.Rounds, round)

	logrus.WithFields(logrus.Fields{
		"round":    number,
		"matches":  len(round.Matches),
		"conflict": round.Conflict,
		"idle":     len(round.Idle),
	}).Debug("round scheduled")

	return nil
}

func (r *run) warn(format string, a ...any) {
	warning := fmt.Sprintf(format, a...)
	r.schedule.Warnings = append(r.schedule.Warnings, warning)
	logrus.Warn(warning)
}
