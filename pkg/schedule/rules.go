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
	"context"
	"fmt"
	"math/rand"

	"github.com/MakeNowJust/heredoc/v2"

	"laptudirm.com/x/rally/pkg/pairing"
)

// Rule builds a schedule for a roster. The rule decides the match format
// and grouping mode, everything else comes from the parameters.
type Rule func(ctx context.Context, roster []pairing.Participant, params Params, rng *rand.Rand) (*Schedule, error)

// RuleInfo describes a registered rule.
type RuleInfo struct {
	Name   string
	Format pairing.Format
	Mode   Mode

	// FixedCount is the rule's default for Params.FixedCount.
	FixedCount bool

	Description string
}

// Rules lists every rule known to Lookup.
var Rules = []RuleInfo{
	{
		Name:       "team-doubles",
		Format:     pairing.Doubles,
		Mode:       Team,
		FixedCount: true,
		Description: heredoc.Doc(`
			Splits the roster into two groups of balanced rating, or uses the
			given groups, and pits a pair from group A against a pair from
			group B on every court. Requires exactly four players per court.
		`),
	},
	{
		Name:   "team-singles",
		Format: pairing.Singles,
		Mode:   Team,
		Description: heredoc.Doc(`
			Splits the roster into two groups and plays a member of group A
			against a member of group B on every court.
		`),
	},
	{
		Name:   "random-doubles",
		Format: pairing.Doubles,
		Mode:   Random,
		Description: heredoc.Doc(`
			Reshuffles the whole roster every round into doubles matches,
			avoiding repeated partners and opponents.
		`),
	},
	{
		Name:   "random-singles",
		Format: pairing.Singles,
		Mode:   Random,
		Description: heredoc.Doc(`
			Reshuffles the whole roster every round into singles matches,
			avoiding repeated opponents.
		`),
	},
	{
		Name:   "round-robin",
		Format: pairing.Singles,
		Mode:   Rotation,
		Description: heredoc.Doc(`
			Plays every participant against every other participant once
			using circle rotation. Odd rosters give one bye per round.
		`),
	},
}

// Describe returns the RuleInfo of the named rule.
func Describe(name string) (RuleInfo, error) {
	switch name {
	case "", "total-random-double":
		// Legacy key of team doubles.
		name = "team-doubles"
	}

	for _, info := range Rules {
		if info.Name == name {
			return info, nil
		}
	}

	return RuleInfo{}, fmt.Errorf("lookup rule: invalid rule %s", name)
}

// Lookup returns the Rule registered under the given name.
func Lookup(name string) (Rule, error) {
	info, err := Describe(name)
	if err != nil {
		return nil, err
	}

	return info.Rule(), nil
}

// Rule returns the function which schedules with this rule's format
// and mode.
func (info RuleInfo) Rule() Rule {
	return func(ctx context.Context, roster []pairing.Participant, params Params, rng *rand.Rand) (*Schedule, error) {
		params.Format, params.Mode = info.Format, info.Mode
		if params.Mode != Team {
			params.Groups = nil
		}

		schedule, err := RunContext(ctx, roster, params, rng)
		if err != nil {
			return nil, err
		}

		schedule.Rule = info.Name
		return schedule, nil
	}
}
