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

package config

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/rally/pkg/pairing"
	"laptudirm.com/x/rally/pkg/schedule"
)

// Event is the description of a scheduling run, as read from an event
// file or an API request.
type Event struct {
	Name string `yaml:"name" json:"name"`

	// The rule used to build the schedule, see schedule.Rules.
	Rule string `yaml:"rule" json:"rule"`

	Rounds     int      `yaml:"rounds" json:"rounds"`
	Courts     int      `yaml:"courts" json:"courts"`
	CourtNames []string `yaml:"court-names" json:"court_names"`

	// Start is parsed leniently ("2024-05-02 18:00", "May 2 2024 6pm", …)
	// and Interval is a Go duration ("2h", "45m").
	Start    string `yaml:"start" json:"start"`
	Interval string `yaml:"interval" json:"interval"`

	// Seed makes the run reproducible. Zero picks a random seed which is
	// reported back in the schedule.
	Seed int64 `yaml:"seed" json:"seed"`

	Attempts int  `yaml:"attempts" json:"attempts"`
	Workers  int  `yaml:"workers" json:"workers"`
	Strict   bool `yaml:"strict" json:"strict"`

	// FixedCount overrides the rule's default when set.
	FixedCount *bool `yaml:"fixed-count" json:"fixed_count"`

	Players []pairing.Player `yaml:"players" json:"players"`
	Groups  *Groups          `yaml:"groups" json:"groups"`
}

// Groups is a predefined team mode split by participant name.
type Groups struct {
	A []string `yaml:"a" json:"a"`
	B []string `yaml:"b" json:"b"`
}

// Load reads the event file at the given path.
func Load(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	event, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return event, nil
}

// Parse decodes an event from YAML.
func Parse(data []byte) (*Event, error) {
	var event Event
	if err := yaml.Unmarshal(data, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// Roster returns the event's players as participants.
func (event *Event) Roster() []pairing.Participant {
	roster := make([]pairing.Participant, len(event.Players))
	for i, player := range event.Players {
		player.Name = strings.TrimSpace(player.Name)
		roster[i] = player
	}

	return roster
}

// Params resolves the event's settings into the rule to run and its
// parameters for the given roster.
func (event *Event) Params(roster []pairing.Participant) (schedule.RuleInfo, schedule.Params, error) {
	info, err := schedule.Describe(event.Rule)
	if err != nil {
		return schedule.RuleInfo{}, schedule.Params{}, err
	}

	params := schedule.Params{
		Format:     info.Format,
		Mode:       info.Mode,
		Rounds:     event.Rounds,
		Courts:     event.Courts,
		CourtNames: event.CourtNames,
		FixedCount: info.FixedCount,
		Attempts:   event.Attempts,
		Workers:    event.Workers,
		Strict:     event.Strict,
	}

	if event.FixedCount != nil {
		params.FixedCount = *event.FixedCount
	}

	if params.Start, err = ParseStart(event.Start); err != nil {
		return info, params, err
	}

	if event.Interval != "" {
		if params.Interval, err = time.ParseDuration(event.Interval); err != nil {
			return info, params, fmt.Errorf("parse interval: %w", err)
		}

		if params.Interval <= 0 {
			return info, params, errors.New("parse interval: interval must be positive")
		}
	}

	if event.Groups != nil && info.Mode == schedule.Team {
		groups, err := pairing.Resolve(roster, event.Groups.A, event.Groups.B)
		if err != nil {
			return info, params, err
		}

		params.Groups = &groups
	}

	return info, params, nil
}

// ParseStart parses a free-form start time in the local time zone. An
// empty string is the zero time, which lets the scheduler pick one.
func ParseStart(start string) (time.Time, error) {
	if strings.TrimSpace(start) == "" {
		return time.Time{}, nil
	}

	t, err := dateparse.ParseLocal(start)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start: %w", err)
	}

	return t, nil
}

// Schedule builds the event's schedule for the given roster, giving up
// once ctx is done.
func (event *Event) Schedule(ctx context.Context, roster []pairing.Participant) (*schedule.Schedule, error) {
	info, params, err := event.Params(roster)
	if err != nil {
		return nil, err
	}

	seed := event.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result, err := info.Rule()(ctx, roster, params, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	result.Seed = seed
	return result, nil
}
