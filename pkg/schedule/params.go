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
	"time"

	"laptudirm.com/x/rally/pkg/pairing"
)

// Mode is the way participants are grouped into teams.
type Mode int

const (
	// Team mode splits the roster into two groups which face each other
	// in every round.
	Team Mode = iota + 1

	// Random mode reshuffles the whole roster every round.
	Random

	// Rotation mode pairs singles players with the round robin circle.
	Rotation
)

func (mode Mode) String() string {
	switch mode {
	case Team:
		return "team"
	case Random:
		return "random"
	case Rotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// DefaultInterval is the time between the start of consecutive rounds.
const DefaultInterval = 2 * time.Hour

// Limits of a single run.
const (
	MaxRounds   = 1000
	MaxAttempts = pairing.MaxAttempts
	MaxWorkers  = 256
)

// Params are the capacity and shape parameters of a scheduling run.
type Params struct {
	Format pairing.Format
	Mode   Mode

	Rounds int
	Courts int

	// CourtNames, when given, label the courts in order and determine the
	// court count.
	CourtNames []string

	// Groups is a predefined team mode split. When nil the roster is split
	// by rating.
	Groups *pairing.Groups

	// FixedCount requires exactly four participants per court for doubles
	// instead of any multiple of four.
	FixedCount bool

	Start    time.Time
	Interval time.Duration

	// Attempts and Workers tune the pairing search.
	Attempts int
	Workers  int

	// Strict turns a round which cannot fill every court into an error.
	Strict bool
}

// CourtCount returns the number of courts available every round.
func (params Params) CourtCount() int {
	if len(params.CourtNames) > 0 {
		return len(params.CourtNames)
	}

	return params.Courts
}
