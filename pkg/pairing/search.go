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
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Format is the shape of a matchup.
type Format int

const (
	Singles Format = iota + 1
	Doubles
)

// ParseFormat parses "singles" or "doubles".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "singles":
		return Singles, nil
	case "doubles":
		return Doubles, nil
	default:
		return 0, fmt.Errorf("parse format: invalid match format %q", name)
	}
}

// TeamSize returns the number of participants on each side of a matchup.
func (format Format) TeamSize() int {
	if format == Doubles {
		return 2
	}

	return 1
}

// MaxAttempts caps the number of arrangements sampled for a single round.
const MaxAttempts = 10000

// Attempts is the default search budget for the format. Doubles has a far
// larger arrangement space so it gets more samples.
func (format Format) Attempts() int {
	if format == Doubles {
		return 50
	}

	return 30
}

func (format Format) String() string {
	switch format {
	case Singles:
		return "singles"
	case Doubles:
		return "doubles"
	default:
		return "unknown"
	}
}

// Pool is the set of participants eligible for a round. In team mode A and
// B are the two groups; in random mode every participant is in A.
type Pool struct {
	A, B []Participant
	Team bool
}

// TeamPool returns the pool of a team mode round.
func TeamPool(groups Groups) Pool {
	return Pool{A: groups.A, B: groups.B, Team: true}
}

// RandomPool returns the pool of a random mode round.
func RandomPool(roster []Participant) Pool {
	return Pool{A: roster}
}

// Len returns the number of participants in the pool.
func (pool Pool) Len() int {
	return len(pool.A) + len(pool.B)
}

// Candidate is one arrangement of a round's pool onto its courts.
type Candidate struct {
	Matchups []Matchup

	// Idle are the participants of the pool which were not placed, and
	// Short is the number of courts which could not be filled.
	Idle  []Participant
	Short int

	Score   int // total conflict score against the history
	Attempt int // index of the attempt which produced it
	Tried   int // number of attempts which were evaluated
}

// Search looks for the arrangement of a round with the least conflict
// against the history by sampling random arrangements.
type Search struct {
	Format Format
	Courts int

	// Attempts is the number of arrangements sampled per round, at most
	// MaxAttempts. The format's default is used when it is not positive.
	Attempts int

	// Workers is the number of attempts evaluated concurrently.
	Workers int
}

func (search *Search) attempts() int {
	switch {
	case search.Attempts > MaxAttempts:
		return MaxAttempts
	case search.Attempts > 0:
		return search.Attempts
	}

	return search.Format.Attempts()
}

// Best samples arrangements of the pool and returns the one with the lowest
// conflict score, stopping early on a perfect (zero) arrangement. The
// history is only read; committing the result is left to the caller.
//
// Every attempt is seeded from rng up front, so the result is the same no
// matter how many workers evaluate the attempts.
func (search *Search) Best(rng *rand.Rand, history *History, pool Pool) Candidate {
	seeds := make([]int64, search.attempts())
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	var best Candidate
	if search.Workers > 1 {
		best = search.parallel(seeds, history, pool)
	} else {
		best = search.sequential(seeds, history, pool)
	}

	logrus.WithFields(logrus.Fields{
		"score":   best.Score,
		"attempt": best.Attempt,
		"tried":   best.Tried,
		"short":   best.Short,
	}).Trace("pairing search finished")

	return best
}

func (search *Search) sequential(seeds []int64, history *History, pool Pool) Candidate {
	var best Candidate
	for i, seed := range seeds {
		candidate := search.evaluate(i, seed, history, pool)
		if i == 0 || candidate.Score < best.Score {
			best = candidate
		}

		best.Tried = i + 1
		if best.Score == 0 {
			// Perfect round, no point in looking any further.
			break
		}
	}

	return best
}

func (search *Search) parallel(seeds []int64, history *History, pool Pool) Candidate {
	candidates := make([]Candidate, len(seeds))

	var group errgroup.Group
	group.SetLimit(search.Workers)
	for i, seed := range seeds {
		i, seed := i, seed
		group.Go(func() error {
			candidates[i] = search.evaluate(i, seed, history, pool)
			return nil
		})
	}

	_ = group.Wait()

	// The lowest score with the lowest index is the same candidate the
	// sequential search settles on.
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Score < best.Score {
			best = candidate
		}
	}

	best.Tried = len(candidates)
	return best
}

func (search *Search) evaluate(attempt int, seed int64, history *History, pool Pool) Candidate {
	r := rand.New(rand.NewSource(seed))

	var candidate Candidate
	if pool.Team {
		candidate = search.arrangeTeams(r, pool)
	} else {
		candidate = search.arrangeRandom(r, pool)
	}

	candidate.Attempt = attempt
	candidate.Score = history.ScoreRound(candidate.Matchups)
	return candidate
}

// arrangeTeams fills court i with slots [i*size, (i+1)*size) of each
// shuffled group, team1 from A and team2 from B.
func (search *Search) arrangeTeams(r *rand.Rand, pool Pool) Candidate {
	a, b := shuffled(r, pool.A), shuffled(r, pool.B)
	size := search.Format.TeamSize()

	var candidate Candidate
	used := 0
	for court := 0; court < search.Courts; court++ {
		start := court * size
		if start+size > len(a) || start+size > len(b) {
			break
		}

		candidate.Matchups = append(candidate.Matchups, Matchup{
			Team1: a[start : start+size],
			Team2: b[start : start+size],
		})
		used = start + size
	}

	candidate.Idle = append(candidate.Idle, a[used:]...)
	candidate.Idle = append(candidate.Idle, b[used:]...)
	candidate.Short = search.Courts - len(candidate.Matchups)
	return candidate
}

// arrangeRandom fills every court with the next 2*size participants of the
// shuffled pool, the first half forming team1.
func (search *Search) arrangeRandom(r *rand.Rand, pool Pool) Candidate {
	all := shuffled(r, pool.A)
	size := search.Format.TeamSize()

	var candidate Candidate
	used := 0
	for court := 0; court < search.Courts; court++ {
		start := court * 2 * size
		if start+2*size > len(all) {
			break
		}

		candidate.Matchups = append(candidate.Matchups, Matchup{
			Team1: all[start : start+size],
			Team2: all[start+size : start+2*size],
		})
		used = start + 2*size
	}

	candidate.Idle = append(candidate.Idle, all[used:]...)
	candidate.Short = search.Courts - len(candidate.Matchups)
	return candidate
}

func shuffled(r *rand.Rand, pool []Participant) []Participant {
	out := make([]Participant, len(pool))
	copy(out, pool)

	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out
}
