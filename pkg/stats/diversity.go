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

// Package stats measures how varied the pairings of a schedule are.
package stats

import (
	"sort"

	"laptudirm.com/x/rally/pkg/internal/util"
	"laptudirm.com/x/rally/pkg/pairing"
	"laptudirm.com/x/rally/pkg/schedule"
)

// Diversity summarizes the pairings of a single participant.
type Diversity struct {
	ID string

	Matches int

	Partners, UniquePartners   int
	Opponents, UniqueOpponents int
}

// PartnerVariety is the fraction of partners that were new, or 1 when the
// participant never had a partner.
func (d Diversity) PartnerVariety() float64 {
	return fraction(d.UniquePartners, d.Partners)
}

// OpponentVariety is the fraction of opponents that were new, or 1 when
// the participant never had an opponent.
func (d Diversity) OpponentVariety() float64 {
	return fraction(d.UniqueOpponents, d.Opponents)
}

// Repeats is the number of partnerships and meetings which had already
// happened earlier in the schedule.
func (d Diversity) Repeats() int {
	return d.Partners - d.UniquePartners + d.Opponents - d.UniqueOpponents
}

// Measure computes the Diversity of every participant of the schedule,
// ordered naturally by identifier.
func Measure(s *schedule.Schedule) []Diversity {
	partners := make(map[string]map[string]int)
	opponents := make(map[string]map[string]int)
	matches := make(map[string]int)

	for _, match := range s.Matches() {
		m := pairing.Matchup{
			Team1: pairing.Players(match.Team1...),
			Team2: pairing.Players(match.Team2...),
		}

		for _, p := range m.Participants() {
			matches[p.ID()]++
		}

		teammates, rivals := pairing.Pairs(m)
		for _, pair := range teammates {
			count(partners, pair)
		}

		for _, pair := range rivals {
			count(opponents, pair)
		}
	}

	ids := make([]string, 0, len(matches))
	for id := range matches {
		ids = append(ids, id)
	}

	util.SortNatural(ids)

	report := make([]Diversity, len(ids))
	for i, id := range ids {
		report[i] = Diversity{
			ID:              id,
			Matches:         matches[id],
			Partners:        total(partners[id]),
			UniquePartners:  len(partners[id]),
			Opponents:       total(opponents[id]),
			UniqueOpponents: len(opponents[id]),
		}
	}

	return report
}

// MeanPartnerVariety averages PartnerVariety over the given participants.
func MeanPartnerVariety(report []Diversity) float64 {
	return mean(report, Diversity.PartnerVariety)
}

// MeanOpponentVariety averages OpponentVariety over the given participants.
func MeanOpponentVariety(report []Diversity) float64 {
	return mean(report, Diversity.OpponentVariety)
}

// MostRepeated returns up to n participants with the most repeats, most
// repeated first. Participants without repeats are left out.
func MostRepeated(report []Diversity, n int) []Diversity {
	var repeated []Diversity
	for _, d := range report {
		if d.Repeats() > 0 {
			repeated = append(repeated, d)
		}
	}

	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].Repeats() > repeated[j].Repeats()
	})

	if len(repeated) > n {
		repeated = repeated[:n]
	}

	return repeated
}

func count(counts map[string]map[string]int, pair pairing.Pair) {
	for _, link := range [2][2]string{{pair.A, pair.B}, {pair.B, pair.A}} {
		if counts[link[0]] == nil {
			counts[link[0]] = make(map[string]int)
		}

		counts[link[0]][link[1]]++
	}
}

func total(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}

	return n
}

func fraction(part, whole int) float64 {
	if whole == 0 {
		return 1
	}

	return float64(part) / float64(whole)
}

func mean(report []Diversity, metric func(Diversity) float64) float64 {
	if len(report) == 0 {
		return 0
	}

	sum := 0.0
	for _, d := range report {
		sum += metric(d)
	}

	return sum / float64(len(report))
}
