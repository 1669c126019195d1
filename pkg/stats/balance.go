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

package stats

import (
	"math"

	"laptudirm.com/x/rally/pkg/pairing"
)

// MeanRating returns the average rating of the group, or 0 if it is empty.
func MeanRating(group []pairing.Participant) float64 {
	if len(group) == 0 {
		return 0
	}

	sum := 0.0
	for _, p := range group {
		sum += pairing.RatingOf(p)
	}

	return sum / float64(len(group))
}

// Imbalance is the absolute difference between the mean ratings of the
// two groups.
func Imbalance(groups pairing.Groups) float64 {
	return math.Abs(MeanRating(groups.A) - MeanRating(groups.B))
}
