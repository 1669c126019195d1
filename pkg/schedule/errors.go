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
	"strings"
)

// ValidationError is returned when the parameters of a run are not
// feasible. Problems holds one human readable reason per failed check.
type ValidationError struct {
	Problems []string
}

func (err *ValidationError) Error() string {
	return "invalid schedule: " + strings.Join(err.Problems, "; ")
}

func (err *ValidationError) add(format string, a ...any) {
	err.Problems = append(err.Problems, fmt.Sprintf(format, a...))
}

// ShortRoundError is returned by strict runs when a round cannot fill all
// of its courts.
type ShortRoundError struct {
	Round  int
	Courts int
	Short  int
}

func (err *ShortRoundError) Error() string {
	return fmt.Sprintf(
		"round %d: only %d of %d courts could be filled",
		err.Round, err.Courts-err.Short, err.Courts,
	)
}
