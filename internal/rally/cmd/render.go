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

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"laptudirm.com/x/rally/pkg/schedule"
	"laptudirm.com/x/rally/pkg/stats"
)

var outputs = []string{"text", "yaml", "json"}

func checkOutput(output string) error {
	for _, o := range outputs {
		if o == output {
			return nil
		}
	}

	return fmt.Errorf("invalid output format %s, want one of %s", output, strings.Join(outputs, ", "))
}

func render(w io.Writer, output, title string, sched *schedule.Schedule) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sched); err != nil {
			return err
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sched)

	default:
		report(w, title, sched)
		return nil
	}
}

const tableWidth = 58

func border(w io.Writer, left, right string) {
	fmt.Fprintln(w, left+strings.Repeat("═", tableWidth)+right)
}

func row(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "║ %-*s ║\n", tableWidth-2, fmt.Sprintf(format, a...))
}

// report prints the schedule as one table per round followed by the
// warnings and the pairing diversity of the schedule.
func report(w io.Writer, title string, sched *schedule.Schedule) {
	if title == "" {
		title = sched.Rule
	}

	fmt.Fprintf(w, "\x1b[32m%s\x1b[0m: %s %s, seed %d\n\n", title, sched.Mode, sched.Format, sched.Seed)

	if sched.Groups != nil {
		fmt.Fprintf(w, "Group A: %s\n", strings.Join(sched.Groups.A, ", "))
		fmt.Fprintf(w, "Group B: %s\n\n", strings.Join(sched.Groups.B, ", "))
	}

	for _, round := range sched.Rounds {
		border(w, "╔", "╗")
		row(w, "%-30s %25s", round.Label, round.Time.Format("Mon 02 Jan 15:04"))
		border(w, "╠", "╣")
		for _, match := range round.Matches {
			row(w, "%-10s %-20s vs %-20s",
				clip(match.Court, 10),
				clip(strings.Join(match.Team1, " & "), 20),
				clip(strings.Join(match.Team2, " & "), 20))
		}

		if len(round.Idle) > 0 {
			row(w, "Sitting out: %s", clip(strings.Join(round.Idle, ", "), tableWidth-15))
		}

		if round.Conflict > 0 {
			row(w, "Repeat score: %d", round.Conflict)
		}
		border(w, "╚", "╝")
	}

	for _, warning := range sched.Warnings {
		fmt.Fprintf(w, "\x1b[33mwarning\x1b[0m: %s\n", warning)
	}

	diversity(w, stats.Measure(sched))
}

func diversity(w io.Writer, report []stats.Diversity) {
	if len(report) == 0 {
		return
	}

	fmt.Fprintln(w)
	border(w, "╔", "╗")
	row(w, "   Name                Games  Partners  Opponents  Repeat")
	border(w, "╠", "╣")
	for i, d := range report {
		row(w, "%2d. %-18s %5d    %2d/%-2d     %2d/%-2d    %4d",
			i+1, clip(d.ID, 18), d.Matches,
			d.UniquePartners, d.Partners,
			d.UniqueOpponents, d.Opponents,
			d.Repeats())
	}
	border(w, "╚", "╝")

	fmt.Fprintf(w, "Partner variety %.0f%%, opponent variety %.0f%%\n",
		100*stats.MeanPartnerVariety(report),
		100*stats.MeanOpponentVariety(report))

	if repeated := stats.MostRepeated(report, 3); len(repeated) > 0 {
		names := make([]string, len(repeated))
		for i, d := range repeated {
			names[i] = fmt.Sprintf("%s (%d)", d.ID, d.Repeats())
		}

		fmt.Fprintf(w, "Most repeated: %s\n", strings.Join(names, ", "))
	}
}

func clip(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}

	return s
}
