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
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/rally/pkg/pairing"
	"laptudirm.com/x/rally/pkg/stats"
)

func Partition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partition event-file",
		Short: "Show how the players of an event are split into two groups",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := loadEvent(cmd, args[0])
			if err != nil {
				return err
			}

			players, err := roster(cmd.Context(), cmd, event)
			if err != nil {
				return err
			}

			groups := pairing.Partition(players)
			if event.Groups != nil {
				if groups, err = pairing.Resolve(players, event.Groups.A, event.Groups.B); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, group := range []struct {
				name    string
				members []pairing.Participant
			}{{"A", groups.A}, {"B", groups.B}} {
				fmt.Fprintf(out, "\x1b[34mGroup %s\x1b[0m (mean rating %.1f):\n", group.name, stats.MeanRating(group.members))
				for _, p := range group.members {
					fmt.Fprintf(out, "- %-20s %6.0f\n", p.ID(), pairing.RatingOf(p))
				}
			}

			fmt.Fprintf(out, "Imbalance: %.1f\n", stats.Imbalance(groups))
			return nil
		},
	}

	dbFlag(cmd)
	return cmd
}
