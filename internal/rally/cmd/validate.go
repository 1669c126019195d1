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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/rally/pkg/schedule"
)

func Validate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate event-file",
		Short: "Check whether an event can be scheduled",
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

			_, params, err := event.Params(players)
			if err == nil {
				err = schedule.Validate(players, params)
			}

			out := cmd.OutOrStdout()

			var invalid *schedule.ValidationError
			if errors.As(err, &invalid) {
				fmt.Fprintln(out, "\x1b[31mEvent can not be scheduled\x1b[0m:")
				for _, problem := range invalid.Problems {
					fmt.Fprintf(out, "- %s\n", problem)
				}
				return err
			}

			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\x1b[32mOK\x1b[0m: %d players, %d courts, %d rounds\n",
				len(players), params.CourtCount(), params.Rounds)
			return nil
		},
	}

	eventFlags(cmd)
	return cmd
}
