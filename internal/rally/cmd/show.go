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
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func Show() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [event]",
		Short: "Show a stored schedule, or list the stored events",
		Args:  cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				events, err := st.ListEvents(ctx)
				if err != nil {
					return err
				}

				if len(events) == 0 {
					fmt.Fprintln(out, "\x1b[31mNo Events Saved.\x1b[0m")
					return nil
				}

				fmt.Fprintln(out, "\x1b[32mEvents\x1b[0m:")
				for _, event := range events {
					fmt.Fprintf(out, "- %-20s %s  %s %s\n", event.Name, event.ID, event.Mode, event.Format)
				}
				return nil
			}

			// Events can be referred to by name or by ID.
			event, err := st.EventByName(ctx, args[0])
			if errors.Is(err, sql.ErrNoRows) {
				event, err = st.Event(ctx, args[0])
			}
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("show: no event %s", args[0])
			}
			if err != nil {
				return err
			}

			sched, err := st.Schedule(ctx, event.ID)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if err := checkOutput(output); err != nil {
				return err
			}

			return render(out, output, event.Name, sched)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format: text, yaml or json")
	dbFlag(cmd)
	return cmd
}
