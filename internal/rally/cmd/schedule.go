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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/rally/pkg/schedule"
	"laptudirm.com/x/rally/pkg/store"
)

func Schedule() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule event-file",
		Short: "Generate the schedule of an event",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`schedule generates the rounds of the given event and
			prints them. The event is either a path to a YAML event file
			or the name of a file in ~/rally/events.

			Every round is the best of several random arrangements, the
			one repeating the fewest earlier partners and opponents.
			The same --seed always gives the same schedule.

			With --save the schedule is stored in the database under
			the event's name, where "rally show" can find it again.`),
		Example: heredoc.Doc(`
			$ rally schedule example
			$ rally schedule thursday.yaml --seed 42 --output yaml
			$ rally schedule thursday.yaml --start "2024-05-09 18:00" --save`),

		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := loadEvent(cmd, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			players, err := roster(ctx, cmd, event)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if err := checkOutput(output); err != nil {
				return err
			}

			save, _ := cmd.Flags().GetBool("save")
			replace, _ := cmd.Flags().GetBool("replace")

			var st *store.Store
			if save {
				if event.Name == "" {
					return fmt.Errorf("save schedule: event has no name")
				}

				if st, err = openStore(cmd); err != nil {
					return err
				}
				defer st.Close()

				// An existing schedule is only overwritten with --replace.
				if ok, err := st.CanGenerate(ctx, event.Name); err != nil {
					return err
				} else if !ok && !replace {
					return fmt.Errorf("save %s: %w, use --replace to overwrite it", event.Name, store.ErrEventScheduled)
				}
			}

			var sched *schedule.Schedule
			err = busy("Scheduling "+event.Name, func() error {
				sched, err = event.Schedule(ctx, players)
				return err
			})
			if err != nil {
				return err
			}

			logrus.WithField("seed", sched.Seed).Debug("schedule generated")

			if save {
				saved, err := st.SaveSchedule(ctx, event.Name, sched, replace)
				if err != nil {
					return err
				}

				logrus.Infof("Saved schedule of %s as event %s", event.Name, saved.ID)
			}

			return render(cmd.OutOrStdout(), output, event.Name, sched)
		},
	}

	cmd.Flags().StringP("output", "o", "text", "Output format: text, yaml or json")
	cmd.Flags().Bool("save", false, "Store the schedule in the database")
	cmd.Flags().Bool("replace", false, "Overwrite a stored schedule of the same event")
	eventFlags(cmd)

	return cmd
}
