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
	"strings"

	"github.com/spf13/cobra"

	"laptudirm.com/x/rally/pkg/schedule"
)

func Rules() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Lists the available scheduling rules",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\x1b[32mScheduling Rules\x1b[0m:")

			for _, info := range schedule.Rules {
				fmt.Fprintf(out, "\n- \x1b[34m%s\x1b[0m (%s, %s)\n", info.Name, info.Mode, info.Format)
				for _, line := range strings.Split(strings.TrimSpace(info.Description), "\n") {
					fmt.Fprintf(out, "  %s\n", line)
				}
			}

			return nil
		},
	}
}
