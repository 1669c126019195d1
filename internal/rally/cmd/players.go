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
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rally "laptudirm.com/x/rally/pkg/common"
)

func Players() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Manage the stored player roster",
		Args:  cobra.NoArgs,
	}

	cmd.PersistentFlags().String("db", rally.DatabaseFile, "Path of the rally database")

	cmd.AddCommand(&cobra.Command{
		Use:   "add name [rating]",
		Short: "Add a player, or update the rating of an existing one",
		Args:  cobra.RangeArgs(1, 2),

		RunE: func(cmd *cobra.Command, args []string) error {
			rating := 0.0
			if len(args) == 2 {
				var err error
				if rating, err = strconv.ParseFloat(args[1], 64); err != nil {
					return fmt.Errorf("invalid rating %s", args[1])
				}
			}

			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			player, err := st.AddPlayer(cmd.Context(), args[0], rating)
			if err != nil {
				return err
			}

			logrus.Infof("Added %s with rating %.0f", player.Name, player.Score)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove name",
		Short: "Remove a player from the roster",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			return st.RemovePlayer(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the stored players, best rated first",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			players, err := st.ListPlayers(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(players) == 0 {
				fmt.Fprintln(out, "\x1b[31mNo Players Added.\x1b[0m")
				return nil
			}

			fmt.Fprintln(out, "\x1b[32mPlayers\x1b[0m:")
			for i, p := range players {
				fmt.Fprintf(out, "%3d. %-20s %6.0f\n", i+1, p.Name, p.Score)
			}

			return nil
		},
	})

	return cmd
}
