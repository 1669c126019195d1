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
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rally "laptudirm.com/x/rally/pkg/common"
	"laptudirm.com/x/rally/pkg/config"
	"laptudirm.com/x/rally/pkg/pairing"
	"laptudirm.com/x/rally/pkg/store"
)

// loadEvent reads the event named by the command's argument and applies
// the command line overrides to it.
func loadEvent(cmd *cobra.Command, name string) (*config.Event, error) {
	event, err := config.Load(rally.EventFile(name))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		event.Seed, _ = flags.GetInt64("seed")
	}

	if flags.Changed("start") {
		event.Start, _ = flags.GetString("start")
	}

	if flags.Changed("strict") {
		event.Strict, _ = flags.GetBool("strict")
	}

	return event, nil
}

// roster returns the event's players, falling back to the players stored
// in the database when the event lists none.
func roster(ctx context.Context, cmd *cobra.Command, event *config.Event) ([]pairing.Participant, error) {
	if len(event.Players) > 0 {
		return event.Roster(), nil
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	logrus.Debug("event lists no players, using the stored roster")
	return st.Roster(ctx)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	return store.Open(path)
}

func dbFlag(cmd *cobra.Command) {
	cmd.Flags().String("db", rally.DatabaseFile, "Path of the rally database")
}

func eventFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "Seed of the run, 0 picks a random one")
	cmd.Flags().String("start", "", "Start time of the first round")
	cmd.Flags().Bool("strict", false, "Fail instead of leaving courts empty")
	dbFlag(cmd)
}
