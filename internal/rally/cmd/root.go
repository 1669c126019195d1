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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	rally "laptudirm.com/x/rally/pkg/common"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "rally",
		Short: "Schedule rounds of singles and doubles matches across courts",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			rally.Setup()
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Rally's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.Version = Version
	root.SetVersionTemplate(Version + "\n")

	// Register the various commands.
	root.AddCommand(Schedule())
	root.AddCommand(Validate())
	root.AddCommand(Partition())
	root.AddCommand(Rules())
	root.AddCommand(Players())
	root.AddCommand(Show())
	root.AddCommand(Serve())

	return root
}

// Version is overridden at link time with -ldflags "-X ...".
var Version = "v0.1.0"
