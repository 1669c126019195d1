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
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

const spinnerCharSet = 31

var spin = spinner.New(
	spinner.CharSets[spinnerCharSet], 100*time.Millisecond,
	spinner.WithWriter(os.Stderr),
)

func startSpinner(suffix string) {
	spin.Suffix = " " + suffix
	spin.Start()
}

func pauseSpinner() {
	spin.Stop()
}

// busy runs fn with the spinner going. The spinner is left off when trace
// logs are shown, since they would be mangled by it.
func busy(suffix string, fn func() error) error {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		return fn()
	}

	startSpinner(suffix) // Start the ~working~ spinner.
	defer pauseSpinner() // Stop the ~working~ spinner.

	return fn()
}
