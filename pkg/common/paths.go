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

package rally

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const FilePermissions = 0755

//go:embed example.yaml
var ExampleEvent []byte

var (
	// Directory is the root of everything rally keeps on disk.
	Directory = filepath.Join(xdg.Home, "rally")

	// DatabaseFile is the default SQLite database holding the player
	// roster and saved schedules.
	DatabaseFile = filepath.Join(Directory, "rally.db")

	// EventsDirectory is where event files are looked up when a bare
	// name is given instead of a path.
	EventsDirectory = filepath.Join(Directory, "events")
)

// Setup creates rally's directories if they do not exist yet.
func Setup() {
	TryMkdir(Directory)
	TryMkdir(EventsDirectory)

	TryCreate(filepath.Join(EventsDirectory, "example.yaml"), ExampleEvent)
}

func TryMkdir(dir string) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		_ = os.MkdirAll(dir, FilePermissions)
	}
}

func TryCreate(file string, data []byte) {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		_ = os.WriteFile(file, data, FilePermissions)
	}
}

// EventFile resolves the event file to read: an existing path is used as
// is, otherwise the name is looked up in the events directory.
func EventFile(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}

	for _, ext := range []string{"", ".yaml", ".yml"} {
		path := filepath.Join(EventsDirectory, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return name
}
