package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	rally "laptudirm.com/x/rally/pkg/common"
	"laptudirm.com/x/rally/pkg/schedule"
	"laptudirm.com/x/rally/pkg/store"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func eventFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "event.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestScheduleJSON(t *testing.T) {
	path := eventFile(t, rally.ExampleEvent)
	db := filepath.Join(t.TempDir(), "rally.db")

	out, err := execute(t, Schedule(), path, "--seed", "5", "--output", "json", "--save", "--db", db)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	var sched schedule.Schedule
	if err := json.Unmarshal([]byte(out), &sched); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}

	if sched.Seed != 5 || len(sched.Rounds) != 3 || sched.Rounds[0].Matches[0].Court != "Centre" {
		t.Fatalf("unexpected schedule %+v", sched)
	}

	out, err = execute(t, Show(), "Thursday Doubles", "--db", db)
	if err != nil {
		t.Fatalf("show: %v", err)
	}

	if !strings.Contains(out, "Round 3") || !strings.Contains(out, "Centre") {
		t.Fatalf("stored schedule is missing rounds:\n%s", out)
	}

	out, err = execute(t, Schedule(), path, "--save", "--db", db)
	if !errors.Is(err, store.ErrEventScheduled) {
		t.Fatalf("saving twice: err = %v, want store.ErrEventScheduled", err)
	}
	if strings.Contains(out, "Round 1") {
		t.Fatalf("a refused save still scheduled:\n%s", out)
	}

	if _, err := execute(t, Schedule(), path, "--save", "--replace", "--db", db); err != nil {
		t.Fatalf("replace: %v", err)
	}
}

func TestScheduleText(t *testing.T) {
	path := eventFile(t, rally.ExampleEvent)

	out, err := execute(t, Schedule(), path, "--seed", "5", "--start", "2024-06-01 10:00")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	for _, want := range []string{"Group A", "Round 1", "Sat 01 Jun 10:00", "Partner variety"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, Schedule(), path, "--output", "xml"); err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
}

func TestValidateCommand(t *testing.T) {
	invalid := strings.Replace(string(rally.ExampleEvent), "  - {name: Hana, rating: 1020}\n", "", 1)
	path := eventFile(t, []byte(invalid))

	out, err := execute(t, Validate(), path)
	if err == nil {
		t.Fatal("expected a validation error for 7 players")
	}

	if !strings.Contains(out, "need 8") {
		t.Fatalf("output does not explain the problem:\n%s", out)
	}

	out, err = execute(t, Validate(), eventFile(t, rally.ExampleEvent))
	if err != nil || !strings.Contains(out, "OK") {
		t.Fatalf("valid event: %v\n%s", err, out)
	}
}

func TestPartitionCommand(t *testing.T) {
	out, err := execute(t, Partition(), eventFile(t, rally.ExampleEvent))
	if err != nil {
		t.Fatalf("partition: %v", err)
	}

	for _, want := range []string{"Group A", "Alice", "Group B", "Chen", "Imbalance"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestPlayersCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "rally.db")

	for _, args := range [][]string{
		{"add", "alice", "1500", "--db", db},
		{"add", "bob", "1600", "--db", db},
		{"remove", "alice", "--db", db},
	} {
		if _, err := execute(t, Players(), args...); err != nil {
			t.Fatalf("players %v: %v", args, err)
		}
	}

	out, err := execute(t, Players(), "list", "--db", db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if !strings.Contains(out, "bob") || strings.Contains(out, "alice") {
		t.Fatalf("unexpected roster:\n%s", out)
	}

	if _, err := execute(t, Players(), "add", "carol", "strong", "--db", db); err == nil {
		t.Fatal("expected an error for a non numeric rating")
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, Rules())
	if err != nil {
		t.Fatalf("rules: %v", err)
	}

	for _, info := range schedule.Rules {
		if !strings.Contains(out, info.Name) {
			t.Errorf("rule %s is not listed", info.Name)
		}
	}
}
