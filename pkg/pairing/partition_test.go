package pairing

import (
	"reflect"
	"testing"
)

func rated(scores map[string]float64, names ...string) []Participant {
	roster := make([]Participant, len(names))
	for i, name := range names {
		roster[i] = Player{Name: name, Score: scores[name]}
	}

	return roster
}

func TestPartitionDealsInPairs(t *testing.T) {
	scores := map[string]float64{"p1": 10, "p2": 9, "p3": 8, "p4": 7, "p5": 6, "p6": 5, "p7": 4, "p8": 3}
	roster := rated(scores, "p8", "p3", "p5", "p1", "p7", "p2", "p4", "p6")

	groups := Partition(roster)

	if a, want := IDs(groups.A), []string{"p1", "p2", "p5", "p6"}; !reflect.DeepEqual(a, want) {
		t.Errorf("group A = %v, want %v", a, want)
	}

	if b, want := IDs(groups.B), []string{"p3", "p4", "p7", "p8"}; !reflect.DeepEqual(b, want) {
		t.Errorf("group B = %v, want %v", b, want)
	}
}

func TestPartitionKeepsRosterOrderOnTies(t *testing.T) {
	groups := Partition(Players("a", "b", "c", "d", "e", "f"))

	if a, want := IDs(groups.A), []string{"a", "b", "e", "f"}; !reflect.DeepEqual(a, want) {
		t.Errorf("group A = %v, want %v", a, want)
	}

	if b, want := IDs(groups.B), []string{"c", "d"}; !reflect.DeepEqual(b, want) {
		t.Errorf("group B = %v, want %v", b, want)
	}
}

func TestPartitionCoversRoster(t *testing.T) {
	for n := 0; n <= 9; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}

		groups := Partition(Players(names...))
		if groups.Len() != n {
			t.Fatalf("n=%d: groups hold %d participants", n, groups.Len())
		}

		seen := make(map[string]bool)
		for _, p := range append(groups.A, groups.B...) {
			if seen[p.ID()] {
				t.Fatalf("n=%d: %s is in both groups", n, p.ID())
			}
			seen[p.ID()] = true
		}
	}
}

func TestResolve(t *testing.T) {
	roster := Players("a", "b", "c", "d")

	groups, err := Resolve(roster, []string{"a", "c"}, []string{"b", "d"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if !reflect.DeepEqual(IDs(groups.A), []string{"a", "c"}) || !reflect.DeepEqual(IDs(groups.B), []string{"b", "d"}) {
		t.Fatalf("unexpected groups %v / %v", IDs(groups.A), IDs(groups.B))
	}

	if _, err := Resolve(roster, []string{"a", "x"}, []string{"b"}); err == nil {
		t.Fatal("expected an error for an unknown participant")
	}
}
