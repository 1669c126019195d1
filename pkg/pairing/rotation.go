package pairing

import "slices"

// Rotation produces round robin singles rounds using the circle method.
// With an odd number of participants one of them sits out every round.
type Rotation struct {
	roster []Participant

	top, bottom []int
}

// NewRotation seats the given participants around the circle in order.
func NewRotation(roster []Participant) *Rotation {
	rotation := Rotation{roster: roster}

	// Pad odd rosters with a phantom seat which marks the bye.
	seats := len(roster) + len(roster)%2

	rotation.top = make([]int, seats/2)
	rotation.bottom = make([]int, seats/2)

	for i := 0; i < seats; i++ {
		if i < seats/2 {
			rotation.top[i] = i
		} else {
			rotation.bottom[seats-i-1] = i
		}
	}

	return &rotation
}

// Cycle returns the number of rounds after which every participant has
// met every other participant exactly once.
func (rotation *Rotation) Cycle() int {
	return 2*len(rotation.top) - 1
}

// Next returns the matchups of the current round along with the
// participant who has a bye, if any, and turns the circle.
func (rotation *Rotation) Next() ([]Matchup, []Participant) {
	var matchups []Matchup
	var idle []Participant

	for i := range rotation.top {
		p1, p2 := rotation.top[i], rotation.bottom[i]

		switch {
		case p1 >= len(rotation.roster):
			idle = append(idle, rotation.roster[p2])
		case p2 >= len(rotation.roster):
			idle = append(idle, rotation.roster[p1])
		default:
			matchups = append(matchups, Matchup{
				Team1: []Participant{rotation.roster[p1]},
				Team2: []Participant{rotation.roster[p2]},
			})
		}
	}

	rotation.turn()
	return matchups, idle
}

// turn keeps seat 0 fixed and moves every other seat one place clockwise.
func (rotation *Rotation) turn() {
	if len(rotation.top) < 2 {
		return
	}

	last := len(rotation.top) - 1
	moved := rotation.top[last]

	rotation.top = slices.Insert(rotation.top, 1, rotation.bottom[0])[:last+1]
	rotation.bottom = append(rotation.bottom, moved)[1:]
}
