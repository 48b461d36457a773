package ewn

import (
	"io"

	"github.com/rs/zerolog"
)

// testLogger returns a logger that discards everything, for tests
// that need to satisfy Search's Log field without writing a file.
func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// fakeDice is a deterministic Randomness fed from a fixed script,
// grounded on gongo_robot_test.go's fakeRandomness (same idea: an
// injectable Randomness whose outputs are scripted rather than
// sampled). Unlike Gongo's exhaustive depth-first enumerator, fakeDice
// just replays a queue once, panicking if a test asks for more draws
// than it scripted — EWN's much larger branching factor makes
// exhaustive enumeration impractical, so tests script only the draws
// they care about.
type fakeDice struct {
	ints   []int
	intPos int
}

func (f *fakeDice) Intn(n int) int {
	if f.intPos >= len(f.ints) {
		panic("fakeDice: ran out of scripted Intn values")
	}
	v := f.ints[f.intPos]
	f.intPos++
	if v >= n {
		panic("fakeDice: scripted value out of range for Intn(n)")
	}
	return v
}
