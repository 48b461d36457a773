package ewn

// Color tags a cube's owner, or a cached game outcome. Other denotes
// "absence" (an empty square, or an undecided winner); NoOne denotes
// a drawn terminal.
type Color int8

const (
	Other Color = iota
	Red
	Blue
	NoOne
)

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Blue:
		return "B"
	case NoOne:
		return "draw"
	default:
		return "."
	}
}

// Opponent returns the other playing side. Panics for Other/NoOne,
// which are never a side-to-move.
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	panic("ewn: no opponent for color " + c.String())
}
