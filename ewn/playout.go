package ewn

// Playout runs a random-policy game to termination from b's current
// position, using ordering's PickOne at each step (§4.3). It never
// mutates b: it rolls out on a clone. Returns +1 if R won, -1 if B
// won, 0 on a draw.
func Playout(b *Board, ordering *Ordering) float64 {
	scratch := b.Clone()
	for scratch.Winner() == Other {
		m := ordering.PickOne(scratch)
		scratch.MakeMove(m)
	}
	return Outcome(scratch.Winner())
}

// Outcome maps a cached winner to the scalar return used throughout
// the search (R's frame: +1 for R, -1 for B, 0 for a draw).
func Outcome(winner Color) float64 {
	switch winner {
	case Red:
		return 1
	case Blue:
		return -1
	default:
		return 0
	}
}
