package ewn

import (
	"fmt"
	"strings"
)

// Size is the side length of the grid (B in the spec) and NumRanks is
// the number of cubes per side (N_CUBE).
const (
	Size     = 6
	NumRanks = 6
)

// Pass is the sentinel move returned by LegalMoves when a side has no
// ordinary move available. Undo is reserved by the wire protocol for
// "retract the last two half-moves" and is never returned by
// LegalMoves or accepted by MakeMove.
var (
	Pass = Move{Rank: 15, Dir: 15}
	Undo = Move{Rank: 16, Dir: 16}
)

// Move selects a cube rank belonging to the side to move and one of
// its three directions.
type Move struct {
	Rank int
	Dir  int
}

func (m Move) String() string { return fmt.Sprintf("(%d,%d)", m.Rank, m.Dir) }

// Encode returns the move's two-character wire representation.
func (m Move) Encode() string {
	return string([]byte{'0' + byte(m.Rank), '0' + byte(m.Dir)})
}

// DecodeMove parses the two-character wire representation produced by
// Encode, including the pass and undo sentinels.
func DecodeMove(s string) (Move, error) {
	if len(s) != 2 {
		return Move{}, fmt.Errorf("%w: move %q is not two characters", ErrProtocolViolation, s)
	}
	if s[0] < '0' || s[0] > '0'+16 || s[1] < '0' || s[1] > '0'+16 {
		return Move{}, fmt.Errorf("%w: move %q out of range", ErrProtocolViolation, s)
	}
	rank := int(s[0] - '0')
	dir := int(s[1] - '0')
	return Move{Rank: rank, Dir: dir}, nil
}

// point is a grid coordinate. offBoard marks a captured cube's slot in
// the rank->coordinate table.
type point struct{ X, Y int }

var offBoard = point{X: -100, Y: -100}

func (p point) on() bool { return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size }

// dirOffsets holds, per side, the three (dx,dy) offsets a cube may
// move along. R advances toward increasing (x,y); B mirrors it.
// Indexed by colorIndex(Red)=0, colorIndex(Blue)=1, not by the Color
// enum's own values (Red=1, Blue=2 would overflow a 2-element array).
var dirOffsets = [2][3]point{
	0: {{1, 0}, {0, 1}, {1, 1}},
	1: {{-1, 0}, {0, -1}, {-1, -1}},
}

// homeSquares lists, in the canonical order the input permutation
// string indexes into, the six squares of each side's starting
// triangle: permutation[i] gives the rank placed at homeSquares[i].
// Indexed by colorIndex(Red)=0, colorIndex(Blue)=1 (see dirOffsets).
var homeSquares = [2][NumRanks]point{
	0: {{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {0, 2}},
	1: {
		{Size - 1, Size - 1}, {Size - 2, Size - 1}, {Size - 3, Size - 1},
		{Size - 1, Size - 2}, {Size - 2, Size - 2}, {Size - 1, Size - 3},
	},
}

// cornerOf returns a side's home corner (where it starts, and where
// the opponent must arrive to win).
func cornerOf(side Color) point { return homeSquares[colorIndex(side)][0] }

func colorIndex(c Color) int {
	switch c {
	case Red:
		return 0
	case Blue:
		return 1
	default:
		panic("ewn: colorIndex of non-playing color " + c.String())
	}
}

// cube is one piece: its owner and rank. A nil *cube denotes an empty
// square.
type cube struct {
	Owner Color
	Rank  int
}

// historyEntry is a reversible move record, restoring exactly the
// fields MakeMove touched.
type historyEntry struct {
	mover     Color
	from, to  point
	wasPass   bool
	captured  *cube  // nil if no capture
	capturedAt point // only meaningful when captured != nil
}

// Board is the full EinStein würfelt nicht! position: the grid, each
// side's rank->coordinate table and present flags, side to move, the
// move history (for undo), and a cached winner.
type Board struct {
	grid [Size * Size]*cube

	pos     [2][NumRanks]point
	present [2][NumRanks]bool
	count   [2]int

	sideToMove Color
	turn       int
	winner     Color

	history []historyEntry
}

func idx(p point) int { return p.Y*Size + p.X }

// NewBoard builds the starting position from each side's 6-digit rank
// permutation string. first selects which side moves first.
func NewBoard(redPerm, bluePerm string, first Color) (*Board, error) {
	b := &Board{sideToMove: first, winner: Other}
	if err := b.placeSide(Red, redPerm); err != nil {
		return nil, err
	}
	if err := b.placeSide(Blue, bluePerm); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) placeSide(side Color, perm string) error {
	if len(perm) != NumRanks {
		return fmt.Errorf("%w: permutation %q must have %d digits", ErrProtocolViolation, perm, NumRanks)
	}
	ci := colorIndex(side)
	seen := map[int]bool{}
	for i, ch := range perm {
		if ch < '0' || ch > '5' {
			return fmt.Errorf("%w: permutation digit %q out of range", ErrProtocolViolation, string(ch))
		}
		rank := int(ch - '0')
		if seen[rank] {
			return fmt.Errorf("%w: permutation %q repeats rank %d", ErrProtocolViolation, perm, rank)
		}
		seen[rank] = true
		sq := homeSquares[ci][i]
		b.pos[ci][rank] = sq
		b.present[ci][rank] = true
		b.grid[idx(sq)] = &cube{Owner: side, Rank: rank}
	}
	b.count[ci] = NumRanks
	return nil
}

// SideToMove returns the color whose turn it is.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Turn returns the current ply-pair counter (§3 item 6).
func (b *Board) Turn() int { return b.turn }

// Winner returns the cached terminal outcome: Other while undecided.
func (b *Board) Winner() Color { return b.winner }

// Remaining returns how many cubes a side has left on the board.
func (b *Board) Remaining(side Color) int { return b.count[colorIndex(side)] }

// SmallestSurvivingRank returns the lowest rank still present for
// side, or -1 if the side has no cubes left.
func (b *Board) SmallestSurvivingRank(side Color) int {
	ci := colorIndex(side)
	for r := 0; r < NumRanks; r++ {
		if b.present[ci][r] {
			return r
		}
	}
	return -1
}

// CubeAt returns the owner and rank of the cube occupying (x,y); ok
// is false if the square is empty.
func (b *Board) CubeAt(x, y int) (owner Color, rank int, ok bool) {
	c := b.grid[idx(point{x, y})]
	if c == nil {
		return Other, 0, false
	}
	return c.Owner, c.Rank, true
}

// LegalMoves enumerates every (rank, direction) pair for the side to
// move whose destination is on-board. Returns []Move{Pass} if that
// set is empty.
func (b *Board) LegalMoves() []Move {
	side := b.sideToMove
	ci := colorIndex(side)
	moves := make([]Move, 0, NumRanks*3)
	for r := 0; r < NumRanks; r++ {
		if !b.present[ci][r] {
			continue
		}
		from := b.pos[ci][r]
		for d := 0; d < 3; d++ {
			off := dirOffsets[ci][d]
			to := point{from.X + off.X, from.Y + off.Y}
			if to.on() {
				moves = append(moves, Move{Rank: r, Dir: d})
			}
		}
	}
	if len(moves) == 0 {
		return []Move{Pass}
	}
	return moves
}

// destination computes where (rank, dir) would land for the side to
// move, without checking legality.
func (b *Board) destination(m Move) point {
	ci := colorIndex(b.sideToMove)
	from := b.pos[ci][m.Rank]
	off := dirOffsets[ci][m.Dir]
	return point{from.X + off.X, from.Y + off.Y}
}

// MakeMove applies m, which must be a member of LegalMoves(). Panics
// (a fatal, programming-error condition per §7) if m is not legal.
func (b *Board) MakeMove(m Move) {
	side := b.sideToMove

	if m == Pass {
		if !b.isPassLegal() {
			panic(fmt.Errorf("ewn: illegal move %v: %w", m, ErrIllegalMove))
		}
		b.history = append(b.history, historyEntry{mover: side, wasPass: true})
		b.advanceSide()
		return
	}

	ci := colorIndex(side)
	if m.Rank < 0 || m.Rank >= NumRanks || !b.present[ci][m.Rank] || m.Dir < 0 || m.Dir > 2 {
		panic(fmt.Errorf("ewn: illegal move %v: %w", m, ErrIllegalMove))
	}
	from := b.pos[ci][m.Rank]
	to := b.destination(m)
	if !to.on() {
		panic(fmt.Errorf("ewn: illegal move %v: destination off board: %w", m, ErrIllegalMove))
	}

	entry := historyEntry{mover: side, from: from, to: to}

	if victim := b.grid[idx(to)]; victim != nil {
		vci := colorIndex(victim.Owner)
		b.count[vci]--
		b.present[vci][victim.Rank] = false
		b.pos[vci][victim.Rank] = offBoard
		entry.captured = victim
		entry.capturedAt = to
	}

	b.grid[idx(from)] = nil
	moving := &cube{Owner: side, Rank: m.Rank}
	b.grid[idx(to)] = moving
	b.pos[ci][m.Rank] = to

	b.history = append(b.history, entry)
	b.recomputeWinner()
	b.advanceSide()
}

func (b *Board) isPassLegal() bool {
	moves := b.LegalMoves()
	return len(moves) == 1 && moves[0] == Pass
}

// advanceSide flips the side to move. Per §3 item 6 the turn counter
// increments on the R->B transition, not B->R.
func (b *Board) advanceSide() {
	if b.sideToMove == Red {
		b.sideToMove = Blue
		b.turn++
	} else {
		b.sideToMove = Red
	}
}

// UndoMove reverts the most recent MakeMove. A no-op on an empty
// history.
func (b *Board) UndoMove() {
	n := len(b.history)
	if n == 0 {
		return
	}
	entry := b.history[n-1]
	b.history = b.history[:n-1]

	if b.sideToMove == Blue {
		b.sideToMove = Red
		b.turn--
	} else {
		b.sideToMove = Blue
	}

	if entry.wasPass {
		return
	}

	ci := colorIndex(entry.mover)
	rank := b.grid[idx(entry.to)].Rank
	b.grid[idx(entry.to)] = nil
	b.pos[ci][rank] = entry.from
	b.grid[idx(entry.from)] = &cube{Owner: entry.mover, Rank: rank}

	if entry.captured != nil {
		vci := colorIndex(entry.captured.Owner)
		b.grid[idx(entry.capturedAt)] = entry.captured
		b.pos[vci][entry.captured.Rank] = entry.capturedAt
		b.present[vci][entry.captured.Rank] = true
		b.count[vci]++
	}

	b.recomputeWinner()
}

// recomputeWinner applies the §3 terminal predicate and caches it.
func (b *Board) recomputeWinner() {
	if b.count[colorIndex(Blue)] == 0 {
		b.winner = Red
		return
	}
	if b.count[colorIndex(Red)] == 0 {
		b.winner = Blue
		return
	}

	redCorner := cornerOf(Red)
	blueCorner := cornerOf(Blue)
	redCornerCube := b.grid[idx(redCorner)]
	blueCornerCube := b.grid[idx(blueCorner)]

	crossOccupied := redCornerCube != nil && redCornerCube.Owner == Blue &&
		blueCornerCube != nil && blueCornerCube.Owner == Red
	if crossOccupied {
		switch {
		case redCornerCube.Rank > blueCornerCube.Rank:
			b.winner = Red
		case blueCornerCube.Rank > redCornerCube.Rank:
			b.winner = Blue
		default:
			b.winner = NoOne
		}
		return
	}
	b.winner = Other
}

// EvaluateMove classifies a legal move per §4.1. Passing is always
// Quiet.
func (b *Board) EvaluateMove(m Move) Classification {
	if m == Pass {
		return Quiet
	}
	side := b.sideToMove
	to := b.destination(m)
	victim := b.grid[idx(to)]
	if victim == nil {
		// A cube only ever moves with non-negative offsets toward the
		// opponent's corner, so it can never land back on its own home
		// corner; "destination is own home corner" is read here as the
		// corner this side is racing toward (see DESIGN.md).
		if to == cornerOf(side.Opponent()) && m.Rank != b.SmallestSurvivingRank(side) {
			return CornerTrap
		}
		return Quiet
	}
	if victim.Owner != side {
		if victim.Rank < m.Rank {
			return CaptureSmallerEnemy
		}
		return CaptureEnemy
	}
	// Friendly cube at destination: self-capture, unless the corner-race
	// exception applies (see DESIGN.md for the resolved reading of this
	// rule).
	smallest := b.SmallestSurvivingRank(side)
	if victim.Rank > smallest && inOpponentCornerBlock(side, to) {
		return Quiet
	}
	return SelfCapture
}

// inOpponentCornerBlock reports whether p lies in the 2x2 block of
// cells anchored at the opponent's home corner (the corner cell and
// its two orthogonal neighbors toward the board interior, plus the
// diagonal cell between them).
func inOpponentCornerBlock(side Color, p point) bool {
	opp := side.Opponent()
	corner := cornerOf(opp)
	dx := abs(p.X - corner.X)
	dy := abs(p.Y - corner.Y)
	return dx <= 1 && dy <= 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Clone returns an independent deep copy, used to give a rollout its
// own scratch board so the caller's board is never mutated (§4.3).
func (b *Board) Clone() *Board {
	out := *b
	for i, c := range b.grid {
		if c != nil {
			cp := *c
			out.grid[i] = &cp
		}
	}
	out.history = append([]historyEntry(nil), b.history...)
	return &out
}

// String renders the board as a 6x6 diagram: '.' empty, 'r'/'b' plus
// rank digit for an occupied square, read top row (y=5) to bottom.
// Used only by tests and debug logging, never the wire protocol.
func (b *Board) String() string {
	var sb strings.Builder
	for y := Size - 1; y >= 0; y-- {
		for x := 0; x < Size; x++ {
			c := b.grid[idx(point{x, y})]
			if c == nil {
				sb.WriteString(" .")
				continue
			}
			tag := "r"
			if c.Owner == Blue {
				tag = "b"
			}
			sb.WriteString(" " + tag + fmt.Sprint(c.Rank))
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
