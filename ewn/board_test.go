package ewn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyBoard returns a board with no cubes placed, side R to move, for
// tests that hand-construct a position rather than using the starting
// triangles. Grounded on Gongo's setUpBoard/loadBoard helpers
// (gongo_robot_test.go), adapted from a board-diagram DSL to direct
// field writes since EWN positions are defined by a handful of cubes
// rather than a dense stone grid.
func emptyBoard() *Board {
	return &Board{sideToMove: Red, winner: Other}
}

func (b *Board) place(side Color, rank int, x, y int) {
	ci := colorIndex(side)
	p := point{X: x, Y: y}
	b.pos[ci][rank] = p
	b.present[ci][rank] = true
	b.count[ci]++
	b.grid[idx(p)] = &cube{Owner: side, Rank: rank}
}

func TestLegalMovesCompleteness(t *testing.T) {
	b, err := NewBoard("012345", "543210", Red)
	require.NoError(t, err)

	moves := b.LegalMoves()
	assert.Len(t, moves, NumRanks*3, "every starting cube has 3 on-board destinations")
	for _, m := range moves {
		to := b.destination(m)
		assert.True(t, to.on(), "move %v has an off-board destination", m)
	}
}

func TestLegalMovesPassWhenNoDestinations(t *testing.T) {
	b := emptyBoard()
	// Red's only cube sits at the board's far corner, where every
	// direction runs off the edge.
	b.place(Red, 0, Size-1, Size-1)
	moves := b.LegalMoves()
	assert.Equal(t, []Move{Pass}, moves)
}

func TestMakeUndoRoundTrip(t *testing.T) {
	b, err := NewBoard("012345", "543210", Red)
	require.NoError(t, err)

	ordering := NewOrdering(NewRandomness(1))
	for i := 0; i < 12 && b.Winner() == Other; i++ {
		before := *b
		beforeGrid := b.grid

		m := ordering.PickOne(b)
		b.MakeMove(m)
		b.UndoMove()

		assert.Equal(t, before.sideToMove, b.sideToMove)
		assert.Equal(t, before.turn, b.turn)
		assert.Equal(t, before.winner, b.winner)
		assert.Equal(t, before.pos, b.pos)
		assert.Equal(t, before.present, b.present)
		assert.Equal(t, before.count, b.count)
		for sq := range beforeGrid {
			if beforeGrid[sq] == nil {
				assert.Nil(t, b.grid[sq])
			} else {
				require.NotNil(t, b.grid[sq])
				assert.Equal(t, *beforeGrid[sq], *b.grid[sq])
			}
		}

		// Advance past the round-tripped position for the next iteration.
		b.MakeMove(m)
	}
}

// TestUndoRestoresCapturedCube is the regression guard spec.md §9's
// Open Question names explicitly: the source's undo_move recomputes
// the captured cube's restore square from an expression that reuses
// start_pos for both end_x and end_y, a bug this implementation must
// not carry over. A round trip that never captures anything can't
// exercise that code path, so this test forces one: Red's rank 0
// captures Blue's rank 1 one step away, then undo must put Blue's
// rank 1 back at its own square, present and on the grid, with Red's
// rank 0 back at its own square.
func TestUndoRestoresCapturedCube(t *testing.T) {
	b := emptyBoard()
	b.place(Red, 0, 2, 2)
	b.place(Blue, 1, 3, 2)
	b.place(Red, 5, 0, 0) // keeps Red's remaining count at 2 before the capture

	m := Move{Rank: 0, Dir: 0} // (2,2) -> (3,2), captures Blue's rank 1
	b.MakeMove(m)

	_, _, occupied := b.CubeAt(3, 2)
	require.True(t, occupied, "capture should have placed red's rank 0 at (3,2)")
	assert.Equal(t, 0, b.Remaining(Blue))

	b.UndoMove()

	redOwner, redRank, redOK := b.CubeAt(2, 2)
	require.True(t, redOK, "red's rank 0 must be restored to its source square (2,2)")
	assert.Equal(t, Red, redOwner)
	assert.Equal(t, 0, redRank)

	blueOwner, blueRank, blueOK := b.CubeAt(3, 2)
	require.True(t, blueOK, "blue's captured rank 1 must be restored to (3,2)")
	assert.Equal(t, Blue, blueOwner)
	assert.Equal(t, 1, blueRank)

	assert.True(t, b.present[colorIndex(Blue)][1])
	assert.Equal(t, point{X: 3, Y: 2}, b.pos[colorIndex(Blue)][1])
	assert.Equal(t, point{X: 2, Y: 2}, b.pos[colorIndex(Red)][0])
	assert.Equal(t, 2, b.Remaining(Red))
	assert.Equal(t, 1, b.Remaining(Blue))
}

func TestInvariantPreservation(t *testing.T) {
	b, err := NewBoard("012345", "543210", Red)
	require.NoError(t, err)
	ordering := NewOrdering(NewRandomness(7))

	for i := 0; i < 40 && b.Winner() == Other; i++ {
		b.MakeMove(ordering.PickOne(b))
		for _, side := range []Color{Red, Blue} {
			ci := colorIndex(side)
			onGrid := 0
			for sq := range b.grid {
				if b.grid[sq] != nil && b.grid[sq].Owner == side {
					onGrid++
					assert.True(t, b.present[ci][b.grid[sq].Rank])
					assert.Equal(t, point{X: sq % Size, Y: sq / Size}, b.pos[ci][b.grid[sq].Rank])
				}
			}
			present := 0
			for r := 0; r < NumRanks; r++ {
				if b.present[ci][r] {
					present++
				}
			}
			assert.Equal(t, b.count[ci], present)
			assert.Equal(t, b.count[ci], onGrid)
		}
	}
}

// Per §3 and the original source's state() (einstein.hpp), the side
// whose own corner holds the higher-ranked invading cube wins: here
// Blue's rank-2 cube sits on Red's corner and Red's rank-3 cube sits
// on Blue's corner, so Blue's corner holds the higher invader and
// Blue wins.
func TestTerminalDetectionUnequalRanks(t *testing.T) {
	b := emptyBoard()
	b.place(Blue, 2, cornerOf(Red).X, cornerOf(Red).Y)
	b.place(Red, 3, cornerOf(Blue).X, cornerOf(Blue).Y)
	b.place(Red, 0, 1, 1)
	b.place(Blue, 0, 4, 4)
	b.recomputeWinner()
	assert.Equal(t, Blue, b.winner)
}

func TestTerminalDetectionDraw(t *testing.T) {
	b := emptyBoard()
	b.place(Blue, 2, cornerOf(Red).X, cornerOf(Red).Y)
	b.place(Red, 2, cornerOf(Blue).X, cornerOf(Blue).Y)
	b.place(Red, 0, 1, 1)
	b.place(Blue, 0, 4, 4)
	b.recomputeWinner()
	assert.Equal(t, NoOne, b.winner)
}

func TestTerminalDetectionNoCubesRemaining(t *testing.T) {
	b := emptyBoard()
	b.place(Blue, 0, 3, 3)
	b.count[colorIndex(Red)] = 0
	b.recomputeWinner()
	assert.Equal(t, Blue, b.winner)
}

// S2 (adjusted): R's rank-0 has already reached B's home corner and
// B's rank-5 sits on R's home corner; per the cross-occupation rule,
// R's corner cube (rank 5) outranks B's corner cube (rank 0), so R
// wins. The original scenario as literally stated in the distillation
// used equal ranks at both corners, which §3's own rule resolves to a
// draw, not a win; see DESIGN.md for why this test uses unequal ranks.
func TestS2SearchShortCircuitsOnExistingTerminal(t *testing.T) {
	b := emptyBoard()
	b.place(Red, 0, cornerOf(Blue).X, cornerOf(Blue).Y)
	b.place(Blue, 5, cornerOf(Red).X, cornerOf(Red).Y)
	b.recomputeWinner()
	require.Equal(t, Red, b.winner)

	search := NewSearch(DefaultConfig(), NewRandomness(1), testLogger())
	move := search.Run(b, 0)
	assert.Equal(t, Pass, move, "a terminal root yields the pass sentinel without searching")
}

func TestS6EncodeDecodeRoundTrip(t *testing.T) {
	m := Move{Rank: 3, Dir: 2}
	assert.Equal(t, "32", m.Encode())

	decoded, err := DecodeMove(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)

	assert.Equal(t, "??", Pass.Encode())
	roundTripped, err := DecodeMove(Pass.Encode())
	require.NoError(t, err)
	assert.Equal(t, Pass, roundTripped)
}

func TestSmallestSurvivingRank(t *testing.T) {
	b := emptyBoard()
	assert.Equal(t, -1, b.SmallestSurvivingRank(Red))
	b.place(Red, 3, 2, 2)
	b.place(Red, 1, 3, 3)
	assert.Equal(t, 1, b.SmallestSurvivingRank(Red))
}
