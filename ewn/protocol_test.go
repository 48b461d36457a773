package ewn

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(input string, cfg Config) (*Agent, *bytes.Buffer) {
	out := &bytes.Buffer{}
	search := NewSearch(cfg, NewRandomness(1), testLogger())
	agent := NewAgent(search, strings.NewReader(input), out)
	return agent, out
}

func TestAgentReadOpponentMoveAppliesDecodedMove(t *testing.T) {
	board, err := NewBoard("012345", "543210", Red)
	require.NoError(t, err)

	agent, _ := newTestAgent(Move{Rank: 1, Dir: 0}.Encode(), DefaultConfig())
	agent.board = board
	agent.color = Blue // agent plays B, so it first reads R's move

	require.NoError(t, agent.readOpponentMove())
	assert.Equal(t, Blue, board.SideToMove())
	_, _, ok := board.CubeAt(1, 0)
	assert.False(t, ok, "rank 1 vacated its home square at (1,0)")
}

func TestAgentReadOpponentMoveHandlesUndoSentinel(t *testing.T) {
	board, err := NewBoard("012345", "543210", Red)
	require.NoError(t, err)
	ordering := NewOrdering(NewRandomness(1))
	board.MakeMove(ordering.PickOne(board))
	board.MakeMove(ordering.PickOne(board))

	agent, _ := newTestAgent(Undo.Encode(), DefaultConfig())
	agent.board = board
	agent.color = Blue

	require.NoError(t, agent.readOpponentMove())
	assert.Equal(t, Red, board.SideToMove())
	assert.Equal(t, 0, board.Turn())
}

func TestAgentPlayOwnMoveWritesTwoByteEncodedMove(t *testing.T) {
	board, err := NewBoard("012345", "543210", Red)
	require.NoError(t, err)
	cfg := Config{C: 1.41421356, K: 2, TMax: time.Second, IMax: 20, NPP: 200, Alpha: 0.5, Epsilon: 0.4, OrderingMode: Priority, Weights: DefaultBucketWeights()}

	agent, out := newTestAgent("", cfg)
	agent.board = board
	agent.color = Red

	require.NoError(t, agent.playOwnMove())
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, Blue, board.SideToMove())
}

func TestPlayOneGameRejectsBadFirstByte(t *testing.T) {
	agent, _ := newTestAgent("012345543210x", DefaultConfig())
	err := agent.playOneGame()
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestPlayOneGameRejectsMalformedPermutation(t *testing.T) {
	agent, _ := newTestAgent("01234X543210f", DefaultConfig())
	err := agent.playOneGame()
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestDecodeMoveRejectsWrongLength(t *testing.T) {
	_, err := DecodeMove("1")
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

// S6 (protocol half): the agent, given its own previously emitted
// encoding as opponent input, reconstructs the same move.
func TestAgentReconstructsItsOwnEncodedMove(t *testing.T) {
	m := Move{Rank: 4, Dir: 2}
	decoded, err := DecodeMove(m.Encode())
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}
