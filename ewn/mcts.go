package ewn

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Search is the MCTS driver: one Config, one Randomness, one move
// Ordering, and (for the lifetime of one call to Run) one arena-based
// Tree. Grounded on the select/expand/simulate/backup shape in
// Jhonaiker2309-Connect6's mcts.go, generalized from UCB1 to UCT with
// the per-child variance bookkeeping and progressive pruning §4.4/§4.5
// add on top.
type Search struct {
	Config Config
	Rand   Randomness
	Log    zerolog.Logger

	ordering *Ordering
}

// NewSearch builds a driver from cfg, using rnd for every stochastic
// choice the driver or its ordering/playout components make.
func NewSearch(cfg Config, rnd Randomness, log zerolog.Logger) *Search {
	return &Search{
		Config:   cfg,
		Rand:     rnd,
		Log:      log,
		ordering: &Ordering{Mode: cfg.OrderingMode, Weights: cfg.Weights, Rand: rnd},
	}
}

// Run drives the search from board's current position and returns the
// move to play. selfMoveIndex is how many moves this agent has
// already made in the current game, used by the early-game filter.
// A board that is already decided returns Pass without searching.
func (s *Search) Run(board *Board, selfMoveIndex int) Move {
	if board.Winner() != Other {
		return Pass
	}
	legal := board.LegalMoves()
	if len(legal) == 1 {
		return legal[0]
	}

	tree := newTree(board.Clone(), s.ordering)
	s.applyEarlyGameFilter(tree, selfMoveIndex)

	start := time.Now()
	iterations := 0
	for time.Since(start) < s.Config.TMax && iterations < s.Config.IMax {
		s.iterate(tree)
		iterations++
	}

	move := s.finalMove(tree)
	s.Log.Debug().
		Int("iterations", iterations).
		Dur("elapsed", time.Since(start)).
		Str("move", move.Encode()).
		Msg("search complete")
	return move
}

// iterate runs exactly one select/expand/simulate/backpropagate cycle
// (§4.5 "One iteration").
func (s *Search) iterate(tree *Tree) {
	leafIdx := s.selectLeaf(tree)
	leaf := tree.at(leafIdx)

	targetIdx := leafIdx
	if !leaf.terminal() && !leaf.fullyExpanded() {
		m := leaf.pending[0]
		leaf.pending = leaf.pending[1:]
		targetIdx = tree.addChild(leafIdx, m, s.ordering)
	}

	s.simulateAndBackpropagate(tree, targetIdx)
}

// selectLeaf walks from the root following the highest-UCT live
// child, applying progressive pruning at each parent visited, until it
// reaches a terminal node or one with pending expansions.
func (s *Search) selectLeaf(tree *Tree) int {
	idx := 0
	for {
		nd := tree.at(idx)
		if nd.terminal() || !nd.fullyExpanded() {
			return idx
		}
		idx = s.selectStep(tree, idx)
	}
}

// selectStep chooses parentIdx's next child by UCT and, unless a
// special case applied, runs progressive pruning on parentIdx
// afterward (§4.5 step 5).
func (s *Search) selectStep(tree *Tree, parentIdx int) int {
	parent := tree.at(parentIdx)
	if len(parent.children) == 1 {
		return parent.children[0]
	}
	live := tree.liveChildren(parent)
	if len(live) == 1 {
		return live[0]
	}

	sign := signFor(parent.board.SideToMove())
	best := live[0]
	bestScore := math.Inf(-1)
	for _, ci := range live {
		c := tree.at(ci)
		score := sign*c.meanValue() + s.Config.C*math.Sqrt(math.Log(float64(parent.n))/float64(c.n))
		if score > bestScore {
			bestScore = score
			best = ci
		}
	}

	s.applyProgressivePruning(tree, parentIdx)
	return best
}

// applyProgressivePruning implements §4.5 step 5. It is a no-op
// unless at least two of parentIdx's live children qualify (n >= N_pp,
// σ < ε).
func (s *Search) applyProgressivePruning(tree *Tree, parentIdx int) {
	parent := tree.at(parentIdx)
	if len(parent.children) <= 1 {
		return
	}
	live := tree.liveChildren(parent)
	if len(live) <= 1 {
		return
	}

	var qualifying []int
	for _, ci := range live {
		c := tree.at(ci)
		if c.n >= s.Config.NPP && c.stdDev() < s.Config.Epsilon {
			qualifying = append(qualifying, ci)
		}
	}
	if len(qualifying) < 2 {
		return
	}

	sign := signFor(parent.board.SideToMove())
	anchorIdx := qualifying[0]
	anchorScore := sign * tree.at(anchorIdx).meanValue()
	for _, ci := range qualifying[1:] {
		sc := sign * tree.at(ci).meanValue()
		if sc > anchorScore {
			anchorScore = sc
			anchorIdx = ci
		}
	}
	anchor := tree.at(anchorIdx)
	lowerBound := sign*anchor.meanValue() - s.Config.Alpha*anchor.stdDev()

	for _, ci := range qualifying {
		if ci == anchorIdx {
			continue
		}
		c := tree.at(ci)
		upperBound := sign*c.meanValue() + s.Config.Alpha*c.stdDev()
		if lowerBound > upperBound {
			c.pruned = true
			parent.live--
		}
	}
}

// simulateAndBackpropagate runs K rollouts from idx's board and walks
// the result up to the root (§4.5 steps 3-4).
func (s *Search) simulateAndBackpropagate(tree *Tree, idx int) {
	nd := tree.at(idx)
	var deltaS, deltaQ float64
	for i := 0; i < s.Config.K; i++ {
		r := Playout(nd.board, s.ordering)
		deltaS += r
		deltaQ += r * r
	}

	for cur := idx; ; {
		c := tree.at(cur)
		c.n += s.Config.K
		c.s += deltaS
		c.q += deltaQ
		if c.parent == noParent {
			return
		}
		cur = c.parent
	}
}

// finalMove applies the decide-move criterion (§4.5 "Final move"):
// among the root's live children, the one maximizing s*v̄(c), no UCT
// bonus. Emits the pass sentinel if no live children exist.
func (s *Search) finalMove(tree *Tree) Move {
	root := tree.root()
	live := tree.liveChildren(root)
	if len(live) == 0 {
		return Pass
	}
	sign := signFor(root.board.SideToMove())
	best := live[0]
	bestScore := sign * tree.at(best).meanValue()
	for _, ci := range live[1:] {
		sc := sign * tree.at(ci).meanValue()
		if sc > bestScore {
			bestScore = sc
			best = ci
		}
	}
	return tree.at(best).move
}

// applyEarlyGameFilter implements the §4.5 "Root bootstrap" early-game
// filter: for the agent's first 4 self-moves, or whenever the root's
// queue exceeds 9 entries, restrict expansion to non-self-capturing
// moves unless that set is empty.
func (s *Search) applyEarlyGameFilter(tree *Tree, selfMoveIndex int) {
	root := tree.root()
	if selfMoveIndex >= 4 && len(root.pending) <= 9 {
		return
	}
	nonSelf := make([]Move, 0, len(root.pending))
	for _, m := range root.pending {
		if root.board.EvaluateMove(m) != SelfCapture {
			nonSelf = append(nonSelf, m)
		}
	}
	if len(nonSelf) > 0 {
		root.pending = nonSelf
	}
}

// signFor returns +1 for R-to-move, -1 for B-to-move, matching the
// UCT and decide-move formulas' s term.
func signFor(side Color) float64 {
	if side == Red {
		return 1
	}
	return -1
}
