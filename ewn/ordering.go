package ewn

// OrderingMode selects how Ordering turns classifier buckets into a
// queue.
type OrderingMode int

const (
	// Priority is the deterministic default: shuffle within each
	// bucket, then concatenate CaptureSmallerEnemy, CaptureEnemy,
	// Quiet, SelfCapture.
	Priority OrderingMode = iota
	// Stochastic draws moves without replacement, weighted by bucket.
	Stochastic
)

// BucketWeights carries the weighted-stochastic mode's per-bucket
// weights (§4.2 suggested defaults: enemy-capture 50, quiet 5,
// self-capture 1). CaptureEnemy and CaptureSmallerEnemy share the
// EnemyCapture weight; CornerTrap is treated as SelfCapture's weight
// since both are discouraged parking moves.
type BucketWeights struct {
	EnemyCapture int
	Quiet        int
	SelfCapture  int
}

// DefaultBucketWeights returns the §4.2 suggested defaults.
func DefaultBucketWeights() BucketWeights {
	return BucketWeights{EnemyCapture: 50, Quiet: 5, SelfCapture: 1}
}

func (w BucketWeights) weightOf(c Classification) int {
	switch c {
	case CaptureEnemy, CaptureSmallerEnemy:
		return w.EnemyCapture
	case SelfCapture, CornerTrap:
		return w.SelfCapture
	default:
		return w.Quiet
	}
}

// scored pairs a move with its classification so ordering need not
// re-run EvaluateMove.
type scored struct {
	move  Move
	class Classification
}

// Ordering turns a board's legal moves into a consumable queue,
// either a deterministic priority concatenation or a weighted draw
// without replacement (§4.2).
type Ordering struct {
	Mode    OrderingMode
	Weights BucketWeights
	Rand    Randomness
}

// NewOrdering builds the default deterministic-priority ordering.
func NewOrdering(rnd Randomness) *Ordering {
	return &Ordering{Mode: Priority, Weights: DefaultBucketWeights(), Rand: rnd}
}

// Queue classifies b's legal moves and returns them ordered per Mode.
// Passing is always a singleton queue.
func (o *Ordering) Queue(b *Board) []Move {
	moves := b.LegalMoves()
	if len(moves) == 1 && moves[0] == Pass {
		return moves
	}
	items := make([]scored, len(moves))
	for i, m := range moves {
		items[i] = scored{move: m, class: b.EvaluateMove(m)}
	}
	switch o.Mode {
	case Stochastic:
		return o.drawWeighted(items)
	default:
		return o.priorityQueue(items)
	}
}

// priorityQueue shuffles within each classification bucket, then
// concatenates CaptureSmallerEnemy, CaptureEnemy, Quiet, SelfCapture.
// CornerTrap moves are appended after SelfCapture: both are
// discouraged, but CornerTrap is strictly a self-inflicted blockage
// rather than a material loss, so it keeps the weakest slot.
func (o *Ordering) priorityQueue(items []scored) []Move {
	buckets := map[Classification][]Move{}
	order := []Classification{CaptureSmallerEnemy, CaptureEnemy, Quiet, SelfCapture, CornerTrap}
	for _, it := range items {
		buckets[it.class] = append(buckets[it.class], it.move)
	}
	out := make([]Move, 0, len(items))
	for _, c := range order {
		bucket := buckets[c]
		o.shuffle(bucket)
		out = append(out, bucket...)
	}
	return out
}

func (o *Ordering) shuffle(moves []Move) {
	for i := len(moves) - 1; i > 0; i-- {
		j := o.Rand.Intn(i + 1)
		moves[i], moves[j] = moves[j], moves[i]
	}
}

// drawWeighted samples without replacement, weight proportional to
// bucket(m), until every move has been emitted.
func (o *Ordering) drawWeighted(items []scored) []Move {
	remaining := append([]scored(nil), items...)
	out := make([]Move, 0, len(items))
	for len(remaining) > 0 {
		idx := o.weightedPick(remaining)
		out = append(out, remaining[idx].move)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out
}

func (o *Ordering) weightedPick(items []scored) int {
	total := 0
	for _, it := range items {
		total += o.Weights.weightOf(it.class)
	}
	if total <= 0 {
		return o.Rand.Intn(len(items))
	}
	r := o.Rand.Intn(total)
	acc := 0
	for i, it := range items {
		acc += o.Weights.weightOf(it.class)
		if r < acc {
			return i
		}
	}
	return len(items) - 1
}

// PickOne returns a single move without building the whole queue: the
// highest-priority bucket's random representative in Priority mode, or
// a single weighted sample in Stochastic mode. Used by playouts, which
// only ever need the next move (§4.2 "Playout shortcut").
func (o *Ordering) PickOne(b *Board) Move {
	moves := b.LegalMoves()
	if len(moves) == 1 && moves[0] == Pass {
		return Pass
	}
	items := make([]scored, len(moves))
	for i, m := range moves {
		items[i] = scored{move: m, class: b.EvaluateMove(m)}
	}
	if o.Mode == Stochastic {
		return items[o.weightedPick(items)].move
	}
	order := []Classification{CaptureSmallerEnemy, CaptureEnemy, Quiet, SelfCapture, CornerTrap}
	for _, c := range order {
		var bucket []Move
		for _, it := range items {
			if it.class == c {
				bucket = append(bucket, it.move)
			}
		}
		if len(bucket) > 0 {
			return bucket[o.Rand.Intn(len(bucket))]
		}
	}
	panic("ewn: PickOne found no candidate among legal moves")
}
