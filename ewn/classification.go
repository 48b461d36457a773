package ewn

// Classification is the move-quality bucket EvaluateMove assigns.
// The numeric Value orders buckets from worst to best.
type Classification int

const (
	SelfCapture Classification = iota - 1
	Quiet
	CaptureEnemy
	CaptureSmallerEnemy
	CornerTrap
)

// Value returns the classification's numeric weight from §4.1:
// CaptureSmallerEnemy=2, CaptureEnemy=1, Quiet=0, SelfCapture=-1,
// CornerTrap=-1.
func (c Classification) Value() int {
	switch c {
	case CaptureSmallerEnemy:
		return 2
	case CaptureEnemy:
		return 1
	case SelfCapture, CornerTrap:
		return -1
	default:
		return 0
	}
}

func (c Classification) String() string {
	switch c {
	case CaptureSmallerEnemy:
		return "capture-smaller-enemy"
	case CaptureEnemy:
		return "capture-enemy"
	case SelfCapture:
		return "self-capture"
	case CornerTrap:
		return "corner-trap"
	default:
		return "quiet"
	}
}
