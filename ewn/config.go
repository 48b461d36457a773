package ewn

import (
	"math"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the driver's full parameter surface (§6 "Parameter
// surface"), filled in with the §4.5 defaults and optionally
// overridden from a TOML file. Grounded on Gongo's Config struct
// (robot.go), which plays the same role for its own sample count and
// board size.
type Config struct {
	// C is the UCT exploration constant.
	C float64
	// K is the simulation batch size run per expanded node.
	K int
	// TMax is the wall-clock search budget per move.
	TMax time.Duration
	// IMax is the iteration cap, checked alongside TMax.
	IMax int

	// NPP is the minimum visit count a child needs to be eligible for
	// progressive pruning.
	NPP int
	// Alpha scales a child's standard deviation into its confidence
	// bound during progressive pruning.
	Alpha float64
	// Epsilon is the standard-deviation ceiling a child must be under
	// to be eligible for progressive pruning.
	Epsilon float64

	// OrderingMode selects deterministic-priority or
	// weighted-stochastic move ordering.
	OrderingMode OrderingMode
	// Weights are the weighted-stochastic mode's per-bucket weights.
	Weights BucketWeights

	// LogPath names the file the agent's zerolog logger writes to.
	// Empty (the DefaultConfig value) means ewnbot-<variant>.log.
	LogPath string
}

// DefaultConfig returns the §4.5/§6 documented defaults.
func DefaultConfig() Config {
	return Config{
		C:            math.Sqrt2,
		K:            30,
		TMax:         9500 * time.Millisecond,
		IMax:         200000,
		NPP:          200,
		Alpha:        0.5,
		Epsilon:      0.4,
		OrderingMode: Priority,
		Weights:      DefaultBucketWeights(),
		LogPath:      "",
	}
}

// tomlConfig mirrors Config's fields with TOML-friendly names and
// primitive types (time.Duration doesn't round-trip through TOML
// cleanly, so TMaxSeconds is a float).
type tomlConfig struct {
	C            *float64 `toml:"exploration_constant"`
	K            *int     `toml:"batch_size"`
	TMaxSeconds  *float64 `toml:"time_budget_seconds"`
	IMax         *int     `toml:"iteration_cap"`
	NPP          *int     `toml:"pruning_min_visits"`
	Alpha        *float64 `toml:"pruning_alpha"`
	Epsilon      *float64 `toml:"pruning_epsilon"`
	Ordering     *string  `toml:"ordering_mode"`
	EnemyCapture *int     `toml:"weight_enemy_capture"`
	Quiet        *int     `toml:"weight_quiet"`
	SelfCapture  *int     `toml:"weight_self_capture"`
	LogPath      *string  `toml:"log_path"`
}

// LoadConfig starts from DefaultConfig and overrides any field present
// in the TOML file at path. Grounded on FrankyGo's and TermChess's use
// of github.com/BurntSushi/toml for the same "defaults + optional file
// override" shape.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	var raw tomlConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return cfg, err
	}
	if raw.C != nil {
		cfg.C = *raw.C
	}
	if raw.K != nil {
		cfg.K = *raw.K
	}
	if raw.TMaxSeconds != nil {
		cfg.TMax = time.Duration(*raw.TMaxSeconds * float64(time.Second))
	}
	if raw.IMax != nil {
		cfg.IMax = *raw.IMax
	}
	if raw.NPP != nil {
		cfg.NPP = *raw.NPP
	}
	if raw.Alpha != nil {
		cfg.Alpha = *raw.Alpha
	}
	if raw.Epsilon != nil {
		cfg.Epsilon = *raw.Epsilon
	}
	if raw.Ordering != nil && *raw.Ordering == "stochastic" {
		cfg.OrderingMode = Stochastic
	}
	if raw.EnemyCapture != nil {
		cfg.Weights.EnemyCapture = *raw.EnemyCapture
	}
	if raw.Quiet != nil {
		cfg.Weights.Quiet = *raw.Quiet
	}
	if raw.SelfCapture != nil {
		cfg.Weights.SelfCapture = *raw.SelfCapture
	}
	if raw.LogPath != nil {
		cfg.LogPath = *raw.LogPath
	}
	return cfg, nil
}
