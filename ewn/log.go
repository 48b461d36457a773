package ewn

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger opens (creating/truncating) the file at path and returns a
// zerolog logger writing human-readable lines to it, tagged with
// variant in every entry. Grounded on Gongo's robot.Config.Log field
// (a *log.Logger written to from GenMove with a "[gongo]"-style
// prefix), rebuilt on zerolog the way domino14/macondo wires it.
func NewLogger(path, variant string) (zerolog.Logger, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	writer := zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
	logger := zerolog.New(writer).With().Timestamp().Str("variant", variant).Logger()
	return logger, f, nil
}
