package ewn

import "errors"

// ErrProtocolViolation marks an unexpected byte or malformed message
// from the harness. Fatal: the agent loop logs and exits.
var ErrProtocolViolation = errors.New("ewn: protocol violation")

// ErrIllegalMove marks an internal attempt to apply a move outside
// LegalMoves(). It indicates a search bug, never bad input, and is
// fatal for the same reason.
var ErrIllegalMove = errors.New("ewn: illegal move")
