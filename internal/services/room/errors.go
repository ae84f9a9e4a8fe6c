package room

import "errors"

// Define errors
var (
	ErrStoreUnreachable        = errors.New("store unreachable")
	ErrMissingUserName         = errors.New("user name is required")
	ErrInvalidRoomCode         = errors.New("invalid room code")
	ErrInvalidDiceType         = errors.New("unsupported dice type")
	ErrInvalidDiceCount        = errors.New("dice count out of range")
	ErrInvalidStatisticsTarget = errors.New("statistics target out of range")
	ErrSessionClosed           = errors.New("session is closed")
)
