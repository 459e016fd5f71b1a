package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotStarted    = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidPlayer     = errors.New("invalid player mark")
	ErrInvalidDimensions = errors.New("board dimensions out of range")

	ErrTransportFailure     = errors.New("move request failed")
	ErrServerTrustViolation = errors.New("engine returned an illegal move")
	ErrNothingToRetry       = errors.New("no engine turn to retry")
)
