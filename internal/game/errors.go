package game

import "errors"

var (
	// ErrNilCollaborator is returned by New when a required collaborator is missing.
	ErrNilCollaborator = errors.New("game: missing collaborator")
	// ErrNoPlayer is returned by New when the renderer does not know the player entity.
	ErrNoPlayer = errors.New("game: player entity not available")
	// ErrInvalidConfig wraps every Config.Validate failure.
	ErrInvalidConfig = errors.New("game: invalid config")
	// ErrInvalidPhase is returned by lifecycle calls made in the wrong phase.
	ErrInvalidPhase = errors.New("game: invalid phase")
)
