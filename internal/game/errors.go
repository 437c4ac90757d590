package game

import "errors"

// Errors returned by rejected transitions. The returned State is always the
// one passed in.
var (
	ErrGameOver            = errors.New("game is over")
	ErrWrongPhase          = errors.New("action not allowed in this phase")
	ErrNoTurn              = errors.New("no turn in progress")
	ErrTurnInProgress      = errors.New("a turn is already in progress")
	ErrInvalidSeat         = errors.New("invalid seat")
	ErrPlayerEliminated    = errors.New("player is eliminated")
	ErrInvalidCard         = errors.New("invalid card type")
	ErrCardNotInHand       = errors.New("card not in hand")
	ErrCardAlreadySelected = errors.New("card already selected this turn")
	ErrNoCardSelected      = errors.New("no card selected")
	ErrNoOpponent          = errors.New("no opponent selected")
	ErrSelfTarget          = errors.New("cannot target yourself")
	ErrAlreadyInTurn       = errors.New("player already held the card this turn")
	ErrNoDeclaration       = errors.New("no declaration to judge")
	ErrInvalidPlayerCount  = errors.New("invalid player count")
	ErrInvalidNames        = errors.New("invalid player names")
	ErrAlreadyRevealed     = errors.New("player already revealed an initial card")
	ErrRevealPending       = errors.New("not every player has revealed an initial card")
)
