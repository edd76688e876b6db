package contract

// ErrorKind groups rejections by how the caller should read them.
type ErrorKind uint8

const (
	// ValidationError is a malformed request, rejected before any state is touched.
	ValidationError ErrorKind = iota + 1
	// StateConflictError is a well formed request the current contest state does not allow.
	StateConflictError
	// FatalError means an invariant broke; the trigger is rejected and nothing is written.
	FatalError
)

// String returns the kind as lower-case text for events and logs.
// Example payload: StateConflictError.String()
func (k ErrorKind) String() string {
	switch k {
	case ValidationError:
		return "validation"
	case StateConflictError:
		return "state_conflict"
	case FatalError:
		return "fatal"
	default:
		return "unspecified"
	}
}

// ContestError is a rejection with a stable code and message. Sentinels below are
// compared with errors.Is; wrapped variants keep the sentinel as their cause.
type ContestError struct {
	Kind  ErrorKind
	Code  string
	Msg   string
	cause *ContestError
}

func (e *ContestError) Error() string { return e.Msg }

// Is matches sentinels by code so a detailed copy still satisfies errors.Is.
func (e *ContestError) Is(target error) bool {
	t, ok := target.(*ContestError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Unwrap exposes the sentinel a detailed error was derived from.
func (e *ContestError) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// withDetail returns a copy of the sentinel carrying extra context in the message.
func (e *ContestError) withDetail(detail string) *ContestError {
	return &ContestError{Kind: e.Kind, Code: e.Code, Msg: e.Msg + ": " + detail, cause: e}
}

func newError(kind ErrorKind, code, msg string) *ContestError {
	return &ContestError{Kind: kind, Code: code, Msg: msg}
}

var (
	ErrInvalidTriggerData       = newError(ValidationError, "invalid_data", "invalid trigger data")
	ErrUnknownRequest           = newError(ValidationError, "unknown_request", "unrecognized request")
	ErrUnexpectedAsset          = newError(ValidationError, "unexpected_asset", "only the native asset is accepted with this request")
	ErrInvalidTax               = newError(ValidationError, "invalid_tax", "founder_tax must be a number in [0,1)")
	ErrInvalidAddress           = newError(ValidationError, "invalid_address", "invalid address")
	ErrInsufficientTriggerValue = newError(ValidationError, "insufficient_value", "not enough value attached to create a team")
	ErrZeroAmount               = newError(ValidationError, "zero_amount", "amount must be positive")
	ErrWrongAssetRedeemed       = newError(ValidationError, "wrong_asset", "only shares of the winning team can be redeemed")

	ErrTeamAlreadyExists         = newError(StateConflictError, "team_exists", "team already exists")
	ErrTeamNotFound              = newError(StateConflictError, "team_not_found", "team not found")
	ErrContestFinished           = newError(StateConflictError, "contest_finished", "contest already finished")
	ErrAlreadyFinished           = newError(StateConflictError, "already_finished", "contest already finished")
	ErrWinningTeamLocked         = newError(StateConflictError, "winner_locked", "contributions to candidate winner team are not allowed")
	ErrNoWinnerYet               = newError(StateConflictError, "no_winner", "there is no winner yet")
	ErrChallengePeriodNotElapsed = newError(StateConflictError, "challenge_period", "challenging period is not over yet")
	ErrContestNotFinished        = newError(StateConflictError, "not_finished", "contest is not finished yet")

	ErrCorruptState = newError(FatalError, "corrupt_state", "corrupt contest state")
	ErrInvariant    = newError(FatalError, "invariant", "contest invariant violated")
	ErrOverflow     = newError(FatalError, "overflow", "amount overflow")
	ErrHost         = newError(FatalError, "host", "host call failed")
)
