package errors

type CodedError interface {
	Code() string
}

type InvalidMoveError struct {
	ErrCode string
	Message string
}

func (e *InvalidMoveError) Error() string {
	return e.Message
}

func (e *InvalidMoveError) Code() string {
	return e.ErrCode
}

type UnparseableMoveError struct {
	Token string
}

func (e *UnparseableMoveError) Error() string {
	if e.Token == "" {
		return "Could not parse move."
	}
	return "Could not parse move '" + e.Token + "'."
}

func (e *UnparseableMoveError) Code() string {
	return "UNPARSEABLE_MOVE"
}

// MalformedStateError is returned when a persisted board cannot be loaded.
// The engine cannot continue from such a state.
type MalformedStateError struct {
	Reason string
}

func (e *MalformedStateError) Error() string {
	return "malformed board state: " + e.Reason
}

func (e *MalformedStateError) Code() string {
	return "MALFORMED_STATE"
}
