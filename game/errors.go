package game

import (
	"github.com/sgatu/chezz3d/errors"
)

// IsIllegalMove reports whether err is a rejected move rather than a fault.
// Rejected moves never change the board.
func IsIllegalMove(err error) bool {
	switch err.(type) {
	case *errors.InvalidMoveError, *errors.UnparseableMoveError:
		return true
	}
	return false
}

// ErrorCode extracts the code of a coded error, "" for any other error.
func ErrorCode(err error) string {
	if coded, ok := err.(errors.CodedError); ok {
		return coded.Code()
	}
	return ""
}
