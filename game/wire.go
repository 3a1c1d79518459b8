package game

import (
	"fmt"
	"strconv"

	"github.com/sgatu/chezz3d/errors"
)

// MOVE_TOKEN_SIZE is the length of a move on the wire: two 3 digit indexes.
const MOVE_TOKEN_SIZE = 6

// Move is a from/to pair of board indexes.
type Move struct {
	From int
	To   int
}

type MoveResult struct {
	Move          Move
	CheckedPlayer PLAYER
	CheckMate     bool
	Winner        PLAYER
	Turn          PLAYER
}

// Token encodes the move for the peer, e.g. {12, 28} -> "012028".
func (m Move) Token() string {
	return fmt.Sprintf("%03d%03d", m.From, m.To)
}

func (m Move) String() string {
	return m.Token()
}

func ParseMove(token string) (Move, error) {
	if len(token) != MOVE_TOKEN_SIZE {
		return Move{}, &errors.UnparseableMoveError{Token: token}
	}
	for _, c := range token {
		if c < '0' || c > '9' {
			return Move{}, &errors.UnparseableMoveError{Token: token}
		}
	}
	from, _ := strconv.Atoi(token[:3])
	to, _ := strconv.Atoi(token[3:])
	if !IndexInBounds(from) || !IndexInBounds(to) {
		return Move{}, &errors.UnparseableMoveError{Token: token}
	}
	return Move{From: from, To: to}, nil
}
