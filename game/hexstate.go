package game

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sgatu/chezz3d/errors"
)

// HEX_STATE_SIZE is the length of a persisted board: two hex digits per square.
const HEX_STATE_SIZE = BOARD_SIZE * 2

// ParseBoard loads a board saved by Hex, with turn as the side to move.
// Surrounding whitespace (such as the newline ending a save file) is ignored.
func ParseBoard(state string, turn PLAYER) (*Board, error) {
	state = strings.TrimSpace(state)
	if len(state) != HEX_STATE_SIZE {
		return nil, &errors.MalformedStateError{
			Reason: fmt.Sprintf("expected %d hex characters, got %d", HEX_STATE_SIZE, len(state)),
		}
	}
	raw, err := hex.DecodeString(state)
	if err != nil {
		return nil, &errors.MalformedStateError{Reason: err.Error()}
	}
	if turn != WHITE_PLAYER && turn != BLACK_PLAYER {
		return nil, &errors.MalformedStateError{Reason: "unknown side to move"}
	}

	b := newEmptyBoard(turn)
	for i, v := range raw {
		piece, err := DecodePiece(v)
		if err != nil {
			return nil, &errors.MalformedStateError{Reason: fmt.Sprintf("square %d: %s", i, err)}
		}
		b.squares[i] = piece
	}
	found := b.locateKings()
	for _, player := range []PLAYER{WHITE_PLAYER, BLACK_PLAYER} {
		if found[player] != 1 {
			return nil, &errors.MalformedStateError{
				Reason: fmt.Sprintf("expected one %s king, found %d", player, found[player]),
			}
		}
		if b.squares[b.kings[player]].State == CHECKMATE {
			b.turn = UNKNOWN_PLAYER
		}
	}
	return b, nil
}

// Hex returns the board in its persisted form, square 0 first.
func (b *Board) Hex() string {
	raw := make([]byte, BOARD_SIZE)
	for i, p := range b.squares {
		raw[i] = EncodePiece(p)
	}
	return hex.EncodeToString(raw)
}
