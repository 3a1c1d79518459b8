package game

import (
	"fmt"
)

type (
	PLAYER      uint8
	PIECE_TYPE  uint8
	PIECE_STATE uint8
)

const (
	WHITE_PLAYER PLAYER = iota
	BLACK_PLAYER
	UNKNOWN_PLAYER
)

const (
	NO_PIECE PIECE_TYPE = iota
	KING
	QUEEN
	ROOK
	KNIGHT
	BISHOP
	PAWN
	pieceTypeCount
)

const (
	NO_STATE PIECE_STATE = iota
	UNMOVED
	NORMAL
	PROMOTED
	MOVED_DOUBLE
	CHECK_UNMOVED
	CHECK_NORMAL
	CHECKMATE
	pieceStateCount
)

// Value bands of the packed piece byte. A byte is the sum of one value per
// band; the bands never overlap so the sum can be taken apart again.
const (
	sideBand = 127
	rankBand = 12
)

var playerValues = [...]byte{
	WHITE_PLAYER: 0,
	BLACK_PLAYER: sideBand,
}

var pieceTypeValues = [pieceTypeCount]byte{
	NO_PIECE: 0,
	KING:     12,
	QUEEN:    24,
	ROOK:     36,
	KNIGHT:   48,
	BISHOP:   60,
	PAWN:     72,
}

// Piece is the content of one square. The zero value is an empty square.
type Piece struct {
	Player    PLAYER
	PieceType PIECE_TYPE
	State     PIECE_STATE
}

func newPiece(_type PIECE_TYPE, player PLAYER, state PIECE_STATE) Piece {
	return Piece{
		PieceType: _type,
		Player:    player,
		State:     state,
	}
}

func (p Piece) IsEmpty() bool {
	return p.PieceType == NO_PIECE
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s (%s)", p.Player, p.PieceType, p.State)
}

func (p PLAYER) Opponent() PLAYER {
	return WHITE_PLAYER ^ BLACK_PLAYER ^ p
}

func (p PLAYER) String() string {
	switch p {
	case WHITE_PLAYER:
		return "white"
	case BLACK_PLAYER:
		return "black"
	}
	return "unknown"
}

// ParsePlayer is the inverse of String for the two sides.
func ParsePlayer(name string) (PLAYER, bool) {
	switch name {
	case "white":
		return WHITE_PLAYER, true
	case "black":
		return BLACK_PLAYER, true
	}
	return UNKNOWN_PLAYER, false
}

func (t PIECE_TYPE) String() string {
	switch t {
	case KING:
		return "king"
	case QUEEN:
		return "queen"
	case ROOK:
		return "rook"
	case KNIGHT:
		return "knight"
	case BISHOP:
		return "bishop"
	case PAWN:
		return "pawn"
	}
	return "none"
}

func (s PIECE_STATE) String() string {
	switch s {
	case UNMOVED:
		return "unmoved"
	case NORMAL:
		return "normal"
	case PROMOTED:
		return "promoted"
	case MOVED_DOUBLE:
		return "moved double"
	case CHECK_UNMOVED:
		return "check unmoved"
	case CHECK_NORMAL:
		return "check normal"
	case CHECKMATE:
		return "checkmate"
	}
	return "none"
}

// EncodePiece packs a piece into its single byte form.
func EncodePiece(p Piece) byte {
	if p.IsEmpty() {
		return 0
	}
	return playerValues[p.Player] + pieceTypeValues[p.PieceType] + byte(p.State)
}

// DecodePiece is the inverse of EncodePiece. Bytes EncodePiece can never
// produce are rejected.
func DecodePiece(b byte) (Piece, error) {
	if b == 0 {
		return Piece{}, nil
	}
	side := b / sideBand * sideBand
	rank := (b - side) / rankBand * rankBand
	state := b - side - rank

	player := WHITE_PLAYER
	if side == sideBand {
		player = BLACK_PLAYER
	} else if side != 0 {
		return Piece{}, fmt.Errorf("invalid side value %d in byte %d", side, b)
	}
	pieceType := NO_PIECE
	for t := KING; t < pieceTypeCount; t++ {
		if pieceTypeValues[t] == rank {
			pieceType = t
			break
		}
	}
	if pieceType == NO_PIECE {
		return Piece{}, fmt.Errorf("invalid rank value %d in byte %d", rank, b)
	}
	if state == byte(NO_STATE) || state >= byte(pieceStateCount) {
		return Piece{}, fmt.Errorf("invalid state value %d in byte %d", state, b)
	}
	return newPiece(pieceType, player, PIECE_STATE(state)), nil
}
