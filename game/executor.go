package game

import (
	"fmt"

	"github.com/sgatu/chezz3d/errors"
)

// ApplyMove plays m for the side to move. An illegal move leaves the board
// untouched and returns an *errors.InvalidMoveError.
func (b *Board) ApplyMove(m Move) (*MoveResult, error) {
	if b.IsCheckmate() {
		return nil, &errors.InvalidMoveError{
			Message: "Game in checkmate",
			ErrCode: "CHECKMATE",
		}
	}
	if !IndexInBounds(m.From) || !IndexInBounds(m.To) {
		return nil, &errors.InvalidMoveError{
			Message: fmt.Sprintf("move %s leaves the board", m),
			ErrCode: "MOVE_NOT_ALLOWED",
		}
	}
	piece := b.squares[m.From]
	if piece.IsEmpty() || piece.Player != b.turn {
		return nil, &errors.InvalidMoveError{
			Message: "No piece selected or piece not owned",
			ErrCode: "INVALID_PIECE_SELECTED",
		}
	}
	if !b.applyMove(m.From, m.To, true, false) {
		return nil, &errors.InvalidMoveError{
			Message: fmt.Sprintf("invalid movement, allowed %+v", b.MoveMask(m.From).Squares()),
			ErrCode: "MOVE_NOT_ALLOWED",
		}
	}
	return b.moveResult(m), nil
}

func (b *Board) moveResult(m Move) *MoveResult {
	result := &MoveResult{
		Move:          m,
		CheckedPlayer: UNKNOWN_PLAYER,
		CheckMate:     b.IsCheckmate(),
		Winner:        b.Winner(),
		Turn:          b.turn,
	}
	for _, player := range []PLAYER{WHITE_PLAYER, BLACK_PLAYER} {
		king := b.kings[player]
		if !IndexInBounds(king) {
			continue
		}
		if b.squares[king].State == CHECKMATE || b.squareAttacked(player, king) {
			result.CheckedPlayer = player
		}
	}
	return result
}

// applyMove moves the piece on from to to. Unless castling is set the move
// must be in the piece's mask; castling marks the rook half of a castle, which
// is relocated without validation, check evaluation or turn change.
func (b *Board) applyMove(from, to int, updateTurn bool, castling bool) bool {
	if !castling && !b.MoveMask(from).Has(to) {
		return false
	}

	piece := b.squares[from]
	switch piece.State {
	case UNMOVED, CHECK_UNMOVED, CHECK_NORMAL:
		piece.State = NORMAL
	}

	fromPos, toPos := IndexToVector(from), IndexToVector(to)
	if piece.PieceType == KING {
		b.kings[piece.Player] = to
		if fromPos.Y == toPos.Y && fromPos.Z == toPos.Z {
			switch toPos.X - fromPos.X {
			case kingSideStep * castleKingShift:
				b.moveCastlingRook(fromPos, kingSideStep, kingSideRook)
			case queenSideStep * castleKingShift:
				b.moveCastlingRook(fromPos, queenSideStep, queenSideRook)
			}
		}
	}
	if piece.PieceType == PAWN && toPos.Y == promotionRow(piece.Player) {
		piece.PieceType = QUEEN
		piece.State = PROMOTED
	}

	b.squares[to] = piece
	b.squares[from] = Piece{}
	if castling {
		return true
	}

	b.masks.clear()
	b.selected = -1
	b.updateCheckState()

	if updateTurn && b.turn != UNKNOWN_PLAYER {
		b.turn = b.turn.Opponent()
	}
	return true
}

// moveCastlingRook puts the rook next to the king's square after the castle.
func (b *Board) moveCastlingRook(kingPos Vector, step int, rookDist int) {
	rookFrom := VectorToIndex(Vector{kingPos.X + step*rookDist, kingPos.Y, kingPos.Z})
	rookTo := VectorToIndex(Vector{kingPos.X + step, kingPos.Y, kingPos.Z})
	b.applyMove(rookFrom, rookTo, false, true)
}

// updateCheckState flags attacked kings and detects checkmate. A side whose
// king is attacked and none of whose pieces has a legal move is mated, which
// ends the game. A CHECK_* flag is only cleared by moving the king itself.
func (b *Board) updateCheckState() {
	for _, player := range []PLAYER{WHITE_PLAYER, BLACK_PLAYER} {
		kingIndex := b.kings[player]
		if !IndexInBounds(kingIndex) {
			continue
		}
		if !b.squareAttacked(player, kingIndex) {
			continue
		}
		king := b.squares[kingIndex]

		// flag the check first so the king cannot castle out of it
		switch king.State {
		case UNMOVED, CHECK_UNMOVED:
			king.State = CHECK_UNMOVED
		default:
			king.State = CHECK_NORMAL
		}
		b.squares[kingIndex] = king

		if !b.hasLegalMove(player) {
			king.State = CHECKMATE
			b.squares[kingIndex] = king
			b.turn = UNKNOWN_PLAYER
		}
	}
}

func (b *Board) hasLegalMove(player PLAYER) bool {
	for i, p := range b.squares {
		if !p.IsEmpty() && p.Player == player && !b.MoveMask(i).Empty() {
			return true
		}
	}
	return false
}
