package game

// Ranks probed by the attack detector. The order only affects how early the
// search stops.
var attackerTypes = [...]PIECE_TYPE{PAWN, BISHOP, KNIGHT, ROOK, QUEEN, KING}

// squareAttacked reports whether a piece of player standing on square could be
// taken by the opponent. A probe of every rank is placed on the square; since
// movement is symmetric, the probe reaches an enemy piece of its own rank
// exactly when that piece reaches the square.
func (b *Board) squareAttacked(player PLAYER, square int) bool {
	if !IndexInBounds(square) {
		return false
	}
	enemy := player.Opponent()
	for _, attacker := range attackerTypes {
		probe := newPiece(attacker, player, NORMAL)
		mask := b.generateMoveMask(square, &probe)
		for _, target := range mask.Squares() {
			occupant := b.squares[target]
			if occupant.PieceType == attacker && occupant.Player == enemy {
				return true
			}
		}
	}
	return false
}

// IsAttacked reports whether player's king would be attacked once the piece on
// from stood on to. With from == to it tests the current position.
// The board is left exactly as it was found.
func (b *Board) IsAttacked(player PLAYER, from, to int) bool {
	if player != WHITE_PLAYER && player != BLACK_PLAYER {
		return false
	}
	if !IndexInBounds(from) || !IndexInBounds(to) {
		return false
	}
	king := b.kings[player]
	if from == to {
		return b.squareAttacked(player, king)
	}
	moving, captured := b.squares[from], b.squares[to]
	b.squares[to] = moving
	b.squares[from] = Piece{}
	if king == from {
		king = to
	}
	attacked := b.squareAttacked(player, king)
	b.squares[from] = moving
	b.squares[to] = captured
	return attacked
}

// InCheck reports whether player's king is attacked right now.
func (b *Board) InCheck(player PLAYER) bool {
	if player != WHITE_PLAYER && player != BLACK_PLAYER {
		return false
	}
	return b.squareAttacked(player, b.kings[player])
}
