package game

type pawnMode int

const (
	pawnMove pawnMode = iota
	pawnDouble
	pawnTake
	pawnModeCount
)

// Directions walked by the sliding pieces until blocked.
var slideDirections = [pieceTypeCount][]Vector{
	QUEEN: {
		{-1, 0, 0}, {1, 0, 0}, {0, 0, -1}, {0, 0, 1}, {-1, 0, -1}, {-1, 0, 1}, {1, 0, -1}, {1, 0, 1}, {-1, -1, 0},
		{1, -1, 0}, {0, -1, -1}, {0, -1, 1}, {-1, -1, -1}, {-1, -1, 1}, {1, -1, -1}, {1, -1, 1}, {-1, 1, 0}, {1, 1, 0},
		{0, 1, -1}, {0, 1, 1}, {-1, 1, -1}, {-1, 1, 1}, {1, 1, -1}, {1, 1, 1}, {0, 1, 0}, {0, -1, 0},
	},
	ROOK: {
		{-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, -1}, {0, 0, 1}, {-1, 0, -1}, {1, 0, -1}, {0, 1, -1},
		{0, -1, -1}, {-1, 0, 1}, {1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	},
	BISHOP: {
		{-1, -1, 0}, {-1, 1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, -1, 1}, {-1, 1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, -1, -1},
		{-1, 1, -1}, {1, -1, -1}, {1, 1, -1},
	},
}

// Fixed displacements of the leaping pieces.
var leapOffsets = [pieceTypeCount][]Vector{
	KNIGHT: {
		{1, -2, 0}, {2, -1, 0}, {2, 1, 0}, {1, 2, 0}, {-1, 2, 0}, {-2, 1, 0}, {-2, -1, 0}, {-1, -2, 0}, {0, -2, 1},
		{2, 0, 1}, {0, 2, 1}, {-2, 0, 1}, {-1, 0, 2}, {0, -1, 2}, {1, 0, 2}, {0, 1, 2}, {0, -2, -1}, {2, 0, -1},
		{0, 2, -1}, {-2, 0, -1}, {-1, 0, -2}, {0, -1, -2}, {1, 0, -2}, {0, 1, -2},
	},
	KING: {
		{-1, 1, 1}, {0, 1, 1}, {1, 1, 1}, {-1, 0, 1}, {0, 0, 1}, {1, 0, 1}, {-1, -1, 1}, {0, -1, 1}, {1, -1, 1},
		{-1, 1, 0}, {0, 1, 0}, {1, 1, 0}, {-1, 0, 0}, {1, 0, 0}, {-1, -1, 0}, {0, -1, 0}, {1, -1, 0}, {-1, 1, -1},
		{0, 1, -1}, {1, 1, -1}, {-1, 0, -1}, {0, 0, -1}, {1, 0, -1}, {-1, -1, -1}, {0, -1, -1}, {1, -1, -1},
	},
}

// White pawn offsets; black uses the same vectors with Y negated.
var whitePawnOffsets = [pawnModeCount][]Vector{
	pawnMove:   {{0, 1, 0}, {0, 1, 1}, {0, 1, -1}, {0, 0, 1}, {0, 0, -1}},
	pawnDouble: {{0, 2, 0}, {0, 2, 2}, {0, 2, -2}},
	pawnTake:   {{-1, 1, -1}, {-1, 1, 0}, {-1, 1, 1}, {1, 1, -1}, {1, 1, 0}, {1, 1, 1}},
}

var pawnOffsets = [2][pawnModeCount][]Vector{
	WHITE_PLAYER: whitePawnOffsets,
	BLACK_PLAYER: mirrorY(whitePawnOffsets),
}

func mirrorY(offsets [pawnModeCount][]Vector) [pawnModeCount][]Vector {
	var mirrored [pawnModeCount][]Vector
	for mode, vectors := range offsets {
		mirrored[mode] = make([]Vector, len(vectors))
		for i, v := range vectors {
			mirrored[mode][i] = Vector{v.X, -v.Y, v.Z}
		}
	}
	return mirrored
}

// Castling geometry along X, relative to the king. The king side rook sits
// three files towards x=0, the queen side rook four files towards x=7.
const (
	kingSideStep    = -1
	kingSideRook    = 3
	queenSideStep   = 1
	queenSideRook   = 4
	castleKingShift = 2
)

// promotionRow is the row a pawn of the given side promotes on.
func promotionRow(player PLAYER) int {
	if player == WHITE_PLAYER {
		return BOARD_DEPTH - 1
	}
	return 0
}
