package game

// Board holds the state of a single game. It is not safe for concurrent use;
// one goroutine owns a Board for the whole game.
type Board struct {
	squares  [BOARD_SIZE]Piece
	masks    *maskCache
	selected int
	kings    [2]int
	turn     PLAYER
}

// SquareInfo is what a presentation layer needs to draw one square.
type SquareInfo struct {
	Player    PLAYER
	PieceType PIECE_TYPE
	Target    bool
}

func newEmptyBoard(turn PLAYER) *Board {
	return &Board{
		masks:    newMaskCache(),
		selected: -1,
		kings:    [2]int{-1, -1},
		turn:     turn,
	}
}

// NewBoard returns the starting position. The back ranks sit on the middle
// layer and every layer gets a row of pawns.
func NewBoard() *Board {
	b := newEmptyBoard(WHITE_PLAYER)
	backRank := [BOARD_WIDTH]PIECE_TYPE{ROOK, KNIGHT, BISHOP, KING, QUEEN, BISHOP, KNIGHT, ROOK}
	for x, pieceType := range backRank {
		b.squares[VectorToIndex(Vector{x, 0, 1})] = newPiece(pieceType, WHITE_PLAYER, UNMOVED)
		b.squares[VectorToIndex(Vector{x, BOARD_DEPTH - 1, 1})] = newPiece(pieceType, BLACK_PLAYER, UNMOVED)
		for z := 0; z < BOARD_LAYERS; z++ {
			b.squares[VectorToIndex(Vector{x, 1, z})] = newPiece(PAWN, WHITE_PLAYER, UNMOVED)
			b.squares[VectorToIndex(Vector{x, BOARD_DEPTH - 2, z})] = newPiece(PAWN, BLACK_PLAYER, UNMOVED)
		}
	}
	b.locateKings()
	return b
}

// locateKings rebuilds the king cache from the squares and returns how many
// kings each side has.
func (b *Board) locateKings() [2]int {
	var found [2]int
	b.kings = [2]int{-1, -1}
	for i, p := range b.squares {
		if p.PieceType == KING {
			found[p.Player]++
			b.kings[p.Player] = i
		}
	}
	return found
}

// PieceAt returns the piece on index, or an empty piece when index is off the board.
func (b *Board) PieceAt(index int) Piece {
	if !IndexInBounds(index) {
		return Piece{}
	}
	return b.squares[index]
}

func (b *Board) setPiece(index int, p Piece) {
	if IndexInBounds(index) {
		b.squares[index] = p
	}
}

func (b *Board) isEmpty(index int) bool {
	return b.PieceAt(index).IsEmpty()
}

// KingIndex returns the square of the given side's king.
func (b *Board) KingIndex(player PLAYER) int {
	return b.kings[player]
}

// Turn returns the side to move, or UNKNOWN_PLAYER once the game ended in checkmate.
func (b *Board) Turn() PLAYER {
	return b.turn
}

func (b *Board) IsCheckmate() bool {
	return b.turn == UNKNOWN_PLAYER
}

// Winner returns the side that delivered checkmate, UNKNOWN_PLAYER while the game goes on.
func (b *Board) Winner() PLAYER {
	for _, player := range []PLAYER{WHITE_PLAYER, BLACK_PLAYER} {
		if b.PieceAt(b.kings[player]).State == CHECKMATE {
			return player.Opponent()
		}
	}
	return UNKNOWN_PLAYER
}

// MoveMask returns the legal targets of the piece on index, computing and
// caching the mask on first use within the turn.
func (b *Board) MoveMask(index int) Mask {
	if b.isEmpty(index) {
		return Mask{}
	}
	if m, ok := b.masks.get(index); ok {
		return m
	}
	m := b.generateMoveMask(index, nil)
	b.masks.put(index, m)
	return m
}

// Selected returns the selected square, -1 when nothing is selected.
func (b *Board) Selected() int {
	return b.selected
}

// SquareAt describes the square at v for rendering. Target tells whether the
// square is a legal destination of the selected piece.
func (b *Board) SquareAt(v Vector) SquareInfo {
	if !VectorInBounds(v) {
		return SquareInfo{Player: UNKNOWN_PLAYER}
	}
	index := VectorToIndex(v)
	p := b.squares[index]
	info := SquareInfo{Player: UNKNOWN_PLAYER, PieceType: p.PieceType}
	if !p.IsEmpty() {
		info.Player = p.Player
	}
	if b.selected != -1 {
		if m, ok := b.masks.get(b.selected); ok {
			info.Target = m.Has(index)
		}
	}
	return info
}

// Select handles a pick on v. A piece of the side to move becomes the
// selection; otherwise, with a selection active, the selected piece is moved
// to v. The returned result is nil when no move was made.
func (b *Board) Select(v Vector) (*MoveResult, error) {
	if !VectorInBounds(v) {
		return nil, nil
	}
	index := VectorToIndex(v)
	p := b.squares[index]
	if !p.IsEmpty() && p.Player == b.turn {
		b.MoveMask(index)
		b.selected = index
		return nil, nil
	}
	if b.selected == -1 {
		return nil, nil
	}
	from := b.selected
	b.selected = -1
	return b.ApplyMove(Move{From: from, To: index})
}
