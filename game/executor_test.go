package game

import (
	"testing"

	"github.com/sgatu/chezz3d/errors"
)

func TestApplyMoveFlipsTurnAndClearsCache(t *testing.T) {
	b := NewBoard()
	from, to := idx(0, 1, 0), idx(0, 3, 0)
	b.MoveMask(idx(1, 1, 0))
	result, err := b.ApplyMove(Move{From: from, To: to})
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if b.Turn() != BLACK_PLAYER || result.Turn != BLACK_PLAYER {
		t.Errorf("expected black to move, got %s", b.Turn())
	}
	if b.masks.len() != 0 {
		t.Errorf("mask cache not cleared, %d entries left", b.masks.len())
	}
	if !b.PieceAt(from).IsEmpty() {
		t.Error("source square should be empty")
	}
	if moved := b.PieceAt(to); moved.PieceType != PAWN || moved.State != NORMAL {
		t.Errorf("expected a normal pawn on the target, got %v", moved)
	}
	if result.CheckedPlayer != UNKNOWN_PLAYER || result.CheckMate {
		t.Errorf("unexpected check in %+v", result)
	}
}

func TestIllegalMovesAreNoOps(t *testing.T) {
	tests := []struct {
		name string
		move Move
		code string
	}{
		{"too far", Move{From: idx(0, 1, 0), To: idx(0, 5, 0)}, "MOVE_NOT_ALLOWED"},
		{"empty source", Move{From: idx(4, 4, 1), To: idx(4, 5, 1)}, "INVALID_PIECE_SELECTED"},
		{"opponent piece", Move{From: idx(0, 6, 0), To: idx(0, 5, 0)}, "INVALID_PIECE_SELECTED"},
		{"onto own piece", Move{From: idx(0, 0, 1), To: idx(0, 1, 1)}, "MOVE_NOT_ALLOWED"},
		{"off the board", Move{From: idx(0, 1, 0), To: BOARD_SIZE}, "MOVE_NOT_ALLOWED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			before := b.Hex()
			result, err := b.ApplyMove(tt.move)
			if err == nil {
				t.Fatalf("expected an error, got %+v", result)
			}
			moveErr, ok := err.(*errors.InvalidMoveError)
			if !ok {
				t.Fatalf("expected *errors.InvalidMoveError, got %T", err)
			}
			if moveErr.Code() != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, moveErr.Code())
			}
			if !IsIllegalMove(err) {
				t.Error("IsIllegalMove should accept the error")
			}
			if b.Hex() != before || b.Turn() != WHITE_PLAYER {
				t.Error("an illegal move changed the board")
			}
		})
	}
}

func TestKingSideCastle(t *testing.T) {
	b := setupBoard(t, WHITE_PLAYER,
		at(3, 0, 1, KING, WHITE_PLAYER, UNMOVED),
		at(0, 0, 1, ROOK, WHITE_PLAYER, UNMOVED),
		at(3, 7, 1, KING, BLACK_PLAYER, UNMOVED),
	)
	if _, err := b.ApplyMove(Move{From: idx(3, 0, 1), To: idx(1, 0, 1)}); err != nil {
		t.Fatalf("castle failed: %v", err)
	}
	king, rook := b.PieceAt(idx(1, 0, 1)), b.PieceAt(idx(2, 0, 1))
	if king.PieceType != KING || king.State != NORMAL {
		t.Errorf("expected a normal king on (1,0,1), got %v", king)
	}
	if rook.PieceType != ROOK || rook.State != NORMAL {
		t.Errorf("expected a normal rook on (2,0,1), got %v", rook)
	}
	if !b.PieceAt(idx(0, 0, 1)).IsEmpty() || !b.PieceAt(idx(3, 0, 1)).IsEmpty() {
		t.Error("castling left pieces behind")
	}
	if b.KingIndex(WHITE_PLAYER) != idx(1, 0, 1) {
		t.Errorf("king cache not updated: %d", b.KingIndex(WHITE_PLAYER))
	}
	if b.Turn() != BLACK_PLAYER {
		t.Error("castling is a single turn")
	}
}

func TestQueenSideCastle(t *testing.T) {
	b := setupBoard(t, BLACK_PLAYER,
		at(3, 0, 1, KING, WHITE_PLAYER, UNMOVED),
		at(3, 7, 1, KING, BLACK_PLAYER, UNMOVED),
		at(7, 7, 1, ROOK, BLACK_PLAYER, UNMOVED),
	)
	if _, err := b.ApplyMove(Move{From: idx(3, 7, 1), To: idx(5, 7, 1)}); err != nil {
		t.Fatalf("castle failed: %v", err)
	}
	if p := b.PieceAt(idx(4, 7, 1)); p.PieceType != ROOK || p.Player != BLACK_PLAYER || p.State != NORMAL {
		t.Errorf("expected the black rook next to the king, got %v", p)
	}
	if b.KingIndex(BLACK_PLAYER) != idx(5, 7, 1) {
		t.Errorf("king cache not updated: %d", b.KingIndex(BLACK_PLAYER))
	}
	if b.Turn() != WHITE_PLAYER {
		t.Error("expected white to move")
	}
}

func mateInOne(t *testing.T) *Board {
	return setupBoard(t, WHITE_PLAYER,
		at(0, 7, 0, KING, BLACK_PLAYER, NORMAL),
		at(7, 0, 2, KING, WHITE_PLAYER, NORMAL),
		at(2, 0, 0, ROOK, WHITE_PLAYER, NORMAL),
		at(7, 6, 0, ROOK, WHITE_PLAYER, NORMAL),
		at(7, 7, 1, ROOK, WHITE_PLAYER, NORMAL),
		at(7, 6, 1, ROOK, WHITE_PLAYER, NORMAL),
	)
}

func TestCheckmateFreezesTurn(t *testing.T) {
	b := mateInOne(t)
	if b.InCheck(BLACK_PLAYER) {
		t.Fatal("black should not start in check")
	}
	result, err := b.ApplyMove(Move{From: idx(2, 0, 0), To: idx(2, 7, 0)})
	if err != nil {
		t.Fatalf("mating move failed: %v", err)
	}
	if !result.CheckMate || result.Winner != WHITE_PLAYER || result.CheckedPlayer != BLACK_PLAYER {
		t.Errorf("expected white to win by checkmate, got %+v", result)
	}
	if !b.IsCheckmate() || b.Turn() != UNKNOWN_PLAYER {
		t.Errorf("turn should be frozen, got %s", b.Turn())
	}
	if king := b.PieceAt(idx(0, 7, 0)); king.State != CHECKMATE {
		t.Errorf("expected a checkmated king, got %v", king)
	}

	before := b.Hex()
	_, err = b.ApplyMove(Move{From: idx(7, 0, 2), To: idx(6, 0, 2)})
	if ErrorCode(err) != "CHECKMATE" {
		t.Errorf("expected CHECKMATE rejection, got %v", err)
	}
	if b.Hex() != before {
		t.Error("a move after checkmate changed the board")
	}
}

func TestCheckWithoutMate(t *testing.T) {
	b := mateInOne(t)
	// without the rook covering layer 1, the king escapes upwards
	b.squares[idx(7, 7, 1)] = Piece{}
	result, err := b.ApplyMove(Move{From: idx(2, 0, 0), To: idx(2, 7, 0)})
	if err != nil {
		t.Fatalf("checking move failed: %v", err)
	}
	if result.CheckMate || result.CheckedPlayer != BLACK_PLAYER {
		t.Errorf("expected a plain check, got %+v", result)
	}
	if king := b.PieceAt(idx(0, 7, 0)); king.State != CHECK_NORMAL {
		t.Errorf("expected CHECK_NORMAL, got %v", king)
	}
	if b.Turn() != BLACK_PLAYER {
		t.Error("check does not stop the turn alternation")
	}
	escape := b.MoveMask(idx(0, 7, 0))
	if !escape.Has(idx(0, 7, 1)) || escape.Has(idx(1, 7, 0)) {
		t.Errorf("unexpected escape squares %v", escape.Squares())
	}

	if _, err := b.ApplyMove(Move{From: idx(0, 7, 0), To: idx(0, 7, 1)}); err != nil {
		t.Fatalf("escape failed: %v", err)
	}
	if king := b.PieceAt(idx(0, 7, 1)); king.State != NORMAL {
		t.Errorf("the moved king should be normal again, got %v", king)
	}
}

func TestCheckKeepsUnmovedFlag(t *testing.T) {
	b := setupBoard(t, WHITE_PLAYER,
		at(3, 0, 1, KING, WHITE_PLAYER, UNMOVED),
		at(3, 7, 1, KING, BLACK_PLAYER, UNMOVED),
		at(0, 5, 1, ROOK, WHITE_PLAYER, NORMAL),
	)
	if _, err := b.ApplyMove(Move{From: idx(0, 5, 1), To: idx(0, 7, 1)}); err != nil {
		t.Fatalf("checking move failed: %v", err)
	}
	if king := b.PieceAt(idx(3, 7, 1)); king.State != CHECK_UNMOVED {
		t.Errorf("expected CHECK_UNMOVED, got %v", king)
	}
	if b.IsCheckmate() {
		t.Error("black can still step away")
	}
}

func TestBlockedCheckKeepsCastlingLost(t *testing.T) {
	b := setupBoard(t, BLACK_PLAYER,
		at(3, 0, 1, KING, WHITE_PLAYER, UNMOVED),
		at(0, 0, 1, ROOK, WHITE_PLAYER, UNMOVED),
		at(1, 2, 1, KNIGHT, WHITE_PLAYER, NORMAL),
		at(7, 7, 2, KING, BLACK_PLAYER, NORMAL),
		at(4, 6, 1, ROOK, BLACK_PLAYER, NORMAL),
	)
	if !b.MoveMask(idx(3, 0, 1)).Has(idx(1, 0, 1)) {
		t.Fatal("castling should be available before the check")
	}

	result, err := b.ApplyMove(Move{From: idx(4, 6, 1), To: idx(3, 6, 1)})
	if err != nil {
		t.Fatalf("checking move failed: %v", err)
	}
	if result.CheckedPlayer != WHITE_PLAYER {
		t.Errorf("expected white in check, got %+v", result)
	}

	result, err = b.ApplyMove(Move{From: idx(1, 2, 1), To: idx(3, 3, 1)})
	if err != nil {
		t.Fatalf("blocking move failed: %v", err)
	}
	if result.CheckedPlayer != UNKNOWN_PLAYER {
		t.Errorf("the check is blocked, got %+v", result)
	}
	if king := b.PieceAt(idx(3, 0, 1)); king.State != CHECK_UNMOVED {
		t.Errorf("expected the king to stay CHECK_UNMOVED, got %v", king)
	}
	if b.MoveMask(idx(3, 0, 1)).Has(idx(1, 0, 1)) {
		t.Error("a king that has been checked must not castle")
	}

	reloaded, err := ParseBoard(b.Hex(), b.Turn())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.PieceAt(idx(3, 0, 1)).State != CHECK_UNMOVED {
		t.Error("the check flag should survive persistence")
	}
}

func TestPawnPromotion(t *testing.T) {
	b := setupBoard(t, WHITE_PLAYER, append(quietKings, at(0, 6, 0, PAWN, WHITE_PLAYER, NORMAL))...)
	if _, err := b.ApplyMove(Move{From: idx(0, 6, 0), To: idx(0, 7, 0)}); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if p := b.PieceAt(idx(0, 7, 0)); p.PieceType != QUEEN || p.State != PROMOTED {
		t.Errorf("expected a promoted queen, got %v", p)
	}
}

func TestAttackDetector(t *testing.T) {
	tests := []struct {
		name     string
		attacker placement
		player   PLAYER
		attacked bool
	}{
		{"black pawn takes down", at(4, 4, 1, PAWN, BLACK_PLAYER, NORMAL), WHITE_PLAYER, true},
		{"black pawn does not take up", at(2, 2, 1, PAWN, BLACK_PLAYER, NORMAL), WHITE_PLAYER, false},
		{"white pawn takes up", at(2, 2, 2, PAWN, WHITE_PLAYER, NORMAL), BLACK_PLAYER, true},
		{"knight across layers", at(3, 1, 2, KNIGHT, BLACK_PLAYER, NORMAL), WHITE_PLAYER, true},
		{"rook through layers", at(3, 3, 0, ROOK, BLACK_PLAYER, NORMAL), WHITE_PLAYER, true},
		{"rook has no flat diagonal", at(5, 5, 1, ROOK, BLACK_PLAYER, NORMAL), WHITE_PLAYER, false},
		{"bishop diagonal", at(6, 6, 1, BISHOP, BLACK_PLAYER, NORMAL), WHITE_PLAYER, true},
		{"queen on a space diagonal", at(4, 4, 2, QUEEN, BLACK_PLAYER, NORMAL), WHITE_PLAYER, true},
		{"queen a knight jump away", at(5, 4, 1, QUEEN, BLACK_PLAYER, NORMAL), WHITE_PLAYER, false},
		{"friendly queen", at(3, 5, 1, QUEEN, WHITE_PLAYER, NORMAL), WHITE_PLAYER, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			king := newPiece(KING, tt.player, NORMAL)
			other := newPiece(KING, tt.player.Opponent(), NORMAL)
			b := setupBoard(t, WHITE_PLAYER,
				placement{Vector{3, 3, 1}, king},
				placement{Vector{7, 0, 0}, other},
				tt.attacker,
			)
			if got := b.InCheck(tt.player); got != tt.attacked {
				t.Errorf("InCheck(%s) = %v, want %v", tt.player, got, tt.attacked)
			}
			if got := b.IsAttacked(tt.player, b.KingIndex(tt.player), b.KingIndex(tt.player)); got != tt.attacked {
				t.Errorf("IsAttacked = %v, want %v", got, tt.attacked)
			}
		})
	}
}

func TestSelectAndQuery(t *testing.T) {
	b := NewBoard()
	if result, err := b.Select(Vector{4, 4, 1}); result != nil || err != nil {
		t.Fatal("picking an empty square without a selection does nothing")
	}
	if _, err := b.Select(Vector{0, 6, 0}); err != nil || b.Selected() != -1 {
		t.Fatal("black pieces cannot be selected on white's turn")
	}
	if _, err := b.Select(Vector{0, 1, 0}); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if b.Selected() != idx(0, 1, 0) {
		t.Fatalf("expected the pawn to be selected, got %d", b.Selected())
	}
	if info := b.SquareAt(Vector{0, 3, 0}); !info.Target || info.PieceType != NO_PIECE || info.Player != UNKNOWN_PLAYER {
		t.Errorf("unexpected square info %+v", info)
	}
	if info := b.SquareAt(Vector{0, 1, 0}); info.Target || info.PieceType != PAWN || info.Player != WHITE_PLAYER {
		t.Errorf("unexpected square info %+v", info)
	}
	if info := b.SquareAt(Vector{0, 4, 0}); info.Target {
		t.Error("(0,4,0) is out of the pawn's reach")
	}

	result, err := b.Select(Vector{0, 3, 0})
	if err != nil || result == nil {
		t.Fatalf("expected the selected pawn to move, got %+v, %v", result, err)
	}
	if b.Selected() != -1 || b.Turn() != BLACK_PLAYER {
		t.Error("selection should reset after the move")
	}
	if info := b.SquareAt(Vector{0, 3, 0}); info.PieceType != PAWN || info.Target {
		t.Errorf("unexpected square info after move %+v", info)
	}
}

// Plays the first legal move of the side to move for a number of plies and
// checks that the incrementally maintained state matches a board rebuilt from
// scratch after every move.
func TestManyPiecesConsistency(t *testing.T) {
	b := NewBoard()
	for ply := 0; ply < 24 && !b.IsCheckmate(); ply++ {
		var move *Move
		for i := 0; i < BOARD_SIZE && move == nil; i++ {
			p := b.PieceAt(i)
			if p.IsEmpty() || p.Player != b.Turn() {
				continue
			}
			// walk from the far end so pieces travel across the layers
			targets := b.MoveMask(i).Squares()
			if len(targets) > 0 {
				move = &Move{From: i, To: targets[len(targets)-1]}
			}
		}
		if move == nil {
			t.Fatalf("ply %d: %s has no legal move", ply, b.Turn())
		}
		if _, err := b.ApplyMove(*move); err != nil {
			t.Fatalf("ply %d: move %s rejected: %v", ply, move, err)
		}
		if b.IsCheckmate() {
			break
		}

		rebuilt, err := ParseBoard(b.Hex(), b.Turn())
		if err != nil {
			t.Fatalf("ply %d: %v", ply, err)
		}
		for _, player := range []PLAYER{WHITE_PLAYER, BLACK_PLAYER} {
			if rebuilt.KingIndex(player) != b.KingIndex(player) {
				t.Fatalf("ply %d: %s king cache %d, board has it on %d", ply, player, b.KingIndex(player), rebuilt.KingIndex(player))
			}
		}
		for i := 0; i < BOARD_SIZE; i++ {
			if b.MoveMask(i) != rebuilt.MoveMask(i) {
				t.Fatalf("ply %d: stale mask for square %d", ply, i)
			}
		}
	}
}
