package models

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/sgatu/chezz3d/errors"
	"github.com/sgatu/chezz3d/game"
)

type Game struct {
	id          int64
	board       *game.Board
	whitePlayer int64
	blackPlayer int64
}

func (g *Game) Id() int64 {
	return g.id
}

func (g *Game) Board() *game.Board {
	return g.board
}

func (g *Game) WhitePlayer() int64 {
	return g.whitePlayer
}

func (g *Game) BlackPlayer() int64 {
	return g.blackPlayer
}

func (g *Game) SetWhitePlayer(whitePlayer int64) error {
	if g.whitePlayer != 0 {
		return fmt.Errorf("white player already defined")
	}
	g.whitePlayer = whitePlayer
	return nil
}

func (g *Game) SetBlackPlayer(blackPlayer int64) error {
	if g.blackPlayer != 0 {
		return fmt.Errorf("black player already defined")
	}
	g.blackPlayer = blackPlayer
	return nil
}

func (g *Game) IsPlayer(playerId int64) bool {
	return g.blackPlayer == playerId || g.whitePlayer == playerId
}

// Relation names the side playerId plays in this game, or "observer".
func (g *Game) Relation(playerId int64) string {
	switch {
	case playerId != 0 && g.whitePlayer == playerId:
		return "white"
	case playerId != 0 && g.blackPlayer == playerId:
		return "black"
	}
	return "observer"
}

// UpdateGame applies a wire move token on behalf of playerId.
func (g *Game) UpdateGame(playerId int64, token string) (*game.MoveResult, error) {
	move, err := game.ParseMove(token)
	if err != nil {
		return nil, err
	}
	turn := g.board.Turn()
	if (turn == game.BLACK_PLAYER && playerId != g.blackPlayer) ||
		(turn == game.WHITE_PLAYER && playerId != g.whitePlayer) {
		return nil, &errors.InvalidMoveError{ErrCode: "NOT_YOUR_TURN", Message: "Not your turn."}
	}
	return g.board.ApplyMove(move)
}

func NewGame(node *snowflake.Node, userId int64, isBlackPlayer bool) *Game {
	return NewGameFromBoard(node, userId, isBlackPlayer, game.NewBoard())
}

// NewGameFromBoard starts a game on an already set up board, such as one read
// from a save file.
func NewGameFromBoard(node *snowflake.Node, userId int64, isBlackPlayer bool, board *game.Board) *Game {
	whitePlayer := int64(0)
	blackPlayer := int64(0)
	if isBlackPlayer {
		blackPlayer = userId
	} else {
		whitePlayer = userId
	}
	return &Game{
		id:          node.Generate().Int64(),
		board:       board,
		whitePlayer: whitePlayer,
		blackPlayer: blackPlayer,
	}
}

// RecoverGame rebuilds a stored game. A finished game is stored with no side
// to move; its board is loaded as white to move and frozen again by the
// CHECKMATE flag of the losing king.
func RecoverGame(id int64, whitePlayer int64, blackPlayer int64, hexBoard string, turn game.PLAYER) (*Game, error) {
	if turn == game.UNKNOWN_PLAYER {
		turn = game.WHITE_PLAYER
	}
	board, err := game.ParseBoard(hexBoard, turn)
	if err != nil {
		return nil, err
	}
	return &Game{
		id:          id,
		whitePlayer: whitePlayer,
		blackPlayer: blackPlayer,
		board:       board,
	}, nil
}

type GameRepository interface {
	GetGame(id int64) (*Game, error)
	SaveGame(game *Game) error
}

// BoardSource provides boards stored under a name, e.g. save files.
type BoardSource interface {
	LoadBoard(name string) (*game.Board, error)
	SaveBoard(name string, board *game.Board) error
}
