package handlers_messages

import "github.com/sgatu/chezz3d/models"

type GameStatusMessage struct {
	BlackPlayer int64  `json:"blackPlayer"`
	WhitePlayer int64  `json:"whitePlayer"`
	GameId      int64  `json:"gameId"`
	Board       string `json:"board"`
	Turn        string `json:"turn"`
	CheckMate   bool   `json:"checkmate"`
	Winner      string `json:"winner,omitempty"`
}

func GameStatusFromGameModel(g *models.Game) *GameStatusMessage {
	board := g.Board()
	status := &GameStatusMessage{
		BlackPlayer: g.BlackPlayer(),
		WhitePlayer: g.WhitePlayer(),
		GameId:      g.Id(),
		Board:       board.Hex(),
		Turn:        board.Turn().String(),
		CheckMate:   board.IsCheckmate(),
	}
	if status.CheckMate {
		status.Winner = board.Winner().String()
	}
	return status
}
