package handlers_messages

import "github.com/sgatu/chezz3d/game"

// Messages pushed to websocket peers. Peers send plain move tokens back.

type PlayInitMessage struct {
	Type     string `json:"type"`
	Relation string `json:"relation"`
	Board    string `json:"board"`
	Turn     string `json:"turn"`
}

type PlayMoveMessage struct {
	Type          string `json:"type"`
	Move          string `json:"move"`
	Turn          string `json:"turn"`
	CheckedPlayer string `json:"checkedPlayer,omitempty"`
	CheckMate     bool   `json:"checkmate"`
	Winner        string `json:"winner,omitempty"`
}

type PlayErrorMessage struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	ErrCode string `json:"code"`
}

func NewPlayInitMessage(relation string, board string, turn game.PLAYER) *PlayInitMessage {
	return &PlayInitMessage{Type: "init", Relation: relation, Board: board, Turn: turn.String()}
}

func NewPlayMoveMessage(result *game.MoveResult) *PlayMoveMessage {
	msg := &PlayMoveMessage{
		Type:      "move",
		Move:      result.Move.Token(),
		Turn:      result.Turn.String(),
		CheckMate: result.CheckMate,
	}
	if result.CheckedPlayer != game.UNKNOWN_PLAYER {
		msg.CheckedPlayer = result.CheckedPlayer.String()
	}
	if result.CheckMate {
		msg.Winner = result.Winner.String()
	}
	return msg
}

func NewPlayErrorMessage(err error) *PlayErrorMessage {
	msg := &PlayErrorMessage{Type: "error", Error: err.Error(), ErrCode: game.ErrorCode(err)}
	if msg.ErrCode == "" {
		msg.ErrCode = "ERROR"
	}
	return msg
}
