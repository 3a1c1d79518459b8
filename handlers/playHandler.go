package handlers

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/goccy/go-json"
	"github.com/sgatu/chezz3d/game"
	handlers_messages "github.com/sgatu/chezz3d/handlers/messages"
	"github.com/sgatu/chezz3d/logging"
	"github.com/sgatu/chezz3d/services"
)

const pingInterval = 5 * time.Second

type PlayHandler struct {
	gameManager *services.GameManagerService
}

func (ph *PlayHandler) Play(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		handlers_messages.PushGameNotFoundMessage(c, idParam)
		return
	}
	session, err := GetCurrentSession(c)
	if err != nil {
		handlers_messages.PushUnknownSessionMessage(c)
		return
	}
	liveGameState, err := ph.gameManager.GetLiveGameState(id)
	if err != nil {
		handlers_messages.PushGameNotFoundMessage(c, idParam)
		return
	}
	conn, _, _, err := ws.UpgradeHTTP(c.Request, c.Writer)
	if err != nil {
		logging.Warnf("websocket upgrade failed: %s", err)
		return
	}
	go ph.servePeer(conn, liveGameState, session.UserId)
}

// servePeer runs one websocket connection: the init message first, then
// applied moves and errors out, move tokens in.
func (ph *PlayHandler) servePeer(conn net.Conn, liveGameState *services.LiveGameState, playerId int64) {
	defer conn.Close()
	observeCh := make(chan *game.MoveResult, 16)
	errorCh := make(chan error, 4)

	info, err := liveGameState.Join(playerId, observeCh)
	if err != nil {
		writeJSON(conn, handlers_messages.NewPlayErrorMessage(err))
		return
	}
	defer liveGameState.RemoveObserver(observeCh)
	if err := writeJSON(conn, handlers_messages.NewPlayInitMessage(info.Relation, info.Board, info.Turn)); err != nil {
		return
	}
	logging.Debugf("player %d joined game %d as %s", playerId, liveGameState.GameId(), info.Relation)

	incoming := make(chan string)
	stop := make(chan struct{})
	defer close(stop)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			data, op, err := wsutil.ReadClientData(conn)
			if err != nil {
				return
			}
			if op != ws.OpText && op != ws.OpBinary {
				continue
			}
			select {
			case incoming <- strings.TrimSpace(string(data)):
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-readerDone:
			logging.Debugf("player %d left game %d", playerId, liveGameState.GameId())
			return
		case token := <-incoming:
			move := services.MoveMessage{Move: token, Who: playerId, ErrorsChannel: errorCh}
			if err := liveGameState.ExecuteMove(move); err != nil {
				writeJSON(conn, handlers_messages.NewPlayErrorMessage(err))
				return
			}
		case result := <-observeCh:
			if err := writeJSON(conn, handlers_messages.NewPlayMoveMessage(result)); err != nil {
				return
			}
		case err := <-errorCh:
			if err := writeJSON(conn, handlers_messages.NewPlayErrorMessage(err)); err != nil {
				return
			}
		case <-ticker.C:
			if err := wsutil.WriteServerMessage(conn, ws.OpPing, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn net.Conn, message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		logging.Errorf("could not serialize %T: %s", message, err)
		return err
	}
	return wsutil.WriteServerMessage(conn, ws.OpText, payload)
}
