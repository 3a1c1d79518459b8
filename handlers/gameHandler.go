package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	chezzerrors "github.com/sgatu/chezz3d/errors"
	"github.com/sgatu/chezz3d/game"
	handlers_messages "github.com/sgatu/chezz3d/handlers/messages"
	"github.com/sgatu/chezz3d/infrastructure/repositories"
	"github.com/sgatu/chezz3d/logging"
	"github.com/sgatu/chezz3d/models"
)

type GameHandler struct {
	gameRepository models.GameRepository
	boardSource    models.BoardSource
	node           *snowflake.Node
}

type createGameRequest struct {
	Black bool   `json:"black"`
	Save  string `json:"save" binding:"omitempty,max=64,excludesall=/"`
}

type saveBoardRequest struct {
	Name string `json:"name" binding:"required,max=64,excludesall=/"`
}

type movesResponse struct {
	Index   int      `json:"index"`
	Targets []int    `json:"targets"`
	Moves   []string `json:"moves"`
}

func (gh *GameHandler) loadGame(c *gin.Context) (*models.Game, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		handlers_messages.PushGameNotFoundMessage(c, idParam)
		return nil, false
	}
	g, err := gh.gameRepository.GetGame(id)
	if err != nil || g == nil {
		handlers_messages.PushGameNotFoundMessage(c, idParam)
		return nil, false
	}
	return g, true
}

func (gh *GameHandler) getGame(c *gin.Context) {
	g, ok := gh.loadGame(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handlers_messages.GameStatusFromGameModel(g))
}

// getBoard exports the board in the save file format.
func (gh *GameHandler) getBoard(c *gin.Context) {
	g, ok := gh.loadGame(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, g.Board().Hex())
}

func (gh *GameHandler) getMoves(c *gin.Context) {
	g, ok := gh.loadGame(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || !game.IndexInBounds(index) {
		handlers_messages.PushBadRequestMessage(c, "Square index out of range.")
		return
	}
	targets := g.Board().MoveMask(index).Squares()
	moves := make([]string, len(targets))
	for i, target := range targets {
		moves[i] = game.Move{From: index, To: target}.Token()
	}
	c.JSON(http.StatusOK, &movesResponse{Index: index, Targets: targets, Moves: moves})
}

func (gh *GameHandler) createNewGame(c *gin.Context) {
	session, err := GetCurrentSession(c)
	if err != nil {
		handlers_messages.PushUnknownSessionMessage(c)
		return
	}
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers_messages.PushBadRequestMessage(c, err.Error())
		return
	}
	board := game.NewBoard()
	if req.Save != "" {
		board, err = gh.boardSource.LoadBoard(req.Save)
		if err != nil {
			gh.pushSaveError(c, req.Save, err)
			return
		}
	}
	g := models.NewGameFromBoard(gh.node, session.UserId, req.Black, board)
	if err := gh.gameRepository.SaveGame(g); err != nil {
		logging.Errorf("could not save game %d: %s", g.Id(), err)
		c.JSON(http.StatusInternalServerError, &handlers_messages.BadRequestMessage{Message: "Game could not be stored.", Code: 500})
		return
	}
	logging.Infof("game %d created by %d", g.Id(), session.UserId)
	c.JSON(http.StatusCreated, struct {
		Message string `json:"message"`
		GameId  int64  `json:"game_id"`
	}{Message: "Game created", GameId: g.Id()})
}

// saveBoard writes the current board of a game to a named save file.
func (gh *GameHandler) saveBoard(c *gin.Context) {
	g, ok := gh.loadGame(c)
	if !ok {
		return
	}
	var req saveBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers_messages.PushBadRequestMessage(c, err.Error())
		return
	}
	if err := gh.boardSource.SaveBoard(req.Name, g.Board()); err != nil {
		logging.Warnf("could not write save %s: %s", req.Name, err)
		handlers_messages.PushBadRequestMessage(c, "Save could not be written.")
		return
	}
	c.JSON(http.StatusCreated, struct {
		Message string `json:"message"`
		Name    string `json:"name"`
	}{Message: "Board saved", Name: req.Name})
}

func (gh *GameHandler) pushSaveError(c *gin.Context, name string, err error) {
	var malformed *chezzerrors.MalformedStateError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		handlers_messages.PushSaveNotFoundMessage(c, name)
	case errors.As(err, &malformed):
		c.JSON(http.StatusUnprocessableEntity, handlers_messages.NewPlayErrorMessage(malformed))
	default:
		handlers_messages.PushBadRequestMessage(c, err.Error())
	}
}
