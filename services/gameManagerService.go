package services

import (
	"fmt"
	"sync"

	"github.com/sgatu/chezz3d/game"
	"github.com/sgatu/chezz3d/logging"
	"github.com/sgatu/chezz3d/models"
)

var ErrGameClosed = fmt.Errorf("game is no longer live")

type MoveMessage struct {
	ErrorsChannel chan error
	Move          string
	Who           int64
}

// JoinInfo is what a connection learns when it joins a live game.
type JoinInfo struct {
	Relation string
	Board    string
	Turn     game.PLAYER
}

type GameManagerService struct {
	liveGameStates map[int64]*LiveGameState
	gameRepository models.GameRepository
	gameStatesLock sync.Mutex
}

func NewGameManagerService(gameRepository models.GameRepository) *GameManagerService {
	return &GameManagerService{
		liveGameStates: make(map[int64]*LiveGameState),
		gameRepository: gameRepository,
	}
}

// GetLiveGameState returns the running state of a game, loading it from the
// repository and starting its move loop if nobody is connected to it yet.
// A game that is being released is waited for, so its last moves are stored
// before it is loaded again.
func (s *GameManagerService) GetLiveGameState(gameId int64) (*LiveGameState, error) {
	for {
		s.gameStatesLock.Lock()
		lgs, ok := s.liveGameStates[gameId]
		if !ok {
			break
		}
		if !lgs.isClosed() {
			s.gameStatesLock.Unlock()
			return lgs, nil
		}
		s.gameStatesLock.Unlock()
		<-lgs.done
	}
	defer s.gameStatesLock.Unlock()
	gameEntity, err := s.gameRepository.GetGame(gameId)
	if err != nil {
		return nil, err
	}
	lgs := &LiveGameState{
		game:              gameEntity,
		chCommandsChannel: make(chan MoveMessage, 10),
		done:              make(chan struct{}),
		observers:         make([]chan *game.MoveResult, 0),
		gameManager:       s,
	}
	s.liveGameStates[gameId] = lgs
	lgs.startAwaitingMoves()
	logging.Debugf("game %d is live", gameId)
	return lgs, nil
}

func (s *GameManagerService) LiveGames() int {
	s.gameStatesLock.Lock()
	defer s.gameStatesLock.Unlock()
	return len(s.liveGameStates)
}

func (s *GameManagerService) removeLiveGameState(lgs *LiveGameState) {
	s.gameStatesLock.Lock()
	defer s.gameStatesLock.Unlock()
	gameId := lgs.game.Id()
	if s.liveGameStates[gameId] == lgs {
		delete(s.liveGameStates, gameId)
	}
	logging.Debugf("game %d is no longer live", gameId)
}

// LiveGameState owns a game while connections are attached to it. Moves are
// applied one at a time by its loop, so the board is never shared.
type LiveGameState struct {
	chCommandsChannel chan MoveMessage
	commandsLock      sync.RWMutex
	closed            bool
	done              chan struct{}
	game              *models.Game
	gameLock          sync.Mutex
	gameManager       *GameManagerService
	observers         []chan *game.MoveResult
	observersMutex    sync.Mutex
}

func (lgs *LiveGameState) GameId() int64 {
	return lgs.game.Id()
}

// Join seats userId on a free side if it is not already playing, registers
// observerCh and returns a snapshot taken before any later move is broadcast.
func (lgs *LiveGameState) Join(userId int64, observerCh chan *game.MoveResult) (*JoinInfo, error) {
	lgs.gameLock.Lock()
	defer lgs.gameLock.Unlock()
	g := lgs.game
	if !g.IsPlayer(userId) {
		seated := true
		if g.WhitePlayer() == 0 {
			g.SetWhitePlayer(userId)
		} else if g.BlackPlayer() == 0 {
			g.SetBlackPlayer(userId)
		} else {
			seated = false
		}
		if seated {
			if err := lgs.gameManager.gameRepository.SaveGame(g); err != nil {
				logging.Errorf("could not save game %d: %s", g.Id(), err)
			}
		}
	}
	if !lgs.AddObserver(observerCh) {
		return nil, ErrGameClosed
	}
	return &JoinInfo{
		Relation: g.Relation(userId),
		Board:    g.Board().Hex(),
		Turn:     g.Board().Turn(),
	}, nil
}

// AddObserver registers observerCh for move results. It reports false once
// the game has been released.
func (lgs *LiveGameState) AddObserver(observerCh chan *game.MoveResult) bool {
	lgs.commandsLock.RLock()
	defer lgs.commandsLock.RUnlock()
	if lgs.closed {
		return false
	}
	lgs.observersMutex.Lock()
	defer lgs.observersMutex.Unlock()
	lgs.observers = append(lgs.observers, observerCh)
	return true
}

func (lgs *LiveGameState) isClosed() bool {
	lgs.commandsLock.RLock()
	defer lgs.commandsLock.RUnlock()
	return lgs.closed
}

// RemoveObserver unregisters observerCh. When the last observer leaves the
// move loop is stopped; the game is released once the queued moves are done.
func (lgs *LiveGameState) RemoveObserver(observerCh chan *game.MoveResult) {
	lgs.commandsLock.Lock()
	defer lgs.commandsLock.Unlock()
	lgs.observersMutex.Lock()
	for i, observer := range lgs.observers {
		if observer == observerCh {
			lgs.observers = append(lgs.observers[:i], lgs.observers[i+1:]...)
			break
		}
	}
	remaining := len(lgs.observers)
	lgs.observersMutex.Unlock()
	if remaining == 0 && !lgs.closed {
		lgs.closed = true
		close(lgs.chCommandsChannel)
	}
}

func (lgs *LiveGameState) ExecuteMove(move MoveMessage) error {
	lgs.commandsLock.RLock()
	defer lgs.commandsLock.RUnlock()
	if lgs.closed {
		return ErrGameClosed
	}
	lgs.chCommandsChannel <- move
	return nil
}

func (lgs *LiveGameState) startAwaitingMoves() {
	go func() {
		defer close(lgs.done)
		for move := range lgs.chCommandsChannel {
			lgs.handleMove(move)
		}
		lgs.gameManager.removeLiveGameState(lgs)
	}()
}

func (lgs *LiveGameState) handleMove(move MoveMessage) {
	lgs.gameLock.Lock()
	defer lgs.gameLock.Unlock()
	result, err := lgs.game.UpdateGame(move.Who, move.Move)
	if err != nil {
		if game.IsIllegalMove(err) {
			logging.Debugf("game %d: move %q by %d rejected: %s", lgs.game.Id(), move.Move, move.Who, err)
		} else {
			logging.Errorf("game %d: move %q by %d failed: %s", lgs.game.Id(), move.Move, move.Who, err)
		}
		if move.ErrorsChannel != nil {
			select {
			case move.ErrorsChannel <- err:
			default:
				logging.Warnf("game %d: error for %d dropped", lgs.game.Id(), move.Who)
			}
		}
		return
	}
	logging.Debugf("game %d: %d played %s", lgs.game.Id(), move.Who, result.Move)
	if result.CheckMate {
		logging.Infof("game %d: checkmate, %s wins", lgs.game.Id(), result.Winner)
	}
	if err := lgs.gameManager.gameRepository.SaveGame(lgs.game); err != nil {
		logging.Errorf("could not save game %d: %s", lgs.game.Id(), err)
	}
	lgs.notifyMoveObservers(result)
}

func (lgs *LiveGameState) notifyMoveObservers(moveResult *game.MoveResult) {
	lgs.observersMutex.Lock()
	defer lgs.observersMutex.Unlock()
	for _, observer := range lgs.observers {
		select {
		case observer <- moveResult:
		default:
			logging.Warnf("game %d: observer too slow, move %s dropped", lgs.game.Id(), moveResult.Move)
		}
	}
}
