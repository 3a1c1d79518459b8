package services

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sgatu/chezz3d/errors"
	"github.com/sgatu/chezz3d/game"
	"github.com/sgatu/chezz3d/infrastructure/repositories"
	"github.com/sgatu/chezz3d/models"
)

func setupService(t *testing.T) (*GameManagerService, models.GameRepository, *models.Game) {
	t.Helper()
	db, err := repositories.OpenBadger("")
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := repositories.NewBadgerGameRepository(db)
	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatal(err)
	}
	g := models.NewGame(node, 100, false)
	if err := repo.SaveGame(g); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return NewGameManagerService(repo), repo, g
}

func receive[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting on channel")
	}
	var zero T
	return zero
}

func TestLiveGameMoveFlow(t *testing.T) {
	svc, repo, g := setupService(t)
	lgs, err := svc.GetLiveGameState(g.Id())
	if err != nil {
		t.Fatalf("get live state: %v", err)
	}
	again, _ := svc.GetLiveGameState(g.Id())
	if again != lgs {
		t.Error("a live game should be shared")
	}

	whiteCh := make(chan *game.MoveResult, 4)
	info, err := lgs.Join(100, whiteCh)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if info.Relation != "white" || info.Board != game.NewBoard().Hex() || info.Turn != game.WHITE_PLAYER {
		t.Errorf("unexpected join info %+v", info)
	}
	blackCh := make(chan *game.MoveResult, 4)
	if info, _ = lgs.Join(200, blackCh); info.Relation != "black" {
		t.Errorf("second player should sit as black, got %s", info.Relation)
	}
	watchCh := make(chan *game.MoveResult, 4)
	if info, _ = lgs.Join(300, watchCh); info.Relation != "observer" {
		t.Errorf("third connection should observe, got %s", info.Relation)
	}

	errCh := make(chan error, 1)
	if err := lgs.ExecuteMove(MoveMessage{Move: "008024", Who: 100, ErrorsChannel: errCh}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	for _, ch := range []chan *game.MoveResult{whiteCh, blackCh, watchCh} {
		if result := receive(t, ch); result.Move.Token() != "008024" || result.Turn != game.BLACK_PLAYER {
			t.Errorf("unexpected broadcast %+v", result)
		}
	}

	stored, err := repo.GetGame(g.Id())
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if stored.Board().Turn() != game.BLACK_PLAYER || stored.BlackPlayer() != 200 {
		t.Error("move or seat was not persisted")
	}

	lgs.ExecuteMove(MoveMessage{Move: "048032", Who: 300, ErrorsChannel: errCh})
	err = receive(t, errCh)
	if coded, ok := err.(errors.CodedError); !ok || coded.Code() != "NOT_YOUR_TURN" {
		t.Errorf("expected NOT_YOUR_TURN, got %v", err)
	}
}

func TestLiveGameReleasedWithLastObserver(t *testing.T) {
	svc, _, g := setupService(t)
	lgs, err := svc.GetLiveGameState(g.Id())
	if err != nil {
		t.Fatal(err)
	}
	first := make(chan *game.MoveResult, 1)
	second := make(chan *game.MoveResult, 1)
	lgs.Join(100, first)
	lgs.Join(200, second)

	lgs.RemoveObserver(first)
	if svc.LiveGames() != 1 {
		t.Error("game should stay live while observed")
	}
	lgs.RemoveObserver(second)
	receive(t, lgs.done)
	if svc.LiveGames() != 0 {
		t.Error("game should be released")
	}
	if err := lgs.ExecuteMove(MoveMessage{Move: "008024", Who: 100}); err != ErrGameClosed {
		t.Errorf("expected ErrGameClosed, got %v", err)
	}
	if _, err := lgs.Join(100, first); err != ErrGameClosed {
		t.Errorf("expected ErrGameClosed, got %v", err)
	}

	fresh, err := svc.GetLiveGameState(g.Id())
	if err != nil || fresh == lgs {
		t.Error("a released game should be loaded again")
	}
}

// gatedRepository holds every SaveGame until gate is closed.
type gatedRepository struct {
	models.GameRepository
	gate chan struct{}
}

func (r *gatedRepository) SaveGame(g *models.Game) error {
	<-r.gate
	return r.GameRepository.SaveGame(g)
}

func TestReconnectWaitsForQueuedMoves(t *testing.T) {
	_, repo, g := setupService(t)
	gated := &gatedRepository{GameRepository: repo, gate: make(chan struct{})}
	svc := NewGameManagerService(gated)

	lgs, err := svc.GetLiveGameState(g.Id())
	if err != nil {
		t.Fatal(err)
	}
	observer := make(chan *game.MoveResult, 1)
	if _, err := lgs.Join(100, observer); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := lgs.ExecuteMove(MoveMessage{Move: "008024", Who: 100}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	lgs.RemoveObserver(observer)

	reloaded := make(chan *LiveGameState, 1)
	go func() {
		fresh, err := svc.GetLiveGameState(g.Id())
		if err != nil {
			t.Errorf("reload failed: %v", err)
		}
		reloaded <- fresh
	}()
	select {
	case <-reloaded:
		t.Fatal("the game was reloaded before its last move was stored")
	case <-time.After(50 * time.Millisecond):
	}

	close(gated.gate)
	fresh := receive(t, reloaded)
	if fresh == nil || fresh == lgs {
		t.Fatal("expected a newly loaded live game")
	}
	if fresh.game.Board().Turn() != game.BLACK_PLAYER {
		t.Error("the queued move was lost on reconnect")
	}
}

func TestUnknownGame(t *testing.T) {
	svc, _, _ := setupService(t)
	if _, err := svc.GetLiveGameState(12345); err == nil {
		t.Error("expected an error for an unknown game")
	}
}
