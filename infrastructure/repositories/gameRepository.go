package repositories

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sgatu/chezz3d/game"
	"github.com/sgatu/chezz3d/models"
)

const (
	gameTTL    = time.Hour * 24
	sessionTTL = time.Hour * 24 * 30
)

// ErrNotFound is wrapped by every repository when a key does not exist or
// has expired.
var ErrNotFound = errors.New("not found")

type gameMarshalStruct struct {
	Board       string
	Turn        game.PLAYER
	WhitePlayer int64
	BlackPlayer int64
	GameId      int64
}

type RedisGameRepository struct {
	redisConn *redis.Client
	ctx       context.Context
}

func NewRedisGameRepository(redisClient *redis.Client) models.GameRepository {
	return &RedisGameRepository{
		redisConn: redisClient,
		ctx:       context.Background(),
	}
}

// GetGame retrieves a game from the RedisGameRepository.
func (rgr *RedisGameRepository) GetGame(id int64) (*models.Game, error) {
	result, err := rgr.redisConn.Get(rgr.ctx, getGameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return recoverGame(result)
}

func (rgr *RedisGameRepository) SaveGame(g *models.Game) error {
	gameSerialized, err := serializeGame(g)
	if err != nil {
		return err
	}
	return rgr.redisConn.Set(rgr.ctx, getGameKey(g.Id()), gameSerialized, gameTTL).Err()
}

func getGameKey(id int64) string {
	rawId := [8]byte{}
	binary.LittleEndian.PutUint64(rawId[:], uint64(id))
	return "game.{" + base64.RawStdEncoding.EncodeToString(rawId[:]) + "}"
}

// serializeGame stores the board in its hex form next to the side to move
// and the seats.
func serializeGame(g *models.Game) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("game is nil")
	}
	return json.Marshal(&gameMarshalStruct{
		Board:       g.Board().Hex(),
		Turn:        g.Board().Turn(),
		WhitePlayer: g.WhitePlayer(),
		BlackPlayer: g.BlackPlayer(),
		GameId:      g.Id(),
	})
}

func recoverGame(data []byte) (*models.Game, error) {
	unmarshaledData := &gameMarshalStruct{}
	if err := json.Unmarshal(data, unmarshaledData); err != nil {
		return nil, err
	}
	return models.RecoverGame(
		unmarshaledData.GameId,
		unmarshaledData.WhitePlayer,
		unmarshaledData.BlackPlayer,
		unmarshaledData.Board,
		unmarshaledData.Turn,
	)
}
