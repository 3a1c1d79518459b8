package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sgatu/chezz3d/models"
)

type RedisSessionRepository struct {
	redisConn *redis.Client
	ctx       context.Context
	prefix    string
}

func (rsr *RedisSessionRepository) SaveSession(session *models.SessionStore) error {
	sessSerialized, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return rsr.redisConn.Set(rsr.ctx, rsr.getSessionKey(session.SessionId), sessSerialized, sessionTTL).Err()
}

func (rsr *RedisSessionRepository) SetPrefix(prefix string) {
	rsr.prefix = prefix
}

func (rsr *RedisSessionRepository) getSessionKey(sessionId string) string {
	return rsr.prefix + "session." + sessionId
}

// GetSession retrieves a session from the RedisSessionRepository by its session ID.
func (rsr *RedisSessionRepository) GetSession(sessionId string) (*models.SessionStore, error) {
	cmdResult := rsr.redisConn.Get(rsr.ctx, rsr.getSessionKey(sessionId))
	if errors.Is(cmdResult.Err(), redis.Nil) {
		return nil, fmt.Errorf("session %s: %w", sessionId, ErrNotFound)
	}
	if cmdResult.Err() != nil {
		return nil, cmdResult.Err()
	}
	var session models.SessionStore
	if err := json.Unmarshal([]byte(cmdResult.Val()), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func NewRedisSessionRepository(redisClient *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{
		redisConn: redisClient,
		ctx:       context.Background(),
	}
}
