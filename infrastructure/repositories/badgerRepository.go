package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/sgatu/chezz3d/models"
)

// OpenBadger opens the local store in dir, or an in-memory store when dir is
// empty.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	return badger.Open(opts)
}

func badgerGet(db *badger.DB, key string) ([]byte, error) {
	var value []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return value, err
}

func badgerSet(db *badger.DB, key string, value []byte, ttl time.Duration) error {
	return db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

type BadgerGameRepository struct {
	db *badger.DB
}

func NewBadgerGameRepository(db *badger.DB) models.GameRepository {
	return &BadgerGameRepository{db: db}
}

func (bgr *BadgerGameRepository) GetGame(id int64) (*models.Game, error) {
	data, err := badgerGet(bgr.db, getGameKey(id))
	if err != nil {
		return nil, err
	}
	return recoverGame(data)
}

func (bgr *BadgerGameRepository) SaveGame(g *models.Game) error {
	gameSerialized, err := serializeGame(g)
	if err != nil {
		return err
	}
	return badgerSet(bgr.db, getGameKey(g.Id()), gameSerialized, gameTTL)
}

type BadgerSessionRepository struct {
	db *badger.DB
}

func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

func (bsr *BadgerSessionRepository) GetSession(sessionId string) (*models.SessionStore, error) {
	data, err := badgerGet(bsr.db, "session."+sessionId)
	if err != nil {
		return nil, err
	}
	var session models.SessionStore
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (bsr *BadgerSessionRepository) SaveSession(session *models.SessionStore) error {
	sessSerialized, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return badgerSet(bsr.db, "session."+session.SessionId, sessSerialized, sessionTTL)
}
