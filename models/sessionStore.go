package models

// SessionStore identifies a browser across requests. UserId is the id the
// player is seated with in games.
type SessionStore struct {
	SessionId string            `json:"sessionId"`
	UserId    int64             `json:"userId"`
	Data      map[string]string `json:"data"`
}

type SessionRepository interface {
	GetSession(sessionId string) (*SessionStore, error)
	SaveSession(session *SessionStore) error
}
