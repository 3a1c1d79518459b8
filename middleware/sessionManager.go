package middleware

import (
	"net"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/kjk/betterguid"
	"github.com/sgatu/chezz3d/logging"
	"github.com/sgatu/chezz3d/models"
)

const (
	SESSION_COOKIE = "session_id"
	SESSION_KEY    = "session"
	SESSION_MGR    = "session_mgr"
)

type SessionManager struct {
	SessionRepository models.SessionRepository
	Node              *snowflake.Node
}

func NewSessionManager(sessionRepository models.SessionRepository, node *snowflake.Node) *SessionManager {
	return &SessionManager{
		SessionRepository: sessionRepository,
		Node:              node,
	}
}

// func to set data in session
func (sm *SessionManager) SetSessionData(session *models.SessionStore, key string, value string) {
	session.Data[key] = value
	sm.saveSession(session)
}

// func to remove data in session
func (sm *SessionManager) RemoveSessionData(session *models.SessionStore, key string) {
	delete(session.Data, key)
	sm.saveSession(session)
}

func (sm *SessionManager) saveSession(session *models.SessionStore) {
	if err := sm.SessionRepository.SaveSession(session); err != nil {
		logging.Errorf("could not save session %s: %s", session.SessionId, err)
	}
}

func (sm *SessionManager) newSession() *models.SessionStore {
	return &models.SessionStore{
		SessionId: betterguid.New(),
		UserId:    sm.Node.Generate().Int64(),
		Data:      map[string]string{},
	}
}

func getSession(c *gin.Context, sm *SessionManager) *models.SessionStore {
	sessionID, err := c.Cookie(SESSION_COOKIE)
	if err != nil {
		if qSessionId := c.Query(SESSION_COOKIE); qSessionId != "" {
			logging.Debugf("session loaded from query param %s", qSessionId)
			sessionID = qSessionId
		}
	} else {
		logging.Debugf("session loaded from cookie %s", sessionID)
	}

	if sessionID == "" {
		return sm.newSession()
	}
	session, err := sm.SessionRepository.GetSession(sessionID)
	if err != nil {
		logging.Debugf("session %s not recovered: %s", sessionID, err)
		return sm.newSession()
	}
	if session.Data == nil {
		session.Data = map[string]string{}
	}
	return session
}

// func manage session to use as gin middleware
func (sm *SessionManager) ManageSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := getSession(c, sm)
		host, _, err := net.SplitHostPort(c.Request.Host)
		if err != nil {
			host = c.Request.Host
		}
		c.SetCookie(SESSION_COOKIE, session.SessionId, 3600*24*30, "/", host, false, true)
		c.Set(SESSION_KEY, session)
		c.Set(SESSION_MGR, sm)
		sm.saveSession(session)
	}
}
