package scoring

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/StNick/squash-team-challenge/internal/domain/scorestate"
	"github.com/StNick/squash-team-challenge/internal/platform/kv"
	"github.com/StNick/squash-team-challenge/internal/platform/logging"
)

// SessionTTL is how long a persisted session stays resumable.
const SessionTTL = 24 * time.Hour

const sessionKeyPrefix = "scoresession:"

// StoredSession is the persisted envelope: the full engine state plus the
// save time as epoch milliseconds.
type StoredSession struct {
	State   scorestate.State `json:"state"`
	SavedAt int64            `json:"savedAt"`
}

// SavedTime returns SavedAt as a time.
func (s StoredSession) SavedTime() time.Time {
	return time.UnixMilli(s.SavedAt)
}

// SessionStore persists one scoring session per match id. Save failures
// are logged and swallowed so a full or broken local store never stops a
// match in progress.
type SessionStore struct {
	store  kv.Store
	logger *logging.Logger
	now    func() time.Time

	lastKey   string
	lastWrite []byte
}

func NewSessionStore(store kv.Store, logger *logging.Logger) *SessionStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionStore{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func sessionKey(matchID int64) string {
	return sessionKeyPrefix + strconv.FormatInt(matchID, 10)
}

// Save writes the session envelope. The write is skipped when the
// serialized state is byte-identical to the previous write for the same
// match, so rapid point entry does not churn storage.
func (s *SessionStore) Save(matchID int64, state scorestate.State) {
	serialized, err := sonic.ConfigStd.Marshal(state)
	if err != nil {
		s.logger.Warn("session save skipped", "matchID", matchID, "error", err)
		return
	}

	key := sessionKey(matchID)
	if key == s.lastKey && bytes.Equal(serialized, s.lastWrite) {
		return
	}

	payload, err := sonic.ConfigStd.Marshal(StoredSession{
		State:   state,
		SavedAt: s.now().UnixMilli(),
	})
	if err != nil {
		s.logger.Warn("session save skipped", "matchID", matchID, "error", err)
		return
	}
	if err := s.store.Set(key, payload); err != nil {
		s.logger.Warn("session save failed", "matchID", matchID, "error", err)
		return
	}
	s.lastKey = key
	s.lastWrite = serialized
}

// Load reads the stored session for matchID. Missing or malformed data
// yields ok=false, never an error.
func (s *SessionStore) Load(matchID int64) (StoredSession, bool) {
	payload, ok, err := s.store.Get(sessionKey(matchID))
	if err != nil {
		s.logger.Warn("session load failed", "matchID", matchID, "error", err)
		return StoredSession{}, false
	}
	if !ok {
		return StoredSession{}, false
	}

	var envelope StoredSession
	if err := sonic.ConfigStd.Unmarshal(payload, &envelope); err != nil {
		s.logger.Warn("session payload malformed", "matchID", matchID, "error", err)
		return StoredSession{}, false
	}
	return envelope, true
}

// LoadIfFresh is Load with expiry: sessions older than SessionTTL are
// deleted and reported absent.
func (s *SessionStore) LoadIfFresh(matchID int64) (StoredSession, bool) {
	envelope, ok := s.Load(matchID)
	if !ok {
		return StoredSession{}, false
	}
	if s.now().Sub(envelope.SavedTime()) > SessionTTL {
		s.Clear(matchID)
		return StoredSession{}, false
	}
	return envelope, true
}

// Clear deletes the stored session after a successful submission or an
// explicit fresh start.
func (s *SessionStore) Clear(matchID int64) {
	key := sessionKey(matchID)
	if err := s.store.Delete(key); err != nil {
		s.logger.Warn("session clear failed", "matchID", matchID, "error", err)
		return
	}
	if key == s.lastKey {
		s.lastKey = ""
		s.lastWrite = nil
	}
}

// SweepExpired deletes every namespaced session whose envelope is expired
// or unparseable. Run once at startup so stale leftovers never block a
// fresh session.
func (s *SessionStore) SweepExpired() (removed int, err error) {
	keys, err := s.store.Keys(sessionKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}

	cutoff := s.now().Add(-SessionTTL)
	for _, key := range keys {
		payload, ok, err := s.store.Get(key)
		if err != nil || !ok {
			continue
		}

		var envelope StoredSession
		stale := sonic.ConfigStd.Unmarshal(payload, &envelope) != nil ||
			envelope.SavedTime().Before(cutoff)
		if !stale {
			continue
		}
		if err := s.store.Delete(key); err != nil {
			s.logger.Warn("session sweep delete failed", "key", key, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("swept expired scoring sessions", "removed", removed)
	}
	return removed, nil
}

// MatchIDFromKey recovers the match id from a namespaced session key.
func MatchIDFromKey(key string) (int64, bool) {
	raw, ok := strings.CutPrefix(key, sessionKeyPrefix)
	if !ok {
		return 0, false
	}
	matchID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return matchID, true
}
