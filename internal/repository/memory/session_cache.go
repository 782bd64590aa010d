package memory

import (
	"time"

	"notetaking-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently validated sessions so authenticated requests
// skip the sessions table.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache(ttl time.Duration) *SessionCache {
	// purge expired items every 10 minutes
	return &SessionCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

// Save caches the fields request authentication reads. Pending domain
// events stay with the caller's entity.
func (r *SessionCache) Save(session *entity.Session) {
	snapshot := &entity.Session{
		Entity:      entity.Entity{IsDeleted: session.IsDeleted},
		Id:          session.Id,
		UserId:      session.UserId,
		Username:    session.Username,
		AccessToken: session.AccessToken,
		Status:      session.Status,
	}
	r.cache.Set(session.Id.String(), snapshot, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionID uuid.UUID) (*entity.Session, bool) {
	if x, found := r.cache.Get(sessionID.String()); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}
