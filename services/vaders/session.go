package vaders

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vaderstv/stremio-addon/services/metrics"
	"github.com/vaderstv/stremio-addon/services/store"
)

// Session owns the login lifecycle against the provider. A successful login
// is trusted for ttl; after that the next provider-facing call re-validates.
// Login failures are recoverable: they are logged and the caller simply
// receives no categories.
type Session struct {
	api *Api
	st  *store.Store
	ttl time.Duration

	mu         sync.Mutex
	expiresAt  time.Time
	categories []Category
}

func NewSession(api *Api, st *store.Store, ttl time.Duration) *Session {
	return &Session{
		api: api,
		st:  st,
		ttl: ttl,
	}
}

// Ensure returns the current category set, logging in first when the session
// has expired. All provider-facing reads must pass through here before
// issuing their own request; stream URL construction is the one exception
// since it only needs the token value.
func (s *Session) Ensure(ctx context.Context) []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Now().Before(s.expiresAt) {
		return s.categories
	}
	cats, err := s.api.Login(ctx)
	if err != nil {
		log.WithError(err).Error("vaders login failed")
		metrics.Logins.WithLabelValues("error").Inc()
		return nil
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	s.categories = cats
	s.expiresAt = time.Now().Add(s.ttl)
	if err := s.st.Set(ctx, store.KeyCategories, cats); err != nil {
		log.WithError(err).Warn("failed to persist categories")
	}
	return cats
}

// Token exposes the provider token for URL construction.
func (s *Session) Token() string {
	return s.api.Token()
}
