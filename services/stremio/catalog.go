package stremio

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/lazymap"
	"golang.org/x/time/rate"

	"github.com/vaderstv/stremio-addon/services/metrics"
	"github.com/vaderstv/stremio-addon/services/store"
	"github.com/vaderstv/stremio-addon/services/vaders"
)

// ErrNoCategories signals that a build pass found no categories to work
// with, usually because the login failed. It is cached only briefly so a
// later manifest request gets another chance.
var ErrNoCategories = errors.New("no stream categories available")

// Catalog populates and serves the channel catalogs. The build pass runs at
// most once per process: concurrent callers coalesce on the same lazymap
// entry and every later call returns the memoized result. Categories are
// fetched strictly one at a time in input order, so catalog ordering is
// deterministic and the provider never sees more than one outstanding
// request.
type Catalog struct {
	api     *vaders.Api
	session *vaders.Session
	st      *store.Store
	limiter *rate.Limiter
	build   *lazymap.LazyMap[[]CatalogItem]

	mu       sync.RWMutex
	catalogs []CatalogItem
	channels map[string][]MetaItem
}

func NewCatalog(api *vaders.Api, session *vaders.Session, st *store.Store, interval time.Duration) *Catalog {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Catalog{
		api:     api,
		session: session,
		st:      st,
		limiter: rate.NewLimiter(limit, 1),
		build: lazymap.New[[]CatalogItem](&lazymap.Config{
			ErrorExpire: 10 * time.Second,
		}),
		channels: map[string][]MetaItem{},
	}
}

// Build populates the catalog cache, or returns the cached result when a
// pass already completed.
func (s *Catalog) Build(ctx context.Context) ([]CatalogItem, error) {
	return s.build.Get("build", func() ([]CatalogItem, error) {
		return s.buildOnce(ctx)
	})
}

func (s *Catalog) buildOnce(ctx context.Context) ([]CatalogItem, error) {
	cats := s.session.Ensure(ctx)
	if len(cats) == 0 {
		log.Info("no stream categories available")
		return nil, ErrNoCategories
	}
	catalogs := []CatalogItem{}
	channels := map[string][]MetaItem{}
	for _, cat := range cats {
		// Categories with id <= 1 carry no channels.
		if cat.ID <= 1 || cat.Name == "" {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		chs, err := s.api.Channels(ctx, cat.ID)
		if err != nil {
			log.WithError(err).WithField("category", cat.Name).Warn("skipping category")
			continue
		}
		if len(chs) == 0 {
			continue
		}
		metas := make([]MetaItem, len(chs))
		for i, ch := range chs {
			metas[i] = MakeMeta(ch)
		}
		channels[cat.Name] = metas
		catalogs = append(catalogs, CatalogItem{
			Type:           ContentType,
			Id:             cat.Name,
			Name:           cat.Name,
			ExtraSupported: []string{"search"},
		})
	}
	s.mu.Lock()
	s.catalogs = catalogs
	s.channels = channels
	s.mu.Unlock()
	if err := s.st.Set(ctx, store.KeyCatalogs, catalogs); err != nil {
		log.WithError(err).Warn("failed to persist catalogs")
	}
	if err := s.st.Set(ctx, store.KeyChannels, channels); err != nil {
		log.WithError(err).Warn("failed to persist channel lists")
	}
	metrics.Catalogs.Set(float64(len(catalogs)))
	log.WithField("catalogs", len(catalogs)).Info("catalog build finished")
	return catalogs, nil
}

// GetCatalog answers a catalog listing. Unknown types or catalog ids and
// searches with zero matches all produce a nil response rather than an
// error.
func (s *Catalog) GetCatalog(ctx context.Context, contentType, catalogID, search string) (*MetasResponse, error) {
	if contentType != ContentType || catalogID == "" {
		return nil, nil
	}
	s.rehydrate(ctx)
	s.mu.RLock()
	metas, ok := s.channels[catalogID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if search != "" {
		var results []MetaItem
		needle := strings.ToLower(search)
		for _, m := range metas {
			if strings.Contains(strings.ToLower(m.Name), needle) {
				results = append(results, m)
			}
		}
		if len(results) == 0 {
			return nil, nil
		}
		return &MetasResponse{Metas: results}, nil
	}
	return &MetasResponse{Metas: metas}, nil
}

var _ CatalogService = (*Catalog)(nil)

// FindChannel scans every cached channel list for the given item id.
func (s *Catalog) FindChannel(id string) *MetaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, metas := range s.channels {
		for _, m := range metas {
			if m.ID == id {
				return &m
			}
		}
	}
	return nil
}

// Catalogs returns the current catalog list.
func (s *Catalog) Catalogs() []CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogs
}

// rehydrate reloads persisted state after a restart, so catalogs keep
// serving before the first build pass of this process.
func (s *Catalog) rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.catalogs) > 0 {
		return
	}
	var catalogs []CatalogItem
	found, err := s.st.Get(ctx, store.KeyCatalogs, &catalogs)
	if err != nil {
		log.WithError(err).Warn("failed to load persisted catalogs")
		return
	}
	if !found || len(catalogs) == 0 {
		return
	}
	var channels map[string][]MetaItem
	if _, err := s.st.Get(ctx, store.KeyChannels, &channels); err != nil {
		log.WithError(err).Warn("failed to load persisted channel lists")
		return
	}
	s.catalogs = catalogs
	if channels != nil {
		s.channels = channels
	}
}
