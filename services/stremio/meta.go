package stremio

import (
	"context"
	"strings"
	"time"

	"github.com/webtor-io/lazymap"

	"github.com/vaderstv/stremio-addon/services/vaders"
)

// Guide lookahead for meta requests.
const guideWindow = 3 * time.Hour

// Meta resolves per-channel metadata. Prefixed ids go through the provider
// guide and carry the currently airing program; bare ids fall back to a
// scan of the cached channel lists. Guide responses are cached briefly so
// that a burst of requests for the same channel costs one upstream call.
type Meta struct {
	api     *vaders.Api
	session *vaders.Session
	catalog *Catalog
	guide   *lazymap.LazyMap[*MetaItem]
}

func NewMeta(api *vaders.Api, session *vaders.Session, catalog *Catalog) *Meta {
	return &Meta{
		api:     api,
		session: session,
		catalog: catalog,
		guide: lazymap.New[*MetaItem](&lazymap.Config{
			Expire:      time.Minute,
			ErrorExpire: 10 * time.Second,
		}),
	}
}

func (s *Meta) GetMeta(ctx context.Context, contentType, contentID string) (*MetaResponse, error) {
	if contentType != ContentType || contentID == "" {
		return nil, nil
	}
	if !strings.HasPrefix(contentID, IDPrefix) {
		m := s.catalog.FindChannel(contentID)
		if m == nil {
			return nil, nil
		}
		return &MetaResponse{Meta: *m}, nil
	}
	channelID := strings.TrimPrefix(contentID, IDPrefix)
	m, err := s.guide.Get(channelID, func() (*MetaItem, error) {
		return s.currentProgram(ctx, channelID)
	})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return &MetaResponse{Meta: *m}, nil
}

func (s *Meta) currentProgram(ctx context.Context, channelID string) (*MetaItem, error) {
	// Keep the login fresh before touching the guide.
	s.session.Ensure(ctx)
	now := time.Now()
	progs, err := s.api.Guide(ctx, channelID, now, now.Add(guideWindow))
	if err != nil {
		return nil, err
	}
	if len(progs) == 0 {
		return nil, nil
	}
	m := MakeProgramMeta(progs[0])
	return &m, nil
}

var _ MetaService = (*Meta)(nil)
