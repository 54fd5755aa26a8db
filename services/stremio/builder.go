package stremio

import (
	"context"
	"time"

	"github.com/urfave/cli"

	"github.com/vaderstv/stremio-addon/services/store"
	"github.com/vaderstv/stremio-addon/services/vaders"
)

const (
	buildIntervalFlag = "catalog-build-interval"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   buildIntervalFlag,
			Usage:  "pause between provider requests during the catalog build",
			Value:  0,
			EnvVar: "CATALOG_BUILD_INTERVAL",
		},
	)
}

type Builder struct {
	api     *vaders.Api
	session *vaders.Session
	catalog *Catalog
}

func NewBuilder(c *cli.Context, api *vaders.Api, session *vaders.Session, st *store.Store) *Builder {
	return &Builder{
		api:     api,
		session: session,
		catalog: NewCatalog(api, session, st, c.Duration(buildIntervalFlag)),
	}
}

func (s *Builder) BuildManifestService() (ManifestService, error) {
	return NewManifest(s.catalog), nil
}

func (s *Builder) BuildCatalogService() (CatalogService, error) {
	return s.catalog, nil
}

func (s *Builder) BuildMetaService() (MetaService, error) {
	return NewMeta(s.api, s.session, s.catalog), nil
}

func (s *Builder) BuildStreamsService() (StreamsService, error) {
	return NewStream(s.api), nil
}

// Warm runs a catalog build in the background so the first manifest request
// does not pay for it.
func (s *Builder) Warm(ctx context.Context, delay time.Duration) {
	go func() {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}
		_, _ = s.catalog.Build(ctx)
	}()
}
