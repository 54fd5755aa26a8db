package stremio

import (
	"context"

	log "github.com/sirupsen/logrus"
)

const (
	manifestID          = "org.vaderstv"
	manifestVersion     = "1.0.1"
	manifestName        = "Vader Streams IPTV"
	manifestDescription = "IPTV Service - Requires Subscription"
	manifestIcon        = "https://res.cloudinary.com/vrepetskyi/image/upload/v1545919412/vaders_qnqy4o.png"
)

// Manifest serves the addon descriptor. Requesting it also kicks off the
// catalog build, so installing the addon is what warms the cache.
type Manifest struct {
	catalog *Catalog
}

func NewManifest(catalog *Catalog) *Manifest {
	return &Manifest{catalog: catalog}
}

func (s *Manifest) GetManifest(ctx context.Context) (*ManifestResponse, error) {
	catalogs, err := s.catalog.Build(ctx)
	if err != nil {
		// The descriptor stays valid without catalogs, a later request
		// retries the build.
		log.WithError(err).Warn("catalog build failed")
		catalogs = s.catalog.Catalogs()
	}
	if catalogs == nil {
		catalogs = []CatalogItem{}
	}
	return &ManifestResponse{
		Id:          manifestID,
		Version:     manifestVersion,
		Name:        manifestName,
		Description: manifestDescription,
		Resources:   []string{"stream", "meta", "catalog"},
		Types:       []string{ContentType},
		IdPrefixes:  []string{IDPrefix},
		Icon:        manifestIcon,
		Logo:        manifestIcon,
		Catalogs:    catalogs,
	}, nil
}

var _ ManifestService = (*Manifest)(nil)
