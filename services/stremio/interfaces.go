package stremio

import (
	"context"
)

// ManifestService produces the addon descriptor for the host.
type ManifestService interface {
	GetManifest(ctx context.Context) (*ManifestResponse, error)
}

// CatalogService answers catalog listings, optionally filtered by a search
// term. A nil response means "no result", which is distinct from an error.
type CatalogService interface {
	GetCatalog(ctx context.Context, contentType, catalogID, search string) (*MetasResponse, error)
}

// MetaService answers per-item metadata lookups.
type MetaService interface {
	GetMeta(ctx context.Context, contentType, contentID string) (*MetaResponse, error)
}

// StreamsService resolves an item id into playable streams.
type StreamsService interface {
	GetName() string
	GetStreams(ctx context.Context, contentType, contentID string) (*StreamsResponse, error)
}
