package stremio

import (
	"context"
	"strings"

	"github.com/vaderstv/stremio-addon/services/vaders"
)

// Stream resolves playable stream urls. Resolution is pure string work on
// the item id, so no upstream call is made here.
type Stream struct {
	api *vaders.Api
}

func NewStream(api *vaders.Api) *Stream {
	return &Stream{api: api}
}

func (s *Stream) GetName() string {
	return "vaders"
}

func (s *Stream) GetStreams(ctx context.Context, contentType, contentID string) (*StreamsResponse, error) {
	if contentType != ContentType || contentID == "" {
		return nil, nil
	}
	// The stream id is whatever follows the last underscore, which also
	// accepts bare numeric ids.
	streamID := contentID
	if i := strings.LastIndex(contentID, "_"); i >= 0 {
		streamID = contentID[i+1:]
	}
	if streamID == "" {
		return nil, nil
	}
	return &StreamsResponse{
		Streams: []StreamItem{
			{
				Title: "Play Now",
				Url:   s.api.StreamURL(streamID),
			},
		},
	}, nil
}

var _ StreamsService = (*Stream)(nil)
