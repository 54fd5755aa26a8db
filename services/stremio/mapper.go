package stremio

import (
	"strconv"

	"github.com/vaderstv/stremio-addon/services/vaders"
)

const (
	// ContentType is the only media type this addon serves.
	ContentType = "tv"
	// IDPrefix marks item ids owned by this addon.
	IDPrefix = "vaders_"
)

// MakeMeta converts a provider channel record into the metadata shape the
// host expects. Unknown provider fields are dropped.
func MakeMeta(ch vaders.Channel) MetaItem {
	return MetaItem{
		ID:          IDPrefix + strconv.FormatInt(ch.ID, 10),
		Type:        ContentType,
		Name:        ch.Name,
		Poster:      ch.Icon,
		PosterShape: "square",
		Logo:        ch.Icon,
		Background:  ch.Icon,
	}
}

// MakeProgramMeta converts a program-guide record. The meta keeps the
// channel identity so the host can resolve streams from it.
func MakeProgramMeta(p vaders.Program) MetaItem {
	return MetaItem{
		ID:          IDPrefix + strconv.FormatInt(p.ChannelID, 10),
		Type:        ContentType,
		Name:        p.Title,
		Poster:      p.Poster,
		PosterShape: "landscape",
		Background:  p.Poster,
		Description: p.Description,
	}
}
