package stremio

type CatalogItem struct {
	Type           string   `json:"type"`
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	ExtraSupported []string `json:"extraSupported,omitempty"`
}

type ManifestResponse struct {
	Id          string        `json:"id"`
	Version     string        `json:"version"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Resources   []string      `json:"resources"`
	Types       []string      `json:"types"`
	IdPrefixes  []string      `json:"idPrefixes,omitempty"`
	Icon        string        `json:"icon,omitempty"`
	Logo        string        `json:"logo,omitempty"`
	Background  string        `json:"background,omitempty"`
	Catalogs    []CatalogItem `json:"catalogs"`
}

type MetaItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Poster      string `json:"poster,omitempty"`
	PosterShape string `json:"posterShape,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Background  string `json:"background,omitempty"`
	Description string `json:"description,omitempty"`
}

type MetasResponse struct {
	Metas []MetaItem `json:"metas"`
}

type MetaResponse struct {
	Meta MetaItem `json:"meta"`
}

type StreamItem struct {
	Title string `json:"title,omitempty"`
	Url   string `json:"url,omitempty"`
}

type StreamsResponse struct {
	Streams []StreamItem `json:"streams"`
}
