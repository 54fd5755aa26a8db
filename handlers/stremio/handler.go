package stremio

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/vaderstv/stremio-addon/services/stremio"
)

type Handler struct {
	b *stremio.Builder
}

func RegisterHandler(c *cli.Context, r *gin.Engine, b *stremio.Builder) {
	h := &Handler{
		b: b,
	}

	gr := r.Group("/")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
	}))
	gr.GET("/manifest.json", h.manifest)
	gr.GET("/catalog/:type/*id", h.catalog)
	gr.GET("/meta/:type/*id", h.meta)
	gr.GET("/stream/:type/*id", h.stream)
}

func (s *Handler) manifest(c *gin.Context) {
	mas, err := s.b.BuildManifestService()
	if err != nil {
		log.WithError(err).Error("failed to build manifest service")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	resp, err := mas.GetManifest(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("failed to get manifest response")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Handler) catalog(c *gin.Context) {
	ct := c.Param("type")
	id, search := s.cleanCatalogID(c.Param("id"))
	if ct == "" || id == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	cas, err := s.b.BuildCatalogService()
	if err != nil {
		log.WithError(err).Error("failed to build catalog service")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	resp, err := cas.GetCatalog(c.Request.Context(), ct, id, search)
	if err != nil {
		log.WithError(err).Error("failed to get catalog response")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if resp == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Handler) meta(c *gin.Context) {
	ct := c.Param("type")
	id := s.cleanResourceID(c.Param("id"))
	if ct == "" || id == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	mes, err := s.b.BuildMetaService()
	if err != nil {
		log.WithError(err).Error("failed to build meta service")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	resp, err := mes.GetMeta(c.Request.Context(), ct, id)
	if err != nil {
		log.WithError(err).Error("failed to get meta response")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if resp == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Handler) stream(c *gin.Context) {
	ct := c.Param("type")
	id := s.cleanResourceID(c.Param("id"))
	if ct == "" || id == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	sts, err := s.b.BuildStreamsService()
	if err != nil {
		log.WithError(err).Error("failed to build streams service")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	resp, err := sts.GetStreams(c.Request.Context(), ct, id)
	if err != nil {
		log.WithError(err).Error("failed to get streams response")
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if resp == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Handler) cleanResourceID(rawID string) string {
	return strings.TrimPrefix(strings.TrimSuffix(rawID, ".json"), "/")
}

// cleanCatalogID splits off the trailing extra segment, so both
// "Sports.json" and "Sports/search=bbc.json" parse into an id and an
// optional search term.
func (s *Handler) cleanCatalogID(rawID string) (id string, search string) {
	id = s.cleanResourceID(rawID)
	if i := strings.Index(id, "/"); i >= 0 {
		extra := id[i+1:]
		id = id[:i]
		if v, err := url.ParseQuery(extra); err == nil {
			search = v.Get("search")
		}
	}
	if u, err := url.PathUnescape(id); err == nil {
		id = u
	}
	return
}
