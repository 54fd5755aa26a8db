package stremio

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"

	"github.com/vaderstv/stremio-addon/services/store"
	"github.com/vaderstv/stremio-addon/services/stremio"
	"github.com/vaderstv/stremio-addon/services/vaders"
)

func newTestCLIContext(t *testing.T) *cli.Context {
	t.Helper()
	app := cli.NewApp()
	app.Flags = stremio.RegisterFlags(nil)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(fs)
	}
	return cli.NewContext(app, fs, nil)
}

func newAddonFixture(t *testing.T) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me":
			fmt.Fprint(w, `{"categories":[{"id":2,"name":"Sports"}]}`)
		case "/epg/channels":
			fmt.Fprint(w, `[{"id":101,"name":"BBC One","icon":"http://icons/bbc.png","category_id":2}]`)
		case "/epg/channels/101":
			fmt.Fprint(w, `[{"id":7,"channel_id":101,"title":"Evening News"}]`)
		default:
			if strings.HasPrefix(r.URL.Path, "/epg/channels/") {
				fmt.Fprint(w, `[]`)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c := newTestCLIContext(t)
	st := store.New(nil)
	api := vaders.New(srv.URL, "u", "p", srv.Client())
	session := vaders.NewSession(api, st, time.Minute)
	b := stremio.NewBuilder(c, api, session, st)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.RedirectTrailingSlash = false
	RegisterHandler(c, r, b)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestManifestEndpoint(t *testing.T) {
	r := newAddonFixture(t)

	w := doRequest(t, r, "/manifest.json")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var m stremio.ManifestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to decode manifest: %v", err)
	}
	if m.Id != "org.vaderstv" {
		t.Errorf("unexpected manifest id: %v", m.Id)
	}
	if len(m.Catalogs) != 1 || m.Catalogs[0].Id != "Sports" {
		t.Errorf("unexpected catalogs: %+v", m.Catalogs)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	r := newAddonFixture(t)
	doRequest(t, r, "/manifest.json")

	w := doRequest(t, r, "/catalog/tv/Sports.json")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp stremio.MetasResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if len(resp.Metas) != 1 || resp.Metas[0].ID != "vaders_101" {
		t.Errorf("unexpected metas: %+v", resp.Metas)
	}
}

func TestCatalogSearchEndpoint(t *testing.T) {
	r := newAddonFixture(t)
	doRequest(t, r, "/manifest.json")

	w := doRequest(t, r, "/catalog/tv/Sports/search=bbc.json")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp stremio.MetasResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if len(resp.Metas) != 1 || resp.Metas[0].Name != "BBC One" {
		t.Errorf("unexpected metas: %+v", resp.Metas)
	}

	w = doRequest(t, r, "/catalog/tv/Sports/search=nomatch.json")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unmatched search, got %d", w.Code)
	}
}

func TestCatalogUnknown(t *testing.T) {
	r := newAddonFixture(t)
	doRequest(t, r, "/manifest.json")

	w := doRequest(t, r, "/catalog/tv/Unknown.json")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestMetaEndpoint(t *testing.T) {
	r := newAddonFixture(t)

	w := doRequest(t, r, "/meta/tv/vaders_101.json")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp stremio.MetaResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode meta: %v", err)
	}
	if resp.Meta.Name != "Evening News" {
		t.Errorf("unexpected meta: %+v", resp.Meta)
	}
}

func TestMetaNoResult(t *testing.T) {
	r := newAddonFixture(t)

	w := doRequest(t, r, "/meta/tv/vaders_999.json")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestStreamEndpoint(t *testing.T) {
	r := newAddonFixture(t)

	w := doRequest(t, r, "/stream/tv/vaders_101.json")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var resp stremio.StreamsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode streams: %v", err)
	}
	if len(resp.Streams) != 1 || resp.Streams[0].Title != "Play Now" {
		t.Fatalf("unexpected streams: %+v", resp.Streams)
	}
}

func TestBadRequest(t *testing.T) {
	r := newAddonFixture(t)

	w := doRequest(t, r, "/stream/tv/.json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	r := newAddonFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manifest.json", nil)
	req.Header.Set("Origin", "https://app.strem.io")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected permissive cors, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
