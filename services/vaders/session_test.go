package vaders

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vaderstv/stremio-addon/services/store"
)

func newSessionFixture(t *testing.T, ttl time.Duration, handler http.HandlerFunc) (*Session, *store.Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	st := store.New(nil)
	api := New(srv.URL, "u", "p", srv.Client())
	return NewSession(api, st, ttl), st, srv
}

func TestEnsureCachesWithinTTL(t *testing.T) {
	logins := 0
	s, _, _ := newSessionFixture(t, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		logins++
		fmt.Fprint(w, `{"categories":[{"id":2,"name":"Sports"}]}`)
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		cats := s.Ensure(ctx)
		if len(cats) != 1 || cats[0].Name != "Sports" {
			t.Fatalf("unexpected categories: %+v", cats)
		}
	}
	if logins != 1 {
		t.Errorf("expected a single login, got %d", logins)
	}
}

func TestEnsureZeroTTLAlwaysLogsIn(t *testing.T) {
	logins := 0
	s, _, _ := newSessionFixture(t, 0, func(w http.ResponseWriter, r *http.Request) {
		logins++
		fmt.Fprint(w, `{"categories":[{"id":2,"name":"Sports"}]}`)
	})

	ctx := context.Background()
	s.Ensure(ctx)
	s.Ensure(ctx)
	if logins != 2 {
		t.Errorf("expected a login per call, got %d", logins)
	}
}

func TestEnsureLoginFailure(t *testing.T) {
	s, _, _ := newSessionFixture(t, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"invalid credentials"}`)
	})

	if cats := s.Ensure(context.Background()); cats != nil {
		t.Errorf("expected no categories on rejected login, got %+v", cats)
	}
}

func TestEnsurePersistsCategories(t *testing.T) {
	s, st, _ := newSessionFixture(t, time.Minute, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"categories":[{"id":2,"name":"Sports"},{"id":3,"name":"News"}]}`)
	})

	ctx := context.Background()
	s.Ensure(ctx)

	var cats []Category
	found, err := st.Get(ctx, store.KeyCategories, &cats)
	if err != nil {
		t.Fatalf("store get failed: %v", err)
	}
	if !found || len(cats) != 2 {
		t.Errorf("expected persisted categories, got found=%v cats=%+v", found, cats)
	}
}
