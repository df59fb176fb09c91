// internal/spotify/client_test.go
//
// Tests for the catalog client against local httptest servers; no network.
//
// Run: go test ./internal/spotify -v

package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/yanizio/keepsake/internal/fault"
)

// newStubbed returns a client wired to stub auth and API servers plus the
// counters tracking upstream calls.
func newStubbed(t *testing.T, apiHandler http.HandlerFunc) (*Client, *int32, *int32) {
	t.Helper()

	var tokenCalls, searchCalls int32

	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		if r.Method != http.MethodPost {
			t.Errorf("auth method = %s", r.Method)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "id" || pass != "secret" {
			t.Errorf("bad basic auth: %v %v %v", user, pass, ok)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(auth.Close)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&searchCalls, 1)
		apiHandler(w, r)
	}))
	t.Cleanup(api.Close)

	return NewWithEndpoints("id", "secret", auth.URL, api.URL), &tokenCalls, &searchCalls
}

func TestSearchNormalizesTracks(t *testing.T) {
	c, _, _ := newStubbed(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("auth header = %q", got)
		}
		if q := r.URL.Query().Get("q"); q != "track:yellow artist:coldplay" {
			t.Errorf("q = %q", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{
				"items": []map[string]any{{
					"id":   "abc123",
					"name": "Yellow",
					"artists": []map[string]any{
						{"name": "Coldplay"},
						{"name": "Someone Else"},
					},
					"album": map[string]any{
						"images": []map[string]any{
							{"url": "https://img/large"},
							{"url": "https://img/small"},
						},
					},
				}},
			},
		})
	})

	tracks, err := c.Search(context.Background(), "yellow", "coldplay")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("len = %d, want 1", len(tracks))
	}
	got := tracks[0]
	if got.SpotifyID != "abc123" || got.Title != "Yellow" {
		t.Fatalf("unexpected track: %+v", got)
	}
	if got.Artist != "Coldplay, Someone Else" {
		t.Fatalf("artist = %q", got.Artist)
	}
	if got.ImageURL != "https://img/large" {
		t.Fatalf("image = %q, want the largest", got.ImageURL)
	}
}

func TestSearchReusesTokenAndCache(t *testing.T) {
	c, tokenCalls, searchCalls := newStubbed(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{"items": []map[string]any{}},
		})
	})

	ctx := context.Background()
	if _, err := c.Search(ctx, "first", ""); err != nil {
		t.Fatalf("search 1: %v", err)
	}
	if _, err := c.Search(ctx, "second", ""); err != nil {
		t.Fatalf("search 2: %v", err)
	}
	if got := atomic.LoadInt32(tokenCalls); got != 1 {
		t.Fatalf("token fetched %d times, want 1", got)
	}

	// Identical query served from the LRU without an upstream call.
	before := atomic.LoadInt32(searchCalls)
	if _, err := c.Search(ctx, "first", ""); err != nil {
		t.Fatalf("search cached: %v", err)
	}
	if got := atomic.LoadInt32(searchCalls); got != before {
		t.Fatalf("cached search still hit upstream (%d → %d)", before, got)
	}
}

func TestSearchConcurrentCallersShareCacheSafely(t *testing.T) {
	c, _, _ := newStubbed(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"tracks": map[string]any{"items": []map[string]any{}},
		})
	})

	// Hot and cold keys interleave, so cache reads and writes overlap.
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q := "hot"
				if i%5 == 0 {
					q = "cold-" + strconv.Itoa(g) + "-" + strconv.Itoa(i)
				}
				if _, err := c.Search(context.Background(), q, ""); err != nil {
					t.Errorf("search %q: %v", q, err)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestSearchEmptyQueryIsValidation(t *testing.T) {
	c, _, _ := newStubbed(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := c.Search(context.Background(), "   ", "")
	if fault.KindOf(err) != fault.KindValidation {
		t.Fatalf("kind = %v, want Validation", fault.KindOf(err))
	}
}

func TestSearchUpstreamFailureIsUpstreamFault(t *testing.T) {
	c, _, _ := newStubbed(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Search(context.Background(), "anything", "")
	if fault.KindOf(err) != fault.KindUpstream {
		t.Fatalf("kind = %v, want Upstream", fault.KindOf(err))
	}
}

func TestAuthRejectionIsUpstreamFault(t *testing.T) {
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer auth.Close()

	c := NewWithEndpoints("id", "wrong", auth.URL, "http://unused")
	_, err := c.Search(context.Background(), "anything", "")
	if fault.KindOf(err) != fault.KindUpstream {
		t.Fatalf("kind = %v, want Upstream", fault.KindOf(err))
	}
}
