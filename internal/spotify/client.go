// internal/spotify/client.go
//
// Spotify catalog search client.
//
// Context
// -------
// The songs component offers a read-only /search endpoint that proxies the
// Spotify Web API and returns a normalized track list; nothing here is
// persisted.  Auth uses the client-credentials grant: the token is cached
// until shortly before expiry, and concurrent refreshes collapse into one
// upstream call via singleflight.  Recent search results sit in a small
// LRU so a couple browsing back and forth does not hammer the API.
//
// Notes
// -----
// • All failures surface as fault.Upstream; no retries.
// • Base URLs are injectable for tests.
// • Oxford commas, two spaces after periods.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/keepsake/internal/cache"
	"github.com/yanizio/keepsake/internal/fault"
	"github.com/yanizio/keepsake/internal/metrics"
)

const (
	defaultAuthURL = "https://accounts.spotify.com/api/token"
	defaultAPIURL  = "https://api.spotify.com/v1"

	searchLimit   = 10
	cacheEntries  = 128
	cacheFreshFor = 5 * time.Minute
)

// Track is the normalized shape returned to the frontend.
type Track struct {
	SpotifyID string `json:"spotifyId"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	ImageURL  string `json:"imageUrl"`
}

// Client talks to the Spotify Web API.  Safe for concurrent use.
type Client struct {
	hc           *http.Client
	clientID     string
	clientSecret string
	authURL      string
	apiURL       string

	mu    sync.Mutex // guards token and expiry
	token string
	exp   time.Time

	sfg    singleflight.Group
	recent *cache.LRU
}

type cachedSearch struct {
	tracks  []Track
	fetched time.Time
}

// New builds a Client with the production endpoints.
func New(clientID, clientSecret string) *Client {
	return NewWithEndpoints(clientID, clientSecret, defaultAuthURL, defaultAPIURL)
}

// NewWithEndpoints is the test seam; authURL and apiURL override the
// Spotify hosts.
func NewWithEndpoints(clientID, clientSecret, authURL, apiURL string) *Client {
	return &Client{
		hc:           &http.Client{Timeout: 10 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      authURL,
		apiURL:       apiURL,
		recent:       cache.New(cacheEntries),
	}
}

// Search queries the catalog for tracks matching query, optionally
// narrowed by artist, and returns up to ten normalized results.
func (c *Client) Search(ctx context.Context, query, artist string) ([]Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fault.Validationf("search query is required")
	}

	key := query + "\x00" + artist
	if v, ok := c.recent.Get(key); ok {
		if hit := v.(cachedSearch); time.Since(hit.fetched) < cacheFreshFor {
			return hit.tracks, nil
		}
	}

	tok, err := c.accessToken(ctx)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues("spotify", "error").Inc()
		return nil, err
	}

	q := "track:" + query
	if artist != "" {
		q += " artist:" + artist
	}

	u := fmt.Sprintf("%s/search?%s", c.apiURL, url.Values{
		"q":     {q},
		"type":  {"track"},
		"limit": {fmt.Sprint(searchLimit)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fault.Upstream("build search request", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues("spotify", "error").Inc()
		return nil, fault.Upstream("spotify search failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeneratorCalls.WithLabelValues("spotify", "error").Inc()
		return nil, fault.Upstream("spotify search failed",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var body struct {
		Tracks struct {
			Items []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				Artists []struct {
					Name string `json:"name"`
				} `json:"artists"`
				Album struct {
					Images []struct {
						URL string `json:"url"`
					} `json:"images"`
				} `json:"album"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.GeneratorCalls.WithLabelValues("spotify", "error").Inc()
		return nil, fault.Upstream("decode spotify response", err)
	}

	tracks := make([]Track, 0, len(body.Tracks.Items))
	for _, it := range body.Tracks.Items {
		names := make([]string, 0, len(it.Artists))
		for _, a := range it.Artists {
			names = append(names, a.Name)
		}
		img := ""
		if len(it.Album.Images) > 0 {
			img = it.Album.Images[0].URL // largest image comes first
		}
		tracks = append(tracks, Track{
			SpotifyID: it.ID,
			Title:     it.Name,
			Artist:    strings.Join(names, ", "),
			ImageURL:  img,
		})
	}

	metrics.GeneratorCalls.WithLabelValues("spotify", "ok").Inc()
	c.recent.Add(key, cachedSearch{tracks: tracks, fetched: time.Now()})
	return tracks, nil
}

// accessToken returns a valid bearer token, refreshing through
// singleflight when the cached one is gone or about to expire.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Until(c.exp) > 30*time.Second {
		tok := c.token
		c.mu.Unlock()
		return tok, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sfg.Do("token", func() (any, error) {
		return c.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, form)
	if err != nil {
		return "", fault.Upstream("build token request", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fault.Upstream("spotify auth failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fault.Upstream("spotify auth failed",
			fmt.Errorf("status %d; check the client id and secret", resp.StatusCode))
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fault.Upstream("decode spotify token", err)
	}
	if body.AccessToken == "" {
		return "", fault.Upstream("spotify auth failed",
			fmt.Errorf("empty access token"))
	}

	c.mu.Lock()
	c.token = body.AccessToken
	c.exp = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	c.mu.Unlock()
	return body.AccessToken, nil
}
