// internal/requestinfo/requestinfo.go
//
// Lightweight types and helpers that collect per-request metadata
// (request ID, user-agent fingerprint, IP + geolocation, URL, and
// timestamp).  These structs are inert.  They contain no pointers to
// database handles or large buffers, so they are safe to log or
// JSON-encode.
//
// Dependencies
//   - github.com/google/uuid            (request IDs)
//   - github.com/oschwald/geoip2-golang (MaxMind lookup)
//   - internal/ua                       (UA parsing)
package requestinfo

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/yanizio/keepsake/internal/ua"
)

// Geo holds IP-based geolocation hints.
// These are best-effort and may be empty if the DB has no match.
type Geo struct {
	IP         net.IP // Original client address (not X-Forwarded-For chain)
	CountryISO string // "US", "CA", "FR", ...
	City       string // "Chicago", "Paris", ...
}

// RequestInfo is attached to the request context by Enrich and is
// therefore visible to every handler and the access log.
type RequestInfo struct {
	ID        string // UUID, also echoed in the X-Request-Id header
	UA        ua.Info
	Geo       Geo
	URL       *url.URL // Pointer copy, safe to dereference read-only
	Timestamp time.Time
}

// geoReader is a singleton MaxMind handle.  It is safe for concurrent
// reads, which is all we ever perform.  It stays nil when no database
// path is configured; lookups then return only the client IP.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2 database at startup.  An empty path is a
// no-op so deployments without the database still run; an unreadable
// file is logged and skipped rather than made fatal.
func InitGeo(dbPath string) {
	if dbPath == "" {
		return
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		zap.S().Warnw("geoip database unavailable, lookups disabled",
			"path", dbPath, "error", err)
		return
	}
	geoReader = r
}

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich.
// It returns nil if the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// newID returns a fresh UUIDv4 string for request correlation.
func newID() string {
	return uuid.NewString()
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}

// clientIP extracts the left-most address from X-Forwarded-For or
// X-Real-IP, falling back to r.RemoteAddr ("ip:port").
func clientIP(remoteAddr, xff, xrip string) net.IP {
	if xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(remoteAddr)
}
