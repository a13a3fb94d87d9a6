package rest

import (
	"bytes"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type cacheEntry struct {
	body        []byte
	contentType string
	expires     time.Time
}

// ResponseCache keeps successful public GET responses for a fixed TTL. Keys are request paths
// relative to the public API prefix plus the raw query, so "news?limit=5".
type ResponseCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewResponseCache returns a cache. A zero ttl disables caching.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (rc *ResponseCache) get(key string) (cacheEntry, bool) {
	rc.mu.RLock()
	e, ok := rc.entries[key]
	rc.mu.RUnlock()
	if !ok {
		return cacheEntry{}, false
	}
	if rc.now().After(e.expires) {
		rc.mu.Lock()
		delete(rc.entries, key)
		rc.mu.Unlock()
		return cacheEntry{}, false
	}
	return e, true
}

func (rc *ResponseCache) set(key string, body []byte, contentType string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = cacheEntry{body: body, contentType: contentType, expires: rc.now().Add(rc.ttl)}
}

// Revalidate drops every entry whose path equals one of paths or lies below it.
func (rc *ResponseCache) Revalidate(paths ...string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for key := range rc.entries {
		for _, p := range paths {
			p = strings.Trim(p, "/")
			if strings.HasPrefix(key, p+"?") || strings.HasPrefix(key, p+"/") {
				delete(rc.entries, key)
				break
			}
		}
	}
}

// Len returns the number of live and expired entries.
func (rc *ResponseCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.entries)
}

type bodyRecorder struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware serves cached GET responses below prefix and stores new 200 responses.
func (rc *ResponseCache) Middleware(prefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if rc.ttl <= 0 || req.Method != http.MethodGet {
				return next(c)
			}

			key := strings.TrimPrefix(strings.TrimPrefix(req.URL.Path, prefix), "/") + "?" + req.URL.RawQuery
			if e, ok := rc.get(key); ok {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, e.contentType, e.body)
			}

			res := c.Response()
			res.Header().Set("X-Cache", "MISS")
			rec := &bodyRecorder{ResponseWriter: res.Writer}
			res.Writer = rec
			defer func() { res.Writer = rec.ResponseWriter }()

			if err := next(c); err != nil {
				return err
			}
			if res.Status == http.StatusOK {
				rc.set(key, bytes.Clone(rec.buf.Bytes()), res.Header().Get(echo.HeaderContentType))
			}
			return nil
		}
	}
}
