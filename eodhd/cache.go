package eodhd

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// contains http utils to deal with the remote service, and the response cache.

// Cache is the port for response caching. Implementations decide durability
// and expiry; a Get miss simply means the request goes to the network. Cache
// failures must degrade to misses, never surface.
type Cache interface {
	// Get returns the cached payload for a key, or false on a miss (absent,
	// expired, or unreadable).
	Get(key string) ([]byte, bool)
	// Put stores a payload under a key, best effort.
	Put(key string, data []byte)
}

// DirCache is a Cache backed by files in a directory, each entry expiring a
// fixed duration after it was written. The directory is created lazily and
// seeded with a .gitignore so cached responses never end up committed.
type DirCache struct {
	Dir    string
	Expiry time.Duration // 24h when zero
}

func (c *DirCache) expiry() time.Duration {
	if c.Expiry > 0 {
		return c.Expiry
	}
	return 24 * time.Hour
}

func (c *DirCache) Get(key string) ([]byte, bool) {
	file := filepath.Join(c.Dir, key)
	info, err := os.Stat(file)
	if err != nil || time.Since(info.ModTime()) >= c.expiry() {
		return nil, false
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *DirCache) Put(key string, data []byte) {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		log.Printf("cache write err (ignored): %v", err)
		return
	}
	gitignore := filepath.Join(c.Dir, ".gitignore")
	if _, err := os.Stat(gitignore); err != nil {
		os.WriteFile(gitignore, []byte("*\n"), 0644)
	}
	if err := os.WriteFile(filepath.Join(c.Dir, key), data, 0644); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
}

// cachingTransport is an http.RoundTripper that consults a Cache before
// hitting the network, and stores successful responses back into it.
type cachingTransport struct {
	base  http.RoundTripper
	cache Cache
}

func (t *cachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%x", sha1.Sum([]byte(req.Method+" "+req.URL.String())))

	if data, ok := t.cache.Get(key); ok {
		resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), req)
		if err == nil {
			return resp, nil
		}
		// unreadable entry: fall through to the network
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Printf("cache write err (ignored): %v", err)
		return resp, nil
	}
	t.cache.Put(key, content)

	// DumpResponse drained the body; hand the caller a fresh copy.
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
func (c *Client) jwget(addr string, data interface{}) error {
	resp, err := c.http.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
