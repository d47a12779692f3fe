package eodhd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDirCache(t *testing.T) {
	c := &DirCache{Dir: filepath.Join(t.TempDir(), "cache")}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on empty cache = hit, want miss")
	}

	c.Put("key", []byte("payload"))
	data, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() after Put() = miss, want hit")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	// the cache dir must never be committed
	if _, err := os.Stat(filepath.Join(c.Dir, ".gitignore")); err != nil {
		t.Errorf("cache dir not seeded with .gitignore: %v", err)
	}
}

func TestDirCacheExpiry(t *testing.T) {
	c := &DirCache{Dir: t.TempDir(), Expiry: time.Hour}
	c.Put("key", []byte("payload"))

	// age the entry past its expiry
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(filepath.Join(c.Dir, "key"), old, old); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("key"); ok {
		t.Error("Get() on expired entry = hit, want miss")
	}
}

// A cached response is replayed without going back to the network.
func TestCachingTransport(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"close":100.5}`)
	}))
	defer server.Close()

	cache := &DirCache{Dir: t.TempDir()}

	for i := 0; i < 2; i++ {
		c := New("demo", WithBaseURL(server.URL), WithCache(cache))
		price, err := c.CurrentPrice("AAPL")
		if err != nil {
			t.Fatalf("call %d: CurrentPrice() error: %v", i, err)
		}
		if price != 100.5 {
			t.Errorf("call %d: price = %v, want 100.5", i, price)
		}
	}

	if calls != 1 {
		t.Errorf("server called %d times, want 1 (second run served from cache)", calls)
	}
}

// Error responses are not cached: a transient failure must not poison the
// cache for 24 hours.
func TestCachingTransportSkipsErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "try later", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"close":100.5}`)
	}))
	defer server.Close()

	cache := &DirCache{Dir: t.TempDir()}

	c := New("demo", WithBaseURL(server.URL), WithCache(cache))
	if _, err := c.CurrentPrice("AAPL"); err == nil {
		t.Fatal("first call: want error, got nil")
	}

	c = New("demo", WithBaseURL(server.URL), WithCache(cache))
	price, err := c.CurrentPrice("AAPL")
	if err != nil {
		t.Fatalf("second call: CurrentPrice() error: %v", err)
	}
	if price != 100.5 {
		t.Errorf("second call: price = %v, want 100.5", price)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2 (error not cached)", calls)
	}
}
