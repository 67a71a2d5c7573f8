// Package storage persists which links the urgent watcher has already
// alerted on, so back-to-back runs do not mail the same story twice.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// SeenLink is one already-alerted story link.
type SeenLink struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	AlertedAt time.Time `json:"alerted_at"`
}

// SeenCache is a small JSON-file-backed set of alerted links with a TTL.
type SeenCache struct {
	filePath string
	ttl      time.Duration
	mu       sync.RWMutex
	links    map[string]SeenLink
}

func NewSeenCache(filePath string, ttlHours int) *SeenCache {
	return &SeenCache{
		filePath: filePath,
		ttl:      time.Duration(ttlHours) * time.Hour,
		links:    make(map[string]SeenLink),
	}
}

// Load reads the cache file, dropping expired entries. A missing file is a
// fresh start, not an error.
func (c *SeenCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seen cache: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var links []SeenLink
	if err := json.Unmarshal(data, &links); err != nil {
		return fmt.Errorf("parse seen cache %s: %w", c.filePath, err)
	}

	cutoff := time.Now().Add(-c.ttl)
	for _, l := range links {
		if l.AlertedAt.After(cutoff) {
			c.links[l.URL] = l
		}
	}
	return nil
}

// Save writes the current (non-expired) set back to disk.
func (c *SeenCache) Save() error {
	c.mu.RLock()
	cutoff := time.Now().Add(-c.ttl)
	links := make([]SeenLink, 0, len(c.links))
	for _, l := range c.links {
		if l.AlertedAt.After(cutoff) {
			links = append(links, l)
		}
	}
	c.mu.RUnlock()

	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal seen cache: %w", err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return fmt.Errorf("write seen cache: %w", err)
	}
	return nil
}

// Seen reports whether the link was alerted on within the TTL.
func (c *SeenCache) Seen(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.links[url]
	return ok && l.AlertedAt.After(time.Now().Add(-c.ttl))
}

// Mark records a link as alerted.
func (c *SeenCache) Mark(url, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.links[url] = SeenLink{URL: url, Title: title, AlertedAt: time.Now()}
}

// URLSet returns the current set in the shape the engine's Options.Seen
// expects.
func (c *SeenCache) URLSet() map[string]struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set := make(map[string]struct{}, len(c.links))
	cutoff := time.Now().Add(-c.ttl)
	for url, l := range c.links {
		if l.AlertedAt.After(cutoff) {
			set[url] = struct{}{}
		}
	}
	return set
}
