package sensor

import (
	"bytes"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedPayload wraps the last payload sent to a topic with version metadata
type cachedPayload struct {
	Version  string
	Payload  []byte
	CachedAt time.Time
}

// publishCache remembers what was last published per topic so unchanged
// payloads are not re-sent. Entries expire so retained state is refreshed
// on the broker now and then.
type publishCache struct {
	lru *expirable.LRU[string, *cachedPayload]
}

func newPublishCache(size int, ttl time.Duration) *publishCache {
	return &publishCache{
		lru: expirable.NewLRU[string, *cachedPayload](size, nil, ttl),
	}
}

// Unchanged reports whether payload is what was last published on topic.
// Entries from an older schema version are dropped.
func (c *publishCache) Unchanged(topic string, payload []byte) bool {
	entry, found := c.lru.Get(topic)
	if !found {
		return false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(topic)
		return false
	}
	return bytes.Equal(entry.Payload, payload)
}

// Set records payload as published on topic
func (c *publishCache) Set(topic string, payload []byte) {
	c.lru.Add(topic, &cachedPayload{
		Version:  CacheSchemaVersion,
		Payload:  payload,
		CachedAt: time.Now(),
	})
}

// Invalidate forgets topic
func (c *publishCache) Invalidate(topic string) {
	c.lru.Remove(topic)
}

// Clear forgets everything, e.g. after reconnecting to a broker that may
// have lost retained messages.
func (c *publishCache) Clear() {
	c.lru.Purge()
}
