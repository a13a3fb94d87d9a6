package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseCache_Revalidate(t *testing.T) {
	rc := NewResponseCache(time.Minute)
	for _, key := range []string{"news?", "news?limit=5", "news/12?", "newsletter?", "home?", "faqs?"} {
		rc.set(key, []byte("{}"), "application/json")
	}

	rc.Revalidate("news", "/home/")

	_, ok := rc.get("news?limit=5")
	assert.False(t, ok)
	_, ok = rc.get("news/12?")
	assert.False(t, ok)
	_, ok = rc.get("home?")
	assert.False(t, ok)
	_, ok = rc.get("newsletter?")
	assert.True(t, ok, "sibling prefix is kept")
	_, ok = rc.get("faqs?")
	assert.True(t, ok)
	assert.Equal(t, 2, rc.Len())
}

func TestResponseCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rc := NewResponseCache(time.Minute)
	rc.now = func() time.Time { return now }

	rc.set("faqs?", []byte("{}"), "application/json")
	_, ok := rc.get("faqs?")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = rc.get("faqs?")
	assert.False(t, ok)
	assert.Equal(t, 0, rc.Len())
}
