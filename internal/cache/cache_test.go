package cache

import (
	"testing"
	"time"
)

func TestCacheKey_Stable(t *testing.T) {
	a := CacheKey("https://justice.gov/opa/pr/123")
	b := CacheKey("https://justice.gov/opa/pr/123")
	if a != b {
		t.Errorf("Expected stable keys, got %s and %s", a, b)
	}
	if a == CacheKey("https://justice.gov/opa/pr/124") {
		t.Error("Expected different URLs to produce different keys")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected hit with v, got %q found=%v", val, found)
	}
}

func TestDiskCache_ExpiredEntryIsAMiss(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	// Seed only the disk layer, as a previous run would have.
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected disk hit, got %q found=%v", val, found)
	}

	// Now present in memory too.
	if _, found := c.memory.Get("k"); !found {
		t.Error("Expected value promoted to memory")
	}
}
