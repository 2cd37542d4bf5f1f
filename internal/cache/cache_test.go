package cache

import (
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	k1 := Key("https://example.com/a")
	k2 := Key("https://example.com/a")
	k3 := Key("https://example.com/b")

	if k1 != k2 {
		t.Error("Expected identical keys for identical URLs")
	}
	if k1 == k3 {
		t.Error("Expected distinct keys for distinct URLs")
	}
	if len(k1) < len("vital:v1:") || k1[:9] != "vital:v1:" {
		t.Errorf("Expected vital:v1: prefix, got %s", k1)
	}
}

func TestMemory_SetGetDelete(t *testing.T) {
	c := NewMemory(time.Minute, time.Minute)

	if _, found := c.Get("k"); found {
		t.Error("Expected miss on empty cache")
	}

	_ = c.Set("k", []byte("v"), 0)
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("Expected hit with v, got %q found=%v", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDisk_RoundTripAndExpiry(t *testing.T) {
	c := NewDisk(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("Expected hit with v, got %q found=%v", val, found)
	}

	// An already-expired entry is dropped on read.
	if err := c.Set("stale", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("stale"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayered_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayered(time.Minute, dir, time.Minute)

	// Seed only the disk tier.
	disk := NewDisk(dir, time.Minute)
	if err := disk.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Fatalf("Expected disk fallthrough hit, got %q found=%v", val, found)
	}

	// Now present in memory too.
	if _, found := c.memory.Get("k"); !found {
		t.Error("Expected disk hit promoted to memory")
	}
}
