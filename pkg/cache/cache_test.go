package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "schedule:abc", []byte("batches"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "schedule:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if !bytes.Equal(data, []byte("batches")) {
		t.Errorf("Get = %q, want %q", data, "batches")
	}
}

func TestFileCache_Miss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	_, hit, err := c.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get should miss for unknown key")
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// A non-positive TTL stores without expiration.
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("entry with non-positive TTL should never expire")
	}

	if err := c.Set(ctx, "short", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	c.Set(ctx, "key", []byte("value"), time.Hour)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get should miss after Delete")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// ResultKey varies with every component
	rk1 := k.ResultKey("hash1", "a")
	rk2 := k.ResultKey("hash1", "b")
	rk3 := k.ResultKey("hash2", "a")
	if rk1 == rk2 || rk1 == rk3 {
		t.Error("Different inputs should produce different result keys")
	}
	if !strings.HasPrefix(rk1, "result:") {
		t.Errorf("ResultKey should carry the result prefix, got %s", rk1)
	}

	// ScheduleKey varies with mode and cycle count
	sk1 := k.ScheduleKey("hash1", "tasks", 2)
	sk2 := k.ScheduleKey("hash1", "cycle", 2)
	sk3 := k.ScheduleKey("hash1", "tasks", 3)
	if sk1 == sk2 || sk1 == sk3 {
		t.Error("Different schedule options should produce different keys")
	}
	if !strings.HasPrefix(sk1, "schedule:") {
		t.Errorf("ScheduleKey should carry the schedule prefix, got %s", sk1)
	}

	// Keys are deterministic
	if k.ScheduleKey("hash1", "tasks", 2) != sk1 {
		t.Error("ScheduleKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "server:")

	rk := scoped.ResultKey("hash1", "a")
	if !strings.HasPrefix(rk, "server:result:") {
		t.Errorf("ResultKey should be prefixed, got %s", rk)
	}
	if rk != "server:"+inner.ResultKey("hash1", "a") {
		t.Error("ScopedKeyer should delegate to the inner keyer")
	}

	sk := scoped.ScheduleKey("hash1", "tasks", 2)
	if !strings.HasPrefix(sk, "server:schedule:") {
		t.Errorf("ScheduleKey should be prefixed, got %s", sk)
	}
}

func TestScopedKeyer_NilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "x:")
	if key := scoped.ResultKey("h", "a"); !strings.HasPrefix(key, "x:result:") {
		t.Errorf("nil inner should fall back to DefaultKeyer, got %s", key)
	}
}
