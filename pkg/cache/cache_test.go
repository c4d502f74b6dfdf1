package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k1", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() miss for a key that was just set")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}
}

func TestFileCache_MissingKey(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() hit for a key that was never set")
	}
}

func TestFileCache_Expiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "fleeting", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "fleeting")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("expired entry should miss")
	}
}

func TestFileCache_ZeroTTLNeverExpires(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "keep", []byte("x"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	_, ok, err := c.Get(ctx, "keep")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "dead", []byte("x"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Delete(ctx, "dead"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	if _, ok, _ := c.Get(ctx, "dead"); ok {
		t.Error("deleted key should miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "dead"); err != nil {
		t.Errorf("Delete() on a missing key: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("x"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("NullCache should always miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestDefaultKeyer_Stability(t *testing.T) {
	k := NewDefaultKeyer()
	opts := LayoutKeyOpts{Strategy: "hierarchical", Direction: "TB", Seed: 42}

	k1 := k.LayoutKey("hash1", opts)
	k2 := k.LayoutKey("hash1", opts)
	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %q vs %q", k1, k2)
	}

	if !strings.HasPrefix(k1, "layout:") {
		t.Errorf("LayoutKey() = %q, want layout: prefix", k1)
	}
}

func TestDefaultKeyer_Discriminates(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{Strategy: "hierarchical", Direction: "TB", Seed: 42}

	baseline := k.LayoutKey("hash1", base)

	variants := []LayoutKeyOpts{
		{Strategy: "layered", Direction: "TB", Seed: 42},
		{Strategy: "hierarchical", Direction: "LR", Seed: 42},
		{Strategy: "hierarchical", Direction: "TB", Seed: 43},
	}
	for _, v := range variants {
		if k.LayoutKey("hash1", v) == baseline {
			t.Errorf("options %+v collided with baseline", v)
		}
	}

	if k.LayoutKey("hash2", base) == baseline {
		t.Error("different graph hashes collided")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "ws:abc:")

	opts := LayoutKeyOpts{Strategy: "hierarchical"}
	key := scoped.LayoutKey("h", opts)

	if !strings.HasPrefix(key, "ws:abc:") {
		t.Errorf("scoped key %q missing prefix", key)
	}
	if strings.TrimPrefix(key, "ws:abc:") != inner.LayoutKey("h", opts) {
		t.Error("scoped key does not wrap the inner key")
	}
}

func TestScopedKeyer_NilInnerDefaults(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	got := scoped.LayoutKey("h", LayoutKeyOpts{Strategy: "hierarchical"})
	if !strings.HasPrefix(got, "p:layout:") {
		t.Errorf("LayoutKey() = %q, want p:layout: prefix", got)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("abc"))
	h2 := Hash([]byte("abc"))
	if h1 != h2 {
		t.Error("Hash is not deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64 hex chars", len(h1))
	}
	if Hash([]byte("abd")) == h1 {
		t.Error("different inputs produced the same hash")
	}
}
