package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := "report:abc"
	want := []byte(`{"lower":2,"upper":3}`)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get before Set: ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, key, want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if string(got) != string(want) {
		t.Errorf("got %q, want %q", got, want)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("Get after Delete: want miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry still served")
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	rk1 := k.ReportKey("hash1", ReportKeyOpts{Registry: "a,b,c"})
	rk2 := k.ReportKey("hash1", ReportKeyOpts{Registry: "a,b"})
	if rk1 == rk2 {
		t.Error("different registry fingerprints should produce different keys")
	}

	rk3 := k.ReportKey("hash1", ReportKeyOpts{Registry: "a,b,c", EntryTimeout: time.Second})
	if rk1 == rk3 {
		t.Error("different entry timeouts should produce different keys")
	}

	ak1 := k.ArtifactKey("rhash", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("rhash", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("different formats should produce different keys")
	}

	if !strings.HasPrefix(rk1, "report:") {
		t.Errorf("report key %q missing prefix", rk1)
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("artifact key %q missing prefix", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "corpus:order9:")

	key := scoped.ReportKey("hash1", ReportKeyOpts{})
	if !strings.HasPrefix(key, "corpus:order9:") {
		t.Errorf("scoped key %q missing prefix", key)
	}
	if strings.TrimPrefix(key, "corpus:order9:") != inner.ReportKey("hash1", ReportKeyOpts{}) {
		t.Error("scoped key must wrap the inner key unchanged")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("bad key")
	})
	if err == nil {
		t.Fatal("want error")
	}
	if calls != 1 {
		t.Errorf("non-retryable error retried %d times", calls)
	}
}

func TestRetryWithBackoffHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(errors.New("connection refused"))
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times before the deadline, want 1", calls)
	}
}

func TestWithTTLOverridesSet(t *testing.T) {
	inner, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := WithTTL(inner, 10*time.Millisecond)

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("want hit before expiry")
	}
	time.Sleep(20 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("configured TTL should override the caller's")
	}
}

func TestWithTTLZeroIsIdentity(t *testing.T) {
	inner := NewNullCache()
	if c := WithTTL(inner, 0); c != inner {
		t.Error("zero ttl should return the cache unchanged")
	}
}

func TestFileCacheCorruptEnvelopeIsMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc := c.(*FileCache)

	ctx := context.Background()
	if err := fc.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fc.path("k"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := fc.Get(ctx, "k"); err != nil || hit {
		t.Errorf("corrupt envelope: hit=%v err=%v, want miss", hit, err)
	}
	if _, statErr := os.Stat(fc.path("k")); !os.IsNotExist(statErr) {
		t.Error("corrupt envelope should be removed on read")
	}
}
