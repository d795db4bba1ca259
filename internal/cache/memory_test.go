package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(Config{Prefix: "authlete"})

	if _, err := c.Get(ctx, "nope"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatal(err)
	}
	v, err := c.Get(ctx, "k")
	if err != nil || v != "v" {
		t.Fatalf("got %q, %v", v, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemory_Exists(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(Config{})

	ok, err := c.Exists(ctx, "k")
	if err != nil || ok {
		t.Fatalf("exists before set: %v, %v", ok, err)
	}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatal(err)
	}
	ok, err = c.Exists(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("exists after set: %v, %v", ok, err)
	}

	// Exists no cuenta como hit ni como miss
	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Hits != 0 || st.Misses != 0 {
		t.Fatalf("exists touched counters: %+v", st)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(Config{})

	if err := c.Set(ctx, "short", "v", 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); !IsNotFound(err) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemory_Stats(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(Config{})

	_ = c.Set(ctx, "a", "1", 0)
	_, _ = c.Get(ctx, "a")
	_, _ = c.Get(ctx, "missing")

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Driver != "memory" || st.Keys != 1 || st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestNew_DriverSelection(t *testing.T) {
	c, err := New(Config{Driver: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*memoryClient); !ok {
		t.Fatalf("expected memory client, got %T", c)
	}
}
