package cache

import "testing"

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	c := New(2)
	if _, ok := c.Get("absent"); ok {
		t.Fatalf("expected miss for absent key")
	}
}

func TestPutAndGet(t *testing.T) {
	t.Parallel()

	c := New(2)
	c.Put("a", "rendered a")

	if got, ok := c.Get("a"); !ok || got != "rendered a" {
		t.Fatalf("Get(a) = %q, %v", got, ok)
	}
}

func TestPutOverwrites(t *testing.T) {
	t.Parallel()

	c := New(2)
	c.Put("a", "v1")
	c.Put("a", "v2")

	if got, _ := c.Get("a"); got != "v2" {
		t.Fatalf("expected overwrite, got %q", got)
	}
	if c.Len() != 1 {
		t.Fatalf("overwrite must not grow the cache, len=%d", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := New(2)
	c.Put("a", "1")
	c.Put("b", "2")

	// Touch a so b is oldest.
	c.Get("a")
	c.Put("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("recently used entry was evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
}
