package cache

import "testing"

func TestCacheRoundTrip(t *testing.T) {
	c := New()

	if _, ok := c.Get(KeyGameList); ok {
		t.Error("empty cache returned a value")
	}

	c.Set(KeyGameList, []string{"Trivia1"})
	val, ok := c.Get(KeyGameList)
	if !ok {
		t.Fatal("set value not found")
	}
	if games := val.([]string); len(games) != 1 || games[0] != "Trivia1" {
		t.Errorf("got %v", games)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New()
	c.Set(KeyGameList, 1)
	c.Set(KeyPlayerList, 2)

	c.Invalidate(KeyGameList)
	if _, ok := c.Get(KeyGameList); ok {
		t.Error("invalidated key still present")
	}
	if _, ok := c.Get(KeyPlayerList); !ok {
		t.Error("unrelated key was dropped")
	}

	// Invalidating a missing key is a no-op.
	c.Invalidate("nope")
}
