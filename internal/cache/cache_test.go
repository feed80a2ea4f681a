package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestGetPut(t *testing.T) {
	c := New[string, int](4)
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get on empty cache reported a hit")
	}
	c.Put("a", 1)
	c.Put("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v; want 2, true", v, ok)
	}
	if n := c.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for i := 0; i < 3; i++ {
		c.Put(i, i)
	}
	c.Get(0) // 1 is now the oldest
	c.Put(3, 3)

	if _, ok := c.Get(1); ok {
		t.Error("key 1 survived eviction")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d evicted", k)
		}
	}
	if n := c.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}
}

func TestLimitOne(t *testing.T) {
	c := New[string, string](0)
	c.Put("x", "1")
	c.Put("y", "2")
	if _, ok := c.Get("x"); ok {
		t.Error("x should have been evicted")
	}
	if v, _ := c.Get("y"); v != "2" {
		t.Errorf("Get(y) = %q", v)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](8)
	calls := 0
	create := func() int { calls++; return 7 }

	if v := c.GetOrCreate("k", create); v != 7 {
		t.Errorf("GetOrCreate = %d, want 7", v)
	}
	c.GetOrCreate("k", create)
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Len != 1 || s.Limit != 8 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestClear(t *testing.T) {
	c := New[int, int](4)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Clear()
	if n := c.Len(); n != 0 {
		t.Errorf("Len() after Clear = %d", n)
	}
	c.Put(3, 3)
	if v, ok := c.Get(3); !ok || v != 3 {
		t.Error("cache unusable after Clear")
	}
}

func TestConcurrentUse(t *testing.T) {
	c := New[string, int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				i := i
				k := strconv.Itoa((g + i) % 32)
				c.GetOrCreate(k, func() int { return i })
			}
		}()
	}
	wg.Wait()
	if n := c.Len(); n > 16 {
		t.Errorf("Len() = %d exceeds limit", n)
	}
}
