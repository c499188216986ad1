package table

import (
	"errors"
	"sync"
	"testing"
)

func TestTable_Basic(t *testing.T) {
	tb := New[string]()

	handle, err := tb.Create("test value")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if handle == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := tb.Get(handle)
	if !ok || val != "test value" {
		t.Fatalf("Get = %q, %v", val, ok)
	}

	val, ok = tb.Drop(handle)
	if !ok || val != "test value" {
		t.Fatalf("Drop = %q, %v", val, ok)
	}

	if _, ok = tb.Get(handle); ok {
		t.Fatal("Expected Get to fail after Drop")
	}
	if _, ok = tb.Drop(handle); ok {
		t.Fatal("Expected double Drop to fail")
	}
}

func TestTable_InvalidHandles(t *testing.T) {
	tb := New[int]()
	if _, ok := tb.Get(0); ok {
		t.Error("handle 0 must be invalid")
	}
	if _, ok := tb.Get(42); ok {
		t.Error("unknown handle must be invalid")
	}
	if _, ok := tb.Drop(0); ok {
		t.Error("Drop(0) must fail")
	}
}

func TestTable_Reuse(t *testing.T) {
	tb := New[int]()
	h1, _ := tb.Create(1)
	h2, _ := tb.Create(2)
	h3, _ := tb.Create(3)

	tb.Drop(h2)
	if tb.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tb.Len())
	}

	h4, _ := tb.Create(4)
	if h4 != h2 {
		t.Errorf("expected handle %d to be reused, got %d", h2, h4)
	}

	var seen []Handle
	tb.Each(func(h Handle, v int) bool {
		seen = append(seen, h)
		return true
	})
	if len(seen) != 3 || seen[0] != h1 || seen[1] != h4 || seen[2] != h3 {
		t.Errorf("Each visited %v", seen)
	}

	var first []Handle
	tb.Each(func(h Handle, v int) bool {
		first = append(first, h)
		return false
	})
	if len(first) != 1 {
		t.Errorf("Each should stop early, visited %v", first)
	}
}

func TestTable_Close(t *testing.T) {
	tb := New[int]()
	h, _ := tb.Create(1)

	if err := tb.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, ok := tb.Get(h); ok {
		t.Error("Get after Close must fail")
	}
	if _, err := tb.Create(2); !errors.Is(err, ErrClosed) {
		t.Errorf("Create after Close = %v, want ErrClosed", err)
	}
	if err := tb.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestTable_Concurrent(t *testing.T) {
	tb := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			h, err := tb.Create(v)
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			if got, ok := tb.Get(h); !ok || got != v {
				t.Errorf("Get(%d) = %d, %v", h, got, ok)
			}
		}(i)
	}
	wg.Wait()

	if tb.Len() != 50 {
		t.Errorf("Len = %d, want 50", tb.Len())
	}
}
