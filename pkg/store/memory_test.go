package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close(ctx)

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	now := time.Now().UTC()
	first := &Diagram{ID: "d1", Name: "first", Source: "flowchart TD\na[A]\n", CreatedAt: now}
	second := &Diagram{ID: "d2", Name: "second", Source: "flowchart LR\nb[B]\n", CreatedAt: now.Add(time.Second)}

	if err := st.Put(ctx, second); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := st.Put(ctx, first); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := st.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "first" {
		t.Errorf("got %+v", got)
	}

	// Mutating the returned value must not affect the store.
	got.Name = "changed"
	again, _ := st.Get(ctx, "d1")
	if again.Name != "first" {
		t.Error("store returned a shared reference")
	}

	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "d1" || list[1].ID != "d2" {
		t.Errorf("List order wrong: %v, %v", list[0].ID, list[1].ID)
	}

	if err := st.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := st.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}
