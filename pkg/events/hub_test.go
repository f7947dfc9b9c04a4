package events

import (
	"slices"
	"testing"
)

func TestHubDeliversInSubscriptionOrder(t *testing.T) {
	h := NewHub()
	var got []string

	h.Subscribe(func(c Click) { got = append(got, "first:"+c.Node) })
	h.Subscribe(func(c Click) { got = append(got, "second:"+c.Node) })

	h.Emit(Click{Session: "s1", Node: "a"})

	want := []string{"first:a", "second:a"}
	if !slices.Equal(got, want) {
		t.Errorf("deliveries = %v, want %v", got, want)
	}
}

func TestHubUnsubscribe(t *testing.T) {
	h := NewHub()
	var calls int

	unsub := h.Subscribe(func(Click) { calls++ })
	h.Emit(Click{Node: "a"})
	unsub()
	h.Emit(Click{Node: "b"})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestHubZeroValue(t *testing.T) {
	var h Hub
	h.Emit(Click{Node: "a"}) // no handlers, no panic

	fired := false
	h.Subscribe(func(Click) { fired = true })
	h.Emit(Click{Node: "b"})
	if !fired {
		t.Error("handler on zero-value hub not called")
	}
}
