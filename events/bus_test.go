package events

import (
	"testing"
)

func TestBus_EmitInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("topic", func(data interface{}) {
		order = append(order, "first")
	})
	bus.Subscribe("topic", func(data interface{}) {
		order = append(order, "second")
	})
	bus.Subscribe("topic", func(data interface{}) {
		order = append(order, "third")
	})

	bus.Emit("topic", nil)

	if len(order) != 3 {
		t.Fatalf("Expected 3 handler invocations, got %d", len(order))
	}
	if order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("Handlers ran out of subscription order: %v", order)
	}
}

func TestBus_EmitDeliversPayload(t *testing.T) {
	bus := NewBus()

	var got interface{}
	bus.Subscribe("topic", func(data interface{}) {
		got = data
	})

	bus.Emit("topic", 42)

	if got != 42 {
		t.Errorf("Expected payload 42, got %v", got)
	}
}

func TestBus_EmitUnknownTopic(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe("topic", func(data interface{}) {
		called = true
	})

	// No subscribers on "other"; nothing should run.
	bus.Emit("other", nil)

	if called {
		t.Error("Handler on a different topic should not be invoked")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	count := 0
	sub := bus.Subscribe("topic", func(data interface{}) {
		count++
	})

	bus.Emit("topic", nil)
	if count != 1 {
		t.Fatalf("Expected 1 invocation before unsubscribe, got %d", count)
	}

	if !bus.Unsubscribe(sub) {
		t.Fatal("Unsubscribe should return true for a live subscription")
	}

	bus.Emit("topic", nil)
	if count != 1 {
		t.Errorf("Expected no invocation after unsubscribe, got %d total", count)
	}

	if bus.Unsubscribe(sub) {
		t.Error("Unsubscribe should return false when the subscription is already removed")
	}
}

func TestBus_UnsubscribeOneOfMany(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("topic", func(data interface{}) {
		order = append(order, "a")
	})
	sub := bus.Subscribe("topic", func(data interface{}) {
		order = append(order, "b")
	})
	bus.Subscribe("topic", func(data interface{}) {
		order = append(order, "c")
	})

	bus.Unsubscribe(sub)
	bus.Emit("topic", nil)

	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("Expected remaining handlers a,c in order, got %v", order)
	}
}

func TestBus_SameHandlerTwice(t *testing.T) {
	bus := NewBus()

	count := 0
	fn := func(data interface{}) {
		count++
	}
	bus.Subscribe("topic", fn)
	bus.Subscribe("topic", fn)

	bus.Emit("topic", nil)

	if count != 2 {
		t.Errorf("Expected the handler to run once per subscription, got %d", count)
	}
}
