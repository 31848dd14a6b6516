package event

import (
	"errors"
	"testing"
)

func TestBus_EmitDispatchesInPriorityOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	record := func(name string) Handler {
		return func(ev *Event) bool {
			order = append(order, name)
			return false
		}
	}
	bus.Subscribe("low", 0, record("low"))
	bus.Subscribe("high", 10, record("high"))
	bus.Subscribe("mid-a", 5, record("mid-a"))
	bus.Subscribe("mid-b", 5, record("mid-b"))

	ev, handled := bus.Emit(Signal, SignalPayload{Name: "x"})
	if ev.Nil() {
		t.Fatal("Emit returned nil handle")
	}
	if handled {
		t.Error("no handler consumed the event")
	}

	want := []string{"high", "mid-a", "mid-b", "low"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestBus_ConsumeStopsPropagation(t *testing.T) {
	bus := NewBus()
	lowCalled := false

	bus.Subscribe("a", 10, func(ev *Event) bool { return true }, Signal)
	bus.Subscribe("b", 0, func(ev *Event) bool {
		lowCalled = true
		return false
	}, Signal)

	ev, handled := bus.Emit(Signal, SignalPayload{Name: "X"})
	if !handled {
		t.Error("Emit should report handled")
	}
	if !bus.Get(ev).Handled {
		t.Error("event should be marked handled")
	}
	if lowCalled {
		t.Error("lower priority handler must not run after consumption")
	}
}

func TestBus_HandledFlagStopsPropagation(t *testing.T) {
	bus := NewBus()
	calls := 0

	bus.Subscribe("setter", 1, func(ev *Event) bool {
		calls++
		ev.Handled = true
		return false
	})
	bus.Subscribe("after", 0, func(ev *Event) bool {
		calls++
		return false
	})

	if _, handled := bus.Emit(WindowResize, Resize{Width: 1, Height: 1}); !handled {
		t.Error("setting Handled should report handled")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestBus_TypeFilter(t *testing.T) {
	bus := NewBus()
	var got []Type
	bus.Subscribe("keys", 0, func(ev *Event) bool {
		got = append(got, ev.Type)
		return false
	}, KeyDown, TextInput)

	bus.Emit(MouseMove, Mouse{X: 1, Y: 2})
	bus.Emit(KeyDown, Key{Rune: 'a'})
	bus.Emit(TextInput, Text{Text: "a"})

	if len(got) != 2 || got[0] != KeyDown || got[1] != TextInput {
		t.Errorf("filtered types = %v", got)
	}
}

func TestBus_PayloadIntactAcrossHandlers(t *testing.T) {
	bus := NewBus()
	want := Tab{ComponentID: 3, OldIndex: 0, NewIndex: 1, ContentID: "tab-content-1"}
	seen := 0

	for i := 0; i < 3; i++ {
		bus.Subscribe("observer", 0, func(ev *Event) bool {
			seen++
			if p, ok := ev.Payload.(Tab); !ok || p != want {
				t.Errorf("payload = %+v, want %+v", ev.Payload, want)
			}
			return false
		})
	}
	bus.Emit(TabChanged, want)
	if seen != 3 {
		t.Errorf("expected 3 observers, got %d", seen)
	}
}

func TestBus_RejectsMismatchedPayload(t *testing.T) {
	bus := NewBus()
	if ev := bus.New(KeyDown, Mouse{}); !ev.Nil() {
		t.Error("mismatched payload should be dropped")
	}
	if ev := bus.New(TypeNone, Mouse{}); !ev.Nil() {
		t.Error("TypeNone should be dropped")
	}
	if ev := bus.New(Custom, nil); !ev.Nil() {
		t.Error("nil payload should be dropped")
	}
	if s := bus.Stats(); s.Rejected != 3 {
		t.Errorf("Rejected = %d, want 3", s.Rejected)
	}
}

func TestBus_ArenaExhaustion(t *testing.T) {
	bus := NewBus(WithArenaBytes(eventSize * 2))

	if bus.New(Signal, SignalPayload{Name: "1"}).Nil() {
		t.Fatal("first allocation failed")
	}
	if bus.New(Signal, SignalPayload{Name: "2"}).Nil() {
		t.Fatal("second allocation failed")
	}

	ev, handled := bus.Emit(Signal, SignalPayload{Name: "3"})
	if !ev.Nil() || handled {
		t.Error("emission past capacity should be dropped")
	}
	if s := bus.Stats(); s.Dropped != 1 || s.ArenaUsed != 2 {
		t.Errorf("stats = %+v", s)
	}

	bus.Reset()
	if bus.New(Signal, SignalPayload{Name: "4"}).Nil() {
		t.Error("allocation should succeed after Reset")
	}
}

func TestBus_LiveAcrossReset(t *testing.T) {
	bus := NewBus()
	ev := bus.New(Signal, SignalPayload{Name: "frame"})
	if !bus.Live(ev) {
		t.Fatal("fresh event should be live")
	}

	bus.Reset()
	if bus.Live(ev) {
		t.Error("event should not be live after Reset")
	}
	if bus.Live(Ref{}) {
		t.Error("a dropped handle is never live")
	}
	if bus.Live(NewBus().New(Signal, SignalPayload{Name: "other"})) {
		t.Error("another bus's event is not live here")
	}
}

func TestBus_StaleHandleAfterSlotReuse(t *testing.T) {
	bus := NewBus()
	var delivered []string
	bus.Subscribe("rec", 0, func(ev *Event) bool {
		name, _ := ev.SignalName()
		delivered = append(delivered, name)
		return false
	})

	stale, _ := bus.Emit(Signal, SignalPayload{Name: "old"})
	bus.Reset()
	fresh, _ := bus.Emit(Signal, SignalPayload{Name: "new"})

	if bus.Live(stale) {
		t.Error("a handle from the previous frame must not be live")
	}
	if bus.Get(stale) != nil {
		t.Error("Get should not resolve a stale handle")
	}
	if !bus.Live(fresh) {
		t.Error("the current frame's handle should be live")
	}

	delivered = nil
	if bus.Dispatch(stale) {
		t.Error("a stale dispatch cannot be handled")
	}
	if len(delivered) != 0 {
		t.Errorf("stale dispatch delivered %v", delivered)
	}
	if bus.Stats().Stale != 1 {
		t.Errorf("Stale = %d, want 1", bus.Stats().Stale)
	}

	bus.Dispatch(fresh)
	if len(delivered) != 1 || delivered[0] != "new" {
		t.Errorf("delivered = %v", delivered)
	}
}

func TestBus_ReentrantDispatch(t *testing.T) {
	bus := NewBus()
	inner := false

	bus.Subscribe("outer", 0, func(ev *Event) bool {
		if name, _ := ev.SignalName(); name == "outer" {
			bus.Emit(Signal, SignalPayload{Name: "inner"})
		} else {
			inner = true
		}
		return false
	}, Signal)

	bus.Emit(Signal, SignalPayload{Name: "outer"})
	if !inner {
		t.Error("nested emission should reach the subscriber")
	}
}

func TestBus_SubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()
	lateCalls := 0

	bus.Subscribe("adder", 0, func(ev *Event) bool {
		bus.Subscribe("late", 0, func(*Event) bool {
			lateCalls++
			return false
		})
		return false
	})

	bus.Emit(Signal, SignalPayload{Name: "a"})
	if lateCalls != 0 {
		t.Error("subscriber added mid-dispatch must not see the current event")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	called := false
	id, err := bus.Subscribe("x", 0, func(*Event) bool {
		called = true
		return false
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Unsubscribe(id); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	if err := bus.Unsubscribe(id); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}

	bus.Emit(Signal, SignalPayload{Name: "a"})
	if called {
		t.Error("unsubscribed handler was called")
	}
}

func TestBus_SubscribeErrors(t *testing.T) {
	bus := NewBus()
	if _, err := bus.Subscribe("nil", 0, nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if _, err := bus.Subscribe("bad", 0, func(*Event) bool { return false }, Type(200)); !errors.Is(err, ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}

func TestBus_PanicRecovered(t *testing.T) {
	var recovered *PanicError
	bus := NewBus(WithPanicHandler(func(err *PanicError) { recovered = err }))
	reached := false

	bus.Subscribe("boom", 10, func(*Event) bool { panic("boom") })
	bus.Subscribe("next", 0, func(*Event) bool {
		reached = true
		return false
	})

	bus.Emit(Signal, SignalPayload{Name: "a"})
	if recovered == nil || recovered.Subscriber != "boom" {
		t.Errorf("panic handler not called: %+v", recovered)
	}
	if !reached {
		t.Error("a panicking handler counts as not handled")
	}
	if bus.Stats().Panics != 1 {
		t.Error("expected one panic counted")
	}
}

func TestBus_DispatchNil(t *testing.T) {
	bus := NewBus()
	if bus.Dispatch(Ref{}) {
		t.Error("dispatching a dropped handle should return false")
	}
	if bus.Stats().Stale != 0 {
		t.Error("a dropped handle is not counted as stale")
	}
}
