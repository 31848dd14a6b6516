package mailbox

import (
	"sync"
	"testing"
	"time"
)

func TestMailbox_PostTake(t *testing.T) {
	m := New[string]()

	if _, ok := m.Take(); ok {
		t.Error("empty mailbox should have nothing")
	}
	if m.Post("a") {
		t.Error("first post should not replace")
	}
	if !m.Post("b") {
		t.Error("second post should replace")
	}
	if !m.Pending() {
		t.Error("expected pending value")
	}

	v, ok := m.Take()
	if !ok || v != "b" {
		t.Errorf("Take = %q, %v; want latest value", v, ok)
	}
	if _, ok := m.Take(); ok {
		t.Error("Take should empty the slot")
	}
}

func TestMailbox_ReadySignal(t *testing.T) {
	m := New[int]()

	go m.Post(7)

	select {
	case <-m.Ready():
	case <-time.After(time.Second):
		t.Fatal("Ready was not signaled")
	}
	if v, ok := m.Take(); !ok || v != 7 {
		t.Errorf("Take = %d, %v", v, ok)
	}
}

func TestMailbox_ConcurrentPosts(t *testing.T) {
	m := New[int]()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			m.Post(v)
		}(i)
	}
	wg.Wait()

	v, ok := m.Take()
	if !ok || v < 1 || v > 50 {
		t.Errorf("Take = %d, %v", v, ok)
	}
}
