package tray

import (
	"sync"
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := newEventQueue()
	in := []Event{Exit, LeftClick, ScanNow, ScanNow, ToggleStartup}
	for _, ev := range in {
		if !q.Push(ev) {
			t.Fatal("Push() = false on open queue")
		}
	}
	if q.Len() != len(in) {
		t.Fatalf("Len() = %d, want %d", q.Len(), len(in))
	}
	for i, want := range in {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() #%d = %v, %v; want %v", i, got, ok, want)
		}
	}
}

func TestQueueIsUnbounded(t *testing.T) {
	q := newEventQueue()
	const n = 10000
	for i := 0; i < n; i++ {
		q.Push(Event(i % 9))
	}
	for i := 0; i < n; i++ {
		if got, _ := q.Pop(); got != Event(i%9) {
			t.Fatalf("Pop() #%d = %v", i, got)
		}
	}
}

func TestQueueCloseDrainsThenStops(t *testing.T) {
	q := newEventQueue()
	q.Push(ScanNow)
	q.Close()

	if q.Push(CleanNow) {
		t.Error("Push() after Close() = true")
	}
	if ev, ok := q.Pop(); !ok || ev != ScanNow {
		t.Fatalf("Pop() = %v, %v; want queued event", ev, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop() on closed empty queue = true")
	}
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := newEventQueue()
	got := make(chan Event, 1)
	go func() {
		ev, _ := q.Pop()
		got <- ev
	}()

	select {
	case ev := <-got:
		t.Fatalf("Pop() returned %v on empty queue", ev)
	case <-time.After(50 * time.Millisecond):
	}

	q.Push(OpenEditor)
	select {
	case ev := <-got:
		if ev != OpenEditor {
			t.Fatalf("Pop() = %v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Pop() never woke up")
	}
}

func TestQueueConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	q := newEventQueue()
	const per = 500
	var wg sync.WaitGroup
	for _, ev := range []Event{ScanNow, CleanNow} {
		wg.Add(1)
		go func(ev Event) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				q.Push(ev)
			}
		}(ev)
	}
	wg.Wait()
	q.Close()

	counts := map[Event]int{}
	for {
		ev, ok := q.Pop()
		if !ok {
			break
		}
		counts[ev]++
	}
	if counts[ScanNow] != per || counts[CleanNow] != per {
		t.Errorf("counts = %v", counts)
	}
}

func TestEventString(t *testing.T) {
	if ToggleStartup.String() != "toggle-startup" || Event(99).String() != "unknown" {
		t.Error("unexpected Event.String()")
	}
}
