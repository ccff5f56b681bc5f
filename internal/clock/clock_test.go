package clock

import (
	"testing"
	"time"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(200*time.Millisecond, func() { got = append(got, "b") })

	m.Advance(150 * time.Millisecond)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("after 150ms fired %v, want [a]", got)
	}
	m.Advance(time.Second)
	if len(got) != 3 || got[1] != "b" || got[2] != "c" {
		t.Fatalf("fired %v, want [a b c]", got)
	}
	if m.Now() != 1150*time.Millisecond {
		t.Errorf("Now = %v, want 1.15s", m.Now())
	}
}

func TestManualSameDeadlineKeepsScheduleOrder(t *testing.T) {
	m := NewManual()
	var got []int
	for i := range 4 {
		m.AfterFunc(time.Second, func() { got = append(got, i) })
	}
	m.Advance(time.Second)
	for i, v := range got {
		if v != i {
			t.Fatalf("fired %v, want ascending", got)
		}
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	fired := false
	tm := m.AfterFunc(time.Second, func() { fired = true })
	if !tm.Stop() {
		t.Fatal("first Stop should report true")
	}
	if tm.Stop() {
		t.Fatal("second Stop should report false")
	}
	m.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", m.Pending())
	}
}

func TestManualStopAfterFire(t *testing.T) {
	m := NewManual()
	tm := m.AfterFunc(0, func() {})
	m.Advance(0)
	if tm.Stop() {
		t.Fatal("Stop after fire should report false")
	}
}

func TestManualChainedTimersInsideWindow(t *testing.T) {
	m := NewManual()
	count := 0
	m.AfterFunc(100*time.Millisecond, func() {
		count++
		m.AfterFunc(100*time.Millisecond, func() { count++ })
	})
	m.Advance(250 * time.Millisecond)
	if count != 2 {
		t.Fatalf("count = %d, want 2 (chained timer due at 200ms)", count)
	}
}

func TestManualRunAll(t *testing.T) {
	m := NewManual()
	count := 0
	m.AfterFunc(time.Hour, func() {
		count++
		m.AfterFunc(time.Hour, func() { count++ })
	})
	if fired := m.RunAll(10); fired != 2 {
		t.Errorf("RunAll fired %d, want 2", fired)
	}
	if count != 2 || m.Pending() != 0 {
		t.Errorf("count=%d pending=%d", count, m.Pending())
	}
	if m.Now() != 2*time.Hour {
		t.Errorf("Now = %v, want 2h", m.Now())
	}
}

func TestManualRunAllBounded(t *testing.T) {
	m := NewManual()
	var loop func()
	loop = func() { m.AfterFunc(time.Millisecond, loop) }
	m.AfterFunc(time.Millisecond, loop)
	if fired := m.RunAll(5); fired != 5 {
		t.Errorf("RunAll fired %d, want 5", fired)
	}
}
