package tui

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewSessionIDIsUUID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == b {
		t.Error("session IDs should be unique")
	}
	if _, err := uuid.Parse(string(a)); err != nil {
		t.Errorf("session ID %q is not a uuid: %v", a, err)
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	r.Register(SessionInfo{ID: "b", User: "bob", StartedAt: base.Add(time.Minute)})
	r.Register(SessionInfo{ID: "a", User: "ann", StartedAt: base})

	if r.Count() != 2 {
		t.Fatalf("Count = %d, want 2", r.Count())
	}
	if s, ok := r.Get("a"); !ok || s.User != "ann" {
		t.Errorf("Get(a) = %+v, %v", s, ok)
	}

	list := r.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("List order = %v, want oldest first", list)
	}

	if !r.Unregister("a") {
		t.Error("Unregister(a) = false, want true")
	}
	if r.Unregister("a") {
		t.Error("second Unregister(a) = true, want false")
	}
	if _, ok := r.Get("a"); ok {
		t.Error("a should be gone")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}
}

func TestSessionRegistryConcurrent(t *testing.T) {
	r := NewSessionRegistry()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := SessionID(fmt.Sprintf("s%d", i))
			r.Register(SessionInfo{ID: id})
			r.Count()
			r.List()
			r.Unregister(id)
		}(i)
	}
	wg.Wait()

	if r.Count() != 0 {
		t.Errorf("Count = %d after all sessions left", r.Count())
	}
}
