package id

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestNewRequestID(t *testing.T) {
	reqID := NewRequestID()

	if !strings.HasPrefix(reqID.String(), "req_") {
		t.Errorf("RequestID should start with 'req_', got: %s", reqID)
	}

	parts := strings.Split(reqID.String(), "_")
	if len(parts) != 2 || len(parts[1]) != 26 {
		t.Errorf("RequestID should have format 'req_<ulid>', got: %s", reqID)
	}

	if !IsValid(reqID.String()) {
		t.Errorf("RequestID should be valid: %s", reqID)
	}
}

func TestIsValid(t *testing.T) {
	invalidIDs := []string{
		"",
		"invalid",
		"req_",
		"req_zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestConcurrentGeneration(t *testing.T) {
	const goroutines = 20
	const idsPerGoroutine = 50

	var wg sync.WaitGroup
	idChan := make(chan RequestID, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- NewRequestID()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[RequestID]bool)
	for id := range idChan {
		if seen[id] {
			t.Errorf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
