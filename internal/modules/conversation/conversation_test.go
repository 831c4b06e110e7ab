// README: Conversation log tests (window trimming, ordering, immutability).
package conversation

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryStoreTrimsToWindow(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := store.Append(ctx, "s1", Turn{
			UserText:  fmt.Sprintf("message %d", i),
			Timestamp: time.Date(2026, 9, 1, 10, i, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	turns, err := store.Recent(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("window = %d turns, want 3", len(turns))
	}
	// Oldest retained turn is message 2; order is chronological.
	if turns[0].UserText != "message 2" || turns[2].UserText != "message 4" {
		t.Errorf("unexpected window contents: %v", turns)
	}
}

func TestMemoryStoreRecentReturnsCopy(t *testing.T) {
	store := NewMemoryStore(5)
	ctx := context.Background()
	_ = store.Append(ctx, "s1", Turn{UserText: "original"})

	turns, _ := store.Recent(ctx, "s1", 1)
	turns[0].UserText = "mutated"

	again, _ := store.Recent(ctx, "s1", 1)
	if again[0].UserText != "original" {
		t.Error("stored turn was mutated through the returned slice")
	}
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore(5)
	ctx := context.Background()
	_ = store.Append(ctx, "a", Turn{UserText: "for a"})
	_ = store.Append(ctx, "b", Turn{UserText: "for b"})

	turns, _ := store.Recent(ctx, "a", 0)
	if len(turns) != 1 || turns[0].UserText != "for a" {
		t.Errorf("session a sees %v", turns)
	}
}

func TestMemoryStoreRejectsEmptySession(t *testing.T) {
	store := NewMemoryStore(5)
	if err := store.Append(context.Background(), "", Turn{}); err != ErrBadRequest {
		t.Errorf("append with empty session = %v, want ErrBadRequest", err)
	}
	if _, err := store.Recent(context.Background(), "", 1); err != ErrBadRequest {
		t.Errorf("recent with empty session = %v, want ErrBadRequest", err)
	}
}
