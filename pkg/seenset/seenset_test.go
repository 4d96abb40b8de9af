package seenset

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestMarkSeenAndSeen(t *testing.T) {
	s := New()

	if s.Seen("like:p1:u1:10") {
		t.Fatal("fresh set reports a key as seen")
	}

	s.MarkSeen("like:p1:u1:10")
	if !s.Seen("like:p1:u1:10") {
		t.Fatal("key not seen after MarkSeen")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}

	// Re-marking is idempotent.
	s.MarkSeen("like:p1:u1:10")
	if s.Len() != 1 {
		t.Errorf("Len after re-mark = %d, want 1", s.Len())
	}

	// Empty keys are ignored.
	s.MarkSeen("")
	if s.Len() != 1 {
		t.Errorf("Len after empty key = %d, want 1", s.Len())
	}
}

func TestEvictsOldestAtCapacity(t *testing.T) {
	s := NewWithCapacity(3)
	for i := 0; i < 3; i++ {
		s.MarkSeen(fmt.Sprintf("key%d", i))
	}

	s.MarkSeen("key3")

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want capacity 3", s.Len())
	}
	if s.Seen("key0") {
		t.Errorf("oldest key survived eviction")
	}
	for i := 1; i <= 3; i++ {
		if !s.Seen(fmt.Sprintf("key%d", i)) {
			t.Errorf("key%d evicted, want newest three kept", i)
		}
	}
}

func TestDefaultCapacity(t *testing.T) {
	s := New()
	for i := 0; i < DefaultCapacity+10; i++ {
		s.MarkSeen(fmt.Sprintf("key%d", i))
	}
	if s.Len() != DefaultCapacity {
		t.Fatalf("Len = %d, want %d", s.Len(), DefaultCapacity)
	}
	if s.Seen("key9") {
		t.Errorf("key9 should have been evicted")
	}
	if !s.Seen("key10") {
		t.Errorf("key10 should still be present")
	}
}

func TestUnreadCount(t *testing.T) {
	s := New()
	s.MarkSeen("a")
	s.MarkSeen("b")

	feed := []string{"a", "b", "c", "d"}
	if got := s.UnreadCount(feed); got != 2 {
		t.Fatalf("UnreadCount = %d, want 2", got)
	}

	// Responding to a friend request marks its key; the badge shrinks.
	s.MarkSeen("c")
	if got := s.UnreadCount(feed); got != 1 {
		t.Fatalf("UnreadCount after respond = %d, want 1", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := NewWithCapacity(4)
	for _, key := range []string{"one", "two", "three"} {
		s.MarkSeen(key)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	restored := NewWithCapacity(4)
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if restored.Len() != 3 {
		t.Fatalf("restored Len = %d, want 3", restored.Len())
	}
	// Order survives: inserting one more evicts "one", the oldest.
	restored.MarkSeen("four")
	restored.MarkSeen("five")
	if restored.Seen("one") {
		t.Errorf("oldest restored key not evicted first")
	}
	if !restored.Seen("two") {
		t.Errorf("second-oldest evicted out of order")
	}
}

func TestUnmarshalClearsStorage(t *testing.T) {
	// A cleared browser store deserializes to empty: everything unread.
	s := New()
	s.MarkSeen("stale")
	if err := json.Unmarshal([]byte(`[]`), s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0 after reset", s.Len())
	}
	if got := s.UnreadCount([]string{"stale"}); got != 1 {
		t.Errorf("UnreadCount = %d, want 1", got)
	}
}
