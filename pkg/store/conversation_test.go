package store

import (
	"fmt"
	"testing"
	"time"
)

func TestConversationAppendKeepsOrder(t *testing.T) {
	conv := NewConversation("s1")
	now := time.Now()

	conv.Append("first question", "first answer", now)
	conv.Append("second question", "second answer", now.Add(time.Second))

	if conv.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", conv.Len())
	}
	if conv.Exchanges[0].User != "first question" {
		t.Errorf("Exchanges[0].User = %q, want oldest first", conv.Exchanges[0].User)
	}
	if conv.Exchanges[1].Assistant != "second answer" {
		t.Errorf("Exchanges[1].Assistant = %q, want %q", conv.Exchanges[1].Assistant, "second answer")
	}
}

func TestConversationTruncation(t *testing.T) {
	tests := []struct {
		name      string
		turns     int
		wantLen   int
		wantFirst string // user side of the oldest surviving exchange
	}{
		{name: "below cap", turns: 3, wantLen: 3, wantFirst: "q1"},
		{name: "at cap", turns: 10, wantLen: 10, wantFirst: "q1"},
		{name: "one over cap drops turn 1", turns: 11, wantLen: 10, wantFirst: "q2"},
		{name: "well over cap", turns: 25, wantLen: 10, wantFirst: "q16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConversation("s1")
			now := time.Now()
			for i := 1; i <= tt.turns; i++ {
				conv.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i), now.Add(time.Duration(i)*time.Second))
			}

			if conv.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", conv.Len(), tt.wantLen)
			}
			if conv.Exchanges[0].User != tt.wantFirst {
				t.Errorf("oldest exchange = %q, want %q", conv.Exchanges[0].User, tt.wantFirst)
			}
			last := conv.Exchanges[conv.Len()-1]
			wantLast := fmt.Sprintf("q%d", tt.turns)
			if last.User != wantLast {
				t.Errorf("newest exchange = %q, want %q", last.User, wantLast)
			}
		})
	}
}
