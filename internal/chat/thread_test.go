package chat

import (
	"fmt"
	"testing"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
}

func TestSendAppendsInOrder(t *testing.T) {
	th := NewThread(nil, WithIDs(counterIDs()), WithClock(func() string { return "Now" }))

	texts := []string{"hello", "  padded  ", "third"}
	for i, text := range texts {
		msg, ok := th.Send(text)
		if !ok {
			t.Fatalf("Send(%q) rejected", text)
		}
		if th.Len() != i+1 {
			t.Fatalf("expected %d messages, got %d", i+1, th.Len())
		}
		if msg.Status != StatusDelivered || !msg.IsSender {
			t.Errorf("unexpected outgoing message %+v", msg)
		}
		if msg.Sender != "You" || msg.Timestamp != "Now" {
			t.Errorf("unexpected sender/timestamp %q/%q", msg.Sender, msg.Timestamp)
		}
	}

	msgs := th.Messages()
	for i, text := range texts {
		if msgs[i].Text != text {
			t.Errorf("message %d: expected %q, got %q", i, text, msgs[i].Text)
		}
	}
	if msgs[0].ID == msgs[1].ID || msgs[1].ID == msgs[2].ID {
		t.Errorf("ids are not distinct: %q %q %q", msgs[0].ID, msgs[1].ID, msgs[2].ID)
	}
}

func TestSendIgnoresBlankText(t *testing.T) {
	th := NewThread([]Message{{ID: "a", Text: "hi", IsSender: false}})

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, ok := th.Send(text); ok {
			t.Errorf("Send(%q) should be ignored", text)
		}
	}
	if th.Len() != 1 {
		t.Errorf("expected history untouched, got %d messages", th.Len())
	}
}

func TestDefaultIDsAreDistinct(t *testing.T) {
	th := NewThread(nil)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		msg, _ := th.Send("x")
		if seen[msg.ID] {
			t.Fatalf("duplicate id %q", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestOpenPromotesOnlyNewestDelivered(t *testing.T) {
	th := NewThread([]Message{
		{ID: "1", IsSender: true, Status: StatusDelivered},
		{ID: "2", IsSender: false},
		{ID: "3", IsSender: true, Status: StatusRead},
	})

	promoted, ok := th.Open()
	if !ok {
		t.Fatal("expected a promotion")
	}
	if promoted.ID != "1" {
		t.Errorf("expected message 1 promoted, got %q", promoted.ID)
	}

	msgs := th.Messages()
	want := []Status{StatusRead, StatusNone, StatusRead}
	for i, st := range want {
		if msgs[i].Status != st {
			t.Errorf("message %d: expected %v, got %v", i, st, msgs[i].Status)
		}
	}
}

func TestOpenPicksLatestOfSeveral(t *testing.T) {
	th := NewThread([]Message{
		{ID: "1", IsSender: true, Status: StatusDelivered},
		{ID: "2", IsSender: true, Status: StatusDelivered},
	})

	th.Open()
	msgs := th.Messages()
	if msgs[0].Status != StatusDelivered || msgs[1].Status != StatusRead {
		t.Errorf("expected only the newest promoted, got %v %v", msgs[0].Status, msgs[1].Status)
	}
}

func TestOpenTwiceIsIdempotent(t *testing.T) {
	th := NewThread([]Message{{ID: "1", IsSender: true, Status: StatusDelivered}})

	if _, ok := th.Open(); !ok {
		t.Fatal("first Open should promote")
	}
	before := th.Messages()
	if _, ok := th.Open(); ok {
		t.Error("second Open should not promote")
	}
	after := th.Messages()
	if before[0] != after[0] {
		t.Errorf("second Open mutated history: %+v -> %+v", before[0], after[0])
	}
}

func TestOpenEmptyThread(t *testing.T) {
	if _, ok := NewThread(nil).Open(); ok {
		t.Error("empty thread should not promote")
	}
}

func TestReceivedMessagesCarryNoStatus(t *testing.T) {
	th := NewThread([]Message{{ID: "1", IsSender: false, Status: StatusDelivered}})
	if _, ok := th.Open(); ok {
		t.Error("received message must not be promoted")
	}
	if th.Messages()[0].Status != StatusNone {
		t.Error("received message status should be cleared")
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, st := range []Status{StatusNone, StatusDelivered, StatusRead} {
		if got := ParseStatus(st.String()); got != st {
			t.Errorf("ParseStatus(%q) = %v, want %v", st.String(), got, st)
		}
	}
}
