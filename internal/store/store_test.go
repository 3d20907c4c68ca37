package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/saravenpi/barter/internal/chat"
	"github.com/saravenpi/barter/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "barter.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.LoadProfile(ctx); err != nil || ok {
		t.Fatalf("expected no profile yet, got ok=%v err=%v", ok, err)
	}

	p := profile.Profile{
		FullName:        "Jane Doe",
		Skill:           "Graphic Designer",
		SkillLearn:      "Go",
		Gender:          "Female",
		YearsExperience: "5",
		LocationAddress: "Lagos, Lagos, Nigeria",
		IntroVideo:      "file:///intro.mp4",
		Thumbnails:      []string{"file:///a.jpg", "file:///b.jpg"},
	}
	p.Proofs[2] = "file:///proof.jpg"

	if err := s.PersistProfile(ctx, p); err != nil {
		t.Fatalf("PersistProfile: %v", err)
	}

	got, ok, err := s.LoadProfile(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadProfile: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, p)
	}

	p.Thumbnails = p.Thumbnails[:1]
	p.Proofs = [profile.ProofSlots]string{7: "file:///last.jpg"}
	if err := s.PersistProfile(ctx, p); err != nil {
		t.Fatalf("PersistProfile again: %v", err)
	}
	got, _, _ = s.LoadProfile(ctx)
	if !reflect.DeepEqual(got, p) {
		t.Errorf("overwrite mismatch:\n got %+v\nwant %+v", got, p)
	}
}

func TestMessagesAndStatus(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	history := []chat.Message{
		{ID: "1", Text: "hey", Sender: "Jane", IsSender: false, Timestamp: "9:00 AM"},
		{ID: "2", Text: "hi!", Sender: "You", IsSender: true, Timestamp: "9:01 AM", Status: chat.StatusDelivered},
	}
	for _, m := range history {
		if err := s.AppendMessage(ctx, "3", m); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}
	if err := s.AppendMessage(ctx, "4", chat.Message{ID: "x", Text: "other", Sender: "You", IsSender: true}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Messages(ctx, "3")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if !reflect.DeepEqual(got, history) {
		t.Errorf("unexpected history:\n got %+v\nwant %+v", got, history)
	}

	if err := s.UpdateStatus(ctx, "2", chat.StatusRead); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, _ = s.Messages(ctx, "3")
	if got[1].Status != chat.StatusRead {
		t.Errorf("expected read, got %v", got[1].Status)
	}

	if err := s.UpdateStatus(ctx, "missing", chat.StatusRead); err == nil {
		t.Error("expected error for unknown message")
	}
}

func TestConversations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.AppendMessage(ctx, "1", chat.Message{ID: "a", Text: "first", IsSender: true, Timestamp: "1"})
	_ = s.AppendMessage(ctx, "2", chat.Message{ID: "b", Text: "from two", IsSender: false, Timestamp: "2"})
	_ = s.AppendMessage(ctx, "1", chat.Message{ID: "c", Text: "latest", IsSender: false, Timestamp: "3"})

	convs, err := s.Conversations(ctx)
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convs))
	}
	if convs[0].PeerID != "1" || convs[0].LastMessage != "latest" || convs[0].MessageCount != 2 || convs[0].Received != 1 {
		t.Errorf("unexpected first conversation %+v", convs[0])
	}
	if convs[1].PeerID != "2" || convs[1].Received != 1 {
		t.Errorf("unexpected second conversation %+v", convs[1])
	}
}

func TestRatings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if stars, err := s.Rating(ctx, "3"); err != nil || stars != 0 {
		t.Fatalf("expected unrated, got %d %v", stars, err)
	}
	if err := s.SaveRating(ctx, "3", 4); err != nil {
		t.Fatalf("SaveRating: %v", err)
	}
	if err := s.SaveRating(ctx, "3", 2); err != nil {
		t.Fatalf("SaveRating: %v", err)
	}
	if stars, _ := s.Rating(ctx, "3"); stars != 2 {
		t.Errorf("expected 2 stars, got %d", stars)
	}
	for _, bad := range []int{0, 6} {
		if err := s.SaveRating(ctx, "3", bad); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("SaveRating(%d): expected ErrInvalidRating, got %v", bad, err)
		}
	}
}
