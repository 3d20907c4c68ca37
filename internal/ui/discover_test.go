package ui

import (
	"strings"
	"testing"

	"github.com/saravenpi/barter/internal/models"
)

func loadedDeck(t *testing.T, env *Env, freelancers ...models.Freelancer) DiscoverModel {
	t.Helper()
	m := NewDiscoverModel(env)
	next, _ := m.Update(deckLoadedMsg{freelancers: freelancers})
	return next.(DiscoverModel)
}

func TestDiscoverLikeAndSkip(t *testing.T) {
	env, rec := newTestEnv(t)
	m := loadedDeck(t, env,
		models.Freelancer{ID: "1", Name: "Jude Bellingham"},
		models.Freelancer{ID: "2", Name: "Olah Israel"},
	)

	next, _ := m.Update(key("l"))
	m = next.(DiscoverModel)
	if !m.liked["1"] {
		t.Error("expected Jude to be liked")
	}
	if ev := lastEvent(t, rec); ev.Message != "You liked Jude Bellingham" {
		t.Errorf("toast = %q", ev.Message)
	}

	f, ok := m.Current()
	if !ok || f.ID != "2" {
		t.Fatalf("current = %+v, %v", f, ok)
	}

	next, _ = m.Update(key("h"))
	m = next.(DiscoverModel)
	if m.liked["2"] {
		t.Error("skipping should not like")
	}
	if len(rec.Events()) != 1 {
		t.Errorf("skipping should not notify, got %v", rec.Events())
	}
}

func TestDiscoverDeckExhaustion(t *testing.T) {
	env, _ := newTestEnv(t)
	m := loadedDeck(t, env, models.Freelancer{ID: "1", Name: "Jude Bellingham"})

	for i := 0; i < 3; i++ {
		next, _ := m.Update(key("h"))
		m = next.(DiscoverModel)
	}

	if _, ok := m.Current(); ok {
		t.Fatal("deck should be exhausted")
	}
	if m.index != 1 {
		t.Errorf("index = %d, want 1", m.index)
	}
	if !strings.Contains(m.View(), "No more profiles nearby.") {
		t.Error("expected the empty deck message")
	}

	next, _ := m.Update(key("r"))
	m = next.(DiscoverModel)
	if _, ok := m.Current(); !ok {
		t.Error("r should start the deck over")
	}
}

func TestDiscoverSkillSearch(t *testing.T) {
	env, _ := newTestEnv(t)
	if _, err := env.Directory.Seed(); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	m := loadedDeck(t, env)

	next, _ := m.Update(key("/"))
	m = next.(DiscoverModel)
	if !m.searching {
		t.Fatal("expected search mode")
	}

	next, _ = m.Update(key("photo"))
	m = next.(DiscoverModel)
	next, _ = m.Update(m.suggestCmd()())
	m = next.(DiscoverModel)
	if len(m.suggestions) == 0 || m.suggestions[0] != "Photoshop Editor" {
		t.Fatalf("suggestions = %v", m.suggestions)
	}

	next, cmd := m.Update(key("enter"))
	m = next.(DiscoverModel)
	if m.skillFilter != "Photoshop Editor" {
		t.Errorf("filter = %q", m.skillFilter)
	}
	for _, msg := range run(cmd) {
		if d, ok := msg.(deckLoadedMsg); ok {
			next, _ = m.Update(d)
			m = next.(DiscoverModel)
		}
	}
	f, ok := m.Current()
	if !ok || f.Name != "Sophia Williams" || len(m.deck) != 1 {
		t.Errorf("deck = %+v", m.deck)
	}
}
