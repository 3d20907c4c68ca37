package ui

import (
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/barter/internal/config"
	"github.com/saravenpi/barter/internal/directory"
	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/media"
	"github.com/saravenpi/barter/internal/notify"
	"github.com/saravenpi/barter/internal/store"
)

// recorder keeps every event it receives.
type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}

var lagos = location.Coords{Lat: 6.5244, Lon: 3.3792}

func newTestEnv(t *testing.T) (*Env, *recorder) {
	t.Helper()

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "barter.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{DataDir: dir}
	cfg.User.Name = "You"
	cfg.Toast.Seconds = 2
	cfg.Location.RadiusKm = 50

	rec := &recorder{}
	env := &Env{
		Config:    cfg,
		Store:     st,
		Directory: directory.New(filepath.Join(dir, "freelancers")),
		Location: location.StaticProvider{
			Enabled:  true,
			Position: lagos,
			Place:    location.Address{City: "Lagos", Region: "Lagos", Country: "Nigeria"},
		},
		Picker:   media.FilePicker{BaseDir: dir},
		Notifier: rec,
	}
	return env, rec
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and flattens batches. Only use it with commands that do not sleep.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func lastEvent(t *testing.T, rec *recorder) notify.Event {
	t.Helper()
	events := rec.Events()
	if len(events) == 0 {
		t.Fatal("expected a notification")
	}
	return events[len(events)-1]
}
