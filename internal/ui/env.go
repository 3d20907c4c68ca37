package ui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/barter/internal/config"
	"github.com/saravenpi/barter/internal/directory"
	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/media"
	"github.com/saravenpi/barter/internal/notify"
	"github.com/saravenpi/barter/internal/store"
)

// Env carries the collaborators every screen needs.
type Env struct {
	Config    *config.Config
	Store     *store.Store
	Directory *directory.Directory
	Location  location.Provider
	Picker    media.Picker
	Notifier  notify.Notifier
}

func (e *Env) userName() string {
	if e.Config == nil || e.Config.User.Name == "" {
		return "You"
	}
	return e.Config.User.Name
}

func (e *Env) toastDuration() time.Duration {
	if e.Config == nil {
		return 2 * time.Second
	}
	return e.Config.ToastDuration()
}

func (e *Env) radiusKm() float64 {
	if e.Config == nil {
		return 0
	}
	return e.Config.Location.RadiusKm
}

func (e *Env) notify(ev notify.Event) {
	if e.Notifier != nil {
		e.Notifier.Notify(ev)
	}
}

type programNotifier struct {
	p *tea.Program
}

// NewProgramNotifier delivers events to the running program, where App shows them as toasts.
func NewProgramNotifier(p *tea.Program) notify.Notifier {
	return programNotifier{p: p}
}

func (n programNotifier) Notify(ev notify.Event) {
	log.Printf("notify %s: %s", ev.Kind, ev.Message)
	// Send blocks until the event loop reads it, and Notify is called from inside Update.
	go n.p.Send(ev)
}
