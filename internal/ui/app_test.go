package ui

import (
	"strings"
	"testing"

	"github.com/saravenpi/barter/internal/notify"
)

func TestAppToastLifecycle(t *testing.T) {
	env, _ := newTestEnv(t)
	a := NewApp(env)

	next, cmd := a.Update(notify.Success("Profile successfully updated"))
	a = next.(App)
	if cmd == nil {
		t.Fatal("expected an expiry tick")
	}
	if !strings.Contains(a.View(), "Profile successfully updated") {
		t.Error("toast not rendered")
	}

	next, _ = a.Update(toastExpiredMsg{id: a.toastID})
	a = next.(App)
	if strings.Contains(a.View(), "Profile successfully updated") {
		t.Error("toast should be hidden after expiry")
	}
}

func TestAppStaleExpiryKeepsNewerToast(t *testing.T) {
	env, _ := newTestEnv(t)
	a := NewApp(env)

	next, _ := a.Update(notify.Info("first"))
	a = next.(App)
	stale := a.toastID
	next, _ = a.Update(notify.Error("second"))
	a = next.(App)

	next, _ = a.Update(toastExpiredMsg{id: stale})
	a = next.(App)
	if !strings.Contains(a.View(), "second") {
		t.Error("newer toast hidden by an older expiry")
	}
}

func TestAppDelegatesToScreen(t *testing.T) {
	env, _ := newTestEnv(t)
	a := NewApp(env)

	next, _ := a.Update(key("enter"))
	a = next.(App)
	if _, ok := a.screen.(DiscoverModel); !ok {
		t.Errorf("screen = %T, want DiscoverModel", a.screen)
	}
}
