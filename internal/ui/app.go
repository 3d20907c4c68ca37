package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/barter/internal/notify"
)

type toastExpiredMsg struct {
	id int
}

// App hosts the active screen and renders toasts on top of it.
type App struct {
	env          *Env
	screen       tea.Model
	toast        notify.Event
	toastID      int
	showToast    bool
	windowWidth  int
	windowHeight int
}

func NewApp(env *Env) App {
	return App{
		env:    env,
		screen: NewMenuModel(env),
	}
}

func (a App) Init() tea.Cmd {
	return a.screen.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notify.Event:
		a.toast = msg
		a.toastID++
		a.showToast = true
		id := a.toastID
		return a, tea.Tick(a.env.toastDuration(), func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		})

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.showToast = false
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.windowWidth = msg.Width
		a.windowHeight = msg.Height
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.Update(msg)
	return a, cmd
}

func (a App) View() string {
	s := a.screen.View()
	if !a.showToast || a.toast.Message == "" {
		return s
	}

	style := toastStyle
	switch a.toast.Kind {
	case notify.KindSuccess:
		style = toastSuccessStyle
	case notify.KindError:
		style = toastErrorStyle
	}

	toast := style.Render(a.toast.Message)
	if a.windowWidth > 0 {
		toast = lipgloss.PlaceHorizontal(a.windowWidth, lipgloss.Center, toast)
	}
	return s + "\n\n" + toast
}

// switchTo sizes the next screen to the current window and starts it.
func switchTo(next tea.Model, width, height int) (tea.Model, tea.Cmd) {
	if width > 0 {
		next, _ = next.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return next, next.Init()
}

// returnTo resizes a screen kept in memory without re-running its Init.
// Without a previous screen it falls back to the menu.
func returnTo(env *Env, prev tea.Model, width, height int) (tea.Model, tea.Cmd) {
	if prev == nil {
		return switchTo(NewMenuModel(env), width, height)
	}
	if width > 0 {
		return prev.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return prev, nil
}
