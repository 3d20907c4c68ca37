package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	title string
	desc  string
	open  func(env *Env) tea.Model
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

type MenuModel struct {
	env          *Env
	list         list.Model
	windowWidth  int
	windowHeight int
}

// NewMenuModel creates the main menu.
func NewMenuModel(env *Env) MenuModel {
	items := []list.Item{
		menuItem{title: "🃏 Discover", desc: "Swipe through freelancers", open: func(env *Env) tea.Model { return NewDiscoverModel(env) }},
		menuItem{title: "📍 Nearby", desc: "Freelancers around you", open: func(env *Env) tea.Model { return NewNearbyModel(env) }},
		menuItem{title: "💬 Chats", desc: "Your conversations", open: func(env *Env) tea.Model { return NewConversationsModel(env) }},
		menuItem{title: "👤 Profile", desc: "Edit your profile and proof of work", open: func(env *Env) tea.Model { return NewProfileModel(env) }},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New(items, delegate, 80, 14)
	l.Title = "Barter - trade skills with people nearby"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return MenuModel{
		env:          env,
		list:         l,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

		if msg.String() == "enter" {
			selectedItem, ok := m.list.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			return switchTo(selectedItem.open(m.env), m.windowWidth, m.windowHeight)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	s := m.list.View() + "\n"
	s += helpStyle.Render("↑↓/jk: navigate • enter: select • q: quit")
	return s
}
