package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/barter/internal/models"
)

type conversationItem struct {
	conversation models.Conversation
	peer         models.Freelancer
}

type conversationsFetchedMsg struct {
	items []conversationItem
	err   error
}

func (i conversationItem) Title() string {
	return i.conversation.PeerName
}

func (i conversationItem) Description() string {
	preview := i.conversation.LastMessage
	if len([]rune(preview)) > 50 {
		preview = string([]rune(preview)[:47]) + "..."
	}
	return fmt.Sprintf("%s • %s • %d/%d received", i.conversation.LastTime, preview, i.conversation.Received, i.conversation.MessageCount)
}

func (i conversationItem) FilterValue() string {
	return i.conversation.PeerName
}

type ConversationsModel struct {
	env          *Env
	items        []conversationItem
	list         list.Model
	loading      bool
	err          error
	spinner      spinner.Model
	windowWidth  int
	windowHeight int
}

func NewConversationsModel(env *Env) ConversationsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New([]list.Item{}, delegate, 80, 20)
	l.Title = "Chats"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return ConversationsModel{
		env:          env,
		list:         l,
		loading:      true,
		spinner:      s,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m ConversationsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchConversationsCmd())
}

func (m ConversationsModel) fetchConversationsCmd() tea.Cmd {
	env := m.env
	return func() tea.Msg {
		conversations, err := env.Store.Conversations(context.Background())
		if err != nil {
			return conversationsFetchedMsg{err: err}
		}

		items := make([]conversationItem, 0, len(conversations))
		for _, c := range conversations {
			peer, ok := env.Directory.Find(c.PeerID)
			if ok {
				c.PeerName = peer.Name
			}
			items = append(items, conversationItem{conversation: c, peer: peer})
		}
		return conversationsFetchedMsg{items: items}
	}
}

func (m ConversationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case conversationsFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		items := make([]list.Item, len(m.items))
		for i, item := range m.items {
			items[i] = item
		}
		m.list.SetItems(items)
		m.list.Title = fmt.Sprintf("Chats - %d conversations", len(m.items))
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if msg.String() == "esc" {
			return switchTo(NewMenuModel(m.env), m.windowWidth, m.windowHeight)
		}

		if msg.String() == "r" && !m.loading {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchConversationsCmd())
		}

		if msg.String() == "enter" && len(m.items) > 0 && !m.loading {
			if item, ok := m.list.SelectedItem().(conversationItem); ok {
				return switchTo(NewChatModel(m.env, item.peer, m), m.windowWidth, m.windowHeight)
			}
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ConversationsModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading conversations...\n", m.spinner.View())
	}

	if m.err != nil {
		s := titleStyle.Render("Chats") + "\n\n"
		s += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
		s += helpStyle.Render("esc: back • q: quit")
		return s
	}

	if len(m.items) == 0 {
		s := titleStyle.Render("Chats") + "\n\n"
		s += normalStyle.Render("  No conversations yet. Press c on a profile in Discover to start one.") + "\n"
		s += "\n" + helpStyle.Render("r: refresh • esc: back • q: quit")
		return s
	}

	s := m.list.View() + "\n"
	s += helpStyle.Render("↑↓/jk: navigate • enter: open • /: search • r: refresh • esc: back • q: quit")

	return s
}
