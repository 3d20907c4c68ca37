package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/saravenpi/barter/internal/chat"
	"github.com/saravenpi/barter/internal/models"
	"github.com/saravenpi/barter/internal/notify"
)

type threadFetchedMsg struct {
	messages []chat.Message
	err      error
}

type messageStoredMsg struct {
	err error
}

type statusStoredMsg struct {
	err error
}

type ChatModel struct {
	env           *Env
	peer          models.Freelancer
	back          tea.Model
	thread        *chat.Thread
	opened        bool
	viewport      viewport.Model
	textarea      textarea.Model
	loading       bool
	composing     bool
	err           error
	spinner       spinner.Model
	windowWidth   int
	windowHeight  int
	viewportReady bool
}

// NewChatModel opens the conversation with peer. esc returns to back.
func NewChatModel(env *Env, peer models.Freelancer, back tea.Model) ChatModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	vp := viewport.New(80, 20)

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	return ChatModel{
		env:           env,
		peer:          peer,
		back:          back,
		thread:        chat.NewThread(nil, chat.WithSender(env.userName())),
		viewport:      vp,
		textarea:      ta,
		loading:       peer.ID != "",
		spinner:       s,
		windowWidth:   80,
		windowHeight:  30,
		viewportReady: true,
	}
}

func (m ChatModel) Init() tea.Cmd {
	if m.peer.ID == "" {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetchThreadCmd())
}

func (m ChatModel) fetchThreadCmd() tea.Cmd {
	st, peerID := m.env.Store, m.peer.ID
	return func() tea.Msg {
		messages, err := st.Messages(context.Background(), peerID)
		return threadFetchedMsg{messages: messages, err: err}
	}
}

func (m ChatModel) storeMessageCmd(msg chat.Message) tea.Cmd {
	st, peerID := m.env.Store, m.peer.ID
	return func() tea.Msg {
		return messageStoredMsg{err: st.AppendMessage(context.Background(), peerID, msg)}
	}
}

func (m ChatModel) storeStatusCmd(msg chat.Message) tea.Cmd {
	st := m.env.Store
	return func() tea.Msg {
		return statusStoredMsg{err: st.UpdateStatus(context.Background(), msg.ID, msg.Status)}
	}
}

// Thread exposes the conversation state for rendering and tests.
func (m ChatModel) Thread() *chat.Thread {
	return m.thread
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.resize()
		m.updateViewportContent()
		return m, nil

	case threadFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.thread = chat.NewThread(msg.messages, chat.WithSender(m.env.userName()))

		var cmd tea.Cmd
		if !m.opened {
			m.opened = true
			if promoted, ok := m.thread.Open(); ok {
				cmd = m.storeStatusCmd(promoted)
			}
		}

		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, cmd

	case messageStoredMsg:
		if msg.err != nil {
			m.err = msg.err
			m.env.notify(notify.Error("Message not saved"))
		}
		return m, nil

	case statusStoredMsg:
		if msg.err != nil {
			log.Printf("failed to store read receipt for %s: %v", m.peer.ID, msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if msg.String() == "esc" {
			if m.composing {
				m.composing = false
				m.textarea.Reset()
				m.textarea.Blur()
				m.err = nil
				m.resize()
				return m, nil
			}
			return returnTo(m.env, m.back, m.windowWidth, m.windowHeight)
		}

		if m.composing {
			switch msg.String() {
			case "ctrl+s":
				sent, ok := m.thread.Send(m.textarea.Value())
				if !ok {
					return m, nil
				}
				m.textarea.Reset()
				m.updateViewportContent()
				m.viewport.GotoBottom()
				return m, m.storeMessageCmd(sent)
			default:
				var cmd tea.Cmd
				m.textarea, cmd = m.textarea.Update(msg)
				return m, cmd
			}
		}

		if m.loading || m.peer.ID == "" {
			return m, nil
		}

		switch msg.String() {
		case "n", "c", "enter":
			m.composing = true
			m.resize()
			m.textarea.Focus()
			return m, textarea.Blink

		case "i":
			return switchTo(NewMoreInfoModel(m.env, m.peer, m), m.windowWidth, m.windowHeight)

		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchThreadCmd())

		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *ChatModel) resize() {
	headerHeight := 6
	textareaHeight := 5
	helpHeight := 2
	availableHeight := m.windowHeight - headerHeight - helpHeight

	m.viewport.Width = m.windowWidth - 4
	if m.composing {
		m.viewport.Height = availableHeight - textareaHeight
		m.textarea.SetWidth(m.windowWidth - 4)
	} else {
		m.viewport.Height = availableHeight
	}
}

func receipt(status chat.Status) string {
	switch status {
	case chat.StatusRead:
		return "✓✓"
	case chat.StatusDelivered:
		return "✓"
	default:
		return ""
	}
}

func (m *ChatModel) updateViewportContent() {
	if !m.viewportReady {
		return
	}

	var content strings.Builder
	wrapWidth := m.viewport.Width
	if wrapWidth <= 0 {
		wrapWidth = 80
	}
	right := lipgloss.NewStyle().Align(lipgloss.Right).Width(wrapWidth)

	for i, message := range m.thread.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		wrappedText := wordwrap.String(message.Text, wrapWidth-10)

		if message.IsSender {
			meta := message.Timestamp
			if r := receipt(message.Status); r != "" {
				meta += " " + r
			}
			content.WriteString(right.Render(messageFromMeStyle.Render(wrappedText)) + "\n")
			content.WriteString(right.Render(messageHeaderStyle.Render(meta)) + "\n")
		} else {
			sender := message.Sender
			if sender == "" {
				sender = m.peer.Name
			}
			content.WriteString(messageHeaderStyle.Render(fmt.Sprintf("%s • %s", sender, message.Timestamp)) + "\n")
			content.WriteString(messageFromOtherStyle.Render(wrappedText) + "\n")
		}
	}

	m.viewport.SetContent(content.String())
}

func (m ChatModel) View() string {
	if m.peer.ID == "" {
		s := "\n" + errorStyle.Render("User not found") + "\n\n"
		s += helpStyle.Render("esc: back")
		return s
	}

	if m.loading && m.thread.Len() == 0 {
		return fmt.Sprintf("\n  %s Loading messages...\n", m.spinner.View())
	}

	s := titleStyle.Render(fmt.Sprintf("💬 %s", m.peer.Name)) + "\n"
	s += mutedStyle.Render(m.peer.Skill) + "\n\n"

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}

	if m.thread.Len() == 0 {
		s += normalStyle.Render(fmt.Sprintf("  Say hi to %s.", m.peer.Name)) + "\n"
	} else {
		s += m.viewport.View() + "\n"
	}

	if m.composing {
		s += "\n" + inputStyle.Render("New Message:") + "\n"
		s += m.textarea.View() + "\n"
		s += helpStyle.Render("ctrl+s: send • esc: cancel")
	} else {
		scrollPercent := int(m.viewport.ScrollPercent() * 100)
		s += "\n" + helpStyle.Render(fmt.Sprintf("↑↓/jk: scroll • n: new message • i: profile • r: refresh • esc: back • %d%%", scrollPercent))
	}

	return s
}
