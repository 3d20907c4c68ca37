package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/saravenpi/barter/internal/models"
	"github.com/saravenpi/barter/internal/notify"
)

const maxSuggestions = 6

type deckLoadedMsg struct {
	freelancers []models.Freelancer
	err         error
}

type suggestionsMsg struct {
	query       string
	suggestions []string
	err         error
}

// DiscoverModel is the swipe deck: one freelancer card at a time.
type DiscoverModel struct {
	env          *Env
	deck         []models.Freelancer
	index        int
	liked        map[string]bool
	skillFilter  string
	loading      bool
	err          error
	spinner      spinner.Model
	searching    bool
	search       textinput.Model
	suggestions  []string
	suggestion   int
	windowWidth  int
	windowHeight int
}

func NewDiscoverModel(env *Env) DiscoverModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	search := textinput.New()
	search.Placeholder = "Search for a skill..."
	search.CharLimit = 60
	search.Width = 40

	return DiscoverModel{
		env:          env,
		liked:        make(map[string]bool),
		loading:      true,
		spinner:      s,
		search:       search,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m DiscoverModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadDeckCmd())
}

func (m DiscoverModel) loadDeckCmd() tea.Cmd {
	dir, skill := m.env.Directory, m.skillFilter
	return func() tea.Msg {
		freelancers, err := dir.WithSkill(skill)
		return deckLoadedMsg{freelancers: freelancers, err: err}
	}
}

func (m DiscoverModel) suggestCmd() tea.Cmd {
	dir, query := m.env.Directory, m.search.Value()
	return func() tea.Msg {
		suggestions, err := dir.Suggest(query)
		return suggestionsMsg{query: query, suggestions: suggestions, err: err}
	}
}

// Current returns the card on top of the deck.
func (m DiscoverModel) Current() (models.Freelancer, bool) {
	if m.index >= len(m.deck) {
		return models.Freelancer{}, false
	}
	return m.deck[m.index], true
}

func (m DiscoverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case deckLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.deck = msg.freelancers
		m.index = 0
		return m, nil

	case suggestionsMsg:
		if msg.err != nil || msg.query != m.search.Value() {
			return m, nil
		}
		m.suggestions = msg.suggestions
		if len(m.suggestions) > maxSuggestions {
			m.suggestions = m.suggestions[:maxSuggestions]
		}
		m.suggestion = 0
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

		if m.searching {
			return m.updateSearch(msg)
		}

		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "esc":
			return switchTo(NewMenuModel(m.env), m.windowWidth, m.windowHeight)

		case "/":
			m.searching = true
			m.search.SetValue(m.skillFilter)
			m.search.Focus()
			return m, tea.Batch(textinput.Blink, m.suggestCmd())

		case "x":
			if m.skillFilter != "" {
				m.skillFilter = ""
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.loadDeckCmd())
			}
			return m, nil

		case "r":
			m.index = 0
			return m, nil

		case "left", "h":
			if m.index < len(m.deck) {
				m.index++
			}
			return m, nil

		case "right", "l":
			if f, ok := m.Current(); ok {
				m.liked[f.ID] = true
				m.index++
				m.env.notify(notify.Success(fmt.Sprintf("You liked %s", f.Name)))
			}
			return m, nil

		case "enter", "i":
			if f, ok := m.Current(); ok {
				return switchTo(NewMoreInfoModel(m.env, f, m), m.windowWidth, m.windowHeight)
			}
			return m, nil

		case "c":
			if f, ok := m.Current(); ok {
				return switchTo(NewChatModel(m.env, f, m), m.windowWidth, m.windowHeight)
			}
			return m, nil
		}
	}

	return m, nil
}

func (m DiscoverModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.suggestions = nil
		return m, nil

	case "up":
		if m.suggestion > 0 {
			m.suggestion--
		}
		return m, nil

	case "down", "tab":
		if m.suggestion < len(m.suggestions)-1 {
			m.suggestion++
		}
		return m, nil

	case "enter":
		skill := strings.TrimSpace(m.search.Value())
		if len(m.suggestions) > 0 && skill != "" {
			skill = m.suggestions[m.suggestion]
		}
		m.skillFilter = skill
		m.searching = false
		m.search.Blur()
		m.suggestions = nil
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadDeckCmd())
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.suggestCmd())
	}
	return m, cmd
}

func (m DiscoverModel) renderCard(f models.Freelancer) string {
	var body strings.Builder

	body.WriteString(selectedStyle.Render(f.Name) + "\n")
	body.WriteString(normalStyle.Render(f.Skill) + "\n")
	if f.SkillLearn != "" {
		body.WriteString(mutedStyle.Render("Wants to learn: "+f.SkillLearn) + "\n")
	}
	if f.YearsExperience > 0 {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%d years of experience", f.YearsExperience)) + "\n")
	}
	if f.Bio != "" {
		body.WriteString("\n" + normalStyle.Render(wordwrap.String(f.Bio, 40)) + "\n")
	}
	if m.liked[f.ID] {
		body.WriteString("\n" + starOnStyle.Render("♥ liked"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("5")).
		Padding(1, 2).
		Width(46).
		Render(strings.TrimRight(body.String(), "\n"))
}

func (m DiscoverModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Finding people nearby...\n", m.spinner.View())
	}

	title := "Discover"
	if m.skillFilter != "" {
		title = fmt.Sprintf("Discover • %s", m.skillFilter)
	}
	s := titleStyle.Render(title) + "\n"

	if m.searching {
		s += inputStyle.Render("Search:") + "\n" + m.search.View() + "\n\n"
		for i, suggestion := range m.suggestions {
			if i == m.suggestion {
				s += selectedStyle.Render("> "+suggestion) + "\n"
			} else {
				s += normalStyle.Render("  "+suggestion) + "\n"
			}
		}
		s += "\n" + helpStyle.Render("↑↓: choose • enter: search • esc: cancel")
		return s
	}

	if m.err != nil {
		s += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
		s += helpStyle.Render("esc: back • q: quit")
		return s
	}

	f, ok := m.Current()
	if !ok {
		s += normalStyle.Render("  No more profiles nearby.") + "\n\n"
		s += helpStyle.Render("r: start over • /: search skills • x: clear search • esc: back")
		return s
	}

	s += mutedStyle.Render(fmt.Sprintf("%d of %d", m.index+1, len(m.deck))) + "\n"
	s += m.renderCard(f) + "\n\n"
	s += helpStyle.Render("←/h: skip • →/l: like • enter: more info • c: chat • /: search • esc: back")
	return s
}
