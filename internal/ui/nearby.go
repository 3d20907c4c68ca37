package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/barter/internal/directory"
	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/models"
)

type nearbyItem struct {
	freelancer models.Freelancer
	distance   float64
	located    bool
}

func (i nearbyItem) FilterValue() string { return i.freelancer.Name + " " + i.freelancer.Skill }
func (i nearbyItem) Title() string       { return i.freelancer.Name }
func (i nearbyItem) Description() string {
	desc := i.freelancer.Skill
	if i.located {
		if desc != "" {
			desc += " • "
		}
		desc += location.FormatDistance(i.distance)
	}
	return desc
}

type nearbyLoadedMsg struct {
	items   []nearbyItem
	located bool
	err     error
}

type NearbyModel struct {
	env           *Env
	list          list.Model
	items         []nearbyItem
	located       bool
	loading       bool
	err           error
	windowWidth   int
	windowHeight  int
	confirmDelete bool
	toDelete      *models.Freelancer
}

// NewNearbyModel lists freelancers closest first when the location is known.
func NewNearbyModel(env *Env) NearbyModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New([]list.Item{}, delegate, 80, 20)
	l.Title = "Nearby"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return NearbyModel{
		env:          env,
		list:         l,
		loading:      true,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m NearbyModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m NearbyModel) loadCmd() tea.Cmd {
	env := m.env
	return func() tea.Msg {
		var coords location.Coords
		var err error
		if env.Location != nil {
			coords, err = location.Locate(context.Background(), env.Location)
		} else {
			err = location.ErrPermissionDenied
		}

		if err != nil {
			freelancers, listErr := env.Directory.List()
			if listErr != nil {
				return nearbyLoadedMsg{err: listErr}
			}
			items := make([]nearbyItem, len(freelancers))
			for i, f := range freelancers {
				items[i] = nearbyItem{freelancer: f}
			}
			return nearbyLoadedMsg{items: items}
		}

		nearby, err := env.Directory.Nearby(coords, env.radiusKm())
		if err != nil {
			return nearbyLoadedMsg{err: err}
		}
		items := make([]nearbyItem, len(nearby))
		for i, n := range nearby {
			items[i] = nearbyItem{freelancer: n.Freelancer, distance: n.DistanceKm, located: true}
		}
		return nearbyLoadedMsg{items: items, located: true}
	}
}

func deleteFreelancer(dir *directory.Directory, f *models.Freelancer) error {
	if f == nil {
		return errors.New("nothing selected")
	}
	return dir.Delete(f.ID)
}

func (m NearbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case nearbyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.located = msg.located
		items := make([]list.Item, len(m.items))
		for i, item := range m.items {
			items[i] = item
		}
		m.list.SetItems(items)
		m.list.Title = fmt.Sprintf("Nearby - %d people", len(m.items))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.confirmDelete {
			switch msg.String() {
			case "y", "Y":
				err := deleteFreelancer(m.env.Directory, m.toDelete)
				m.confirmDelete = false
				m.toDelete = nil
				if err != nil {
					m.err = err
					return m, nil
				}
				m.loading = true
				return m, m.loadCmd()
			case "n", "N", "esc":
				m.confirmDelete = false
				m.toDelete = nil
			}
			return m, nil
		}

		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		if msg.String() == "esc" || msg.String() == "q" {
			return switchTo(NewMenuModel(m.env), m.windowWidth, m.windowHeight)
		}

		if msg.String() == "r" {
			m.loading = true
			return m, m.loadCmd()
		}

		if item, ok := m.list.SelectedItem().(nearbyItem); ok {
			switch msg.String() {
			case "enter":
				return switchTo(NewMoreInfoModel(m.env, item.freelancer, m), m.windowWidth, m.windowHeight)
			case "c":
				return switchTo(NewChatModel(m.env, item.freelancer, m), m.windowWidth, m.windowHeight)
			case "d", "delete":
				m.confirmDelete = true
				f := item.freelancer
				m.toDelete = &f
				return m, nil
			}
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m NearbyModel) View() string {
	if m.confirmDelete && m.toDelete != nil {
		s := titleStyle.Render("Remove Freelancer") + "\n\n"
		s += normalStyle.Render(fmt.Sprintf("Remove '%s' from your directory?", m.toDelete.Name)) + "\n\n"
		s += errorStyle.Render("This deletes their profile file.") + "\n\n"
		s += helpStyle.Render("y: confirm • n/esc: cancel")
		return s
	}

	if m.loading {
		return "\n  Looking around...\n"
	}

	if m.err != nil {
		s := titleStyle.Render("Nearby") + "\n\n"
		s += errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
		s += helpStyle.Render("r: retry • esc: back to menu")
		return s
	}

	if len(m.items) == 0 {
		s := titleStyle.Render("Nearby") + "\n\n"
		s += normalStyle.Render("  Nobody around yet. Run 'barter seed' to add sample profiles.") + "\n"
		s += "\n" + helpStyle.Render("r: refresh • esc: back")
		return s
	}

	s := m.list.View() + "\n"
	if !m.located {
		s += mutedStyle.Render("Location unavailable, showing everyone.") + "\n"
	}
	s += helpStyle.Render("↑↓/jk: navigate • enter: profile • c: chat • d: remove • /: search • r: refresh • esc: back")

	return s
}
