package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/media"
	"github.com/saravenpi/barter/internal/models"
	"github.com/saravenpi/barter/internal/notify"
)

const maxStars = 5

type ratingFetchedMsg struct {
	stars int
	err   error
}

type ratingSavedMsg struct {
	stars int
	err   error
}

type viewerLocatedMsg struct {
	coords location.Coords
	err    error
}

type MoreInfoModel struct {
	env          *Env
	freelancer   models.Freelancer
	back         tea.Model
	stars        int
	rated        bool
	location     string
	distance     string
	cursor       int
	lightbox     bool
	imageIndex   int
	err          error
	windowWidth  int
	windowHeight int
}

// NewMoreInfoModel shows a freelancer's portfolio. esc returns to back.
func NewMoreInfoModel(env *Env, f models.Freelancer, back tea.Model) MoreInfoModel {
	return MoreInfoModel{
		env:          env,
		freelancer:   f,
		back:         back,
		location:     "Unknown",
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m MoreInfoModel) Init() tea.Cmd {
	return tea.Batch(m.fetchRatingCmd(), m.locateCmd())
}

func (m MoreInfoModel) fetchRatingCmd() tea.Cmd {
	st, id := m.env.Store, m.freelancer.ID
	return func() tea.Msg {
		stars, err := st.Rating(context.Background(), id)
		return ratingFetchedMsg{stars: stars, err: err}
	}
}

func (m MoreInfoModel) saveRatingCmd(stars int) tea.Cmd {
	st, id := m.env.Store, m.freelancer.ID
	return func() tea.Msg {
		return ratingSavedMsg{stars: stars, err: st.SaveRating(context.Background(), id, stars)}
	}
}

func (m MoreInfoModel) locateCmd() tea.Cmd {
	provider := m.env.Location
	return func() tea.Msg {
		if provider == nil {
			return viewerLocatedMsg{err: location.ErrPermissionDenied}
		}
		coords, err := location.Locate(context.Background(), provider)
		return viewerLocatedMsg{coords: coords, err: err}
	}
}

func (m MoreInfoModel) gallerySize() int {
	return len(m.freelancer.Proofs)
}

// openLightbox shows gallery image i full screen.
func (m *MoreInfoModel) openLightbox(i int) {
	if i < 0 || i >= m.gallerySize() {
		return
	}
	m.imageIndex = i
	m.lightbox = true
}

// step moves the lightbox by delta images, wrapping at both ends.
func (m *MoreInfoModel) step(delta int) {
	n := m.gallerySize()
	if n == 0 {
		return
	}
	m.imageIndex = ((m.imageIndex+delta)%n + n) % n
}

func ratingMessage(name string, stars int) string {
	plural := ""
	if stars > 1 {
		plural = "s"
	}
	return fmt.Sprintf("You rated %s %d star%s", name, stars, plural)
}

func (m MoreInfoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case ratingFetchedMsg:
		if m.rated {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.stars = msg.stars
		return m, nil

	case ratingSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.env.notify(notify.Error("Rating not saved"))
			return m, nil
		}
		m.env.notify(notify.Success(ratingMessage(m.freelancer.Name, msg.stars)))
		return m, nil

	case viewerLocatedMsg:
		if msg.err != nil {
			log.Printf("viewer location unavailable: %v", msg.err)
			return m, nil
		}
		m.location = msg.coords.String()
		m.distance = location.FormatDistance(location.Distance(msg.coords, m.freelancer.Position))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.lightbox {
			switch msg.String() {
			case "esc", "q", "enter":
				m.lightbox = false
			case "left", "h":
				m.step(-1)
			case "right", "l", " ":
				m.step(1)
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return returnTo(m.env, m.back, m.windowWidth, m.windowHeight)

		case "1", "2", "3", "4", "5":
			stars, _ := strconv.Atoi(msg.String())
			m.stars = stars
			m.rated = true
			return m, m.saveRatingCmd(stars)

		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "right", "l":
			if m.cursor < m.gallerySize()-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			m.openLightbox(m.cursor)
			return m, nil

		case "c":
			if _, isChat := m.back.(ChatModel); isChat {
				return returnTo(m.env, m.back, m.windowWidth, m.windowHeight)
			}
			return switchTo(NewChatModel(m.env, m.freelancer, m), m.windowWidth, m.windowHeight)
		}
	}

	return m, nil
}

func renderStars(stars int) string {
	var b strings.Builder
	for i := 1; i <= maxStars; i++ {
		if i <= stars {
			b.WriteString(starOnStyle.Render("★"))
		} else {
			b.WriteString(starOffStyle.Render("☆"))
		}
		b.WriteString(" ")
	}
	return b.String()
}

func card(label, value string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + value)
}

func (m MoreInfoModel) viewLightbox() string {
	uri := m.freelancer.Proofs[m.imageIndex]
	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("Proof %d of %d", m.imageIndex+1, m.gallerySize())),
		normalStyle.Render("🖼  "+media.DisplayName(uri)),
		mutedStyle.Render(uri),
	)
	s := lipgloss.Place(m.windowWidth, m.windowHeight-2, lipgloss.Center, lipgloss.Center, body)
	return s + "\n" + helpStyle.Render("←/→: previous/next • esc: close")
}

func (m MoreInfoModel) View() string {
	if m.lightbox {
		return m.viewLightbox()
	}

	f := m.freelancer
	var b strings.Builder

	b.WriteString(titleStyle.Render(f.Name) + "\n")
	if f.Image != "" {
		b.WriteString(linkStyle.Render(f.Image) + "\n")
	}
	if f.IntroVideo != "" {
		b.WriteString(mutedStyle.Render("▶ "+media.DisplayName(f.IntroVideo)) + "\n")
	}
	if f.Bio != "" {
		b.WriteString(normalStyle.Render(wordwrap.String(f.Bio, 70)) + "\n")
	}
	b.WriteString("\n" + normalStyle.Render("Portfolio") + "\n")

	years := "-"
	if f.YearsExperience > 0 {
		years = fmt.Sprintf("%d years", f.YearsExperience)
	}
	website := "-"
	if f.Website != "" {
		website = linkStyle.Render(f.Website)
	}
	loc := "📍 " + m.location
	if m.distance != "" {
		loc += "\n" + mutedStyle.Render(m.distance)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, card("Skill", f.Skill), card("Name", f.Name)) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, card("Gender", f.Gender), card("Years of Experience", years)) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, card("Website Portfolio", website), card("Location", loc)) + "\n\n")

	b.WriteString(normalStyle.Render("Overall Rating") + "\n")
	b.WriteString(renderStars(m.stars) + "\n\n")

	b.WriteString(normalStyle.Render("Proof of Work") + "\n")
	if m.gallerySize() == 0 {
		b.WriteString(mutedStyle.Render("  No proof of work uploaded yet.") + "\n")
	}
	for i, uri := range f.Proofs {
		line := fmt.Sprintf("  [%d] %s", i+1, media.DisplayName(uri))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+strings.TrimPrefix(line, "  ")) + "\n")
		} else {
			b.WriteString(normalStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	b.WriteString(helpStyle.Render("1-5: rate • ←/→: select proof • enter: view • c: chat • esc: back"))
	return b.String()
}
