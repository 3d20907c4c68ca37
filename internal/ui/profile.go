package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/barter/internal/location"
	"github.com/saravenpi/barter/internal/media"
	"github.com/saravenpi/barter/internal/notify"
	"github.com/saravenpi/barter/internal/profile"
)

type profileLoadedMsg struct {
	profile profile.Profile
	found   bool
	err     error
}

type profileLocatedMsg struct {
	address string
	err     error
}

type profileSavedMsg struct {
	err error
}

var fieldLabels = map[profile.Field]string{
	profile.FieldFullName:        "Full Name",
	profile.FieldSkill:           "Skill",
	profile.FieldSkillLearn:      "Skill you want to learn",
	profile.FieldGender:          "Gender",
	profile.FieldYearsExperience: "Years of experience",
}

// describeMissing turns a validation report into the toast shown on a rejected save.
func describeMissing(verr *profile.ValidationError) string {
	parts := make([]string, 0, len(verr.Fields)+1)
	for _, f := range verr.Fields {
		parts = append(parts, fieldLabels[f])
	}
	if verr.NoProof {
		parts = append(parts, "Proof of work")
	}
	return "Fill all the required fields: " + strings.Join(parts, ", ")
}

type ProfileModel struct {
	env            *Env
	draft          *profile.Draft
	inputs         []textinput.Model
	focusIndex     int
	loading        bool
	saving         bool
	confirmDiscard bool
	err            error
	windowWidth    int
	windowHeight   int
}

// NewProfileModel creates the editor for the user's own profile.
func NewProfileModel(env *Env) ProfileModel {
	inputs := make([]textinput.Model, len(profile.RequiredFields))
	for i, f := range profile.RequiredFields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = fieldLabels[f] + " *"
		inputs[i].CharLimit = 100
		inputs[i].Width = 50
	}
	inputs[len(inputs)-1].CharLimit = 2
	inputs[0].Focus()

	return ProfileModel{
		env:     env,
		draft:   profile.New(),
		inputs:  inputs,
		loading: true,
	}
}

func (m ProfileModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadProfileCmd())
}

// Draft exposes the edit state for rendering and tests.
func (m ProfileModel) Draft() *profile.Draft {
	return m.draft
}

func (m ProfileModel) loadProfileCmd() tea.Cmd {
	st := m.env.Store
	return func() tea.Msg {
		p, found, err := st.LoadProfile(context.Background())
		return profileLoadedMsg{profile: p, found: found, err: err}
	}
}

func (m ProfileModel) locateCmd() tea.Cmd {
	provider := m.env.Location
	return func() tea.Msg {
		if provider == nil {
			return profileLocatedMsg{err: location.ErrPermissionDenied}
		}
		addr, err := location.Resolve(context.Background(), provider)
		return profileLocatedMsg{address: addr, err: err}
	}
}

func (m ProfileModel) persistCmd() tea.Cmd {
	st, snapshot := m.env.Store, m.draft.Snapshot()
	return func() tea.Msg {
		return profileSavedMsg{err: st.PersistProfile(context.Background(), snapshot)}
	}
}

// mediaSlots lists the media rows in focus order. Only one empty picture slot is offered.
func (m ProfileModel) mediaSlots() []mediaSlot {
	slots := []mediaSlot{{kind: slotIntroVideo}}

	thumbs := len(m.draft.Snapshot().Thumbnails)
	for i := 0; i <= thumbs && i < profile.ThumbnailSlots; i++ {
		slots = append(slots, mediaSlot{kind: slotThumbnail, index: i})
	}
	for i := 0; i < profile.ProofSlots; i++ {
		slots = append(slots, mediaSlot{kind: slotProof, index: i})
	}
	return slots
}

func (m ProfileModel) focusCount() int {
	return len(m.inputs) + len(m.mediaSlots())
}

func (m ProfileModel) focusedSlot() (mediaSlot, bool) {
	i := m.focusIndex - len(m.inputs)
	slots := m.mediaSlots()
	if i < 0 || i >= len(slots) {
		return mediaSlot{}, false
	}
	return slots[i], true
}

func (m ProfileModel) applyMedia(slot mediaSlot, uri string) error {
	switch slot.kind {
	case slotIntroVideo:
		m.draft.SetIntroVideo(uri)
		return nil
	case slotThumbnail:
		return m.draft.SetThumbnail(slot.index, uri)
	default:
		return m.draft.SetProof(slot.index, uri)
	}
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else if msg.found {
			m.draft = profile.Load(msg.profile)
			for i, f := range profile.RequiredFields {
				m.inputs[i].SetValue(m.draft.Field(f))
			}
		}
		return m, m.locateCmd()

	case profileLocatedMsg:
		if msg.err != nil {
			log.Printf("location unavailable, keeping default: %v", msg.err)
			return m, nil
		}
		m.draft.SetLocation(msg.address)
		return m, nil

	case mediaPickedMsg:
		if err := m.applyMedia(msg.slot, msg.uri); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, nil

	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			m.env.notify(notify.Error("Could not save your profile"))
			return m, nil
		}
		if err := m.draft.Save(); err != nil && !errors.Is(err, profile.ErrNotDirty) {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.env.notify(notify.Success("Profile successfully updated"))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.confirmDiscard {
			switch msg.String() {
			case "y", "Y":
				return switchTo(NewMenuModel(m.env), m.windowWidth, m.windowHeight)
			case "n", "N", "esc":
				m.confirmDiscard = false
			}
			return m, nil
		}

		if m.saving {
			return m, nil
		}

		if msg.String() == "esc" {
			if m.draft.Dirty() {
				m.confirmDiscard = true
				return m, nil
			}
			return switchTo(NewMenuModel(m.env), m.windowWidth, m.windowHeight)
		}

		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			m.focusIndex = (m.focusIndex + 1) % m.focusCount()
			m.updateFocus()
			return m, nil

		case "shift+tab", "up":
			m.focusIndex = (m.focusIndex - 1 + m.focusCount()) % m.focusCount()
			m.updateFocus()
			return m, nil

		case "ctrl+s":
			return m.save()

		case "enter":
			if slot, ok := m.focusedSlot(); ok {
				return switchTo(NewPickerModel(m.env, slot, m), m.windowWidth, m.windowHeight)
			}
			m.focusIndex = (m.focusIndex + 1) % m.focusCount()
			m.updateFocus()
			return m, nil
		}

		if m.focusIndex < len(m.inputs) {
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m ProfileModel) save() (tea.Model, tea.Cmd) {
	if !m.draft.Dirty() {
		return m, nil
	}

	if verr := m.draft.Missing(); verr != nil {
		m.err = verr
		m.env.notify(notify.Error(describeMissing(verr)))
		return m, nil
	}

	m.err = nil
	m.saving = true
	return m, m.persistCmd()
}

func (m ProfileModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := profile.RequiredFields[m.focusIndex]

	if field == profile.FieldYearsExperience && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !unicode.IsDigit(r) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)

	if value := m.inputs[m.focusIndex].Value(); value != m.draft.Field(field) {
		if err := m.draft.SetField(field, value); err != nil {
			m.err = err
		}
	}
	return m, cmd
}

func (m *ProfileModel) updateFocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focusIndex < len(m.inputs) {
		m.inputs[m.focusIndex].Focus()
	}
}

func (m ProfileModel) renderSlot(b *strings.Builder, slot mediaSlot, focused bool) {
	snapshot := m.draft.Snapshot()

	var uri string
	switch slot.kind {
	case slotIntroVideo:
		uri = snapshot.IntroVideo
	case slotThumbnail:
		if slot.index < len(snapshot.Thumbnails) {
			uri = snapshot.Thumbnails[slot.index]
		}
	default:
		uri = snapshot.Proofs[slot.index]
	}

	text := "+ Upload"
	if slot.kind == slotIntroVideo {
		text = "🎥 Upload a video"
		if uri != "" {
			text = "🎥 Change video: " + media.DisplayName(uri)
		}
	} else if uri != "" {
		text = "🖼  " + media.DisplayName(uri)
	}

	style := blurredStyle
	prefix := "  "
	if focused {
		style = focusedStyle
		prefix = "> "
	}
	b.WriteString(style.Render(fmt.Sprintf("%s%-10s %s", prefix, slot.label()+":", text)) + "\n")
}

func (m ProfileModel) View() string {
	if m.confirmDiscard {
		s := titleStyle.Render("Discard changes") + "\n\n"
		s += normalStyle.Render("You have unsaved changes. Leave without saving?") + "\n\n"
		s += helpStyle.Render("y: discard • n/esc: keep editing")
		return s
	}

	if m.loading {
		return "\n  Loading profile...\n"
	}

	var b strings.Builder

	title := "Profile"
	if m.draft.Dirty() {
		title += " • unsaved changes"
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	b.WriteString(normalStyle.Render("Upload your introductory video") + "\n")
	b.WriteString(helpStyle.Render("Your video will be shown to other skilled people that view your profile") + "\n\n")

	slots := m.mediaSlots()
	focusedSlot, hasFocusedSlot := m.focusedSlot()
	isFocused := func(s mediaSlot) bool { return hasFocusedSlot && s == focusedSlot }

	for _, slot := range slots {
		if slot.kind == slotProof {
			continue
		}
		m.renderSlot(&b, slot, isFocused(slot))
	}
	b.WriteString("\n")

	for i, input := range m.inputs {
		style := blurredStyle
		if m.focusIndex == i {
			style = focusedStyle
		}
		b.WriteString(style.Render(fieldLabels[profile.RequiredFields[i]]+" *") + "\n")
		b.WriteString(input.View() + "\n")
	}

	address := m.draft.Field(profile.FieldLocation)
	if address == "" {
		address = "Location unavailable"
	}
	b.WriteString(blurredStyle.Render("Location") + "\n")
	b.WriteString(mutedStyle.Render("  📍 "+address) + "\n\n")

	b.WriteString(normalStyle.Render("Proof of Work (required)") + "\n")
	for _, slot := range slots {
		if slot.kind == slotProof {
			m.renderSlot(&b, slot, isFocused(slot))
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	saveLabel := "[ Save ]"
	if m.saving {
		saveLabel = "[ Saving... ]"
	}
	if m.draft.Dirty() {
		b.WriteString(selectedStyle.Render(saveLabel) + "\n")
	} else {
		b.WriteString(mutedStyle.Render(saveLabel) + "\n")
	}

	b.WriteString(helpStyle.Render("tab/↑↓: navigate • enter: upload media • ctrl+s: save • esc: back"))

	return b.String()
}
