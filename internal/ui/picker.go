package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/barter/internal/media"
)

type slotKind int

const (
	slotIntroVideo slotKind = iota
	slotThumbnail
	slotProof
)

// mediaSlot addresses one media field of the profile draft.
type mediaSlot struct {
	kind  slotKind
	index int
}

func (s mediaSlot) mediaKind() media.Kind {
	if s.kind == slotIntroVideo {
		return media.KindVideo
	}
	return media.KindImage
}

func (s mediaSlot) label() string {
	switch s.kind {
	case slotIntroVideo:
		return "Intro video"
	case slotThumbnail:
		return fmt.Sprintf("Picture %d", s.index+1)
	default:
		return fmt.Sprintf("Proof %d", s.index+1)
	}
}

type mediaPickedMsg struct {
	slot mediaSlot
	uri  string
}

// PickerModel asks for a media path and hands the result back to the screen that opened it.
type PickerModel struct {
	env          *Env
	slot         mediaSlot
	back         tea.Model
	pathInput    textinput.Model
	err          error
	windowWidth  int
	windowHeight int
}

func NewPickerModel(env *Env, slot mediaSlot, back tea.Model) PickerModel {
	pathInput := textinput.New()
	pathInput.Placeholder = "Path or URL (e.g. ~/Pictures/work.jpg)"
	pathInput.Focus()
	pathInput.CharLimit = 512
	pathInput.Width = 60

	return PickerModel{
		env:       env,
		slot:      slot,
		back:      back,
		pathInput: pathInput,
	}
}

func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.pathInput.Width = msg.Width - 20
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if msg.String() == "esc" {
			return returnTo(m.env, m.back, m.windowWidth, m.windowHeight)
		}

		if msg.String() == "enter" {
			return m.pick()
		}
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m PickerModel) pick() (tea.Model, tea.Cmd) {
	var uri string
	var err error
	if m.slot.mediaKind() == media.KindVideo {
		uri, err = m.env.Picker.PickVideo(m.pathInput.Value())
	} else {
		uri, err = m.env.Picker.PickImage(m.pathInput.Value())
	}

	if errors.Is(err, media.ErrCancelled) {
		return returnTo(m.env, m.back, m.windowWidth, m.windowHeight)
	}
	if err != nil {
		m.err = err
		return m, nil
	}

	back, cmd := returnTo(m.env, m.back, m.windowWidth, m.windowHeight)
	picked := mediaPickedMsg{slot: m.slot, uri: uri}
	return back, tea.Batch(cmd, func() tea.Msg { return picked })
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Upload %s", strings.ToLower(m.slot.label()))) + "\n\n")
	b.WriteString(normalStyle.Render(fmt.Sprintf("Choose a %s file:", m.slot.mediaKind())) + "\n\n")
	b.WriteString(focusedStyle.Render("Path:") + "\n")
	b.WriteString(m.pathInput.View() + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	b.WriteString(helpStyle.Render("enter: choose • empty enter/esc: cancel"))

	return b.String()
}
