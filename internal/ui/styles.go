package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	messageFromMeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("111")).
				Align(lipgloss.Right)

	messageFromOtherStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("120"))

	messageHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 1).
			Width(34)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Underline(true)

	starOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	starOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Padding(0, 2)

	toastSuccessStyle = toastStyle.
				Foreground(lipgloss.Color("120"))

	toastErrorStyle = toastStyle.
			Foreground(lipgloss.Color("203"))

	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
