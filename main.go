package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/barter/internal/config"
	"github.com/saravenpi/barter/internal/directory"
	"github.com/saravenpi/barter/internal/media"
	"github.com/saravenpi/barter/internal/store"
	"github.com/saravenpi/barter/internal/ui"
)

const version = "1.0.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "-v", "--version":
			fmt.Printf("Barter v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		case "seed":
			if err := seed(); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		default:
			fmt.Printf("Unknown command: %s\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("BARTER_CONFIG"))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.LogFile, "barter")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	dir := directory.New(cfg.DirectoryDir())
	if n, err := dir.Seed(); err != nil {
		log.Printf("seeding directory: %v", err)
	} else if n > 0 {
		log.Printf("seeded %d freelancers into %s", n, dir.Dir())
	}

	env := &ui.Env{
		Config:    cfg,
		Store:     st,
		Directory: dir,
		Location:  cfg.LocationProvider(),
		Picker:    media.FilePicker{},
	}

	p := tea.NewProgram(ui.NewApp(env), tea.WithAltScreen())
	env.Notifier = ui.NewProgramNotifier(p)

	log.Printf("starting barter v%s as %q", version, cfg.User.Name)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func seed() error {
	cfg, err := config.Load(os.Getenv("BARTER_CONFIG"))
	if err != nil {
		return err
	}

	dir := directory.New(cfg.DirectoryDir())
	n, err := dir.Seed()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Printf("Directory %s already has profiles, nothing to do\n", dir.Dir())
		return nil
	}
	fmt.Printf("Wrote %d sample profiles to %s\n", n, dir.Dir())
	return nil
}

func printHelp() {
	help := `Barter - Terminal Skill Barter Client

Usage:
  barter             Start the client
  barter seed        Write sample freelancer profiles
  barter version     Show version information
  barter help        Show this help message

Navigation:
  ↑/↓ or j/k        Navigate lists
  Enter             Select/Open item
  ESC               Go back
  q                 Quit from current view
  ctrl+c            Force quit

Menu:
  🃏 Discover       Swipe through freelancers
  📍 Nearby         Freelancers around you
  💬 Chats          Your conversations
  👤 Profile        Edit your profile

Discover:
  ←/h               Skip
  →/l               Like
  enter or i        More info
  c                 Chat
  /                 Search by skill
  x                 Clear skill filter
  r                 Start over

More info:
  1-5               Rate
  ←/→               Choose proof
  enter             Open proof (←/→ to browse, esc to close)
  c                 Chat

Chat:
  n, c or enter     Compose message
  ctrl+s            Send message (while composing)
  i                 More info
  r                 Refresh messages

Profile:
  tab/shift+tab     Move between fields and media slots
  enter             Pick media for the focused slot
  ctrl+s            Save profile

Storage:
  Configuration is read from ~/.barter/config.yml, BARTER_* variables and .env
  Freelancers are stored in ~/.barter/freelancers/ as YAML files
  Your profile, messages and ratings live in ~/.barter/barter.db
`
	fmt.Print(help)
}
