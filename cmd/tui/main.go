package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/kanishkm/recyclit/cmd/tui/ui"
	"github.com/kanishkm/recyclit/internal/api"
	"github.com/kanishkm/recyclit/internal/config"
	"github.com/kanishkm/recyclit/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	apiURL := pflag.String("api-url", cfg.API.BaseURL, "base URL of the pickup backend")
	sessionFile := pflag.String("session-file", cfg.Session.File, "where to persist the session")
	noPersist := pflag.Bool("no-persist", false, "do not persist the session between runs")
	pflag.Parse()

	if *noPersist {
		*sessionFile = ""
	}

	client := api.NewClient(*apiURL, cfg.API.Timeout)

	sessions := session.NewStore(*sessionFile)
	sessions.Load()

	p := tea.NewProgram(
		ui.NewModel(client, sessions),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
