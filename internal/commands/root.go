package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ederv/plandeck/internal/app"
	"github.com/ederv/plandeck/internal/config"
	"github.com/ederv/plandeck/internal/ui"
	"github.com/ederv/plandeck/internal/ui/theme"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagView   string
	flagTheme  string
	flagAPIURL string
	flagDev    bool
)

var rootCmd = &cobra.Command{
	Use:   "plandeck",
	Short: "A terminal client for your planning backend",
	Long: `plandeck is a terminal UI for a personal planning backend.
It shows your tasks on a kanban board, your projects on a draggable
timeline, and your schedule in a day or week agenda, keeping every
change in sync with the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&flagView, "view", "", "Starting view (board, timeline, agenda)")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme name (nord, dracula, gruvbox)")
	rootCmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Backend base URL (overrides PLANDECK_API_URL)")
	rootCmd.Flags().BoolVar(&flagDev, "dev", false, "Talk to a local backend without auth")

	rootCmd.AddCommand(versionCmd)
}

func runTUI() error {
	cfg := config.Load()
	if flagAPIURL != "" {
		cfg.APIBaseURL = flagAPIURL
	}
	if flagDev {
		cfg.DevMode = true
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}

	if t, ok := theme.ByName(cfg.Theme); ok {
		theme.SetTheme(t)
	} else if cfg.Theme != "" {
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	model := ui.NewRootModel(application)
	if view, ok := viewByName(flagView); ok {
		model = model.WithView(view)
	} else if flagView != "" {
		return fmt.Errorf("unknown view %q", flagView)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

func viewByName(name string) (ui.View, bool) {
	switch name {
	case "board":
		return ui.ViewBoard, true
	case "timeline":
		return ui.ViewTimeline, true
	case "agenda":
		return ui.ViewAgenda, true
	}
	return ui.ViewBoard, false
}
