package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"purets/internal/config"
	"purets/internal/diagfmt"
	"purets/internal/engine"
	"purets/internal/source"
	"purets/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:   "view <files|dirs...>",
	Short: "Check files with an interactive progress view, then print diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runView,
}

// runView is a thin convenience wrapper over check: it runs the same
// pipeline but drives a Bubble Tea progress model while files are being
// analyzed, then prints the same pretty diagnostics check would.
func runView(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	files, err := discoverFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .ts/.tsx files found in the given arguments")
	}

	fileSet := source.NewFileSet()
	events := make(chan engine.Event, 256)

	resultsCh := make(chan []engine.FileResult, 1)
	go func() {
		resultsCh <- engine.RunFiles(cmd.Context(), fileSet, files, cfg.ProjectCapabilities(), events)
	}()

	model := ui.NewProgressModel("purets check", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	results := <-resultsCh
	if uiErr != nil {
		return uiErr
	}

	hasErrors := false
	for _, r := range results {
		cfg.Apply(r.Bag)
		r.Bag.Sort()
		if r.Bag.HasErrors() {
			hasErrors = true
		}
	}

	opts := diagfmt.PrettyOpts{Color: resolveColor(colorFlag), Context: 2, PathMode: diagfmt.PathModeAuto}
	for _, r := range results {
		if r.Bag.Len() == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "\n== %s ==\n", r.Path)
		diagfmt.Pretty(os.Stdout, r.Bag, fileSet, opts)
	}

	if hasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
