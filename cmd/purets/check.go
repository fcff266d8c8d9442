package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"purets/internal/config"
	"purets/internal/diag"
	"purets/internal/diagfmt"
	"purets/internal/engine"
	"purets/internal/project"
	"purets/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check <files|dirs...>",
	Short: "Run the rule catalog over TypeScript sources and print diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif|msgpack)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("max-diagnostics", 0, "truncate rendered JSON/msgpack output to at most N diagnostics (0 = unbounded)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
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
	results := engine.RunFiles(cmd.Context(), fileSet, files, cfg.ProjectCapabilities(), nil)

	hasErrors := false
	for _, r := range results {
		cfg.Apply(r.Bag)
		r.Bag.Sort()
		if r.Bag.HasErrors() {
			hasErrors = true
		}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	useColor := resolveColor(colorFlag)

	switch format {
	case "pretty":
		opts := diagfmt.PrettyOpts{Color: useColor, Context: 2, PathMode: pathMode}
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			diagfmt.Pretty(os.Stdout, r.Bag, fileSet, opts)
		}
	case "short":
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if out := diag.FormatShortDiagnostics(r.Bag.Items(), fileSet); out != "" {
				fmt.Fprintln(os.Stdout, out)
			}
		}
	case "json":
		opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, Max: maxDiagnostics}
		for _, r := range results {
			if err := diagfmt.JSON(os.Stdout, r.Bag, fileSet, opts); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	case "msgpack":
		opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, Max: maxDiagnostics}
		for _, r := range results {
			if err := diagfmt.Msgpack(os.Stdout, r.Bag, fileSet, opts); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{ToolName: "purets", ToolVersion: rootCmd.Version}
		for _, r := range results {
			if err := diagfmt.Sarif(os.Stdout, r.Bag, fileSet, meta); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if hasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func loadConfig(explicitPath string) (*config.Config, error) {
	path := explicitPath
	if path == "" {
		if _, err := os.Stat("purets.toml"); err == nil {
			path = "purets.toml"
		}
	}
	var cfg *config.Config
	if path == "" {
		cfg = config.Default()
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		cfg, err = config.Load(abs)
		if err != nil {
			return nil, err
		}
	}

	if data, err := os.ReadFile("package.json"); err == nil {
		if pkg, err := project.ParsePackageJSON(data); err == nil {
			cfg.InferFromPackageJSON(pkg)
		}
	}

	return cfg, nil
}
