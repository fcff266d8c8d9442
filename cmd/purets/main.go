package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "purets",
	Short: "Static analyzer enforcing a pure TypeScript style",
	Long:  `purets parses TypeScript source files and reports style violations against a fixed rule catalog.`,
}

func main() {
	rootCmd.Version = "0.1.0"
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(viewCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to purets.toml (defaults to ./purets.toml if present)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
