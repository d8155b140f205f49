package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/slicer-guide/internal/config"
	"github.com/ruminaider/slicer-guide/internal/paths"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "slicer-guide",
	Short: "First-run printer and filament setup for the slicer",
	Long:  "slicer-guide walks through choosing printers, nozzles and filaments from a slicer profile and reports the selection back to the host.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slicer-guide %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.slicer-guide/config.yaml)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config named by --config, or the default location.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = paths.ConfigFile()
	}
	return config.Load(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
