package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "mockforge-chaosd",
	Short: "Chaos & behavioral-cloning core for MockForge mocks",
	Long: `mockforge-chaosd exercises the chaos scenario orchestrator, incident
replay generator, reality continuum blender, and behavioral probability
engine that make a MockForge mock misbehave like a real production
system.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(orchestrateCmd)
	rootCmd.AddCommand(incidentReplayCmd)
	rootCmd.AddCommand(blendCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(amplifyCmd)
}

// Commands are defined in separate files:
// - validateCmd in validate.go
// - orchestrateCmd in orchestrate.go
// - incidentReplayCmd in incident_replay.go
// - blendCmd in blend.go
// - learnCmd (+ probability/sequences subcommands) in learn.go
// - amplifyCmd in amplify.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
