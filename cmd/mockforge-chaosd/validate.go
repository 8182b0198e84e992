package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Args:  cobra.NoArgs,
	Short: "Validate an orchestrated scenario file",
	Long:  `Loads an OrchestratedScenario YAML/JSON file and reports validation errors and warnings.`,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().String("file", "", "path to an orchestrated scenario file (- or omitted for stdin)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var sc scenario.OrchestratedScenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("failed to parse orchestrated scenario: %w", err)
	}

	v := scenario.New()
	v.ValidateOrchestrated(sc)

	if v.HasErrors() {
		fmt.Print(v.GetReport())
		return fmt.Errorf("scenario %q failed validation with %d error(s)", sc.ID, len(v.Errors))
	}

	if v.HasWarnings() {
		fmt.Print(v.GetReport())
	}

	fmt.Printf("scenario %q is valid (%d step(s))\n", sc.ID, len(sc.Steps))
	return nil
}
