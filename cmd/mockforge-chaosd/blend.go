package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/blender"
)

// blendRequest is the JSON shape a caller feeds to `blend`: a mock
// value, a real value, a global ratio, and an optional per-path
// override map.
type blendRequest struct {
	Mock        interface{}        `json:"mock"`
	Real        interface{}        `json:"real"`
	Ratio       float64            `json:"ratio"`
	FieldConfig map[string]float64 `json:"field_config,omitempty"`
	Strategy    string             `json:"strategy,omitempty"`
}

var blendCmd = &cobra.Command{
	Use:   "blend",
	Args:  cobra.NoArgs,
	Short: "Blend a mock JSON response with a real one",
	Long: `Reads a {mock, real, ratio, field_config, strategy} JSON document
and prints the blended JSON value, exercising the reality continuum
blender directly without a live upstream fetch.`,
	RunE: runBlend,
}

func init() {
	blendCmd.Flags().String("file", "", "path to a blend request document (- or omitted for stdin)")
}

func runBlend(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req blendRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse blend request: %w", err)
	}

	var fieldConfig *blender.FieldRealityConfig
	if len(req.FieldConfig) > 0 {
		fieldConfig = blender.NewFieldRealityConfig(req.FieldConfig)
	}

	strategy := blender.StrategyFieldLevel
	switch req.Strategy {
	case "", "field_level":
	case "weighted":
		strategy = blender.StrategyWeighted
	case "body_blend":
		strategy = blender.StrategyBodyBlend
	default:
		return fmt.Errorf("unknown strategy %q (want field_level, weighted, or body_blend)", req.Strategy)
	}

	result := blender.Blend(req.Mock, req.Real, req.Ratio, fieldConfig, strategy)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal blended result: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
