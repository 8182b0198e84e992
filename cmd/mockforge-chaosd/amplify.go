package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/behavioral"
)

// amplifyRequest carries a status-code distribution and edge
// amplification parameters. Status codes travel as JSON object keys
// (strings) and are converted to uint16 before calling Amplify.
type amplifyRequest struct {
	Distribution  map[string]float64 `json:"distribution"`
	RareThreshold float64            `json:"rare_threshold"`
	BoostFactor   float64            `json:"boost_factor"`
	TargetMass    float64            `json:"target_mass"`
}

var amplifyCmd = &cobra.Command{
	Use:   "amplify",
	Args:  cobra.NoArgs,
	Short: "Apply edge amplification to a status-code distribution",
	Long: `Reads a {distribution, rare_threshold, boost_factor, target_mass}
JSON document and prints the re-normalized distribution with rare
outcomes boosted.`,
	RunE: runAmplify,
}

func init() {
	amplifyCmd.Flags().String("file", "", "path to an amplify request document (- or omitted for stdin)")
}

func runAmplify(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req amplifyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse amplify request: %w", err)
	}

	dist := make(map[uint16]float64, len(req.Distribution))
	for code, p := range req.Distribution {
		var c uint16
		if _, err := fmt.Sscanf(code, "%d", &c); err != nil {
			return fmt.Errorf("invalid status code %q in distribution: %w", code, err)
		}
		dist[c] = p
	}

	cfg := behavioral.EdgeAmplificationConfig{
		Enabled:       true,
		Scope:         behavioral.GlobalScope(),
		RareThreshold: req.RareThreshold,
		BoostFactor:   req.BoostFactor,
		TargetMass:    req.TargetMass,
	}

	amplified := behavioral.Amplify(dist, cfg)

	out, err := json.MarshalIndent(amplified, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal amplified distribution: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
