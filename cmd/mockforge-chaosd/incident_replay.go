package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/incident"
)

var incidentReplayCmd = &cobra.Command{
	Use:   "incident-replay",
	Args:  cobra.NoArgs,
	Short: "Synthesize an orchestrated scenario from an incident timeline",
	Long: `Ingests a production incident timeline (in mockforge's own
IncidentTimeline shape, or via a third-party adapter) and lowers it to
an OrchestratedScenario by bucketing events into 30-second windows.`,
	RunE: runIncidentReplay,
}

func init() {
	incidentReplayCmd.Flags().String("file", "", "path to an incident timeline (- or omitted for stdin)")
	incidentReplayCmd.Flags().String("adapter", "native", "input format: native, pagerduty, datadog")
	incidentReplayCmd.Flags().String("output-format", "json", "output format: json, yaml")
}

func runIncidentReplay(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	adapter, _ := cmd.Flags().GetString("adapter")
	outFormat, _ := cmd.Flags().GetString("output-format")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg)

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var timeline incident.IncidentTimeline
	switch adapter {
	case "native", "":
		timeline, err = incident.ImportTimelineJSON(data)
		if err != nil {
			timeline, err = incident.ImportTimelineYAML(data)
		}
	case "pagerduty":
		timeline, err = incident.FromPagerDutyLike(data)
	case "datadog":
		timeline, err = incident.FromDatadogLike(data)
	default:
		return fmt.Errorf("unknown adapter %q (want native, pagerduty, or datadog)", adapter)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest incident timeline: %w", err)
	}

	if err := timeline.Validate(); err != nil {
		return fmt.Errorf("invalid incident timeline: %w", err)
	}

	gen := incident.NewGenerator(logger)
	orchestrated, err := gen.GenerateScenario(timeline)
	if err != nil {
		return fmt.Errorf("failed to generate scenario: %w", err)
	}

	var out []byte
	switch outFormat {
	case "json", "":
		out, err = incident.ExportScenarioJSON(orchestrated)
	case "yaml":
		out, err = incident.ExportScenarioYAML(orchestrated)
	default:
		return fmt.Errorf("unknown output-format %q (want json or yaml)", outFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to export scenario: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
