package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/orchestrator"
	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
	"github.com/mockforge/mockforge-chaos/pkg/emergency"
	"github.com/mockforge/mockforge-chaos/pkg/metrics"
)

var orchestrateCmd = &cobra.Command{
	Use:   "orchestrate",
	Args:  cobra.NoArgs,
	Short: "Run an orchestrated scenario to completion",
	Long: `Loads an OrchestratedScenario file and drives it through the
orchestrator state machine, installing each step's ChaosConfig into the
active-config slot for its window. Ctrl-C or the emergency stop file
cancels the run cooperatively.`,
	RunE: runOrchestrate,
}

func init() {
	orchestrateCmd.Flags().String("file", "", "path to an orchestrated scenario file (- or omitted for stdin)")
	orchestrateCmd.Flags().Bool("dry-run", false, "validate the scenario without running it")
}

func runOrchestrate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg)

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
		return fmt.Errorf("scenario %q failed validation", sc.ID)
	}
	if v.HasWarnings() {
		fmt.Print(v.GetReport())
	}

	if dryRun {
		fmt.Printf("scenario %q is valid (%d step(s)), not running (--dry-run)\n", sc.ID, len(sc.Steps))
		return nil
	}

	if cfg.Metrics.Enabled {
		metrics.NewRegistry(prometheus.DefaultRegisterer)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			logger.Info("metrics endpoint listening", "addr", cfg.Metrics.Addr)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Warn("metrics endpoint stopped", "error", err.Error())
			}
		}()
	}

	slot := &orchestrator.ActiveConfigSlot{}
	orch := orchestrator.New(sc, slot, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller := emergency.New(emergency.Config{
		StopFile:             cfg.Emergency.StopFile,
		PollInterval:         time.Second,
		EnableSignalHandlers: true,
	})
	emergency.WireKillswitch(controller, orch)
	controller.Start(ctx)

	logger.Info("orchestrator starting", "scenario", sc.ID, "steps", len(sc.Steps))
	final := orch.Run()
	logger.Info("orchestrator finished", "scenario", sc.ID, "state", final.String())

	if final == orchestrator.StateCancelled {
		return fmt.Errorf("scenario %q was cancelled", sc.ID)
	}
	return nil
}
