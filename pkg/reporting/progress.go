package reporting

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OutputFormat represents the progress output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTUI  OutputFormat = "tui"
)

// ProgressReporter reports orchestration run progress
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{
		format: format,
		logger: logger,
	}
}

// ReportState reports the current run state
func (pr *ProgressReporter) ReportState(state LiveRunState) {
	switch pr.format {
	case FormatJSON:
		pr.reportJSON(state)
	case FormatTUI:
		pr.reportTUI(state)
	default:
		pr.reportText(state)
	}
}

// ReportStateTransition reports a state transition
func (pr *ProgressReporter) ReportStateTransition(from, to string) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":      "state_transition",
			"from_state": from,
			"to_state":   to,
			"timestamp":  time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("State Transition: %s -> %s\n", from, to)
	default:
		fmt.Printf("[STATE] %s -> %s\n", from, to)
	}
}

// ReportStepStarted reports a scenario step starting
func (pr *ProgressReporter) ReportStepStarted(step StepInfo) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "step_started",
			"step":      step,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("Step: %s (%s)\n", step.Name, step.ScenarioName)
		if step.FaultSummary != "" {
			fmt.Printf("   %s\n", step.FaultSummary)
		}
	default:
		fmt.Printf("[STEP] %s: %s\n", step.Name, step.ScenarioName)
	}
}

// ReportRunCompleted reports run completion
func (pr *ProgressReporter) ReportRunCompleted(report *RunReport) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "run_completed",
			"report":    report,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		pr.printRunSummary(report)
	default:
		pr.printTextSummary(report)
	}
}

// reportText outputs progress in plain text format
func (pr *ProgressReporter) reportText(state LiveRunState) {
	elapsed := time.Since(state.StartTime).Round(time.Second)
	fmt.Printf("[%s] %s | Elapsed: %s\n",
		time.Now().Format("15:04:05"),
		state.State,
		elapsed,
	)

	if state.CurrentStep != nil {
		fmt.Printf("  Step %d: %s\n", state.StepIndex, state.CurrentStep.Name)
	}
}

// reportJSON outputs progress in JSON format
func (pr *ProgressReporter) reportJSON(state LiveRunState) {
	data, err := json.Marshal(state)
	if err != nil {
		pr.logger.Error("Failed to marshal state", "error", err)
		return
	}
	fmt.Println(string(data))
}

// reportTUI outputs progress in terminal UI format
func (pr *ProgressReporter) reportTUI(state LiveRunState) {
	pr.clearScreen()

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("   Chaos Run: %s\n", state.ScenarioName)
	fmt.Printf("   Run ID: %s\n", state.RunID)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	fmt.Printf("State: %s\n", state.State)
	fmt.Printf("Elapsed: %s\n", state.Elapsed.Round(time.Second))
	fmt.Println()

	if state.CurrentStep != nil {
		fmt.Printf("Current Step (%d): %s\n", state.StepIndex, state.CurrentStep.Name)
		if state.CurrentStep.FaultSummary != "" {
			fmt.Printf("   %s\n", state.CurrentStep.FaultSummary)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("-", 80))
}

// printRunSummary prints a run summary in TUI format
func (pr *ProgressReporter) printRunSummary(report *RunReport) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("   RUN SUMMARY")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	statusText := "COMPLETED"
	if !report.Success {
		statusText = "FAILED"
	}
	if report.Status == StatusCancelled {
		statusText = "CANCELLED"
	}

	fmt.Printf("Run %s\n", statusText)
	fmt.Printf("   Scenario: %s\n", report.ScenarioName)
	fmt.Printf("   Run ID: %s\n", report.RunID)
	fmt.Printf("   Duration: %s\n", report.Duration)
	fmt.Println()

	if len(report.Steps) > 0 {
		fmt.Printf("Steps (%d):\n", len(report.Steps))
		for _, step := range report.Steps {
			fmt.Printf("   - %s: %s\n", step.Name, step.ScenarioName)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 80))
}

// printTextSummary prints a run summary in plain text format
func (pr *ProgressReporter) printTextSummary(report *RunReport) {
	status := "COMPLETED"
	if !report.Success {
		status = "FAILED"
	}
	if report.Status == StatusCancelled {
		status = "CANCELLED"
	}

	fmt.Printf("\n[RUN SUMMARY] %s\n", status)
	fmt.Printf("  Scenario: %s\n", report.ScenarioName)
	fmt.Printf("  Run ID: %s\n", report.RunID)
	fmt.Printf("  Duration: %s\n", report.Duration)
	fmt.Printf("  Steps: %d\n", len(report.Steps))
	fmt.Println()
}

// clearScreen clears the terminal screen
func (pr *ProgressReporter) clearScreen() {
	fmt.Print("\033[2J\033[H")
}

// clearLine clears the current line
func (pr *ProgressReporter) clearLine() {
	fmt.Print("\033[K")
}
