package reporting_test

import (
	"fmt"
	"os"
	"time"

	"github.com/mockforge/mockforge-chaos/pkg/reporting"
)

// Example demonstrates the reporting package usage
func Example() {
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelInfo,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	logger.Info("orchestration run starting")
	logger.Info("step started", "name", "spike_latency")

	storage, err := reporting.NewStorage("./run-reports", 10, logger)
	if err != nil {
		fmt.Printf("Failed to create storage: %v\n", err)
		return
	}
	defer os.RemoveAll("./run-reports")

	report := &reporting.RunReport{
		RunID:        "run-12345",
		ScenarioName: "checkout-degraded",
		StartTime:    time.Now().Add(-5 * time.Minute),
		EndTime:      time.Now(),
		Duration:     "5m0s",
		Status:       reporting.StatusCompleted,
		Success:      true,
		Steps: []reporting.StepInfo{
			{
				Name:            "spike_latency",
				ScenarioName:    "latency-spike",
				FaultSummary:    "fixed_delay_ms=500",
				StartTime:       time.Now().Add(-4 * time.Minute),
				EndTime:         time.Now().Add(-1 * time.Minute),
				Duration:        "3m0s",
				DelayBeforeSecs: 0,
			},
		},
	}

	path, err := storage.SaveReport(report)
	if err != nil {
		fmt.Printf("Failed to save report: %v\n", err)
		return
	}

	fmt.Printf("Report saved successfully\n")

	summaries, err := storage.ListReports()
	if err != nil {
		fmt.Printf("Failed to list reports: %v\n", err)
		return
	}

	fmt.Printf("Found %d report(s)\n", len(summaries))
	for _, summary := range summaries {
		fmt.Printf("  %s: %s (%s)\n", summary.RunID, summary.ScenarioName, summary.Status)
	}

	loadedReport, err := storage.LoadReport(path)
	if err != nil {
		fmt.Printf("Failed to load report: %v\n", err)
		return
	}

	fmt.Printf("Loaded report for run: %s\n", loadedReport.RunID)

	formatter := reporting.NewFormatter(logger)

	textPath := "./run-reports/report.txt"
	if err := formatter.GenerateReport(report, reporting.ReportFormatText, textPath); err != nil {
		fmt.Printf("Failed to generate text report: %v\n", err)
		return
	}
	fmt.Printf("Text report generated\n")

	htmlPath := "./run-reports/report.html"
	if err := formatter.GenerateReport(report, reporting.ReportFormatHTML, htmlPath); err != nil {
		fmt.Printf("Failed to generate HTML report: %v\n", err)
		return
	}
	fmt.Printf("HTML report generated\n")

	// Output will vary due to timestamps, so we don't include it
}
