package reporting

import "time"

// RunReport represents a complete orchestrated scenario run.
type RunReport struct {
	// Run metadata
	RunID        string    `json:"run_id"`
	ScenarioName string    `json:"scenario_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Duration     string    `json:"duration"`

	// Run result
	Status  RunStatus `json:"status"`
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`

	// Step-by-step detail
	Steps []StepInfo `json:"steps"`

	// Errors encountered
	Errors []string `json:"errors,omitempty"`
}

// RunStatus represents the status of an orchestrated run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

// StepInfo contains information about one executed scenario step.
type StepInfo struct {
	Name            string    `json:"name"`
	ScenarioName    string    `json:"scenario_name"`
	FaultSummary    string    `json:"fault_summary,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time,omitempty"`
	Duration        string    `json:"duration,omitempty"`
	DelayBeforeSecs uint64    `json:"delay_before_secs"`
}

// LiveRunState represents the current state of a running orchestration.
type LiveRunState struct {
	RunID        string        `json:"run_id"`
	ScenarioName string        `json:"scenario_name"`
	State        string        `json:"state"`
	StartTime    time.Time     `json:"start_time"`
	Elapsed      time.Duration `json:"elapsed"`

	StepIndex   int       `json:"step_index"`
	CurrentStep *StepInfo `json:"current_step,omitempty"`
}
