package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/behavioral"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Build a probability or sequence model from recorded traffic",
}

func init() {
	learnCmd.AddCommand(learnProbabilityCmd)
	learnCmd.AddCommand(learnSequencesCmd)
}

// recordedExchangeInput is the CLI-facing shape fed to
// `learn probability`: a plain JSON document rather than
// behavioral.RecordedExchange directly, so raw response bodies travel
// as JSON values instead of base64 byte slices.
type recordedExchangeInput struct {
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	StatusCode   uint16          `json:"status_code"`
	ResponseBody json.RawMessage `json:"response_body,omitempty"`
	RequestBody  json.RawMessage `json:"request_body,omitempty"`
	DurationMs   *uint64         `json:"duration_ms,omitempty"`
	TraceID      *string         `json:"trace_id,omitempty"`
	Timestamp    time.Time       `json:"timestamp,omitempty"`
}

type probabilityRequest struct {
	Endpoint  string                  `json:"endpoint"`
	Method    string                  `json:"method"`
	Exchanges []recordedExchangeInput `json:"exchanges"`
}

var learnProbabilityCmd = &cobra.Command{
	Use:   "probability",
	Args:  cobra.NoArgs,
	Short: "Build an EndpointProbabilityModel from recorded exchanges",
	RunE:  runLearnProbability,
}

func init() {
	learnProbabilityCmd.Flags().String("file", "", "path to a {endpoint, method, exchanges} document (- or omitted for stdin)")
}

func runLearnProbability(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req probabilityRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse probability request: %w", err)
	}

	exchanges := make([]behavioral.RecordedExchange, 0, len(req.Exchanges))
	for _, e := range req.Exchanges {
		exchanges = append(exchanges, behavioral.RecordedExchange{
			Method:       e.Method,
			Path:         e.Path,
			StatusCode:   e.StatusCode,
			ResponseBody: []byte(e.ResponseBody),
			RequestBody:  []byte(e.RequestBody),
			DurationMs:   e.DurationMs,
			TraceID:      e.TraceID,
			Timestamp:    e.Timestamp,
		})
	}

	model, err := behavioral.BuildProbabilityModel(req.Endpoint, req.Method, exchanges)
	if err != nil {
		return fmt.Errorf("failed to build probability model: %w", err)
	}

	out, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal probability model: %w", err)
	}

	fmt.Println(string(out))
	return nil
}

// traceStepInput mirrors behavioral.TraceStep for JSON input.
type traceStepInput struct {
	Endpoint  string    `json:"endpoint"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}

type sequencesRequest struct {
	Traces       [][]traceStepInput `json:"traces"`
	MinFrequency float64            `json:"min_frequency"`
}

var learnSequencesCmd = &cobra.Command{
	Use:   "sequences",
	Args:  cobra.NoArgs,
	Short: "Mine BehavioralSequences from traces grouped by trace ID",
	RunE:  runLearnSequences,
}

func init() {
	learnSequencesCmd.Flags().String("file", "", "path to a {traces, min_frequency} document (- or omitted for stdin)")
}

func runLearnSequences(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req sequencesRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse sequences request: %w", err)
	}

	traces := make([]behavioral.Trace, 0, len(req.Traces))
	for _, t := range req.Traces {
		trace := make(behavioral.Trace, 0, len(t))
		for _, step := range t {
			trace = append(trace, behavioral.TraceStep{
				Endpoint:  step.Endpoint,
				Method:    step.Method,
				Timestamp: step.Timestamp,
			})
		}
		traces = append(traces, trace)
	}

	sequences, err := behavioral.MineSequences(traces, req.MinFrequency)
	if err != nil {
		return fmt.Errorf("failed to mine sequences: %w", err)
	}

	out, err := json.MarshalIndent(sequences, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mined sequences: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
