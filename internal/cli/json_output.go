// json_output.go - Machine-readable output for the slashdrop commands.
//
// Every command that accepts --json prints the same envelope so scripts can
// check "success" before looking at "data".
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// JSONResponse is the envelope shared by all commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a failed response. data may carry partial
// results (check reports the commands that did decode).
func NewJSONErrorResponse(command string, err error, data interface{}) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      data,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response, indented, to stdout.
func (r *JSONResponse) Print() error {
	return r.Fprint(os.Stdout)
}

// Fprint writes the response, indented, to w.
func (r *JSONResponse) Fprint(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(r)
}

// String returns the response as indented JSON.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// OutputJSON runs handler. In JSON mode its result is wrapped in the
// envelope; otherwise the handler is expected to have printed for itself.
func OutputJSON(w io.Writer, jsonMode bool, command string, handler func() (interface{}, error)) error {
	data, err := handler()
	if !jsonMode {
		return err
	}
	if err != nil {
		NewJSONErrorResponse(command, err, data).Fprint(w)
		return err
	}
	return NewJSONResponse(command, data).Fprint(w)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// TemplateData is one template as reported by match and check.
type TemplateData struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// MatchData is returned by the match command.
type MatchData struct {
	Text      string         `json:"text"`
	Decision  string         `json:"decision"`
	Trigger   string         `json:"trigger,omitempty"`
	Templates []TemplateData `json:"templates,omitempty"`
	Anchor    *PointData     `json:"anchor,omitempty"`
	// Result is the content after --pick replaced the trigger.
	Result      *string `json:"result,omitempty"`
	ConfigError string  `json:"config_error,omitempty"`
}

// PointData is a cell position.
type PointData struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CheckData is returned by the check command.
type CheckData struct {
	Source        string        `json:"source"`
	Commands      []CommandData `json:"commands"`
	AllowedGroups []int         `json:"allowed_groups,omitempty"`
	Problems      []string      `json:"problems,omitempty"`
}

// CommandData summarises one decoded command.
type CommandData struct {
	Trigger       string `json:"trigger"`
	Templates     int    `json:"templates"`
	AllowedGroups []int  `json:"allowed_groups,omitempty"`
	Restricted    bool   `json:"restricted"`
}

// ConfigData is returned by the config command.
type ConfigData struct {
	Path  string      `json:"path,omitempty"`
	Key   string      `json:"key,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// VersionData is returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}
