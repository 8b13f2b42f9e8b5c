// Package main provides a grab-logger hook.
// It appends every received grab event to a log file next to the hook.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Request represents the input from the hook executor.
type Request struct {
	Event      string  `json:"event"`
	Grabber    string  `json:"grabber"`
	Object     string  `json:"object,omitempty"`
	ObjectName string  `json:"object_name,omitempty"`
	Strength   float64 `json:"strength,omitempty"`
	Timestamp  int64   `json:"timestamp"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

const logFile = "grabs.log"

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if err := appendEntry(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to write log: %v", err))
		return
	}

	writeSuccessResponse()
}

// appendEntry writes one human-readable line per event.
func appendEntry(req *Request) error {
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	at := time.UnixMilli(req.Timestamp).Format(time.RFC3339)
	line := fmt.Sprintf("%s %s grabber=%s object=%s", at, req.Event, req.Grabber, req.ObjectName)
	if req.Strength > 0 {
		line += fmt.Sprintf(" strength=%.2f", req.Strength)
	}
	_, err = fmt.Fprintln(f, line)
	return err
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
