// Package hook provides discovery and execution of external hook programs
// that react to grab events.
package hook

import "encoding/json"

// Manifest describes a hook's metadata and the events it subscribes to.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Events       []string        `json:"events"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request represents a grab event sent to a hook for execution.
type Request struct {
	Event      string          `json:"event"`
	Grabber    string          `json:"grabber"`
	Object     string          `json:"object,omitempty"`
	ObjectName string          `json:"object_name,omitempty"`
	Strength   float64         `json:"strength,omitempty"`
	Timestamp  int64           `json:"timestamp"`
	Config     json.RawMessage `json:"config,omitempty"`
}

// Response represents the response from a hook execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook represents a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// WantsEvent reports whether the hook subscribes to the given event. An
// empty events list subscribes to everything.
func (h *Hook) WantsEvent(event string) bool {
	if len(h.Manifest.Events) == 0 {
		return true
	}
	for _, e := range h.Manifest.Events {
		if e == event {
			return true
		}
	}
	return false
}
