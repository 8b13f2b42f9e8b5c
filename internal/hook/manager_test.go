package hook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir string, manifest Manifest) {
	t.Helper()
	hookDir := filepath.Join(dir, manifest.Name)
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		t.Fatalf("failed to create hook dir: %v", err)
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(hookDir, "hook.json"), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()

	writeManifest(t, tmpDir, Manifest{
		Name:        "grab-logger",
		Version:     "1.0.0",
		Description: "Logs grab events",
		Executable:  "grab-logger",
		Events:      []string{"grab_started", "grab_ended"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	hooks := manager.List()
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}

	h := hooks[0]
	if h.Manifest.Name != "grab-logger" {
		t.Errorf("expected hook name 'grab-logger', got %q", h.Manifest.Name)
	}
	if len(h.Manifest.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(h.Manifest.Events))
	}
	if h.Path != filepath.Join(tmpDir, "grab-logger") {
		t.Errorf("unexpected hook path %q", h.Path)
	}
}

func TestManager_Discover_MultipleHooks(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"hook-a", "hook-b"} {
		writeManifest(t, tmpDir, Manifest{Name: name, Version: "1.0.0", Executable: name})
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	if got := len(manager.List()); got != 2 {
		t.Fatalf("expected 2 hooks, got %d", got)
	}
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, Manifest{Name: "my-hook", Version: "2.0.0", Executable: "my-hook-bin"})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	h, err := manager.Get("my-hook")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if h.Manifest.Version != "2.0.0" {
		t.Errorf("expected version '2.0.0', got %q", h.Manifest.Version)
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager(t.TempDir())

	if _, err := manager.Get("nonexistent-hook"); err != ErrHookNotFound {
		t.Errorf("expected ErrHookNotFound, got %v", err)
	}
}

func TestManager_Discover_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	hookDir := filepath.Join(tmpDir, "bad-hook")
	if err := os.MkdirAll(hookDir, 0755); err != nil {
		t.Fatalf("failed to create hook dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(hookDir, "hook.json"), []byte("not valid json"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed unexpectedly: %v", err)
	}

	if got := len(manager.List()); got != 0 {
		t.Fatalf("expected 0 hooks (invalid JSON should be skipped), got %d", got)
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	manager := NewManager("/path/that/does/not/exist")

	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed on non-existent dir: %v", err)
	}
	if got := len(manager.List()); got != 0 {
		t.Fatalf("expected 0 hooks, got %d", got)
	}
}

func TestHook_WantsEvent(t *testing.T) {
	subscribed := &Hook{Manifest: Manifest{Events: []string{"grab_started"}}}
	if !subscribed.WantsEvent("grab_started") {
		t.Error("expected subscription to grab_started")
	}
	if subscribed.WantsEvent("grab_ended") {
		t.Error("did not expect subscription to grab_ended")
	}

	catchAll := &Hook{}
	if !catchAll.WantsEvent("grab_attempt") {
		t.Error("expected empty events list to match everything")
	}
}
