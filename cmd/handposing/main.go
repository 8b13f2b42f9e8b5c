package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cyhunter/handposing/internal/app"
	"github.com/cyhunter/handposing/internal/config"
	"github.com/cyhunter/handposing/internal/server"
	"github.com/cyhunter/handposing/internal/store"
	"github.com/cyhunter/handposing/internal/track"
	"github.com/cyhunter/handposing/internal/tray"
)

func main() {
	fmt.Println("Handposing - Hand Pose Snapping and Grab Tracking")

	configPath := flag.String("config", "", "path to the TOML config file")
	withTray := flag.Bool("tray", false, "run with a system tray icon")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".handposing")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if *configPath == "" {
		*configPath = filepath.Join(dataDir, "config.toml")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "handposing.db")
	}
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	hookDir := cfg.HookDir
	if hookDir == "" {
		hookDir = filepath.Join(dataDir, "hooks")
	}

	events := server.NewEventHub()

	a := app.New(app.Config{
		Store:   st,
		HookDir: hookDir,
		Events:  events,
		Tracking: track.Config{
			ReleaseThreshold: cfg.ReleaseThreshold,
			GrabThreshold:    cfg.GrabThreshold,
		},
		TickHz: cfg.TickHz,
	})

	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start simulation loop: %v", err)
	}
	defer a.Stop()
	a.SetEnabled(true)

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir(dataDir)
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		Events:    events,
	})

	if *withTray {
		t := tray.New()
		t.OnToggle(a.SetEnabled)
		t.OnQuit(func() { os.Exit(0) })
		a.OnEvent = func(e server.Event) {
			if e.Type == server.EventGrabStarted {
				t.SetLastGrab(e.ObjectName)
			}
		}
		go t.Run()
	}

	fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks "web", "../web", "../../web", and the data directory.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
