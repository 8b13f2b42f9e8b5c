// Package app provides the main application logic for the hand posing
// daemon: it owns the scene of grabbable objects, drives every grabber
// from its tracked inputs, and fans grab events out to WebSocket clients
// and hooks.
package app

import (
	"log"
	"sync"

	"github.com/cyhunter/handposing/internal/grab"
	"github.com/cyhunter/handposing/internal/hook"
	"github.com/cyhunter/handposing/internal/server"
	"github.com/cyhunter/handposing/internal/store"
	"github.com/cyhunter/handposing/internal/track"
)

// DefaultTickHz is the update rate of the simulation loop when the
// configuration leaves it unset.
const DefaultTickHz = 60

// HookTimeoutMs bounds how long a hook may run per event.
const HookTimeoutMs = 5000

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	HookDir  string
	Events   *server.EventHub
	Tracking track.Config
	TickHz   int
}

// driver pairs a grabber with the live inputs that feed it each tick.
type driver struct {
	name     string
	grabber  *grab.Grabber
	poses    track.PoseProvider
	flex     track.FlexProvider
	touching map[*grab.Grabbable]bool
}

// App is the main application that orchestrates grab simulation and event
// delivery.
type App struct {
	config   Config
	registry *grab.Registry
	hookMgr  *hook.Manager
	hookExec *hook.Executor

	// OnEvent, when set, receives every dispatched grab event in addition
	// to the hub and hooks.
	OnEvent func(e server.Event)

	grabbables map[string]*grab.Grabbable
	drivers    []*driver

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.TickHz <= 0 {
		config.TickHz = DefaultTickHz
	}
	if config.Tracking.GrabThreshold <= 0 {
		config.Tracking = track.DefaultConfig()
	}

	return &App{
		config:     config,
		registry:   grab.NewRegistry(),
		hookMgr:    hook.NewManager(config.HookDir),
		hookExec:   hook.NewExecutor(HookTimeoutMs),
		grabbables: make(map[string]*grab.Grabbable),
	}
}

// SetEnabled enables or disables the simulation loop's processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether simulation processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Registry returns the grabber registry.
func (a *App) Registry() *grab.Registry {
	return a.registry
}

// HookManager returns the hook manager.
func (a *App) HookManager() *hook.Manager {
	return a.hookMgr
}

// DiscoverHooks scans the hook directory and loads available hooks.
func (a *App) DiscoverHooks() error {
	return a.hookMgr.Discover()
}

// AddGrabbable registers a scene object. If the store holds a snappable
// with the object's name its grip data is attached on the spot.
func (a *App) AddGrabbable(obj *grab.Grabbable) {
	a.mu.Lock()
	a.grabbables[obj.ID] = obj
	a.mu.Unlock()

	a.attachSnappable(obj)
}

// RemoveGrabbable releases the object from whichever grabber holds it and
// drops it from the scene.
func (a *App) RemoveGrabbable(id string) {
	a.mu.Lock()
	obj, ok := a.grabbables[id]
	if ok {
		delete(a.grabbables, id)
	}
	a.mu.Unlock()

	if !ok {
		return
	}
	a.registry.ForceRelease(obj)
	a.registry.ForceUntouch(obj)
}

// Grabbable returns a scene object by ID, or nil.
func (a *App) Grabbable(id string) *grab.Grabbable {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grabbables[id]
}

// attachSnappable looks up stored grip data by the object's name.
func (a *App) attachSnappable(obj *grab.Grabbable) {
	if a.config.Store == nil {
		return
	}

	meta, err := a.config.Store.Snappables().GetByName(obj.Name)
	if err != nil {
		return // No stored grips for this object
	}

	live, err := a.config.Store.LoadSnappable(meta.ID)
	if err != nil {
		log.Printf("Failed to load snappable %s: %v", obj.Name, err)
		return
	}

	for _, p := range live.Points {
		p.RelativeTo = obj.Pose
	}
	obj.SetSnappable(live)
}

// LoadSnappables re-resolves stored grip data for every scene object.
func (a *App) LoadSnappables() error {
	a.mu.RLock()
	objects := make([]*grab.Grabbable, 0, len(a.grabbables))
	for _, obj := range a.grabbables {
		objects = append(objects, obj)
	}
	a.mu.RUnlock()

	loaded := 0
	for _, obj := range objects {
		a.attachSnappable(obj)
		if obj.Snappable() != nil {
			loaded++
		}
	}
	log.Printf("Loaded grip data for %d of %d objects", loaded, len(objects))
	return nil
}

// RegisterGrabber creates a grabber fed by the given providers, wires its
// events into the hub and hooks, and adds it to the registry.
func (a *App) RegisterGrabber(name string, poses track.PoseProvider, flex track.FlexProvider, volumes ...grab.Volume) *grab.Grabber {
	g := grab.NewGrabber(a.config.Tracking, volumes...)

	g.OnGrabStarted = func(obj *grab.Grabbable) {
		a.dispatch(server.Event{
			Type:       server.EventGrabStarted,
			Grabber:    name,
			Object:     obj.ID,
			ObjectName: obj.Name,
			Strength:   1,
		})
	}
	g.OnGrabEnded = func(obj *grab.Grabbable) {
		a.dispatch(server.Event{
			Type:       server.EventGrabEnded,
			Grabber:    name,
			Object:     obj.ID,
			ObjectName: obj.Name,
		})
	}
	g.OnGrabAttempt = func(obj *grab.Grabbable, strength float64) {
		e := server.Event{
			Type:     server.EventGrabAttempt,
			Grabber:  name,
			Strength: strength,
		}
		if obj != nil {
			e.Object = obj.ID
			e.ObjectName = obj.Name
		}
		a.dispatch(e)
	}

	a.registry.Add(g)

	a.mu.Lock()
	a.drivers = append(a.drivers, &driver{
		name:     name,
		grabber:  g,
		poses:    poses,
		flex:     flex,
		touching: make(map[*grab.Grabbable]bool),
	})
	a.mu.Unlock()

	return g
}

// UnregisterGrabber removes a grabber and its driver. A held object is
// released first.
func (a *App) UnregisterGrabber(g *grab.Grabber) {
	if obj := g.Grabbed(); obj != nil {
		g.ForceRelease(obj)
	}
	a.registry.Remove(g)

	a.mu.Lock()
	defer a.mu.Unlock()
	for i, d := range a.drivers {
		if d.grabber == g {
			a.drivers = append(a.drivers[:i], a.drivers[i+1:]...)
			return
		}
	}
}

// dispatch sends one event to the hub and to every subscribing hook.
func (a *App) dispatch(e server.Event) {
	if a.config.Events != nil {
		a.config.Events.Publish(e)
	}
	if a.OnEvent != nil {
		a.OnEvent(e)
	}

	for _, h := range a.hookMgr.List() {
		if !h.WantsEvent(e.Type) {
			continue
		}
		h := h
		go func() {
			req := &hook.Request{
				Event:      e.Type,
				Grabber:    e.Grabber,
				Object:     e.Object,
				ObjectName: e.ObjectName,
				Strength:   e.Strength,
				Timestamp:  e.Timestamp,
			}
			if _, err := a.hookExec.Execute(h, req); err != nil {
				log.Printf("Hook %s failed: %v", h.Manifest.Name, err)
			}
		}()
	}
}

// grabbableSnapshot returns the current scene objects.
func (a *App) grabbableSnapshot() []*grab.Grabbable {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*grab.Grabbable, 0, len(a.grabbables))
	for _, obj := range a.grabbables {
		out = append(out, obj)
	}
	return out
}

func (a *App) driverSnapshot() []*driver {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*driver(nil), a.drivers...)
}
