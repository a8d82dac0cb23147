package config

import "sync"

// RuntimeSettings holds values changed while the app runs
type RuntimeSettings struct {
	mu           sync.RWMutex
	fpsLimit     int // 0 means unlimited
	debugOverlay bool
}

var globalRuntimeSettings = &RuntimeSettings{
	debugOverlay: true,
}

// Apply seeds the runtime settings from startup settings
func Apply(s Settings) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.fpsLimit = clampFPS(s.Window.FPSLimit)
	globalRuntimeSettings.debugOverlay = s.Render.DebugOverlay
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.fpsLimit = clampFPS(limit)
}

func clampFPS(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit < 10 {
		return 10
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

// GetDebugOverlay reports whether the shadow map overlay is drawn
func GetDebugOverlay() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.debugOverlay
}

// ToggleDebugOverlay flips the overlay and returns the new value
func ToggleDebugOverlay() bool {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.debugOverlay = !globalRuntimeSettings.debugOverlay
	return globalRuntimeSettings.debugOverlay
}
