// Package app hosts the frame driver: it owns the loop, pacing, resizes and
// shader reloads.
package app

import (
	"log"
	"sync/atomic"
	"time"

	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/renderer"
	"shadowscene/internal/profiling"
)

// SlowFrame is the frame time above which the top tasks are logged
const SlowFrame = 16 * time.Millisecond

// Window is the part of a glfw window the loop needs
type Window interface {
	ShouldClose() bool
	SwapBuffers()
}

// Reloader recompiles a program from source
type Reloader interface {
	Reload(name graphics.ProgramName) error
}

type App struct {
	window  Window
	poll    func()
	driver  renderer.FrameDriver
	limiter *FPSLimiter

	reloader Reloader
	reloads  <-chan graphics.ProgramName
	pending  map[graphics.ProgramName]bool

	// update runs after events are polled, before the frame is drawn
	update func(delta float64)

	// resize is queued by window callbacks and applied before the next frame
	resize    [2]int
	resizeSet bool
	start     time.Time
	now       func() time.Time
	lastStamp float64
	quit      atomic.Bool
}

// New returns an app driving driver. poll processes window events and is
// usually glfw.PollEvents.
func New(window Window, poll func(), driver renderer.FrameDriver) *App {
	return &App{
		window:  window,
		poll:    poll,
		driver:  driver,
		limiter: NewFPSLimiter(),
		pending: make(map[graphics.ProgramName]bool),
		now:     time.Now,
	}
}

// SetUpdate installs a per-frame callback; delta is in milliseconds
func (a *App) SetUpdate(fn func(delta float64)) {
	a.update = fn
}

// WatchReloads applies program names received on changes through r
func (a *App) WatchReloads(changes <-chan graphics.ProgramName, r Reloader) {
	a.reloads = changes
	a.reloader = r
}

// QueueReload schedules names for recompilation before the next frame.
// It needs a Reloader installed by WatchReloads.
func (a *App) QueueReload(names ...graphics.ProgramName) {
	for _, name := range names {
		a.pending[name] = true
	}
}

// QueueResize records the latest framebuffer size. Only the last one queued
// before a frame is applied.
func (a *App) QueueResize(width, height int) {
	a.resize = [2]int{width, height}
	a.resizeSet = true
}

// RequestClose stops the loop after the current frame. Safe from any goroutine.
func (a *App) RequestClose() {
	a.quit.Store(true)
}

func (a *App) Run() {
	a.start = a.now()
	for !a.window.ShouldClose() && !a.quit.Load() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()

	func() {
		defer profiling.Track("app.pollEvents")()
		a.poll()
	}()
	stamp := float64(a.now().Sub(a.start).Microseconds()) / 1000
	if a.update != nil {
		a.update(stamp - a.lastStamp)
	}
	a.applyReloads()
	a.applyResize()

	a.driver.OnFrame(stamp, stamp-a.lastStamp)
	a.lastStamp = stamp

	func() {
		defer profiling.Track("app.swapBuffers")()
		a.window.SwapBuffers()
	}()

	if d := time.Since(startTick); d > SlowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}
	a.limiter.Wait()
}

func (a *App) applyResize() {
	if !a.resizeSet {
		return
	}
	a.resizeSet = false
	if err := a.driver.OnResize(a.resize[0], a.resize[1]); err != nil {
		log.Printf("resize: %v", err)
	}
}

func (a *App) applyReloads() {
	if a.reloader == nil {
		clear(a.pending)
		return
	}
drain:
	for {
		select {
		case name := <-a.reloads:
			a.pending[name] = true
		default:
			break drain
		}
	}
	for _, name := range graphics.Programs {
		if !a.pending[name] {
			continue
		}
		if err := a.reloader.Reload(name); err != nil {
			log.Printf("shader reload: %v", err)
		}
	}
	clear(a.pending)
}
