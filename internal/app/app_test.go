package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shadowscene/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	frames int
	swaps  int
}

func (w *fakeWindow) ShouldClose() bool { return w.swaps >= w.frames }
func (w *fakeWindow) SwapBuffers() { w.swaps++ }

type frameCall struct {
	stamp, delta float64
}

type fakeDriver struct {
	log     []string
	frames  []frameCall
	resizes [][2]int
	fail    error
}

func (d *fakeDriver) OnFrame(stamp, delta float64) {
	d.log = append(d.log, "frame")
	d.frames = append(d.frames, frameCall{stamp, delta})
}

func (d *fakeDriver) OnResize(w, h int) error {
	d.log = append(d.log, "resize")
	d.resizes = append(d.resizes, [2]int{w, h})
	return d.fail
}

type fakeReloader struct {
	names []graphics.ProgramName
}

func (r *fakeReloader) Reload(name graphics.ProgramName) error {
	r.names = append(r.names, name)
	if name == graphics.ProgramSky {
		return errors.New("broken")
	}
	return nil
}

// newTestApp returns an app whose clock advances 16ms per frame
func newTestApp(frames int, poll func()) (*App, *fakeWindow, *fakeDriver) {
	win := &fakeWindow{frames: frames}
	drv := &fakeDriver{}
	a := New(win, poll, drv)
	a.limiter.limit = func() int { return 0 }

	base := time.Unix(0, 0)
	calls := 0
	a.now = func() time.Time {
		t := base.Add(time.Duration(calls) * 16 * time.Millisecond)
		calls++
		return t
	}
	return a, win, drv
}

func TestRunTimestampsInMilliseconds(t *testing.T) {
	a, win, drv := newTestApp(3, func() {})
	a.Run()

	assert.Equal(t, 3, win.swaps)
	require.Len(t, drv.frames, 3)
	assert.Equal(t, frameCall{16, 16}, drv.frames[0])
	assert.Equal(t, frameCall{32, 16}, drv.frames[1])
	assert.Equal(t, frameCall{48, 16}, drv.frames[2])
}

func TestResizeAppliedBeforeNextFrame(t *testing.T) {
	var a *App
	polls := 0
	a, _, drv := newTestApp(2, func() {
		polls++
		if polls == 2 {
			a.QueueResize(400, 300)
			a.QueueResize(800, 600)
		}
	})
	a.Run()

	assert.Equal(t, []string{"frame", "resize", "frame"}, drv.log)
	assert.Equal(t, [][2]int{{800, 600}}, drv.resizes, "only the latest size is applied")
}

func TestResizeErrorKeepsRunning(t *testing.T) {
	var a *App
	a, win, drv := newTestApp(2, func() { a.QueueResize(1, 1) })
	drv.fail = errors.New("no memory")
	a.Run()
	assert.Equal(t, 2, win.swaps)
	assert.Len(t, drv.frames, 2)
}

func TestRequestCloseStopsLoop(t *testing.T) {
	var a *App
	a, win, _ := newTestApp(100, func() { a.RequestClose() })
	a.Run()
	assert.Equal(t, 1, win.swaps)
}

func TestReloadsAreCoalesced(t *testing.T) {
	a, _, _ := newTestApp(1, func() {})
	changes := make(chan graphics.ProgramName, 8)
	r := &fakeReloader{}
	a.WatchReloads(changes, r)

	changes <- graphics.ProgramShadow
	changes <- graphics.ProgramSky
	changes <- graphics.ProgramShadow
	a.Run()

	assert.Equal(t, []graphics.ProgramName{graphics.ProgramSky, graphics.ProgramShadow}, r.names)
	assert.Empty(t, changes)
}

func TestFPSLimiterPaces(t *testing.T) {
	f := &FPSLimiter{limit: func() int { return 100 }}
	start := time.Now()
	for i := 0; i < 5; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)

	f.limit = func() int { return 0 }
	f.Wait()
	assert.True(t, f.next.IsZero())
}

func TestShaderWatcherReportsPrograms(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "depth.frag")
	require.NoError(t, os.WriteFile(frag, []byte("void main() {}\n"), 0o644))

	sw, err := WatchShaders(dir)
	require.NoError(t, err)
	defer sw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("void main() { }\n"), 0o644))

	select {
	case name := <-sw.Changes:
		assert.Equal(t, graphics.ProgramDepth, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestUpdateRunsBeforeFrame(t *testing.T) {
	a, _, drv := newTestApp(2, func() {})
	var deltas []float64
	a.SetUpdate(func(delta float64) {
		deltas = append(deltas, delta)
		drv.log = append(drv.log, "update")
	})
	a.Run()

	assert.Equal(t, []string{"update", "frame", "update", "frame"}, drv.log)
	assert.Equal(t, []float64{16, 16}, deltas)
}

func TestQueueReload(t *testing.T) {
	a, _, _ := newTestApp(1, func() {})
	r := &fakeReloader{}
	a.WatchReloads(nil, r)
	a.QueueReload(graphics.Programs...)
	a.Run()

	assert.Equal(t, graphics.Programs, r.names)
	assert.Empty(t, a.pending)
}
