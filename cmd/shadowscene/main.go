package main

import (
	"flag"
	"log"
	"runtime"
	"time"

	"shadowscene/internal/app"
	"shadowscene/internal/config"
	"shadowscene/internal/graphics"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "shadowscene.toml", "settings file; defaults are used when it does not exist")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	config.Apply(settings)

	if err := glfw.Init(); err != nil {
		panic(err)
	}

	window, err := setupWindow(settings.Window)
	if err != nil {
		glfw.Terminate()
		panic(err)
	}

	res, err := setupPipeline(window, settings)
	if err != nil {
		glfw.Terminate()
		panic(err)
	}

	a := app.New(window, glfw.PollEvents, res.pipeline)
	var changes <-chan graphics.ProgramName
	if res.watcher != nil {
		changes = res.watcher.Changes
	}
	a.WatchReloads(changes, res.pipeline.Programs())
	setupInputHandlers(window, a, res)

	// SIGINT and SIGTERM stop the loop; GPU teardown stays on this thread.
	done := make(chan struct{})
	closer.Bind(func() {
		select {
		case <-done:
			return
		default:
		}
		a.RequestClose()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			log.Println("shutdown timed out")
		}
	})

	a.Run()

	res.dispose()
	window.Destroy()
	glfw.Terminate()
	close(done)
	closer.Close()
}
