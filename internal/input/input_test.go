package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestEdgeDetection(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyF3, glfw.Press)
	assert.True(t, m.JustPressed(ActionToggleOverlay))
	assert.True(t, m.IsActive(ActionToggleOverlay))

	m.HandleKeyEvent(glfw.KeyF3, glfw.Repeat)
	m.PostUpdate()
	assert.False(t, m.JustPressed(ActionToggleOverlay), "repeat is not a new press")
	assert.True(t, m.IsActive(ActionToggleOverlay))

	m.HandleKeyEvent(glfw.KeyF3, glfw.Release)
	assert.False(t, m.IsActive(ActionToggleOverlay))
}

func TestAlternateBindings(t *testing.T) {
	m := NewManager()
	m.HandleKeyEvent(glfw.KeyA, glfw.Press)
	assert.True(t, m.IsActive(ActionOrbitLeft))
	m.HandleKeyEvent(glfw.KeyA, glfw.Release)

	m.UnbindKey(glfw.KeyA)
	m.HandleKeyEvent(glfw.KeyA, glfw.Press)
	assert.False(t, m.IsActive(ActionOrbitLeft))

	m.BindKey(glfw.KeyQ, ActionQuit)
	m.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	assert.True(t, m.JustPressed(ActionQuit))
}

func TestOutOfRangeAction(t *testing.T) {
	m := NewManager()
	m.BindKey(glfw.KeyZ, ActionCount)
	m.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	assert.False(t, m.IsActive(ActionCount))
	assert.False(t, m.JustPressed(-1))
}
