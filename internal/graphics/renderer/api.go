package renderer

import (
	"fmt"

	"shadowscene/internal/config"
)

// FrameDriver is what the host loop calls into
type FrameDriver interface {
	// OnFrame renders one frame. timestamp is milliseconds since start.
	OnFrame(timestamp, delta float64)
	// OnResize reallocates size-dependent targets
	OnResize(width, height int) error
}

// PostPass selects what happens after the lit pass
type PostPass int

const (
	// PostPassNone draws the lit scene straight to the window
	PostPassNone PostPass = iota
	// PostPassBlit draws into the screen target and copies it to the window
	PostPassBlit
)

func (p PostPass) String() string {
	switch p {
	case PostPassBlit:
		return config.PostPassBlit
	default:
		return config.PostPassNone
	}
}

// ParsePostPass maps a settings value to a PostPass
func ParsePostPass(s string) (PostPass, error) {
	switch s {
	case "", config.PostPassNone:
		return PostPassNone, nil
	case config.PostPassBlit:
		return PostPassBlit, nil
	}
	return PostPassNone, fmt.Errorf("post pass %q: %w", s, config.ErrInvalid)
}
