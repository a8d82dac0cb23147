package graphics

import (
	"fmt"
	"io/fs"
	"log"

	"shadowscene/internal/gpu"
)

// ProgramName identifies one program of the set. Sources live next to each
// other as <name>.vert and <name>.frag.
type ProgramName string

const (
	ProgramScene  ProgramName = "scene"  // plain diffuse, no shadows
	ProgramSky    ProgramName = "sky"    // gradient skybox
	ProgramScreen ProgramName = "screen" // texture to full viewport
	ProgramDepth  ProgramName = "depth"  // depth only, light space
	ProgramShadow ProgramName = "shadow" // diffuse + PCF shadow lookup
	ProgramDebug  ProgramName = "debug"  // raw texture view
)

// Programs lists every program in load order
var Programs = []ProgramName{
	ProgramScene,
	ProgramSky,
	ProgramScreen,
	ProgramDepth,
	ProgramShadow,
	ProgramDebug,
}

// VertexPath returns the vertex source file of name
func (n ProgramName) VertexPath() string { return string(n) + ".vert" }

// FragmentPath returns the fragment source file of name
func (n ProgramName) FragmentPath() string { return string(n) + ".frag" }

// ProgramSet owns every shader program of the pipeline
type ProgramSet struct {
	ctx      *gpu.Context
	src      fs.FS
	programs map[ProgramName]*Shader
}

// LoadProgramSet compiles all programs from src. Any failure is fatal to
// the caller; programs linked before the failure are released.
func LoadProgramSet(ctx *gpu.Context, src fs.FS) (*ProgramSet, error) {
	ps := &ProgramSet{
		ctx:      ctx,
		src:      src,
		programs: make(map[ProgramName]*Shader, len(Programs)),
	}
	for _, name := range Programs {
		s, err := NewShader(ctx, src, string(name), name.VertexPath(), name.FragmentPath())
		if err != nil {
			ps.Dispose()
			return nil, err
		}
		ps.programs[name] = s
	}
	return ps, nil
}

// Get returns the named program. Names outside Programs are a programming
// error.
func (ps *ProgramSet) Get(name ProgramName) *Shader {
	s, ok := ps.programs[name]
	if !ok {
		panic(fmt.Sprintf("graphics: unknown program %q", name))
	}
	return s
}

// Use activates the named program and returns it for uniform updates
func (ps *ProgramSet) Use(name ProgramName) *Shader {
	s := ps.Get(name)
	s.Use()
	return s
}

// Reload recompiles name from its sources. On failure the previous program
// stays in place.
func (ps *ProgramSet) Reload(name ProgramName) error {
	s := ps.Get(name)
	id, err := compileFromFS(ps.ctx, ps.src, name.VertexPath(), name.FragmentPath())
	if err != nil {
		return fmt.Errorf("reload %q: %w", name, err)
	}
	s.replace(id)
	log.Printf("reloaded program %q", name)
	return nil
}

// ByPath maps a source file name back to its program
func ByPath(path string) (ProgramName, bool) {
	for _, name := range Programs {
		if path == name.VertexPath() || path == name.FragmentPath() {
			return name, true
		}
	}
	return "", false
}

// Dispose deletes every program
func (ps *ProgramSet) Dispose() {
	for _, name := range Programs {
		if s, ok := ps.programs[name]; ok {
			s.Dispose()
			delete(ps.programs, name)
		}
	}
}
