package fake

import (
	"os"
	"path"
	"strings"

	"github.com/slok/sbdbg/internal/native"
)

// The native object graph. Handles point at these through slots; the
// objects outlive the handles and carry their own liveness.

type debugger struct {
	id       int
	name     string
	async    bool
	initFile string
	targets  []*target
}

type target struct {
	alive       bool
	executable  fileSpec
	modules     []*module
	breakpoints []*breakpoint
	nextBreakID int32
}

type module struct {
	target       *target
	alive        bool
	file         fileSpec
	platformFile fileSpec
	fileAddress  uint64
	size         uint64
	slide        uint64
	lines        []LineFixture
}

func (m *module) valid() bool {
	return m != nil && m.alive && m.target.alive
}

func (m *module) contains(addr uint64) bool {
	if m.size == 0 {
		return true
	}
	return addr >= m.fileAddress && addr-m.fileAddress < m.size
}

func (m *module) row(addr uint64) (LineFixture, bool) {
	for _, r := range m.lines {
		if addr >= r.Address && addr-r.Address < max(r.Size, 1) {
			return r, true
		}
	}
	return LineFixture{}, false
}

// fileSpec is a value object, its components come from the string pool.
type fileSpec struct {
	dir  string
	name string
}

func (f fileSpec) valid() bool { return f.dir != "" || f.name != "" }

func (f fileSpec) path() string {
	switch {
	case f.dir == "":
		return f.name
	case f.name == "":
		return f.dir
	default:
		return path.Join(f.dir, f.name)
	}
}

// address is a value object: a section offset resolved against a module.
type address struct {
	module   *module
	fileAddr uint64
}

func (a address) valid() bool {
	return a.module.valid() && a.fileAddr != native.InvalidAddress
}

func (a address) loadAddress(t *target) uint64 {
	if !a.valid() || t == nil || !t.alive || a.module.target != t {
		return native.InvalidAddress
	}
	return a.fileAddr + a.module.slide
}

type lineEntry struct {
	start  address
	end    address
	file   fileSpec
	line   uint32
	column uint32
}

func (l lineEntry) valid() bool { return l.start.valid() }

type breakpoint struct {
	target    *target
	id        int32
	alive     bool
	enabled   bool
	locations []*location
}

func (b *breakpoint) valid() bool {
	return b != nil && b.alive && b.target.alive
}

type location struct {
	breakpoint  *breakpoint
	id          int32
	addr        address
	enabled     bool
	resolved    bool
	ignoreCount uint32
}

func (l *location) valid() bool {
	return l != nil && l.breakpoint.valid()
}

type stream struct {
	buf strings.Builder
}

// newTarget instantiates a target for a program, preset breakpoints included.
func (e *Engine) newTarget(filename string) *target {
	t := &target{
		alive:       true,
		executable:  e.splitPath(filename),
		nextBreakID: 1,
	}

	prog, ok := e.fixture.program(filename)
	if !ok {
		prog = ProgramFixture{
			Executable: filename,
			Modules:    []ModuleFixture{{Path: filename}},
		}
	}

	for _, mf := range prog.Modules {
		platformPath := mf.PlatformPath
		if platformPath == "" {
			platformPath = mf.Path
		}
		t.modules = append(t.modules, &module{
			target:       t,
			alive:        true,
			file:         e.splitPath(mf.Path),
			platformFile: e.splitPath(platformPath),
			fileAddress:  mf.FileAddress,
			size:         mf.Size,
			slide:        mf.Slide,
			lines:        mf.Lines,
		})
	}

	for _, bf := range prog.Breakpoints {
		b := t.addBreakpoint(boolOr(bf.Enabled, true))
		for _, lf := range bf.Locations {
			b.addLocation(address{module: t.modules[lf.Module], fileAddr: lf.Address}, boolOr(lf.Resolved, true), boolOr(lf.Enabled, true), lf.IgnoreCount)
		}
	}

	return t
}

func (t *target) addBreakpoint(enabled bool) *breakpoint {
	b := &breakpoint{
		target:  t,
		id:      t.nextBreakID,
		alive:   true,
		enabled: enabled,
	}
	t.nextBreakID++
	t.breakpoints = append(t.breakpoints, b)
	return b
}

func (b *breakpoint) addLocation(addr address, resolved, enabled bool, ignoreCount uint32) *location {
	l := &location{
		breakpoint:  b,
		id:          int32(len(b.locations) + 1),
		addr:        addr,
		enabled:     enabled,
		resolved:    resolved,
		ignoreCount: ignoreCount,
	}
	b.locations = append(b.locations, l)
	return l
}

// splitPath splits a path into pooled directory and filename components.
func (e *Engine) splitPath(p string) fileSpec {
	if p == "" {
		return fileSpec{}
	}

	dir, name := path.Split(p)
	if dir != "/" {
		dir = strings.TrimSuffix(dir, "/")
	}
	return fileSpec{dir: e.intern(dir), name: e.intern(name)}
}

func (e *Engine) intern(s string) string {
	if s == "" {
		return ""
	}
	if pooled, ok := e.pool[s]; ok {
		return pooled
	}
	e.pool[s] = s
	return s
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
