package sbdbg

import (
	"runtime"

	"github.com/slok/sbdbg/internal/native"
)

// Debugger is the root of a debugging session. Every other entity is
// reached from it.
type Debugger struct {
	h *handle[native.DebuggerRef]
}

func newDebugger(h *handle[native.DebuggerRef]) *Debugger { return &Debugger{h: h} }

// Create creates a new debugger instance. When sourceInitFiles is set the
// native side consults the user init files while creating it.
func Create(sourceInitFiles bool) *Debugger {
	e := current()
	d := newDebugger(newHandle(e, &debuggerKind, e.be.CreateDebugger(sourceInitFiles)))
	e.logger.Debugf("Debugger created (source init files: %t)", sourceInitFiles)
	return d
}

// WrapDebugger takes the ownership of raw without checking its validity.
func WrapDebugger(raw DebuggerRef) *Debugger {
	return newDebugger(newHandle(current(), &debuggerKind, raw))
}

// MaybeWrapDebugger takes the ownership of raw when it's valid. An invalid
// handle is disposed and false is returned.
func MaybeWrapDebugger(raw DebuggerRef) (*Debugger, bool) {
	return maybeWrap(current(), &debuggerKind, raw, newDebugger)
}

// IsValid asks the native side whether the debugger is usable.
func (d *Debugger) IsValid() bool { return d.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (d *Debugger) Raw() DebuggerRef { return d.h.get() }

// Close disposes the native debugger. Closing twice is a no-op.
func (d *Debugger) Close() { d.h.close() }

// String describes the debugger, empty when it can't be described.
func (d *Debugger) String() string {
	return describe(d.h, native.Backend.DebuggerGetDescription)
}

// Async reports whether run control calls return before the debuggee stops.
func (d *Debugger) Async() bool { return call(d.h, native.Backend.DebuggerGetAsync) }

// SetAsync switches between synchronous and asynchronous run control.
func (d *Debugger) SetAsync(async bool) {
	do(d.h, func(be native.Backend, raw native.DebuggerRef) { be.DebuggerSetAsync(raw, async) })
}

// Targets enumerates the targets the debugger currently knows about.
func (d *Debugger) Targets() *Enumerator[*Target] {
	return enumerate(d.h, &targetKind, native.Backend.DebuggerGetNumTargets, native.Backend.DebuggerGetTargetAtIndex, newTarget)
}

// CreateTarget creates a target for the executable at filename.
func (d *Debugger) CreateTarget(filename string) (*Target, bool) {
	return maybeChild(d.h, &targetKind, func(be native.Backend, raw native.DebuggerRef) native.TargetRef {
		return be.DebuggerCreateTarget(raw, filename)
	}, newTarget)
}

// DeleteTarget removes t from the debugger. The wrapper stays owned by the
// caller and becomes invalid.
func (d *Debugger) DeleteTarget(t *Target) bool {
	ok := call(d.h, func(be native.Backend, raw native.DebuggerRef) bool {
		return be.DebuggerDeleteTarget(raw, t.h.get())
	})
	runtime.KeepAlive(t)
	return ok
}
