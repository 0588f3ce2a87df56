package sbdbg

import (
	"runtime"

	"github.com/slok/sbdbg/internal/native"
)

// Target is a program loaded in a debugger, running or not.
type Target struct {
	h *handle[native.TargetRef]
}

func newTarget(h *handle[native.TargetRef]) *Target { return &Target{h: h} }

// WrapTarget takes the ownership of raw without checking its validity.
func WrapTarget(raw TargetRef) *Target {
	return newTarget(newHandle(current(), &targetKind, raw))
}

// MaybeWrapTarget takes the ownership of raw when it's valid. An invalid
// handle is disposed and false is returned.
func MaybeWrapTarget(raw TargetRef) (*Target, bool) {
	return maybeWrap(current(), &targetKind, raw, newTarget)
}

// IsValid asks the native side whether the target is still alive. Deleting
// the target from its debugger invalidates it.
func (t *Target) IsValid() bool { return t.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (t *Target) Raw() TargetRef { return t.h.get() }

// Close disposes the native target handle. The target stays in its debugger.
func (t *Target) Close() { t.h.close() }

// String is the brief description of the target.
func (t *Target) String() string { return t.Description(DescriptionLevelBrief) }

// Description renders the target at the given verbosity.
func (t *Target) Description(level DescriptionLevel) string {
	return describe(t.h, func(be native.Backend, raw native.TargetRef, s native.StreamRef) bool {
		return be.TargetGetDescription(raw, s, level)
	})
}

// Equal reports whether both wrappers denote the same native target.
func (t *Target) Equal(other *Target) bool {
	if other == nil {
		return false
	}
	eq := call(t.h, func(be native.Backend, raw native.TargetRef) bool {
		return be.TargetIsEqual(raw, other.h.get())
	})
	runtime.KeepAlive(other)
	return eq
}

// Executable returns the main executable file of the target.
func (t *Target) Executable() (*FileSpec, bool) {
	return maybeChild(t.h, &fileSpecKind, native.Backend.TargetGetExecutable, newFileSpec)
}

// Modules enumerates the modules currently loaded in the target.
func (t *Target) Modules() *Enumerator[*Module] {
	return enumerate(t.h, &moduleKind, native.Backend.TargetGetNumModules, native.Backend.TargetGetModuleAtIndex, newModule)
}

// Breakpoints enumerates the breakpoints set on the target.
func (t *Target) Breakpoints() *Enumerator[*Breakpoint] {
	return enumerate(t.h, &breakpointKind, native.Backend.TargetGetNumBreakpoints, native.Backend.TargetGetBreakpointAtIndex, newBreakpoint)
}

// BreakpointCreateByLocation sets a breakpoint on a source file and line. A
// breakpoint that matches no code yet is still created, without locations.
func (t *Target) BreakpointCreateByLocation(file string, line uint32) (*Breakpoint, bool) {
	return maybeChild(t.h, &breakpointKind, func(be native.Backend, raw native.TargetRef) native.BreakpointRef {
		return be.TargetBreakpointCreateByLocation(raw, file, line)
	}, newBreakpoint)
}

// BreakpointDelete removes the breakpoint with the given ID.
func (t *Target) BreakpointDelete(id int32) bool {
	return call(t.h, func(be native.Backend, raw native.TargetRef) bool {
		return be.TargetBreakpointDelete(raw, id)
	})
}
