package sbdbg

import "github.com/slok/sbdbg/internal/native"

// Breakpoint is a breakpoint definition. It resolves into one location per
// matching address.
type Breakpoint struct {
	h *handle[native.BreakpointRef]
}

func newBreakpoint(h *handle[native.BreakpointRef]) *Breakpoint { return &Breakpoint{h: h} }

// WrapBreakpoint takes the ownership of raw, valid or not. The returned breakpoint
// disposes it on Close.
func WrapBreakpoint(raw BreakpointRef) *Breakpoint {
	return newBreakpoint(newHandle(current(), &breakpointKind, raw))
}

// MaybeWrapBreakpoint takes the ownership of raw only when it's valid. Otherwise
// raw is disposed right away and false is returned.
func MaybeWrapBreakpoint(raw BreakpointRef) (*Breakpoint, bool) {
	return maybeWrap(current(), &breakpointKind, raw, newBreakpoint)
}

// IsValid asks the native side whether the breakpoint still exists. Deleting
// it from its target invalidates it.
func (b *Breakpoint) IsValid() bool { return b.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (b *Breakpoint) Raw() BreakpointRef { return b.h.get() }

// Close disposes the native breakpoint handle. The breakpoint stays set.
func (b *Breakpoint) Close() { b.h.close() }

// String describes the breakpoint, empty when it can't be described.
func (b *Breakpoint) String() string {
	return describe(b.h, native.Backend.BreakpointGetDescription)
}

// ID returns the target wide ID of the breakpoint, 0 when it's invalid.
func (b *Breakpoint) ID() int32 { return call(b.h, native.Backend.BreakpointGetID) }

// IsEnabled reports whether the breakpoint stops the debuggee at all.
func (b *Breakpoint) IsEnabled() bool { return call(b.h, native.Backend.BreakpointIsEnabled) }

// SetEnabled enables or disables the whole breakpoint. Its locations keep
// their own flag.
func (b *Breakpoint) SetEnabled(enabled bool) {
	do(b.h, func(be native.Backend, raw native.BreakpointRef) { be.BreakpointSetEnabled(raw, enabled) })
}

// Locations enumerates the resolved locations of the breakpoint.
func (b *Breakpoint) Locations() *Enumerator[*BreakpointLocation] {
	return enumerate(b.h, &breakpointLocationKind, native.Backend.BreakpointGetNumLocations, native.Backend.BreakpointGetLocationAtIndex, newBreakpointLocation)
}
