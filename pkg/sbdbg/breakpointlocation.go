package sbdbg

import "github.com/slok/sbdbg/internal/native"

// BreakpointLocation is one address a breakpoint resolved to. It has its own
// enabled flag and ignore count, independent from its breakpoint.
type BreakpointLocation struct {
	h *handle[native.BreakpointLocationRef]
}

func newBreakpointLocation(h *handle[native.BreakpointLocationRef]) *BreakpointLocation {
	return &BreakpointLocation{h: h}
}

// WrapBreakpointLocation takes the ownership of raw, valid or not. The returned location
// disposes it on Close.
func WrapBreakpointLocation(raw BreakpointLocationRef) *BreakpointLocation {
	return newBreakpointLocation(newHandle(current(), &breakpointLocationKind, raw))
}

// MaybeWrapBreakpointLocation takes the ownership of raw only when it's valid. Otherwise
// raw is disposed right away and false is returned.
func MaybeWrapBreakpointLocation(raw BreakpointLocationRef) (*BreakpointLocation, bool) {
	return maybeWrap(current(), &breakpointLocationKind, raw, newBreakpointLocation)
}

// IsValid asks the native side whether the location is usable.
func (l *BreakpointLocation) IsValid() bool { return l.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (l *BreakpointLocation) Raw() BreakpointLocationRef { return l.h.get() }

// Close disposes the native location handle. Closing twice is a no-op.
func (l *BreakpointLocation) Close() { l.h.close() }

// String is the brief description of the location.
func (l *BreakpointLocation) String() string { return l.Description(DescriptionLevelBrief) }

// Description renders the location at the given verbosity, empty when it
// can't be described.
func (l *BreakpointLocation) Description(level DescriptionLevel) string {
	return describe(l.h, func(be native.Backend, raw native.BreakpointLocationRef, s native.StreamRef) bool {
		return be.BreakpointLocationGetDescription(raw, s, level)
	})
}

// ID returns the ID of the location within its breakpoint.
func (l *BreakpointLocation) ID() int32 { return call(l.h, native.Backend.BreakpointLocationGetID) }

// Address returns the section relative address of the location, false when
// it has none.
func (l *BreakpointLocation) Address() (*Address, bool) {
	return maybeChild(l.h, &addressKind, native.Backend.BreakpointLocationGetAddress, newAddress)
}

// LoadAddress returns where the location is in memory, InvalidAddress while
// it is unresolved.
func (l *BreakpointLocation) LoadAddress() uint64 {
	return call(l.h, native.Backend.BreakpointLocationGetLoadAddress)
}

// IsEnabled reports the flag of the location alone.
func (l *BreakpointLocation) IsEnabled() bool {
	return call(l.h, native.Backend.BreakpointLocationIsEnabled)
}

// SetEnabled enables or disables only this location.
func (l *BreakpointLocation) SetEnabled(enabled bool) {
	do(l.h, func(be native.Backend, raw native.BreakpointLocationRef) {
		be.BreakpointLocationSetEnabled(raw, enabled)
	})
}

// IgnoreCount is the number of hits skipped before the location stops.
func (l *BreakpointLocation) IgnoreCount() uint32 {
	return call(l.h, native.Backend.BreakpointLocationGetIgnoreCount)
}

// SetIgnoreCount sets how many hits are skipped.
func (l *BreakpointLocation) SetIgnoreCount(count uint32) {
	do(l.h, func(be native.Backend, raw native.BreakpointLocationRef) {
		be.BreakpointLocationSetIgnoreCount(raw, count)
	})
}

// IsResolved reports whether the location has a load address.
func (l *BreakpointLocation) IsResolved() bool {
	return call(l.h, native.Backend.BreakpointLocationIsResolved)
}

// Breakpoint returns the breakpoint that owns the location.
func (l *BreakpointLocation) Breakpoint() *Breakpoint {
	return wrapChild(l.h, &breakpointKind, native.Backend.BreakpointLocationGetBreakpoint, newBreakpoint)
}
