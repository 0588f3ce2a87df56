package sbdbg

import "github.com/slok/sbdbg/internal/native"

// Raw native handles. They can be copied freely: a copy carries no disposal
// right, only the wrapper built over a handle does.
type (
	DebuggerRef           = native.DebuggerRef
	TargetRef             = native.TargetRef
	ModuleRef             = native.ModuleRef
	FileSpecRef           = native.FileSpecRef
	LineEntryRef          = native.LineEntryRef
	AddressRef            = native.AddressRef
	BreakpointRef         = native.BreakpointRef
	BreakpointLocationRef = native.BreakpointLocationRef
	StreamRef             = native.StreamRef
)

// NativeBackend is the native debugger API the layer forwards to.
type NativeBackend = native.Backend

// InvalidAddress is returned by address queries that have no answer.
const InvalidAddress = native.InvalidAddress
