// Package native declares the boundary toward the foreign debugger runtime.
//
// Every native object is reached through an opaque handle. Handles of
// different kinds are distinct types and are never interchanged. A handle
// value says nothing about liveness or ownership: it must always be paired
// with the kind's validity predicate and released with the kind's disposal
// call exactly once.
package native

import "unsafe"

// Opaque handles, one type per native object kind. The zero value is the
// null handle.
type (
	DebuggerRef           unsafe.Pointer
	TargetRef             unsafe.Pointer
	ModuleRef             unsafe.Pointer
	FileSpecRef           unsafe.Pointer
	LineEntryRef          unsafe.Pointer
	AddressRef            unsafe.Pointer
	BreakpointRef         unsafe.Pointer
	BreakpointLocationRef unsafe.Pointer
	StreamRef             unsafe.Pointer
)

// DescriptionLevel is the verbosity used when an object describes itself.
type DescriptionLevel uint32

const (
	DescriptionLevelBrief DescriptionLevel = iota
	DescriptionLevelFull
	DescriptionLevelVerbose
	DescriptionLevelInitial
)

func (l DescriptionLevel) String() string {
	switch l {
	case DescriptionLevelBrief:
		return "brief"
	case DescriptionLevelFull:
		return "full"
	case DescriptionLevelVerbose:
		return "verbose"
	case DescriptionLevelInitial:
		return "initial"
	default:
		return "unknown"
	}
}

// InvalidAddress is the native marker for "no address".
const InvalidAddress = ^uint64(0)

// InvalidBreakID is the native marker for "no breakpoint id".
const InvalidBreakID = int32(0)

// Backend is the native debugger API.
//
// Implementations only forward calls. Thread safety is whatever the native
// runtime promises for concurrent handle use; callers serialize disposal and
// mutation of the same handle.
type Backend interface {
	Lifecycle
	StreamAPI
	DebuggerAPI
	TargetAPI
	ModuleAPI
	FileSpecAPI
	LineEntryAPI
	AddressAPI
	BreakpointAPI
	BreakpointLocationAPI
}

// Lifecycle is the process wide setup and teardown of the native runtime.
type Lifecycle interface {
	Initialize()
	Terminate()
	// VersionString is independent of any debugger instance.
	VersionString() []byte
}

// StreamAPI is the growable native text buffer objects describe themselves into.
type StreamAPI interface {
	CreateStream() StreamRef
	StreamIsValid(s StreamRef) bool
	StreamData(s StreamRef) []byte
	DisposeStream(s StreamRef)
}

type DebuggerAPI interface {
	CreateDebugger(sourceInitFiles bool) DebuggerRef
	DebuggerIsValid(d DebuggerRef) bool
	DebuggerGetAsync(d DebuggerRef) bool
	DebuggerSetAsync(d DebuggerRef, async bool)
	DebuggerGetNumTargets(d DebuggerRef) uint32
	DebuggerGetTargetAtIndex(d DebuggerRef, idx uint32) TargetRef
	DebuggerCreateTarget(d DebuggerRef, filename string) TargetRef
	DebuggerDeleteTarget(d DebuggerRef, t TargetRef) bool
	DebuggerGetDescription(d DebuggerRef, s StreamRef) bool
	DisposeDebugger(d DebuggerRef)
}

type TargetAPI interface {
	TargetIsValid(t TargetRef) bool
	TargetIsEqual(a, b TargetRef) bool
	TargetGetExecutable(t TargetRef) FileSpecRef
	TargetGetNumModules(t TargetRef) uint32
	TargetGetModuleAtIndex(t TargetRef, idx uint32) ModuleRef
	TargetGetNumBreakpoints(t TargetRef) uint32
	TargetGetBreakpointAtIndex(t TargetRef, idx uint32) BreakpointRef
	TargetBreakpointCreateByLocation(t TargetRef, file string, line uint32) BreakpointRef
	TargetBreakpointDelete(t TargetRef, id int32) bool
	TargetGetDescription(t TargetRef, s StreamRef, level DescriptionLevel) bool
	DisposeTarget(t TargetRef)
}

type ModuleAPI interface {
	ModuleIsValid(m ModuleRef) bool
	ModuleIsEqual(a, b ModuleRef) bool
	ModuleGetFileSpec(m ModuleRef) FileSpecRef
	ModuleGetPlatformFileSpec(m ModuleRef) FileSpecRef
	ModuleResolveFileAddress(m ModuleRef, vmAddr uint64) AddressRef
	ModuleGetDescription(m ModuleRef, s StreamRef) bool
	DisposeModule(m ModuleRef)
}

type FileSpecAPI interface {
	FileSpecIsValid(f FileSpecRef) bool
	FileSpecExists(f FileSpecRef) bool
	FileSpecGetFilename(f FileSpecRef) []byte
	FileSpecGetDirectory(f FileSpecRef) []byte
	FileSpecGetDescription(f FileSpecRef, s StreamRef) bool
	DisposeFileSpec(f FileSpecRef)
}

type LineEntryAPI interface {
	LineEntryIsValid(l LineEntryRef) bool
	LineEntryGetStartAddress(l LineEntryRef) AddressRef
	LineEntryGetEndAddress(l LineEntryRef) AddressRef
	LineEntryGetFileSpec(l LineEntryRef) FileSpecRef
	LineEntryGetLine(l LineEntryRef) uint32
	LineEntryGetColumn(l LineEntryRef) uint32
	LineEntryGetDescription(l LineEntryRef, s StreamRef) bool
	DisposeLineEntry(l LineEntryRef)
}

type AddressAPI interface {
	AddressIsValid(a AddressRef) bool
	AddressGetFileAddress(a AddressRef) uint64
	AddressGetLoadAddress(a AddressRef, t TargetRef) uint64
	AddressGetModule(a AddressRef) ModuleRef
	AddressGetLineEntry(a AddressRef) LineEntryRef
	AddressGetDescription(a AddressRef, s StreamRef) bool
	DisposeAddress(a AddressRef)
}

type BreakpointAPI interface {
	BreakpointIsValid(b BreakpointRef) bool
	BreakpointGetID(b BreakpointRef) int32
	BreakpointIsEnabled(b BreakpointRef) bool
	BreakpointSetEnabled(b BreakpointRef, enabled bool)
	BreakpointGetNumLocations(b BreakpointRef) uint32
	BreakpointGetLocationAtIndex(b BreakpointRef, idx uint32) BreakpointLocationRef
	BreakpointGetDescription(b BreakpointRef, s StreamRef) bool
	DisposeBreakpoint(b BreakpointRef)
}

type BreakpointLocationAPI interface {
	BreakpointLocationIsValid(l BreakpointLocationRef) bool
	BreakpointLocationGetID(l BreakpointLocationRef) int32
	BreakpointLocationGetAddress(l BreakpointLocationRef) AddressRef
	BreakpointLocationGetLoadAddress(l BreakpointLocationRef) uint64
	BreakpointLocationIsEnabled(l BreakpointLocationRef) bool
	BreakpointLocationSetEnabled(l BreakpointLocationRef, enabled bool)
	BreakpointLocationGetIgnoreCount(l BreakpointLocationRef) uint32
	BreakpointLocationSetIgnoreCount(l BreakpointLocationRef, count uint32)
	BreakpointLocationIsResolved(l BreakpointLocationRef) bool
	BreakpointLocationGetBreakpoint(l BreakpointLocationRef) BreakpointRef
	BreakpointLocationGetDescription(l BreakpointLocationRef, s StreamRef, level DescriptionLevel) bool
	DisposeBreakpointLocation(l BreakpointLocationRef)
}
