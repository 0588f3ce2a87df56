//go:build lldb && cgo

// Package lldb is the native backend over liblldb. All cgo of the module
// lives in this package.
package lldb

/*
#cgo LDFLAGS: -llldbwrapper -llldb -lstdc++
#include <stdlib.h>
#include <string.h>
#include "sbapi.h"
*/
import "C"

import (
	"unsafe"

	"github.com/slok/sbdbg/internal/log"
	"github.com/slok/sbdbg/internal/native"
)

// BackendConfig is the configuration of the liblldb backend.
type BackendConfig struct {
	Logger log.Logger
}

func (c *BackendConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "native.LLDB"})
	return nil
}

// Backend forwards every call to liblldb.
type Backend struct {
	logger log.Logger
}

var _ native.Backend = &Backend{}

// New returns the liblldb backend.
func New(cfg BackendConfig) (native.Backend, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	return &Backend{logger: cfg.Logger}, nil
}

func goBool(b C.uint8_t) bool { return b != 0 }

func cBool(b bool) C.uint8_t {
	if b {
		return 1
	}
	return 0
}

// goBytes copies a NUL terminated native string. NULL is the empty string.
func goBytes(p *C.char) []byte {
	if p == nil {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p), C.int(C.strlen(p)))
}

func (b *Backend) Initialize() {
	b.logger.Debugf("Initializing liblldb")
	C.SBDebuggerInitialize()
}

func (b *Backend) Terminate() {
	b.logger.Debugf("Terminating liblldb")
	C.SBDebuggerTerminate()
}

func (b *Backend) VersionString() []byte { return goBytes(C.SBDebuggerGetVersionString()) }

// Streams.

func (b *Backend) CreateStream() native.StreamRef { return native.StreamRef(C.CreateSBStream()) }
func (b *Backend) StreamIsValid(s native.StreamRef) bool {
	return goBool(C.SBStreamIsValid(C.SBStreamRef(s)))
}
func (b *Backend) DisposeStream(s native.StreamRef) { C.DisposeSBStream(C.SBStreamRef(s)) }

func (b *Backend) StreamData(s native.StreamRef) []byte {
	data := C.SBStreamGetData(C.SBStreamRef(s))
	if data == nil {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(data), C.int(C.SBStreamGetSize(C.SBStreamRef(s))))
}

// Debugger.

func (b *Backend) CreateDebugger(sourceInitFiles bool) native.DebuggerRef {
	return native.DebuggerRef(C.SBDebuggerCreate2(cBool(sourceInitFiles)))
}
func (b *Backend) DebuggerIsValid(d native.DebuggerRef) bool {
	return goBool(C.SBDebuggerIsValid(C.SBDebuggerRef(d)))
}
func (b *Backend) DebuggerGetAsync(d native.DebuggerRef) bool {
	return goBool(C.SBDebuggerGetAsync(C.SBDebuggerRef(d)))
}
func (b *Backend) DebuggerSetAsync(d native.DebuggerRef, async bool) {
	C.SBDebuggerSetAsync(C.SBDebuggerRef(d), cBool(async))
}
func (b *Backend) DebuggerGetNumTargets(d native.DebuggerRef) uint32 {
	return uint32(C.SBDebuggerGetNumTargets(C.SBDebuggerRef(d)))
}
func (b *Backend) DebuggerGetTargetAtIndex(d native.DebuggerRef, idx uint32) native.TargetRef {
	return native.TargetRef(C.SBDebuggerGetTargetAtIndex(C.SBDebuggerRef(d), C.uint32_t(idx)))
}
func (b *Backend) DebuggerCreateTarget(d native.DebuggerRef, filename string) native.TargetRef {
	cs := C.CString(filename)
	defer C.free(unsafe.Pointer(cs))
	return native.TargetRef(C.SBDebuggerCreateTarget2(C.SBDebuggerRef(d), cs))
}
func (b *Backend) DebuggerDeleteTarget(d native.DebuggerRef, t native.TargetRef) bool {
	return goBool(C.SBDebuggerDeleteTarget(C.SBDebuggerRef(d), C.SBTargetRef(t)))
}
func (b *Backend) DebuggerGetDescription(d native.DebuggerRef, s native.StreamRef) bool {
	return goBool(C.SBDebuggerGetDescription(C.SBDebuggerRef(d), C.SBStreamRef(s)))
}
func (b *Backend) DisposeDebugger(d native.DebuggerRef) { C.DisposeSBDebugger(C.SBDebuggerRef(d)) }

// Target.

func (b *Backend) TargetIsValid(t native.TargetRef) bool {
	return goBool(C.SBTargetIsValid(C.SBTargetRef(t)))
}
func (b *Backend) TargetIsEqual(x, y native.TargetRef) bool {
	return goBool(C.SBTargetIsEqual(C.SBTargetRef(x), C.SBTargetRef(y)))
}
func (b *Backend) TargetGetExecutable(t native.TargetRef) native.FileSpecRef {
	return native.FileSpecRef(C.SBTargetGetExecutable(C.SBTargetRef(t)))
}
func (b *Backend) TargetGetNumModules(t native.TargetRef) uint32 {
	return uint32(C.SBTargetGetNumModules(C.SBTargetRef(t)))
}
func (b *Backend) TargetGetModuleAtIndex(t native.TargetRef, idx uint32) native.ModuleRef {
	return native.ModuleRef(C.SBTargetGetModuleAtIndex(C.SBTargetRef(t), C.uint32_t(idx)))
}
func (b *Backend) TargetGetNumBreakpoints(t native.TargetRef) uint32 {
	return uint32(C.SBTargetGetNumBreakpoints(C.SBTargetRef(t)))
}
func (b *Backend) TargetGetBreakpointAtIndex(t native.TargetRef, idx uint32) native.BreakpointRef {
	return native.BreakpointRef(C.SBTargetGetBreakpointAtIndex(C.SBTargetRef(t), C.uint32_t(idx)))
}
func (b *Backend) TargetBreakpointCreateByLocation(t native.TargetRef, file string, line uint32) native.BreakpointRef {
	cs := C.CString(file)
	defer C.free(unsafe.Pointer(cs))
	return native.BreakpointRef(C.SBTargetBreakpointCreateByLocation(C.SBTargetRef(t), cs, C.uint32_t(line)))
}
func (b *Backend) TargetBreakpointDelete(t native.TargetRef, id int32) bool {
	return goBool(C.SBTargetBreakpointDelete(C.SBTargetRef(t), C.int32_t(id)))
}
func (b *Backend) TargetGetDescription(t native.TargetRef, s native.StreamRef, level native.DescriptionLevel) bool {
	return goBool(C.SBTargetGetDescription(C.SBTargetRef(t), C.SBStreamRef(s), C.uint32_t(level)))
}
func (b *Backend) DisposeTarget(t native.TargetRef) { C.DisposeSBTarget(C.SBTargetRef(t)) }

// Module.

func (b *Backend) ModuleIsValid(m native.ModuleRef) bool {
	return goBool(C.SBModuleIsValid(C.SBModuleRef(m)))
}
func (b *Backend) ModuleIsEqual(x, y native.ModuleRef) bool {
	return goBool(C.SBModuleIsEqual(C.SBModuleRef(x), C.SBModuleRef(y)))
}
func (b *Backend) ModuleGetFileSpec(m native.ModuleRef) native.FileSpecRef {
	return native.FileSpecRef(C.SBModuleGetFileSpec(C.SBModuleRef(m)))
}
func (b *Backend) ModuleGetPlatformFileSpec(m native.ModuleRef) native.FileSpecRef {
	return native.FileSpecRef(C.SBModuleGetPlatformFileSpec(C.SBModuleRef(m)))
}
func (b *Backend) ModuleResolveFileAddress(m native.ModuleRef, vmAddr uint64) native.AddressRef {
	return native.AddressRef(C.SBModuleResolveFileAddress(C.SBModuleRef(m), C.uint64_t(vmAddr)))
}
func (b *Backend) ModuleGetDescription(m native.ModuleRef, s native.StreamRef) bool {
	return goBool(C.SBModuleGetDescription(C.SBModuleRef(m), C.SBStreamRef(s)))
}
func (b *Backend) DisposeModule(m native.ModuleRef) { C.DisposeSBModule(C.SBModuleRef(m)) }

// FileSpec.

func (b *Backend) FileSpecIsValid(f native.FileSpecRef) bool {
	return goBool(C.SBFileSpecIsValid(C.SBFileSpecRef(f)))
}
func (b *Backend) FileSpecExists(f native.FileSpecRef) bool {
	return goBool(C.SBFileSpecExists(C.SBFileSpecRef(f)))
}
func (b *Backend) FileSpecGetFilename(f native.FileSpecRef) []byte {
	return goBytes(C.SBFileSpecGetFilename(C.SBFileSpecRef(f)))
}
func (b *Backend) FileSpecGetDirectory(f native.FileSpecRef) []byte {
	return goBytes(C.SBFileSpecGetDirectory(C.SBFileSpecRef(f)))
}
func (b *Backend) FileSpecGetDescription(f native.FileSpecRef, s native.StreamRef) bool {
	return goBool(C.SBFileSpecGetDescription(C.SBFileSpecRef(f), C.SBStreamRef(s)))
}
func (b *Backend) DisposeFileSpec(f native.FileSpecRef) { C.DisposeSBFileSpec(C.SBFileSpecRef(f)) }

// LineEntry.

func (b *Backend) LineEntryIsValid(l native.LineEntryRef) bool {
	return goBool(C.SBLineEntryIsValid(C.SBLineEntryRef(l)))
}
func (b *Backend) LineEntryGetStartAddress(l native.LineEntryRef) native.AddressRef {
	return native.AddressRef(C.SBLineEntryGetStartAddress(C.SBLineEntryRef(l)))
}
func (b *Backend) LineEntryGetEndAddress(l native.LineEntryRef) native.AddressRef {
	return native.AddressRef(C.SBLineEntryGetEndAddress(C.SBLineEntryRef(l)))
}
func (b *Backend) LineEntryGetFileSpec(l native.LineEntryRef) native.FileSpecRef {
	return native.FileSpecRef(C.SBLineEntryGetFileSpec(C.SBLineEntryRef(l)))
}
func (b *Backend) LineEntryGetLine(l native.LineEntryRef) uint32 {
	return uint32(C.SBLineEntryGetLine(C.SBLineEntryRef(l)))
}
func (b *Backend) LineEntryGetColumn(l native.LineEntryRef) uint32 {
	return uint32(C.SBLineEntryGetColumn(C.SBLineEntryRef(l)))
}
func (b *Backend) LineEntryGetDescription(l native.LineEntryRef, s native.StreamRef) bool {
	return goBool(C.SBLineEntryGetDescription(C.SBLineEntryRef(l), C.SBStreamRef(s)))
}
func (b *Backend) DisposeLineEntry(l native.LineEntryRef) { C.DisposeSBLineEntry(C.SBLineEntryRef(l)) }

// Address.

func (b *Backend) AddressIsValid(a native.AddressRef) bool {
	return goBool(C.SBAddressIsValid(C.SBAddressRef(a)))
}
func (b *Backend) AddressGetFileAddress(a native.AddressRef) uint64 {
	return uint64(C.SBAddressGetFileAddress(C.SBAddressRef(a)))
}
func (b *Backend) AddressGetLoadAddress(a native.AddressRef, t native.TargetRef) uint64 {
	return uint64(C.SBAddressGetLoadAddress(C.SBAddressRef(a), C.SBTargetRef(t)))
}
func (b *Backend) AddressGetModule(a native.AddressRef) native.ModuleRef {
	return native.ModuleRef(C.SBAddressGetModule(C.SBAddressRef(a)))
}
func (b *Backend) AddressGetLineEntry(a native.AddressRef) native.LineEntryRef {
	return native.LineEntryRef(C.SBAddressGetLineEntry(C.SBAddressRef(a)))
}
func (b *Backend) AddressGetDescription(a native.AddressRef, s native.StreamRef) bool {
	return goBool(C.SBAddressGetDescription(C.SBAddressRef(a), C.SBStreamRef(s)))
}
func (b *Backend) DisposeAddress(a native.AddressRef) { C.DisposeSBAddress(C.SBAddressRef(a)) }

// Breakpoint.

func (b *Backend) BreakpointIsValid(bp native.BreakpointRef) bool {
	return goBool(C.SBBreakpointIsValid(C.SBBreakpointRef(bp)))
}
func (b *Backend) BreakpointGetID(bp native.BreakpointRef) int32 {
	return int32(C.SBBreakpointGetID(C.SBBreakpointRef(bp)))
}
func (b *Backend) BreakpointIsEnabled(bp native.BreakpointRef) bool {
	return goBool(C.SBBreakpointIsEnabled(C.SBBreakpointRef(bp)))
}
func (b *Backend) BreakpointSetEnabled(bp native.BreakpointRef, enabled bool) {
	C.SBBreakpointSetEnabled(C.SBBreakpointRef(bp), cBool(enabled))
}
func (b *Backend) BreakpointGetNumLocations(bp native.BreakpointRef) uint32 {
	return uint32(C.SBBreakpointGetNumLocations(C.SBBreakpointRef(bp)))
}
func (b *Backend) BreakpointGetLocationAtIndex(bp native.BreakpointRef, idx uint32) native.BreakpointLocationRef {
	return native.BreakpointLocationRef(C.SBBreakpointGetLocationAtIndex(C.SBBreakpointRef(bp), C.uint32_t(idx)))
}
func (b *Backend) BreakpointGetDescription(bp native.BreakpointRef, s native.StreamRef) bool {
	return goBool(C.SBBreakpointGetDescription(C.SBBreakpointRef(bp), C.SBStreamRef(s)))
}
func (b *Backend) DisposeBreakpoint(bp native.BreakpointRef) {
	C.DisposeSBBreakpoint(C.SBBreakpointRef(bp))
}

// BreakpointLocation.

func (b *Backend) BreakpointLocationIsValid(l native.BreakpointLocationRef) bool {
	return goBool(C.SBBreakpointLocationIsValid(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationGetID(l native.BreakpointLocationRef) int32 {
	return int32(C.SBBreakpointLocationGetID(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationGetAddress(l native.BreakpointLocationRef) native.AddressRef {
	return native.AddressRef(C.SBBreakpointLocationGetAddress(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationGetLoadAddress(l native.BreakpointLocationRef) uint64 {
	return uint64(C.SBBreakpointLocationGetLoadAddress(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationIsEnabled(l native.BreakpointLocationRef) bool {
	return goBool(C.SBBreakpointLocationIsEnabled(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationSetEnabled(l native.BreakpointLocationRef, enabled bool) {
	C.SBBreakpointLocationSetEnabled(C.SBBreakpointLocationRef(l), cBool(enabled))
}
func (b *Backend) BreakpointLocationGetIgnoreCount(l native.BreakpointLocationRef) uint32 {
	return uint32(C.SBBreakpointLocationGetIgnoreCount(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationSetIgnoreCount(l native.BreakpointLocationRef, count uint32) {
	C.SBBreakpointLocationSetIgnoreCount(C.SBBreakpointLocationRef(l), C.uint32_t(count))
}
func (b *Backend) BreakpointLocationIsResolved(l native.BreakpointLocationRef) bool {
	return goBool(C.SBBreakpointLocationIsResolved(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationGetBreakpoint(l native.BreakpointLocationRef) native.BreakpointRef {
	return native.BreakpointRef(C.SBBreakpointLocationGetBreakpoint(C.SBBreakpointLocationRef(l)))
}
func (b *Backend) BreakpointLocationGetDescription(l native.BreakpointLocationRef, s native.StreamRef, level native.DescriptionLevel) bool {
	return goBool(C.SBBreakpointLocationGetDescription(C.SBBreakpointLocationRef(l), C.SBStreamRef(s), C.uint32_t(level)))
}
func (b *Backend) DisposeBreakpointLocation(l native.BreakpointLocationRef) {
	C.DisposeSBBreakpointLocation(C.SBBreakpointLocationRef(l))
}
