package fake

import (
	"fmt"
	"unsafe"

	"github.com/slok/sbdbg/internal/native"
)

func get[T any](e *Engine, p unsafe.Pointer, k kind, op string) (T, bool) {
	obj, ok := e.lookup(p, k, op)
	if !ok {
		var zero T
		return zero, false
	}
	v, _ := obj.(T)
	return v, true
}

func (e *Engine) targetOf(t native.TargetRef, op string) *target {
	tgt, _ := get[*target](e, unsafe.Pointer(t), kindTarget, op)
	if tgt == nil || !tgt.alive {
		return nil
	}
	return tgt
}

func (e *Engine) describe(s native.StreamRef, op string, format string, args ...any) bool {
	st, _ := get[*stream](e, unsafe.Pointer(s), kindStream, op)
	if st == nil {
		return false
	}
	fmt.Fprintf(&st.buf, format, args...)
	return true
}

// Streams.

func (e *Engine) CreateStream() native.StreamRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	return native.StreamRef(e.alloc(kindStream, &stream{}))
}

func (e *Engine) StreamIsValid(s native.StreamRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, _ := get[*stream](e, unsafe.Pointer(s), kindStream, "StreamIsValid")
	return st != nil
}

func (e *Engine) StreamData(s native.StreamRef) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, _ := get[*stream](e, unsafe.Pointer(s), kindStream, "StreamData")
	if st == nil {
		return nil
	}
	return []byte(st.buf.String())
}

func (e *Engine) DisposeStream(s native.StreamRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(s), kindStream, "DisposeStream")
}

// Debugger.

func (e *Engine) DebuggerIsValid(d native.DebuggerRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerIsValid")
	return dbg != nil && e.initialized
}

func (e *Engine) DebuggerGetAsync(d native.DebuggerRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerGetAsync")
	return dbg != nil && dbg.async
}

func (e *Engine) DebuggerSetAsync(d native.DebuggerRef, async bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerSetAsync")
	if dbg != nil {
		dbg.async = async
	}
}

func (e *Engine) DebuggerGetNumTargets(d native.DebuggerRef) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerGetNumTargets")
	if dbg == nil {
		return 0
	}
	return uint32(len(dbg.targets))
}

func (e *Engine) DebuggerGetTargetAtIndex(d native.DebuggerRef, idx uint32) native.TargetRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var t *target
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerGetTargetAtIndex")
	if dbg != nil && int(idx) < len(dbg.targets) {
		t = dbg.targets[idx]
	}
	return native.TargetRef(e.alloc(kindTarget, t))
}

func (e *Engine) DebuggerCreateTarget(d native.DebuggerRef, filename string) native.TargetRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var t *target
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerCreateTarget")
	if dbg != nil && filename != "" {
		t = e.newTarget(filename)
		dbg.targets = append(dbg.targets, t)
		e.logger.Debugf("Created fake target for %s", filename)
	}
	return native.TargetRef(e.alloc(kindTarget, t))
}

func (e *Engine) DebuggerDeleteTarget(d native.DebuggerRef, t native.TargetRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerDeleteTarget")
	tgt := e.targetOf(t, "DebuggerDeleteTarget")
	if dbg == nil || tgt == nil {
		return false
	}
	for i, candidate := range dbg.targets {
		if candidate == tgt {
			dbg.targets = append(dbg.targets[:i], dbg.targets[i+1:]...)
			tgt.alive = false
			return true
		}
	}
	return false
}

func (e *Engine) DebuggerGetDescription(d native.DebuggerRef, s native.StreamRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	dbg, _ := get[*debugger](e, unsafe.Pointer(d), kindDebugger, "DebuggerGetDescription")
	if dbg == nil {
		return e.describe(s, "DebuggerGetDescription", "No value")
	}
	return e.describe(s, "DebuggerGetDescription", "Debugger (instance: %q, id: %d)", dbg.name, dbg.id)
}

func (e *Engine) DisposeDebugger(d native.DebuggerRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(d), kindDebugger, "DisposeDebugger")
}

// Target.

func (e *Engine) TargetIsValid(t native.TargetRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targetOf(t, "TargetIsValid") != nil
}

func (e *Engine) TargetIsEqual(a, b native.TargetRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ta, _ := get[*target](e, unsafe.Pointer(a), kindTarget, "TargetIsEqual")
	tb, _ := get[*target](e, unsafe.Pointer(b), kindTarget, "TargetIsEqual")
	return ta == tb
}

func (e *Engine) TargetGetExecutable(t native.TargetRef) native.FileSpecRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var fs fileSpec
	if tgt := e.targetOf(t, "TargetGetExecutable"); tgt != nil {
		fs = tgt.executable
	}
	return native.FileSpecRef(e.alloc(kindFileSpec, fs))
}

func (e *Engine) TargetGetNumModules(t native.TargetRef) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	tgt := e.targetOf(t, "TargetGetNumModules")
	if tgt == nil {
		return 0
	}
	return uint32(len(tgt.modules))
}

func (e *Engine) TargetGetModuleAtIndex(t native.TargetRef, idx uint32) native.ModuleRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var m *module
	if tgt := e.targetOf(t, "TargetGetModuleAtIndex"); tgt != nil && int(idx) < len(tgt.modules) {
		m = tgt.modules[idx]
	}
	return native.ModuleRef(e.alloc(kindModule, m))
}

func (e *Engine) TargetGetNumBreakpoints(t native.TargetRef) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	tgt := e.targetOf(t, "TargetGetNumBreakpoints")
	if tgt == nil {
		return 0
	}
	return uint32(len(tgt.breakpoints))
}

func (e *Engine) TargetGetBreakpointAtIndex(t native.TargetRef, idx uint32) native.BreakpointRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var b *breakpoint
	if tgt := e.targetOf(t, "TargetGetBreakpointAtIndex"); tgt != nil && int(idx) < len(tgt.breakpoints) {
		b = tgt.breakpoints[idx]
	}
	return native.BreakpointRef(e.alloc(kindBreakpoint, b))
}

// TargetBreakpointCreateByLocation creates a breakpoint with one location per
// line table row matching the file (by full path or base name) and line. A
// breakpoint without matches is pending, it has no locations.
func (e *Engine) TargetBreakpointCreateByLocation(t native.TargetRef, file string, line uint32) native.BreakpointRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	tgt := e.targetOf(t, "TargetBreakpointCreateByLocation")
	if tgt == nil || file == "" || line == 0 {
		return native.BreakpointRef(e.alloc(kindBreakpoint, (*breakpoint)(nil)))
	}

	want := e.splitPath(file)
	b := tgt.addBreakpoint(true)
	for _, m := range tgt.modules {
		for _, r := range m.lines {
			if r.Line != line {
				continue
			}
			got := e.splitPath(r.File)
			if got.name != want.name || (want.dir != "" && got.dir != want.dir) {
				continue
			}
			b.addLocation(address{module: m, fileAddr: r.Address}, true, true, 0)
		}
	}

	return native.BreakpointRef(e.alloc(kindBreakpoint, b))
}

func (e *Engine) TargetBreakpointDelete(t native.TargetRef, id int32) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	tgt := e.targetOf(t, "TargetBreakpointDelete")
	if tgt == nil {
		return false
	}
	for i, b := range tgt.breakpoints {
		if b.id == id {
			tgt.breakpoints = append(tgt.breakpoints[:i], tgt.breakpoints[i+1:]...)
			b.alive = false
			return true
		}
	}
	return false
}

func (e *Engine) TargetGetDescription(t native.TargetRef, s native.StreamRef, level native.DescriptionLevel) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	tgt := e.targetOf(t, "TargetGetDescription")
	if tgt == nil {
		return e.describe(s, "TargetGetDescription", "No value")
	}
	if level == native.DescriptionLevelBrief {
		return e.describe(s, "TargetGetDescription", "%s", tgt.executable.path())
	}
	return e.describe(s, "TargetGetDescription", "%s (modules: %d, breakpoints: %d)", tgt.executable.path(), len(tgt.modules), len(tgt.breakpoints))
}

func (e *Engine) DisposeTarget(t native.TargetRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(t), kindTarget, "DisposeTarget")
}

// Module.

func (e *Engine) ModuleIsValid(m native.ModuleRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	mod, _ := get[*module](e, unsafe.Pointer(m), kindModule, "ModuleIsValid")
	return mod.valid()
}

func (e *Engine) ModuleIsEqual(a, b native.ModuleRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ma, _ := get[*module](e, unsafe.Pointer(a), kindModule, "ModuleIsEqual")
	mb, _ := get[*module](e, unsafe.Pointer(b), kindModule, "ModuleIsEqual")
	return ma == mb
}

func (e *Engine) ModuleGetFileSpec(m native.ModuleRef) native.FileSpecRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var fs fileSpec
	if mod, _ := get[*module](e, unsafe.Pointer(m), kindModule, "ModuleGetFileSpec"); mod.valid() {
		fs = mod.file
	}
	return native.FileSpecRef(e.alloc(kindFileSpec, fs))
}

func (e *Engine) ModuleGetPlatformFileSpec(m native.ModuleRef) native.FileSpecRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var fs fileSpec
	if mod, _ := get[*module](e, unsafe.Pointer(m), kindModule, "ModuleGetPlatformFileSpec"); mod.valid() {
		fs = mod.platformFile
	}
	return native.FileSpecRef(e.alloc(kindFileSpec, fs))
}

func (e *Engine) ModuleResolveFileAddress(m native.ModuleRef, vmAddr uint64) native.AddressRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr := address{fileAddr: native.InvalidAddress}
	if mod, _ := get[*module](e, unsafe.Pointer(m), kindModule, "ModuleResolveFileAddress"); mod.valid() && mod.contains(vmAddr) {
		addr = address{module: mod, fileAddr: vmAddr}
	}
	return native.AddressRef(e.alloc(kindAddress, addr))
}

func (e *Engine) ModuleGetDescription(m native.ModuleRef, s native.StreamRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	mod, _ := get[*module](e, unsafe.Pointer(m), kindModule, "ModuleGetDescription")
	if !mod.valid() {
		return e.describe(s, "ModuleGetDescription", "No value")
	}
	if mod.file != mod.platformFile {
		return e.describe(s, "ModuleGetDescription", "%s (platform: %s)", mod.file.path(), mod.platformFile.path())
	}
	return e.describe(s, "ModuleGetDescription", "%s", mod.file.path())
}

func (e *Engine) DisposeModule(m native.ModuleRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(m), kindModule, "DisposeModule")
}

// FileSpec.

func (e *Engine) FileSpecIsValid(f native.FileSpecRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	fs, _ := get[fileSpec](e, unsafe.Pointer(f), kindFileSpec, "FileSpecIsValid")
	return fs.valid()
}

func (e *Engine) FileSpecExists(f native.FileSpecRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	fs, _ := get[fileSpec](e, unsafe.Pointer(f), kindFileSpec, "FileSpecExists")
	if !fs.valid() {
		return false
	}
	return fileExists(fs.path())
}

func (e *Engine) FileSpecGetFilename(f native.FileSpecRef) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	fs, _ := get[fileSpec](e, unsafe.Pointer(f), kindFileSpec, "FileSpecGetFilename")
	return []byte(fs.name)
}

func (e *Engine) FileSpecGetDirectory(f native.FileSpecRef) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	fs, _ := get[fileSpec](e, unsafe.Pointer(f), kindFileSpec, "FileSpecGetDirectory")
	return []byte(fs.dir)
}

func (e *Engine) FileSpecGetDescription(f native.FileSpecRef, s native.StreamRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	fs, _ := get[fileSpec](e, unsafe.Pointer(f), kindFileSpec, "FileSpecGetDescription")
	return e.describe(s, "FileSpecGetDescription", "%s", fs.path())
}

func (e *Engine) DisposeFileSpec(f native.FileSpecRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(f), kindFileSpec, "DisposeFileSpec")
}

// LineEntry.

func (e *Engine) LineEntryIsValid(l native.LineEntryRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	le, _ := get[lineEntry](e, unsafe.Pointer(l), kindLineEntry, "LineEntryIsValid")
	return le.valid()
}

func (e *Engine) LineEntryGetStartAddress(l native.LineEntryRef) native.AddressRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	le, _ := get[lineEntry](e, unsafe.Pointer(l), kindLineEntry, "LineEntryGetStartAddress")
	return native.AddressRef(e.alloc(kindAddress, le.start))
}

func (e *Engine) LineEntryGetEndAddress(l native.LineEntryRef) native.AddressRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	le, _ := get[lineEntry](e, unsafe.Pointer(l), kindLineEntry, "LineEntryGetEndAddress")
	return native.AddressRef(e.alloc(kindAddress, le.end))
}

func (e *Engine) LineEntryGetFileSpec(l native.LineEntryRef) native.FileSpecRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	le, _ := get[lineEntry](e, unsafe.Pointer(l), kindLineEntry, "LineEntryGetFileSpec")
	return native.FileSpecRef(e.alloc(kindFileSpec, le.file))
}

func (e *Engine) LineEntryGetLine(l native.LineEntryRef) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	le, _ := get[lineEntry](e, unsafe.Pointer(l), kindLineEntry, "LineEntryGetLine")
	return le.line
}

func (e *Engine) LineEntryGetColumn(l native.LineEntryRef) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	le, _ := get[lineEntry](e, unsafe.Pointer(l), kindLineEntry, "LineEntryGetColumn")
	return le.column
}

func (e *Engine) LineEntryGetDescription(l native.LineEntryRef, s native.StreamRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	le, _ := get[lineEntry](e, unsafe.Pointer(l), kindLineEntry, "LineEntryGetDescription")
	if !le.valid() {
		return e.describe(s, "LineEntryGetDescription", "No value")
	}
	if le.line == 0 {
		return e.describe(s, "LineEntryGetDescription", "[0x%x-0x%x): %s", le.start.fileAddr, le.end.fileAddr, le.file.path())
	}
	return e.describe(s, "LineEntryGetDescription", "[0x%x-0x%x): %s:%d:%d", le.start.fileAddr, le.end.fileAddr, le.file.path(), le.line, le.column)
}

func (e *Engine) DisposeLineEntry(l native.LineEntryRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(l), kindLineEntry, "DisposeLineEntry")
}

// Address.

func (e *Engine) AddressIsValid(a native.AddressRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr, _ := get[address](e, unsafe.Pointer(a), kindAddress, "AddressIsValid")
	return addr.valid()
}

func (e *Engine) AddressGetFileAddress(a native.AddressRef) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr, _ := get[address](e, unsafe.Pointer(a), kindAddress, "AddressGetFileAddress")
	if !addr.valid() {
		return native.InvalidAddress
	}
	return addr.fileAddr
}

func (e *Engine) AddressGetLoadAddress(a native.AddressRef, t native.TargetRef) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr, _ := get[address](e, unsafe.Pointer(a), kindAddress, "AddressGetLoadAddress")
	return addr.loadAddress(e.targetOf(t, "AddressGetLoadAddress"))
}

func (e *Engine) AddressGetModule(a native.AddressRef) native.ModuleRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var m *module
	if addr, _ := get[address](e, unsafe.Pointer(a), kindAddress, "AddressGetModule"); addr.valid() {
		m = addr.module
	}
	return native.ModuleRef(e.alloc(kindModule, m))
}

func (e *Engine) AddressGetLineEntry(a native.AddressRef) native.LineEntryRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var le lineEntry
	if addr, _ := get[address](e, unsafe.Pointer(a), kindAddress, "AddressGetLineEntry"); addr.valid() {
		if r, ok := addr.module.row(addr.fileAddr); ok {
			le = lineEntry{
				start:  address{module: addr.module, fileAddr: r.Address},
				end:    address{module: addr.module, fileAddr: r.Address + r.Size},
				file:   e.splitPath(r.File),
				line:   r.Line,
				column: r.Column,
			}
		}
	}
	return native.LineEntryRef(e.alloc(kindLineEntry, le))
}

func (e *Engine) AddressGetDescription(a native.AddressRef, s native.StreamRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr, _ := get[address](e, unsafe.Pointer(a), kindAddress, "AddressGetDescription")
	if !addr.valid() {
		return e.describe(s, "AddressGetDescription", "No value")
	}
	return e.describe(s, "AddressGetDescription", "%s[0x%x]", addr.module.file.name, addr.fileAddr)
}

func (e *Engine) DisposeAddress(a native.AddressRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(a), kindAddress, "DisposeAddress")
}

// Breakpoint.

func (e *Engine) BreakpointIsValid(b native.BreakpointRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	bp, _ := get[*breakpoint](e, unsafe.Pointer(b), kindBreakpoint, "BreakpointIsValid")
	return bp.valid()
}

func (e *Engine) BreakpointGetID(b native.BreakpointRef) int32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	bp, _ := get[*breakpoint](e, unsafe.Pointer(b), kindBreakpoint, "BreakpointGetID")
	if !bp.valid() {
		return native.InvalidBreakID
	}
	return bp.id
}

func (e *Engine) BreakpointIsEnabled(b native.BreakpointRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	bp, _ := get[*breakpoint](e, unsafe.Pointer(b), kindBreakpoint, "BreakpointIsEnabled")
	return bp.valid() && bp.enabled
}

func (e *Engine) BreakpointSetEnabled(b native.BreakpointRef, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if bp, _ := get[*breakpoint](e, unsafe.Pointer(b), kindBreakpoint, "BreakpointSetEnabled"); bp.valid() {
		bp.enabled = enabled
	}
}

func (e *Engine) BreakpointGetNumLocations(b native.BreakpointRef) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	bp, _ := get[*breakpoint](e, unsafe.Pointer(b), kindBreakpoint, "BreakpointGetNumLocations")
	if !bp.valid() {
		return 0
	}
	return uint32(len(bp.locations))
}

func (e *Engine) BreakpointGetLocationAtIndex(b native.BreakpointRef, idx uint32) native.BreakpointLocationRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var l *location
	if bp, _ := get[*breakpoint](e, unsafe.Pointer(b), kindBreakpoint, "BreakpointGetLocationAtIndex"); bp.valid() && int(idx) < len(bp.locations) {
		l = bp.locations[idx]
	}
	return native.BreakpointLocationRef(e.alloc(kindBreakpointLocation, l))
}

func (e *Engine) BreakpointGetDescription(b native.BreakpointRef, s native.StreamRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	bp, _ := get[*breakpoint](e, unsafe.Pointer(b), kindBreakpoint, "BreakpointGetDescription")
	if !bp.valid() {
		return e.describe(s, "BreakpointGetDescription", "No value")
	}
	return e.describe(s, "BreakpointGetDescription", "%d: locations = %d", bp.id, len(bp.locations))
}

func (e *Engine) DisposeBreakpoint(b native.BreakpointRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(b), kindBreakpoint, "DisposeBreakpoint")
}

// BreakpointLocation.

func (e *Engine) location(l native.BreakpointLocationRef, op string) *location {
	loc, _ := get[*location](e, unsafe.Pointer(l), kindBreakpointLocation, op)
	if !loc.valid() {
		return nil
	}
	return loc
}

func (e *Engine) BreakpointLocationIsValid(l native.BreakpointLocationRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.location(l, "BreakpointLocationIsValid") != nil
}

func (e *Engine) BreakpointLocationGetID(l native.BreakpointLocationRef) int32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc := e.location(l, "BreakpointLocationGetID")
	if loc == nil {
		return native.InvalidBreakID
	}
	return loc.id
}

func (e *Engine) BreakpointLocationGetAddress(l native.BreakpointLocationRef) native.AddressRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr := address{fileAddr: native.InvalidAddress}
	if loc := e.location(l, "BreakpointLocationGetAddress"); loc != nil {
		addr = loc.addr
	}
	return native.AddressRef(e.alloc(kindAddress, addr))
}

func (e *Engine) BreakpointLocationGetLoadAddress(l native.BreakpointLocationRef) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc := e.location(l, "BreakpointLocationGetLoadAddress")
	if loc == nil || !loc.resolved {
		return native.InvalidAddress
	}
	return loc.addr.loadAddress(loc.breakpoint.target)
}

func (e *Engine) BreakpointLocationIsEnabled(l native.BreakpointLocationRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc := e.location(l, "BreakpointLocationIsEnabled")
	return loc != nil && loc.enabled
}

func (e *Engine) BreakpointLocationSetEnabled(l native.BreakpointLocationRef, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if loc := e.location(l, "BreakpointLocationSetEnabled"); loc != nil {
		loc.enabled = enabled
	}
}

func (e *Engine) BreakpointLocationGetIgnoreCount(l native.BreakpointLocationRef) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc := e.location(l, "BreakpointLocationGetIgnoreCount")
	if loc == nil {
		return 0
	}
	return loc.ignoreCount
}

func (e *Engine) BreakpointLocationSetIgnoreCount(l native.BreakpointLocationRef, count uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if loc := e.location(l, "BreakpointLocationSetIgnoreCount"); loc != nil {
		loc.ignoreCount = count
	}
}

func (e *Engine) BreakpointLocationIsResolved(l native.BreakpointLocationRef) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc := e.location(l, "BreakpointLocationIsResolved")
	return loc != nil && loc.resolved
}

func (e *Engine) BreakpointLocationGetBreakpoint(l native.BreakpointLocationRef) native.BreakpointRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	var b *breakpoint
	if loc := e.location(l, "BreakpointLocationGetBreakpoint"); loc != nil {
		b = loc.breakpoint
	}
	return native.BreakpointRef(e.alloc(kindBreakpoint, b))
}

func (e *Engine) BreakpointLocationGetDescription(l native.BreakpointLocationRef, s native.StreamRef, level native.DescriptionLevel) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	loc := e.location(l, "BreakpointLocationGetDescription")
	if loc == nil {
		return e.describe(s, "BreakpointLocationGetDescription", "No value")
	}

	state := "unresolved"
	if loc.resolved {
		state = "resolved"
	}
	if level == native.DescriptionLevelBrief {
		return e.describe(s, "BreakpointLocationGetDescription", "%d.%d: address = 0x%x, %s",
			loc.breakpoint.id, loc.id, loc.addr.fileAddr, state)
	}
	return e.describe(s, "BreakpointLocationGetDescription", "%d.%d: address = 0x%x, %s, enabled = %t, ignore count = %d",
		loc.breakpoint.id, loc.id, loc.addr.fileAddr, state, loc.enabled, loc.ignoreCount)
}

func (e *Engine) DisposeBreakpointLocation(l native.BreakpointLocationRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.release(unsafe.Pointer(l), kindBreakpointLocation, "DisposeBreakpointLocation")
}
