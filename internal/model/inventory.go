package model

// Inventory is a point in time, display only view of a debugger and
// everything reachable from it.
type Inventory struct {
	Version  string
	Debugger string
	Async    bool
	Targets  []TargetInfo
}

// TargetInfo describes one target of the inventory.
type TargetInfo struct {
	Index       int
	Valid       bool
	Executable  string
	Description string
	Modules     []ModuleInfo
	Breakpoints []BreakpointInfo
}

// ModuleInfo describes one loaded module of a target.
type ModuleInfo struct {
	Path         string
	PlatformPath string
}

// Remote returns true when the module's local file differs from the file
// known on the debugged platform.
func (m ModuleInfo) Remote() bool { return m.Path != m.PlatformPath }

// BreakpointInfo describes one breakpoint of a target.
type BreakpointInfo struct {
	ID        int32
	Enabled   bool
	Locations []LocationInfo
}

// LocationInfo describes one resolved (or pending) breakpoint location.
type LocationInfo struct {
	ID          int32
	LoadAddress uint64
	Enabled     bool
	Resolved    bool
	IgnoreCount uint32
	// File and Line are empty when the location has no line information.
	File string
	Line uint32
}
