package fake_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbdbg/internal/native"
	"github.com/slok/sbdbg/internal/native/fake"
)

func newEngine(t *testing.T) *fake.Engine {
	t.Helper()

	fixture, err := fake.LoadFixture("testdata/programs.yaml")
	require.NoError(t, err)

	eng, err := fake.NewEngine(fake.EngineConfig{Fixture: fixture, HomeDir: t.TempDir()})
	require.NoError(t, err)
	eng.Initialize()

	return eng
}

func TestEngineHandleTable(t *testing.T) {
	tests := map[string]struct {
		actions       func(t *testing.T, eng *fake.Engine)
		expViolations int
		expLive       int
	}{
		"Disposing every allocated handle should leave nothing live.": {
			actions: func(t *testing.T, eng *fake.Engine) {
				d := eng.CreateDebugger(false)
				tgt := eng.DebuggerCreateTarget(d, "/usr/bin/app")
				exe := eng.TargetGetExecutable(tgt)
				eng.DisposeFileSpec(exe)
				eng.DisposeTarget(tgt)
				eng.DisposeDebugger(d)
			},
			expViolations: 0,
			expLive:       0,
		},

		"Disposing a handle twice should be recorded.": {
			actions: func(t *testing.T, eng *fake.Engine) {
				s := eng.CreateStream()
				eng.DisposeStream(s)
				eng.DisposeStream(s)
			},
			expViolations: 1,
		},

		"Using a disposed handle should be recorded.": {
			actions: func(t *testing.T, eng *fake.Engine) {
				d := eng.CreateDebugger(false)
				eng.DisposeDebugger(d)
				assert.False(t, eng.DebuggerIsValid(d))
			},
			expViolations: 1,
		},

		"Using a handle as another kind should be recorded.": {
			actions: func(t *testing.T, eng *fake.Engine) {
				d := eng.CreateDebugger(false)
				assert.False(t, eng.TargetIsValid(native.TargetRef(d)))
				eng.DisposeDebugger(d)
			},
			expViolations: 1,
		},

		"The null handle should be invalid without being misuse.": {
			actions: func(t *testing.T, eng *fake.Engine) {
				assert.False(t, eng.FileSpecIsValid(nil))
				assert.Equal(t, uint32(0), eng.DebuggerGetNumTargets(nil))
				eng.DisposeModule(nil)
			},
			expViolations: 0,
		},

		"Disposing after terminating should be recorded.": {
			actions: func(t *testing.T, eng *fake.Engine) {
				d := eng.CreateDebugger(false)
				eng.Terminate()
				eng.DisposeDebugger(d)
				eng.Initialize()
			},
			expViolations: 1,
			expLive:       1,
		},

		"Out of range queries should hand out invalid handles that still need disposal.": {
			actions: func(t *testing.T, eng *fake.Engine) {
				d := eng.CreateDebugger(false)
				tgt := eng.DebuggerGetTargetAtIndex(d, 7)
				assert.NotNil(t, tgt)
				assert.False(t, eng.TargetIsValid(tgt))
				eng.DisposeDebugger(d)
			},
			expViolations: 0,
			expLive:       1,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			eng := newEngine(t)

			test.actions(t, eng)

			assert.Len(t, eng.Violations(), test.expViolations)
			assert.Equal(t, test.expLive, eng.Stats().Live)
		})
	}
}

func TestEngineObjectGraph(t *testing.T) {
	eng := newEngine(t)
	d := eng.CreateDebugger(false)

	tgt := eng.DebuggerCreateTarget(d, "/usr/bin/app")
	require.True(t, eng.TargetIsValid(tgt))
	assert.Equal(t, uint32(2), eng.TargetGetNumModules(tgt))
	assert.Equal(t, uint32(2), eng.TargetGetNumBreakpoints(tgt))

	// Module files split into directory and filename.
	mod := eng.TargetGetModuleAtIndex(tgt, 1)
	fs := eng.ModuleGetFileSpec(mod)
	assert.Equal(t, "/usr/lib", string(eng.FileSpecGetDirectory(fs)))
	assert.Equal(t, "liba.dylib", string(eng.FileSpecGetFilename(fs)))

	// Address to line entry.
	main := eng.TargetGetModuleAtIndex(tgt, 0)
	addr := eng.ModuleResolveFileAddress(main, 0x100000f04)
	require.True(t, eng.AddressIsValid(addr))
	assert.Equal(t, uint64(0x100000f04+0x1000), eng.AddressGetLoadAddress(addr, tgt))
	le := eng.AddressGetLineEntry(addr)
	require.True(t, eng.LineEntryIsValid(le))
	assert.Equal(t, uint32(12), eng.LineEntryGetLine(le))
	assert.Equal(t, uint32(3), eng.LineEntryGetColumn(le))

	// Preset breakpoint locations.
	bp := eng.TargetGetBreakpointAtIndex(tgt, 0)
	assert.Equal(t, int32(1), eng.BreakpointGetID(bp))
	assert.Equal(t, uint32(2), eng.BreakpointGetNumLocations(bp))
	loc := eng.BreakpointGetLocationAtIndex(bp, 1)
	assert.False(t, eng.BreakpointLocationIsEnabled(loc))
	assert.Equal(t, uint32(2), eng.BreakpointLocationGetIgnoreCount(loc))

	// Breakpoints by file and line.
	created := eng.TargetBreakpointCreateByLocation(tgt, "main.c", 13)
	assert.Equal(t, int32(3), eng.BreakpointGetID(created))
	require.Equal(t, uint32(1), eng.BreakpointGetNumLocations(created))
	createdLoc := eng.BreakpointGetLocationAtIndex(created, 0)
	assert.Equal(t, uint64(0x100000f10+0x1000), eng.BreakpointLocationGetLoadAddress(createdLoc))

	// Deleting the breakpoint invalidates its locations.
	assert.True(t, eng.TargetBreakpointDelete(tgt, 3))
	assert.False(t, eng.BreakpointLocationIsValid(createdLoc))

	// Unloading a module invalidates addresses into it.
	require.NoError(t, eng.UnloadModule(tgt, 0))
	assert.False(t, eng.AddressIsValid(addr))
	assert.False(t, eng.ModuleIsValid(main))

	// Deleting the target invalidates everything reached from it.
	assert.True(t, eng.DebuggerDeleteTarget(d, tgt))
	assert.False(t, eng.TargetIsValid(tgt))
	assert.False(t, eng.ModuleIsValid(mod))
	assert.False(t, eng.BreakpointIsValid(bp))
	assert.Equal(t, uint32(0), eng.DebuggerGetNumTargets(d))

	assert.Empty(t, eng.Violations())
}

func TestEngineLifecycle(t *testing.T) {
	home := t.TempDir()
	initFile := filepath.Join(home, ".lldbinit")
	require.NoError(t, os.WriteFile(initFile, []byte("settings set target.x86-disassembly-flavor intel\n"), 0o644))

	eng, err := fake.NewEngine(fake.EngineConfig{HomeDir: home})
	require.NoError(t, err)
	assert.Equal(t, "lldb version 17.0.6 (fake)", string(eng.VersionString()))

	eng.Initialize()
	assert.True(t, eng.Initialized())

	withInit := eng.CreateDebugger(true)
	withoutInit := eng.CreateDebugger(false)
	assert.Equal(t, initFile, eng.SourcedInitFile(withInit))
	assert.Empty(t, eng.SourcedInitFile(withoutInit))

	eng.Terminate()
	assert.False(t, eng.Initialized())
	assert.False(t, eng.DebuggerIsValid(withInit))

	eng.Terminate()
	assert.Len(t, eng.Violations(), 1)
}
