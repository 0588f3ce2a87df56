package sbdbg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbdbg/pkg/sbdbg"
)

// appTarget creates a debugger with a target for the local fixture program.
func appTarget(t *testing.T, file string) *sbdbg.Target {
	t.Helper()

	d := sbdbg.Create(false)
	t.Cleanup(d.Close)

	tgt, ok := d.CreateTarget(file)
	require.True(t, ok)
	t.Cleanup(tgt.Close)

	return tgt
}

func moduleAt(t *testing.T, tgt *sbdbg.Target, idx int) *sbdbg.Module {
	t.Helper()

	modules := tgt.Modules()
	for m := range modules.All() {
		if modules.Index()-1 == idx {
			t.Cleanup(m.Close)
			return m
		}
		m.Close()
	}
	require.FailNow(t, "module index out of range")
	return nil
}

func TestFileSpecSplit(t *testing.T) {
	initFake(t)
	tgt := appTarget(t, "/usr/bin/app")

	fs := moduleAt(t, tgt, 1).FileSpec()
	defer fs.Close()

	assert.True(t, fs.IsValid())
	assert.Equal(t, "/usr/lib", fs.Directory())
	assert.Equal(t, "liba.dylib", fs.Filename())
	assert.Equal(t, "/usr/lib/liba.dylib", fs.Path())
	assert.Equal(t, "/usr/lib/liba.dylib", fs.String())
}

func TestFileSpecExists(t *testing.T) {
	initFake(t)

	exe := filepath.Join(t.TempDir(), "prog")
	require.NoError(t, os.WriteFile(exe, []byte("\x7fELF"), 0o755))

	tests := map[string]struct {
		file      string
		expExists bool
	}{
		"An executable on disk should exist.": {
			file:      exe,
			expExists: true,
		},
		"An executable missing on disk should not exist.": {
			file: filepath.Join(t.TempDir(), "missing"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			tgt := appTarget(t, test.file)
			fs, ok := tgt.Executable()
			require.True(t, ok)
			defer fs.Close()

			assert.Equal(t, test.expExists, fs.Exists())
			assert.Equal(t, test.file, fs.Path())
		})
	}
}

func TestFileSpecMalformedNamePanics(t *testing.T) {
	initFake(t)
	tgt := appTarget(t, "/bin/\xffprog")

	fs, ok := tgt.Executable()
	require.True(t, ok)
	defer fs.Close()

	// The directory is well formed.
	assert.Equal(t, "/bin", fs.Directory())

	err := recoverMalformed(func() { fs.Filename() })
	require.NotNil(t, err)
	assert.Equal(t, "file name", err.What)

	// Descriptions are display only, they are sanitised instead.
	assert.Equal(t, "/bin/\uFFFDprog", fs.String())
}

func TestModuleFileSpecs(t *testing.T) {
	tests := map[string]struct {
		executable  string
		expPath     string
		expPlatform string
	}{
		"A local module should have the same local and platform files.": {
			executable:  "/usr/bin/app",
			expPath:     "/usr/bin/app",
			expPlatform: "/usr/bin/app",
		},

		"A remote module should have a cached local file.": {
			executable:  "/opt/remote/app",
			expPath:     "/tmp/lldb/platform-cache/remote.host.computer/usr/lib/liba.dylib",
			expPlatform: "/usr/lib/liba.dylib",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			initFake(t)
			m := moduleAt(t, appTarget(t, test.executable), 0)

			fs, pfs := m.FileSpec(), m.PlatformFileSpec()
			defer fs.Close()
			defer pfs.Close()

			assert.Equal(t, test.expPath, fs.Path())
			assert.Equal(t, test.expPlatform, pfs.Path())
		})
	}
}

func TestModuleInvalidatedByUnload(t *testing.T) {
	eng := initFake(t)
	tgt := appTarget(t, "/usr/bin/app")
	m := moduleAt(t, tgt, 0)

	addr, ok := m.ResolveFileAddress(0x100000f04)
	require.True(t, ok)
	defer addr.Close()

	require.NoError(t, eng.UnloadModule(tgt.Raw(), 0))

	assert.False(t, m.IsValid())
	assert.False(t, addr.IsValid())
	_, ok = addr.Module()
	assert.False(t, ok)
	assert.Equal(t, sbdbg.InvalidAddress, addr.LoadAddress(tgt))

	// File specs of an invalid module are still handed out, and invalid.
	fs := m.FileSpec()
	defer fs.Close()
	assert.False(t, fs.IsValid())
	assert.Empty(t, fs.Path())
}

func TestAddressResolution(t *testing.T) {
	initFake(t)
	tgt := appTarget(t, "/usr/bin/app")
	m := moduleAt(t, tgt, 0)

	addr, ok := m.ResolveFileAddress(0x100000f04)
	require.True(t, ok)
	defer addr.Close()

	assert.Equal(t, uint64(0x100000f04), addr.FileAddress())
	assert.Equal(t, uint64(0x100001f04), addr.LoadAddress(tgt))
	assert.Equal(t, "app[0x100000f04]", addr.String())

	owner, ok := addr.Module()
	require.True(t, ok)
	defer owner.Close()
	assert.True(t, owner.Equal(m))

	le, ok := addr.LineEntry()
	require.True(t, ok)
	defer le.Close()
	assert.Equal(t, uint32(12), le.Line())
	assert.Equal(t, uint32(3), le.Column())
	assert.Equal(t, "[0x100000f00-0x100000f10): /src/app/main.c:12:3", le.String())

	start, end, file := le.StartAddress(), le.EndAddress(), le.FileSpec()
	defer start.Close()
	defer end.Close()
	defer file.Close()
	assert.Equal(t, uint64(0x100000f00), start.FileAddress())
	assert.Equal(t, uint64(0x100000f10), end.FileAddress())
	assert.Equal(t, "main.c", file.Filename())
	assert.Equal(t, "/src/app", file.Directory())

	// No line table row covers the module header.
	_, ok = func() (*sbdbg.LineEntry, bool) {
		a, ok := m.ResolveFileAddress(0x100000000)
		require.True(t, ok)
		defer a.Close()
		return a.LineEntry()
	}()
	assert.False(t, ok)

	// Outside of the module there is nothing to resolve.
	_, ok = m.ResolveFileAddress(0x10)
	assert.False(t, ok)
}

func TestLineEntryUnknownLine(t *testing.T) {
	initFake(t)
	m := moduleAt(t, appTarget(t, "/usr/bin/app"), 0)

	addr, ok := m.ResolveFileAddress(0x100000f18)
	require.True(t, ok)
	defer addr.Close()

	le, ok := addr.LineEntry()
	require.True(t, ok)
	defer le.Close()

	// Unknown line and column are 0, the entry itself is valid.
	assert.True(t, le.IsValid())
	assert.Equal(t, uint32(0), le.Line())
	assert.Equal(t, uint32(0), le.Column())
}

func TestBreakpoints(t *testing.T) {
	initFake(t)
	tgt := appTarget(t, "/usr/bin/app")

	bp, ok := tgt.BreakpointCreateByLocation("main.c", 13)
	require.True(t, ok)
	defer bp.Close()

	assert.Equal(t, int32(3), bp.ID())
	assert.True(t, bp.IsEnabled())
	assert.Equal(t, "3: locations = 1", bp.String())
	bp.SetEnabled(false)
	assert.False(t, bp.IsEnabled())

	loc, ok := bp.Locations().Next()
	require.True(t, ok)
	defer loc.Close()

	assert.Equal(t, int32(1), loc.ID())
	assert.True(t, loc.IsResolved())
	assert.Equal(t, uint64(0x100001f10), loc.LoadAddress())

	// The location flags are independent from the breakpoint ones.
	assert.True(t, loc.IsEnabled())
	loc.SetEnabled(false)
	assert.False(t, loc.IsEnabled())
	loc.SetIgnoreCount(5)
	assert.Equal(t, uint32(5), loc.IgnoreCount())
	assert.Equal(t, "3.1: address = 0x100000f10, resolved", loc.String())
	assert.Equal(t, "3.1: address = 0x100000f10, resolved, enabled = false, ignore count = 5", loc.Description(sbdbg.DescriptionLevelFull))

	owner := loc.Breakpoint()
	defer owner.Close()
	assert.Equal(t, bp.ID(), owner.ID())

	addr, ok := loc.Address()
	require.True(t, ok)
	defer addr.Close()
	assert.Equal(t, uint64(0x100000f10), addr.FileAddress())

	// Deleting the breakpoint invalidates its locations.
	assert.True(t, tgt.BreakpointDelete(bp.ID()))
	assert.False(t, tgt.BreakpointDelete(bp.ID()))
	assert.False(t, loc.IsValid())
	assert.False(t, owner.IsValid())
	assert.Equal(t, sbdbg.InvalidAddress, loc.LoadAddress())
	_, ok = loc.Address()
	assert.False(t, ok)
}

func TestBreakpointPending(t *testing.T) {
	initFake(t)
	tgt := appTarget(t, "/usr/bin/app")

	bp, ok := tgt.BreakpointCreateByLocation("missing.c", 1)
	require.True(t, ok)
	defer bp.Close()

	_, ok = bp.Locations().Next()
	assert.False(t, ok)
}

func TestDescriptions(t *testing.T) {
	tests := map[string]struct {
		describe func(t *testing.T) string
		exp      string
	}{
		"A target should describe itself with its executable.": {
			describe: func(t *testing.T) string {
				return appTarget(t, "/usr/bin/app").String()
			},
			exp: "/usr/bin/app",
		},

		"A target full description should include its contents.": {
			describe: func(t *testing.T) string {
				return appTarget(t, "/usr/bin/app").Description(sbdbg.DescriptionLevelFull)
			},
			exp: "/usr/bin/app (modules: 2, breakpoints: 2)",
		},

		"A remote module should describe its platform file.": {
			describe: func(t *testing.T) string {
				return moduleAt(t, appTarget(t, "/opt/remote/app"), 0).String()
			},
			exp: "/tmp/lldb/platform-cache/remote.host.computer/usr/lib/liba.dylib (platform: /usr/lib/liba.dylib)",
		},

		"A deleted target should describe itself as no value.": {
			describe: func(t *testing.T) string {
				d := sbdbg.Create(false)
				defer d.Close()
				gone, ok := d.CreateTarget("/bin/gone")
				require.True(t, ok)
				defer gone.Close()
				require.True(t, d.DeleteTarget(gone))
				return gone.String()
			},
			exp: "No value",
		},

		"A closed target should describe itself as disposed.": {
			describe: func(t *testing.T) string {
				tgt := appTarget(t, "/usr/bin/app")
				tgt.Close()
				return tgt.String()
			},
			exp: "disposed",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			initFake(t)
			assert.Equal(t, test.exp, test.describe(t))
		})
	}
}

func TestStream(t *testing.T) {
	initFake(t)

	s := sbdbg.NewStream()
	assert.True(t, s.IsValid())
	assert.Empty(t, s.Data())
	s.Close()
	assert.False(t, s.IsValid())
}
