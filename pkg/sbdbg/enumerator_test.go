package sbdbg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbdbg/pkg/sbdbg"
)

// executables drains an enumerator of targets, closing every element.
func executables(t *testing.T, targets *sbdbg.Enumerator[*sbdbg.Target]) []string {
	t.Helper()

	var got []string
	for tgt := range targets.All() {
		exe, ok := tgt.Executable()
		require.True(t, ok)
		got = append(got, exe.Path())
		exe.Close()
		tgt.Close()
	}
	return got
}

func createTargets(t *testing.T, d *sbdbg.Debugger, files ...string) {
	t.Helper()

	for _, f := range files {
		tgt, ok := d.CreateTarget(f)
		require.True(t, ok)
		tgt.Close()
	}
}

// targetAt returns the target at idx using a fresh enumeration.
func targetAt(t *testing.T, d *sbdbg.Debugger, idx int) *sbdbg.Target {
	t.Helper()

	targets := d.Targets()
	for tgt := range targets.All() {
		if targets.Index()-1 == idx {
			return tgt
		}
		tgt.Close()
	}
	require.FailNow(t, "target index out of range")
	return nil
}

func TestEnumeratorLiveSize(t *testing.T) {
	tests := map[string]struct {
		files []string
		exp   []string
	}{
		"An empty debugger should yield nothing.": {
			files: nil,
			exp:   nil,
		},

		"A debugger with 3 targets should yield them in index order.": {
			files: []string{"/usr/bin/app", "/opt/remote/app", "/bin/true"},
			exp:   []string{"/usr/bin/app", "/opt/remote/app", "/bin/true"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			initFake(t)
			d := sbdbg.Create(false)
			defer d.Close()

			createTargets(t, d, test.files...)

			assert.Equal(t, test.exp, executables(t, d.Targets()))
		})
	}
}

func TestEnumeratorObservesMutation(t *testing.T) {
	tests := map[string]struct {
		mutate func(t *testing.T, d *sbdbg.Debugger)
		exp    []string
	}{
		"A target added while enumerating should be yielded.": {
			mutate: func(t *testing.T, d *sbdbg.Debugger) {
				createTargets(t, d, "/bin/c")
			},
			exp: []string{"/bin/a", "/bin/b", "/bin/c"},
		},

		"A target removed while enumerating should not be yielded.": {
			mutate: func(t *testing.T, d *sbdbg.Debugger) {
				tgt := targetAt(t, d, 1)
				defer tgt.Close()
				require.True(t, d.DeleteTarget(tgt))
			},
			exp: []string{"/bin/a"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			initFake(t)
			d := sbdbg.Create(false)
			defer d.Close()
			createTargets(t, d, "/bin/a", "/bin/b")

			targets := d.Targets()
			first, ok := targets.Next()
			require.True(t, ok)
			first.Close()

			test.mutate(t, d)

			got := append([]string{"/bin/a"}, executables(t, targets)...)
			assert.Equal(t, test.exp, got)
		})
	}
}

func TestEnumeratorDoesNotRestart(t *testing.T) {
	initFake(t)
	d := sbdbg.Create(false)
	defer d.Close()
	createTargets(t, d, "/bin/a", "/bin/b", "/bin/c")

	targets := d.Targets()
	assert.Equal(t, []string{"/bin/a", "/bin/b", "/bin/c"}, executables(t, targets))
	assert.Equal(t, 3, targets.Index())

	// Ranging again continues from the end, it yields nothing.
	assert.Empty(t, executables(t, targets))

	// Once ended it stays ended, even if the collection grows.
	createTargets(t, d, "/bin/d")
	_, ok := targets.Next()
	assert.False(t, ok)

	// A new enumeration sees everything.
	assert.Len(t, executables(t, d.Targets()), 4)
}

func TestEnumeratorPartialRangeContinues(t *testing.T) {
	initFake(t)
	d := sbdbg.Create(false)
	defer d.Close()
	createTargets(t, d, "/bin/a", "/bin/b", "/bin/c")

	targets := d.Targets()
	for tgt := range targets.All() {
		tgt.Close()
		break
	}

	assert.Equal(t, []string{"/bin/b", "/bin/c"}, executables(t, targets))
}

func TestEnumeratorInvalidParent(t *testing.T) {
	initFake(t)
	d := sbdbg.Create(false)
	defer d.Close()

	tgt, ok := d.CreateTarget("/usr/bin/app")
	require.True(t, ok)
	defer tgt.Close()

	modules := tgt.Modules()
	breakpoints := tgt.Breakpoints()
	require.True(t, d.DeleteTarget(tgt))

	_, ok = modules.Next()
	assert.False(t, ok)
	_, ok = breakpoints.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, modules.Index())
}

func TestEnumeratorReentryIdentity(t *testing.T) {
	initFake(t)
	d := sbdbg.Create(false)
	defer d.Close()
	createTargets(t, d, "/bin/a", "/bin/b", "/bin/c")

	drain := func() []*sbdbg.Target {
		var got []*sbdbg.Target
		for tgt := range d.Targets().All() {
			got = append(got, tgt)
		}
		return got
	}

	first, second := drain(), drain()
	require.Len(t, first, 3)
	require.Len(t, second, 3)

	for i := range first {
		// Independent queries hand out distinct wrappers over the same object.
		assert.NotSame(t, first[i], second[i])
		assert.True(t, first[i].Equal(second[i]))
		if i > 0 {
			assert.False(t, first[i].Equal(second[i-1]))
		}
	}

	for i := range first {
		first[i].Close()
		second[i].Close()
	}
}

func TestEnumeratorBreakpointLocations(t *testing.T) {
	initFake(t)
	d := sbdbg.Create(false)
	defer d.Close()

	tgt, ok := d.CreateTarget("/usr/bin/app")
	require.True(t, ok)
	defer tgt.Close()

	type loc struct {
		bp, id int32
	}
	var got []loc
	for b := range tgt.Breakpoints().All() {
		for l := range b.Locations().All() {
			got = append(got, loc{bp: b.ID(), id: l.ID()})
			l.Close()
		}
		b.Close()
	}

	assert.Equal(t, []loc{{1, 1}, {1, 2}, {2, 1}}, got)
}
