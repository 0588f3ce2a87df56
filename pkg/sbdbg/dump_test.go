package sbdbg_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbdbg/pkg/sbdbg"
)

func TestDump(t *testing.T) {
	tests := map[string]struct {
		format   sbdbg.DumpFormat
		expErr   bool
		expIs    error
		expParts []string
	}{
		"Dumping as a table should render every target.": {
			format: sbdbg.DumpFormatTable,
			expParts: []string{
				"Version:   lldb version 17.0.6 (fixture)",
				"Targets:   2",
				"Target #0: /usr/bin/app",
				"Target #1: /opt/remote/app",
				"/src/app/main.c:12",
				"0x0000000100001f00",
				"/usr/lib/liba.dylib",
			},
		},

		"Dumping as JSON should render every target.": {
			format: sbdbg.DumpFormatJSON,
			expParts: []string{
				`"version": "lldb version 17.0.6 (fixture)"`,
				`"executable": "/opt/remote/app"`,
				`"remote": true`,
				`"load_address": "0x0000000100001f00"`,
				`"file": "/src/app/main.c"`,
				`"ignore_count": 2`,
			},
		},

		"Dumping with an unknown format should fail.": {
			format: "yaml",
			expErr: true,
			expIs:  sbdbg.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			eng := initFake(t)

			d := sbdbg.Create(false)
			defer d.Close()
			createTargets(t, d, "/usr/bin/app", "/opt/remote/app")

			live := eng.Stats().Live

			var buf bytes.Buffer
			err := sbdbg.Dump(&buf, d, test.format)

			if test.expErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, test.expIs)
				return
			}
			require.NoError(t, err)

			out := buf.String()
			for _, part := range test.expParts {
				assert.Contains(t, out, part)
			}

			// Every handle the dump needed was released.
			assert.Equal(t, live, eng.Stats().Live)
		})
	}
}

func TestDumpMalformedTextReleasesHandles(t *testing.T) {
	eng := initFake(t)

	d := sbdbg.Create(false)
	defer d.Close()
	createTargets(t, d, "/bin/\xffprog")

	live := eng.Stats().Live

	var buf bytes.Buffer
	merr := recoverMalformed(func() { _ = sbdbg.Dump(&buf, d, sbdbg.DumpFormatTable) })
	require.NotNil(t, merr)
	assert.Equal(t, "file name", merr.What)

	// The target and its executable were closed while unwinding.
	assert.Equal(t, live, eng.Stats().Live)
}
