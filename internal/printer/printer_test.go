package printer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/sbdbg/internal/model"
	"github.com/slok/sbdbg/internal/printer"
)

func inventoryFixture() model.Inventory {
	return model.Inventory{
		Version:  "lldb version 17.0.6",
		Debugger: "Debugger (instance: \"debugger_1\", id: 1)",
		Targets: []model.TargetInfo{
			{
				Index:      0,
				Valid:      true,
				Executable: "/usr/bin/app",
				Modules: []model.ModuleInfo{
					{Path: "/usr/bin/app", PlatformPath: "/usr/bin/app"},
					{Path: "/tmp/cache/liba.dylib", PlatformPath: "/usr/lib/liba.dylib"},
				},
				Breakpoints: []model.BreakpointInfo{
					{
						ID:      1,
						Enabled: true,
						Locations: []model.LocationInfo{
							{ID: 1, LoadAddress: 0x100001f00, Enabled: true, Resolved: true, File: "/src/app/main.c", Line: 12},
							{ID: 2, LoadAddress: ^uint64(0), Enabled: true, IgnoreCount: 2},
						},
					},
					{ID: 2, Enabled: false},
				},
			},
			{Index: 1, Valid: false, Executable: "/usr/bin/gone"},
		},
	}
}

func TestTablePrinterPrintInventory(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintInventory(inventoryFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Version:   lldb version 17.0.6")
	assert.Contains(t, out, "Async:     no")
	assert.Contains(t, out, "Targets:   2")
	assert.Contains(t, out, "Target #0: /usr/bin/app")
	assert.Contains(t, out, "/tmp/cache/liba.dylib  /usr/lib/liba.dylib")
	assert.Contains(t, out, "0x0000000100001f00")
	assert.Contains(t, out, "/src/app/main.c:12")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "Target #1: /usr/bin/gone\n  (invalid)")
}

func TestJSONPrinterPrintInventory(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintInventory(inventoryFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"version": "lldb version 17.0.6"`)
	assert.Contains(t, out, `"platform_path": "/usr/lib/liba.dylib"`)
	assert.Contains(t, out, `"remote": true`)
	assert.Contains(t, out, `"load_address": "0x0000000100001f00"`)
	assert.Contains(t, out, `"load_address": null`)
	assert.Contains(t, out, `"ignore_count": 2`)
	assert.Contains(t, out, `"valid": false`)
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}

func TestFormatAddress(t *testing.T) {
	tests := map[string]struct {
		addr uint64
		exp  string
	}{
		"Zero should be padded.": {
			addr: 0,
			exp:  "0x0000000000000000",
		},
		"A load address should be padded to 64 bits.": {
			addr: 0x100001f00,
			exp:  "0x0000000100001f00",
		},
		"The invalid address should be a dash.": {
			addr: ^uint64(0),
			exp:  "-",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, printer.FormatAddress(test.addr))
		})
	}
}

func TestFormatLine(t *testing.T) {
	tests := map[string]struct {
		file string
		line uint32
		exp  string
	}{
		"A known line should be appended.":   {file: "main.c", line: 13, exp: "main.c:13"},
		"An unknown line should be omitted.": {file: "main.c", line: 0, exp: "main.c"},
		"A missing file should be a dash.":   {file: "", line: 4, exp: "-"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, printer.FormatLine(test.file, test.line))
		})
	}
}
