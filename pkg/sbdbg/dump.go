package sbdbg

import (
	"fmt"
	"io"

	"github.com/slok/sbdbg/internal/model"
	"github.com/slok/sbdbg/internal/printer"
)

// DumpFormat is the output format of Dump.
type DumpFormat string

const (
	// DumpFormatTable renders aligned text for terminals. It is the default.
	DumpFormatTable DumpFormat = "table"
	// DumpFormatJSON renders an indented JSON document.
	DumpFormatJSON DumpFormat = "json"
)

// Dump writes the inventory of a debugger to w: its targets with their
// modules, breakpoints and breakpoint locations.
//
// The output is for humans and tooling that displays it, it's not a stable
// format. Every wrapper Dump creates is closed before it returns.
func Dump(w io.Writer, d *Debugger, format DumpFormat) error {
	var p printer.Printer
	switch format {
	case DumpFormatTable, "":
		p = printer.NewTablePrinter(w)
	case DumpFormatJSON:
		p = printer.NewJSONPrinter(w)
	default:
		return fmt.Errorf("unknown dump format %q: %w", format, ErrNotValid)
	}

	if err := p.PrintInventory(inventory(d)); err != nil {
		return fmt.Errorf("could not print inventory: %w", err)
	}

	return nil
}

func inventory(d *Debugger) model.Inventory {
	inv := model.Inventory{
		Version:  Version(),
		Debugger: d.String(),
		Async:    d.Async(),
	}

	targets := d.Targets()
	for t := range targets.All() {
		inv.Targets = append(inv.Targets, targetInfo(targets.Index()-1, t))
	}

	return inv
}

// targetInfo takes the ownership of t.
func targetInfo(idx int, t *Target) model.TargetInfo {
	defer t.Close()

	info := model.TargetInfo{
		Index: idx,
		Valid: t.IsValid(),
	}
	if exe, ok := t.Executable(); ok {
		info.Executable = filePath(exe)
	}
	if !info.Valid {
		return info
	}
	info.Description = t.Description(DescriptionLevelFull)

	for m := range t.Modules().All() {
		info.Modules = append(info.Modules, moduleInfo(m))
	}

	for b := range t.Breakpoints().All() {
		bi := model.BreakpointInfo{ID: b.ID(), Enabled: b.IsEnabled()}
		for l := range b.Locations().All() {
			bi.Locations = append(bi.Locations, locationInfo(l))
			l.Close()
		}
		info.Breakpoints = append(info.Breakpoints, bi)
		b.Close()
	}

	return info
}

func moduleInfo(m *Module) model.ModuleInfo {
	defer m.Close()
	return model.ModuleInfo{
		Path:         filePath(m.FileSpec()),
		PlatformPath: filePath(m.PlatformFileSpec()),
	}
}

func filePath(fs *FileSpec) string {
	defer fs.Close()
	return fs.Path()
}

func locationInfo(l *BreakpointLocation) model.LocationInfo {
	info := model.LocationInfo{
		ID:          l.ID(),
		LoadAddress: l.LoadAddress(),
		Enabled:     l.IsEnabled(),
		Resolved:    l.IsResolved(),
		IgnoreCount: l.IgnoreCount(),
	}

	addr, ok := l.Address()
	if !ok {
		return info
	}
	defer addr.Close()

	le, ok := addr.LineEntry()
	if !ok {
		return info
	}
	defer le.Close()

	fs := le.FileSpec()
	defer fs.Close()
	info.File = fs.Path()
	info.Line = le.Line()

	return info
}
