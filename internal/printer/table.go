package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/sbdbg/internal/model"
)

// TablePrinter prints debugger inventories in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintInventory prints the debugger summary followed by one section per target.
func (t *TablePrinter) PrintInventory(inv model.Inventory) error {
	fmt.Fprintf(t.writer, "Version:   %s\n", inv.Version)
	fmt.Fprintf(t.writer, "Debugger:  %s\n", inv.Debugger)
	fmt.Fprintf(t.writer, "Async:     %s\n", yesNo(inv.Async))
	fmt.Fprintf(t.writer, "Targets:   %d\n", len(inv.Targets))

	for _, tgt := range inv.Targets {
		fmt.Fprintf(t.writer, "\nTarget #%d: %s\n", tgt.Index, tgt.Executable)
		if !tgt.Valid {
			fmt.Fprintln(t.writer, "  (invalid)")
			continue
		}

		if err := t.printModules(tgt.Modules); err != nil {
			return err
		}
		if err := t.printBreakpoints(tgt.Breakpoints); err != nil {
			return err
		}
	}

	return nil
}

func (t *TablePrinter) printModules(modules []model.ModuleInfo) error {
	if len(modules) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header.
	fmt.Fprintln(tw, "  MODULE\tPLATFORM PATH")

	// Print rows.
	for _, m := range modules {
		platform := "="
		if m.Remote() {
			platform = m.PlatformPath
		}
		fmt.Fprintf(tw, "  %s\t%s\n", m.Path, platform)
	}

	return tw.Flush()
}

func (t *TablePrinter) printBreakpoints(breakpoints []model.BreakpointInfo) error {
	if len(breakpoints) == 0 {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header.
	fmt.Fprintln(tw, "  BREAKPOINT\tENABLED\tRESOLVED\tIGNORE\tADDRESS\tLINE")

	// Print rows, one per location.
	for _, b := range breakpoints {
		if len(b.Locations) == 0 {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\n", b.ID, yesNo(b.Enabled), "pending", "-", "-", "-")
			continue
		}
		for _, l := range b.Locations {
			fmt.Fprintf(tw, "  %d.%d\t%s\t%s\t%d\t%s\t%s\n",
				b.ID, l.ID,
				yesNo(b.Enabled && l.Enabled),
				yesNo(l.Resolved),
				l.IgnoreCount,
				FormatAddress(l.LoadAddress),
				FormatLine(l.File, l.Line),
			)
		}
	}

	return tw.Flush()
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
