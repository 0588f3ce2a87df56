package printer

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/slok/sbdbg/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONPrinter prints debugger inventories in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type inventoryOutput struct {
	Version  string         `json:"version"`
	Debugger string         `json:"debugger"`
	Async    bool           `json:"async"`
	Targets  []targetOutput `json:"targets"`
}

type targetOutput struct {
	Index       int                `json:"index"`
	Valid       bool               `json:"valid"`
	Executable  string             `json:"executable"`
	Description string             `json:"description,omitempty"`
	Modules     []moduleOutput     `json:"modules"`
	Breakpoints []breakpointOutput `json:"breakpoints"`
}

type moduleOutput struct {
	Path         string `json:"path"`
	PlatformPath string `json:"platform_path"`
	Remote       bool   `json:"remote"`
}

type breakpointOutput struct {
	ID        int32            `json:"id"`
	Enabled   bool             `json:"enabled"`
	Locations []locationOutput `json:"locations"`
}

// locationOutput has the load address as a hex string, null when unresolved.
type locationOutput struct {
	ID          int32   `json:"id"`
	LoadAddress *string `json:"load_address"`
	Enabled     bool    `json:"enabled"`
	Resolved    bool    `json:"resolved"`
	IgnoreCount uint32  `json:"ignore_count"`
	File        string  `json:"file,omitempty"`
	Line        uint32  `json:"line,omitempty"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintInventory prints the inventory in JSON format.
func (j *JSONPrinter) PrintInventory(inv model.Inventory) error {
	output := inventoryOutput{
		Version:  inv.Version,
		Debugger: inv.Debugger,
		Async:    inv.Async,
		Targets:  make([]targetOutput, 0, len(inv.Targets)),
	}

	for _, t := range inv.Targets {
		to := targetOutput{
			Index:       t.Index,
			Valid:       t.Valid,
			Executable:  t.Executable,
			Description: t.Description,
			Modules:     make([]moduleOutput, 0, len(t.Modules)),
			Breakpoints: make([]breakpointOutput, 0, len(t.Breakpoints)),
		}

		for _, m := range t.Modules {
			to.Modules = append(to.Modules, moduleOutput{
				Path:         m.Path,
				PlatformPath: m.PlatformPath,
				Remote:       m.Remote(),
			})
		}

		for _, b := range t.Breakpoints {
			bo := breakpointOutput{
				ID:        b.ID,
				Enabled:   b.Enabled,
				Locations: make([]locationOutput, 0, len(b.Locations)),
			}
			for _, l := range b.Locations {
				lo := locationOutput{
					ID:          l.ID,
					Enabled:     l.Enabled,
					Resolved:    l.Resolved,
					IgnoreCount: l.IgnoreCount,
					File:        l.File,
					Line:        l.Line,
				}
				if l.LoadAddress != invalidAddress {
					addr := FormatAddress(l.LoadAddress)
					lo.LoadAddress = &addr
				}
				bo.Locations = append(bo.Locations, lo)
			}
			to.Breakpoints = append(to.Breakpoints, bo)
		}

		output.Targets = append(output.Targets, to)
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
