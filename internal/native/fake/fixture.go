package fake

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slok/sbdbg/internal/model"
)

// Fixture describes the programs the fake engine knows how to load as targets.
type Fixture struct {
	Version  string           `yaml:"version"`
	Programs []ProgramFixture `yaml:"programs"`
}

// ProgramFixture is what a target created for Executable contains.
type ProgramFixture struct {
	Executable  string              `yaml:"executable"`
	Modules     []ModuleFixture     `yaml:"modules"`
	Breakpoints []BreakpointFixture `yaml:"breakpoints"`
}

// ModuleFixture is one image of a program.
type ModuleFixture struct {
	// Path is the file on the host running the debugger.
	Path string `yaml:"path"`
	// PlatformPath is the file on the debugged platform. Defaults to Path
	// (local debugging).
	PlatformPath string        `yaml:"platform_path"`
	FileAddress  uint64        `yaml:"file_address"`
	Size         uint64        `yaml:"size"`
	Slide        uint64        `yaml:"slide"`
	Lines        []LineFixture `yaml:"lines"`
}

// LineFixture is one row of a module line table. Line 0 marks compiler
// generated code without source line information.
type LineFixture struct {
	Address uint64 `yaml:"address"`
	Size    uint64 `yaml:"size"`
	File    string `yaml:"file"`
	Line    uint32 `yaml:"line"`
	Column  uint32 `yaml:"column"`
}

// BreakpointFixture is a breakpoint preset on the loaded target.
type BreakpointFixture struct {
	Enabled   *bool             `yaml:"enabled"`
	Locations []LocationFixture `yaml:"locations"`
}

// LocationFixture is one location of a preset breakpoint.
type LocationFixture struct {
	// Module is the index of the module the address belongs to.
	Module      int    `yaml:"module"`
	Address     uint64 `yaml:"address"`
	Enabled     *bool  `yaml:"enabled"`
	Resolved    *bool  `yaml:"resolved"`
	IgnoreCount uint32 `yaml:"ignore_count"`
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	f := &Fixture{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("could not decode fixture: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	return f, nil
}

// LoadFixture reads and decodes a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read fixture %s: %w", path, err)
	}

	return ParseFixture(data)
}

func (f *Fixture) validate() error {
	seen := map[string]bool{}
	for i, p := range f.Programs {
		if p.Executable == "" {
			return fmt.Errorf("program %d: executable is required: %w", i, model.ErrNotValid)
		}
		if seen[p.Executable] {
			return fmt.Errorf("program %s: duplicated executable: %w", p.Executable, model.ErrNotValid)
		}
		seen[p.Executable] = true

		for j, m := range p.Modules {
			if m.Path == "" {
				return fmt.Errorf("program %s: module %d: path is required: %w", p.Executable, j, model.ErrNotValid)
			}
		}

		for j, b := range p.Breakpoints {
			for k, l := range b.Locations {
				if l.Module < 0 || l.Module >= len(p.Modules) {
					return fmt.Errorf("program %s: breakpoint %d: location %d: unknown module %d: %w", p.Executable, j, k, l.Module, model.ErrNotValid)
				}
			}
		}
	}

	return nil
}

func (f *Fixture) program(executable string) (ProgramFixture, bool) {
	if f == nil {
		return ProgramFixture{}, false
	}
	for _, p := range f.Programs {
		if p.Executable == executable {
			return p, true
		}
	}
	return ProgramFixture{}, false
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
