package fake

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"github.com/oklog/ulid/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/sbdbg/internal/log"
	"github.com/slok/sbdbg/internal/native"
)

const defaultVersion = "lldb version 17.0.6 (fake)"

// EngineConfig is the configuration for the fake engine.
type EngineConfig struct {
	// Fixture holds the programs targets can be created for. Optional.
	Fixture *Fixture
	// Version overrides the reported version bytes.
	Version string
	// HomeDir is where the init file is looked up. Defaults to the user home.
	HomeDir string
	Logger  log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Version == "" && c.Fixture != nil {
		c.Version = c.Fixture.Version
	}
	if c.Version == "" {
		c.Version = defaultVersion
	}

	if c.HomeDir == "" {
		c.HomeDir = homedir.HomeDir()
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "native.Fake"})
	return nil
}

type kind string

const (
	kindDebugger           kind = "debugger"
	kindTarget             kind = "target"
	kindModule             kind = "module"
	kindFileSpec           kind = "filespec"
	kindLineEntry          kind = "lineentry"
	kindAddress            kind = "address"
	kindBreakpoint         kind = "breakpoint"
	kindBreakpointLocation kind = "breakpointlocation"
	kindStream             kind = "stream"
)

// slot is one native allocation a handle points to.
type slot struct {
	kind     kind
	obj      any
	disposed bool
}

// Stats are the handle allocation counters of the engine.
type Stats struct {
	Allocated int
	Disposed  int
	Live      int
}

// Engine is a fake implementation of the native.Backend interface.
// It simulates the native object graph and handle table of the debugger
// runtime without a real debugger.
type Engine struct {
	fixture     *Fixture
	version     []byte
	homeDir     string
	initialized bool
	handles     map[unsafe.Pointer]*slot
	pool        map[string]string
	debuggers   []*debugger
	violations  []string
	stats       Stats
	mu          sync.Mutex
	logger      log.Logger
}

var _ native.Backend = &Engine{}

// NewEngine creates a new fake engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		fixture: cfg.Fixture,
		version: []byte(cfg.Version),
		homeDir: cfg.HomeDir,
		handles: make(map[unsafe.Pointer]*slot),
		pool:    make(map[string]string),
		logger:  cfg.Logger,
	}, nil
}

// alloc hands out a fresh handle for obj. Callers hold the lock.
func (e *Engine) alloc(k kind, obj any) unsafe.Pointer {
	s := &slot{kind: k, obj: obj}
	p := unsafe.Pointer(s)
	e.handles[p] = s
	e.stats.Allocated++
	e.stats.Live++
	return p
}

// lookup resolves a handle, recording misuse. The null handle is a
// legitimate invalid handle, not misuse. Callers hold the lock.
func (e *Engine) lookup(p unsafe.Pointer, k kind, op string) (any, bool) {
	if p == nil {
		return nil, false
	}

	s, ok := e.handles[p]
	switch {
	case !ok:
		e.violate("%s: unknown %s handle %p", op, k, p)
		return nil, false
	case s.disposed:
		e.violate("%s: use of disposed %s handle %p", op, k, p)
		return nil, false
	case s.kind != k:
		e.violate("%s: %s handle %p used as %s", op, s.kind, p, k)
		return nil, false
	}

	return s.obj, true
}

// release disposes a handle, recording double disposal and disposal after
// Terminate. Callers hold the lock.
func (e *Engine) release(p unsafe.Pointer, k kind, op string) {
	if p == nil {
		return
	}
	if !e.initialized {
		e.violate("%s: %s handle %p disposed outside the runtime lifetime", op, k, p)
		return
	}

	s, ok := e.handles[p]
	switch {
	case !ok:
		e.violate("%s: unknown %s handle %p", op, k, p)
		return
	case s.disposed:
		e.violate("%s: double disposal of %s handle %p", op, k, p)
		return
	case s.kind != k:
		e.violate("%s: %s handle %p disposed as %s", op, s.kind, p, k)
		return
	}

	s.disposed = true
	s.obj = nil
	e.stats.Disposed++
	e.stats.Live--
}

func (e *Engine) violate(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.violations = append(e.violations, msg)
	e.logger.Errorf("Native contract violation: %s", msg)
}

// Violations returns the misuses of the native contract recorded so far:
// double disposals, use after disposal and wrong kind handles.
func (e *Engine) Violations() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]string(nil), e.violations...)
}

// Stats returns the handle allocation counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stats
}

// Initialized returns whether the engine is between Initialize and Terminate.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.initialized
}

// SourcedInitFile returns the init file the debugger consulted on creation,
// empty when none was.
func (e *Engine) SourcedInitFile(d native.DebuggerRef) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, ok := e.lookup(unsafe.Pointer(d), kindDebugger, "SourcedInitFile")
	if !ok {
		return ""
	}
	return obj.(*debugger).initFile
}

// UnloadModule unloads the module at idx of a target, invalidating every
// module, address and line entry handle that refers to it.
func (e *Engine) UnloadModule(t native.TargetRef, idx int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	obj, ok := e.lookup(unsafe.Pointer(t), kindTarget, "UnloadModule")
	if !ok {
		return fmt.Errorf("invalid target handle")
	}
	tgt := obj.(*target)
	if idx < 0 || idx >= len(tgt.modules) {
		return fmt.Errorf("module index %d out of range", idx)
	}

	tgt.modules[idx].alive = false
	tgt.modules = append(tgt.modules[:idx], tgt.modules[idx+1:]...)
	e.logger.Debugf("Unloaded module %d of target", idx)

	return nil
}

// Initialize starts the fake runtime.
func (e *Engine) Initialize() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		e.violate("Initialize: already initialized")
		return
	}
	e.initialized = true
	e.logger.Debugf("Fake runtime initialized")
}

// Terminate tears down the fake runtime.
func (e *Engine) Terminate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		e.violate("Terminate: not initialized")
		return
	}
	e.initialized = false
	e.debuggers = nil
	e.logger.Debugf("Fake runtime terminated")
}

// VersionString returns the configured version bytes as is.
func (e *Engine) VersionString() []byte {
	return append([]byte(nil), e.version...)
}

// CreateDebugger creates a new debugger instance.
func (e *Engine) CreateDebugger(sourceInitFiles bool) native.DebuggerRef {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		e.violate("CreateDebugger: not initialized")
	}

	d := &debugger{
		id:   len(e.debuggers) + 1,
		name: ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
	}

	if sourceInitFiles {
		initFile := filepath.Join(e.homeDir, ".lldbinit")
		if _, err := os.Stat(initFile); err == nil {
			d.initFile = initFile
		}
	}

	e.debuggers = append(e.debuggers, d)
	e.logger.Debugf("Created fake debugger: %s (id: %d)", d.name, d.id)

	return native.DebuggerRef(e.alloc(kindDebugger, d))
}
