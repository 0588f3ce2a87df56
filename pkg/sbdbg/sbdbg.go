package sbdbg

import (
	"fmt"
	"sync"

	"github.com/slok/sbdbg/internal/log"
	"github.com/slok/sbdbg/internal/model"
	"github.com/slok/sbdbg/internal/native/fake"
	"github.com/slok/sbdbg/internal/native/lldb"
)

// BackendType identifies the native backend implementation.
type BackendType string

const (
	// BackendLLDB forwards to liblldb. Requires a build with cgo and the
	// lldb build tag.
	BackendLLDB BackendType = "lldb"

	// BackendFake uses an in-memory simulation of the native side.
	// Use this for unit testing without a debugger installed.
	BackendFake BackendType = "fake"
)

var (
	// ErrNotValid is returned when the configuration is not valid.
	ErrNotValid = model.ErrNotValid
	// ErrNotSupported is returned when the selected backend is not in this build.
	ErrNotSupported = model.ErrNotSupported
	// ErrNotInitialized is returned by Terminate without a previous Initialize.
	ErrNotInitialized = model.ErrNotInitialized
	// ErrAlreadyInitialized is returned by Initialize without a previous Terminate.
	ErrAlreadyInitialized = model.ErrAlreadyInitialized
)

// Config configures the layer.
//
// All fields are optional. An empty Config uses liblldb.
type Config struct {
	// Backend selects the native backend.
	// Default: BackendLLDB.
	Backend BackendType

	// Native is used as the native backend when set, Backend is ignored.
	Native NativeBackend

	// FakeFixture is a YAML fixture with the programs the fake backend can
	// load as targets. Only used with BackendFake.
	FakeFixture string

	// Logger receives structured log output.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "sbdbg"})

	if c.Backend == "" {
		c.Backend = BackendLLDB
	}

	if c.Native == nil && c.Backend != BackendLLDB && c.Backend != BackendFake {
		return fmt.Errorf("unknown backend %q: %w", c.Backend, model.ErrNotValid)
	}

	if c.FakeFixture != "" && c.Backend != BackendFake {
		return fmt.Errorf("fake fixture requires the fake backend: %w", model.ErrNotValid)
	}

	return nil
}

func (c Config) newBackend() (NativeBackend, error) {
	if c.Native != nil {
		return c.Native, nil
	}

	switch c.Backend {
	case BackendLLDB:
		return lldb.New(lldb.BackendConfig{Logger: c.Logger})
	case BackendFake:
		var fixture *fake.Fixture
		if c.FakeFixture != "" {
			f, err := fake.LoadFixture(c.FakeFixture)
			if err != nil {
				return nil, fmt.Errorf("could not load fake fixture: %w", err)
			}
			fixture = f
		}
		eng, err := fake.NewEngine(fake.EngineConfig{Fixture: fixture, Logger: c.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create fake engine: %w", err)
		}
		return eng, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s: %w", c.Backend, model.ErrNotValid)
	}
}

// lifecycle is the process wide state of the layer.
var lifecycle struct {
	mu  sync.Mutex
	env *env
}

// Initialize sets up the native runtime. It must be called once before any
// other use of the layer and paired with Terminate.
func Initialize(cfg Config) error {
	if err := cfg.defaults(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	if lifecycle.env != nil {
		return fmt.Errorf("could not initialize: %w", model.ErrAlreadyInitialized)
	}

	be, err := cfg.newBackend()
	if err != nil {
		return fmt.Errorf("could not create native backend: %w", err)
	}

	be.Initialize()
	lifecycle.env = &env{be: be, logger: cfg.Logger}

	backend := string(cfg.Backend)
	if cfg.Native != nil {
		backend = "custom"
	}
	cfg.Logger.Infof("Native debugger runtime initialized (backend: %s)", backend)

	return nil
}

// Terminate tears down the native runtime. No wrapper may be used afterwards.
// Wrappers created before it are never disposed from then on, neither by
// Close nor when the garbage collector finds them unreachable.
func Terminate() error {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	if lifecycle.env == nil {
		return fmt.Errorf("could not terminate: %w", model.ErrNotInitialized)
	}

	e := lifecycle.env
	lifecycle.env = nil
	e.terminate()
	e.logger.Infof("Native debugger runtime terminated")

	return nil
}

// current returns the environment of the initialized layer. Using the layer
// outside the Initialize/Terminate window is a programming error.
func current() *env {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	if lifecycle.env == nil {
		panic("sbdbg: used outside the Initialize/Terminate window")
	}
	return lifecycle.env
}

// Version returns the version of the native debugger. It doesn't need any
// debugger instance.
func Version() string {
	return decodeText("version string", current().be.VersionString())
}
