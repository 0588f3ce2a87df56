//go:build !lldb || !cgo

package lldb

import (
	"fmt"

	"github.com/slok/sbdbg/internal/log"
	"github.com/slok/sbdbg/internal/model"
	"github.com/slok/sbdbg/internal/native"
)

// BackendConfig is the configuration of the liblldb backend.
type BackendConfig struct {
	Logger log.Logger
}

// New fails, the binary was built without liblldb.
func New(cfg BackendConfig) (native.Backend, error) {
	return nil, fmt.Errorf("liblldb backend requires building with cgo and the lldb tag: %w", model.ErrNotSupported)
}
