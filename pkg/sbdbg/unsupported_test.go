//go:build !lldb || !cgo

package sbdbg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/sbdbg/pkg/sbdbg"
)

func TestInitializeLLDBUnsupported(t *testing.T) {
	err := sbdbg.Initialize(sbdbg.Config{})
	assert.ErrorIs(t, err, sbdbg.ErrNotSupported)

	// Nothing was initialized.
	assert.ErrorIs(t, sbdbg.Terminate(), sbdbg.ErrNotInitialized)
}
