package sbdbg

import (
	"runtime"

	"github.com/slok/sbdbg/internal/native"
)

// Module is an executable image loaded in a target.
//
// Unloading the image invalidates the module and every address into it.
type Module struct {
	h *handle[native.ModuleRef]
}

func newModule(h *handle[native.ModuleRef]) *Module { return &Module{h: h} }

// WrapModule takes the ownership of raw, valid or not. The returned module
// disposes it on Close.
func WrapModule(raw ModuleRef) *Module {
	return newModule(newHandle(current(), &moduleKind, raw))
}

// MaybeWrapModule takes the ownership of raw only when it's valid. Otherwise
// raw is disposed right away and false is returned.
func MaybeWrapModule(raw ModuleRef) (*Module, bool) {
	return maybeWrap(current(), &moduleKind, raw, newModule)
}

// IsValid asks the native side whether the module is still loaded.
func (m *Module) IsValid() bool { return m.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (m *Module) Raw() ModuleRef { return m.h.get() }

// Close disposes the native module handle. The image stays loaded.
func (m *Module) Close() { m.h.close() }

// String describes the module, empty when it can't be described.
func (m *Module) String() string {
	return describe(m.h, native.Backend.ModuleGetDescription)
}

// Equal reports whether both wrappers denote the same native module.
func (m *Module) Equal(other *Module) bool {
	if other == nil {
		return false
	}
	eq := call(m.h, func(be native.Backend, raw native.ModuleRef) bool {
		return be.ModuleIsEqual(raw, other.h.get())
	})
	runtime.KeepAlive(other)
	return eq
}

// FileSpec returns the file of the module on the host running the debugger.
func (m *Module) FileSpec() *FileSpec {
	return wrapChild(m.h, &fileSpecKind, native.Backend.ModuleGetFileSpec, newFileSpec)
}

// PlatformFileSpec returns the file of the module on the platform running the
// debuggee. It differs from FileSpec when debugging remotely, where the host
// file is a locally cached copy.
func (m *Module) PlatformFileSpec() *FileSpec {
	return wrapChild(m.h, &fileSpecKind, native.Backend.ModuleGetPlatformFileSpec, newFileSpec)
}

// ResolveFileAddress resolves a file address into a section address of the
// module. False when the module doesn't contain it.
func (m *Module) ResolveFileAddress(vmAddr uint64) (*Address, bool) {
	return maybeChild(m.h, &addressKind, func(be native.Backend, raw native.ModuleRef) native.AddressRef {
		return be.ModuleResolveFileAddress(raw, vmAddr)
	}, newAddress)
}
