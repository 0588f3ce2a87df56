package sbdbg

import (
	"runtime"

	"github.com/slok/sbdbg/internal/native"
)

// Address is an address in a module section. It stays meaningful across
// module slides, LoadAddress gives its value in a running target.
type Address struct {
	h *handle[native.AddressRef]
}

func newAddress(h *handle[native.AddressRef]) *Address { return &Address{h: h} }

// WrapAddress takes the ownership of raw, valid or not. The returned address
// disposes it on Close.
func WrapAddress(raw AddressRef) *Address {
	return newAddress(newHandle(current(), &addressKind, raw))
}

// MaybeWrapAddress takes the ownership of raw only when it's valid. Otherwise
// raw is disposed right away and false is returned.
func MaybeWrapAddress(raw AddressRef) (*Address, bool) {
	return maybeWrap(current(), &addressKind, raw, newAddress)
}

// IsValid asks the native side whether the address is usable. Unloading its
// module invalidates it.
func (a *Address) IsValid() bool { return a.h.isValid() }

// Raw returns the handle, the address keeps owning it.
func (a *Address) Raw() AddressRef { return a.h.get() }

// Close disposes the native address. Closing twice is a no-op.
func (a *Address) Close() { a.h.close() }

// String describes the address, empty when it can't be described.
func (a *Address) String() string {
	return describe(a.h, native.Backend.AddressGetDescription)
}

// FileAddress returns the address as laid out in the module file, or
// InvalidAddress.
func (a *Address) FileAddress() uint64 { return call(a.h, native.Backend.AddressGetFileAddress) }

// LoadAddress returns the address in the memory of t, or InvalidAddress when
// the module is not loaded in t.
func (a *Address) LoadAddress(t *Target) uint64 {
	v := call(a.h, func(be native.Backend, raw native.AddressRef) uint64 {
		return be.AddressGetLoadAddress(raw, t.h.get())
	})
	runtime.KeepAlive(t)
	return v
}

// Module returns the module containing the address.
func (a *Address) Module() (*Module, bool) {
	return maybeChild(a.h, &moduleKind, native.Backend.AddressGetModule, newModule)
}

// LineEntry returns the line table row containing the address, false when
// there is no line information for it.
func (a *Address) LineEntry() (*LineEntry, bool) {
	return maybeChild(a.h, &lineEntryKind, native.Backend.AddressGetLineEntry, newLineEntry)
}
