package sbdbg

import (
	"fmt"
	"runtime"
	"sync"
	"unicode/utf8"
	"unsafe"

	"github.com/slok/sbdbg/internal/log"
	"github.com/slok/sbdbg/internal/native"
)

type ref interface {
	~unsafe.Pointer
}

// env is what every wrapper needs to reach the native side. Once terminated,
// nothing is disposed through it anymore.
type env struct {
	be     native.Backend
	logger log.Logger

	mu         sync.RWMutex
	terminated bool
}

// terminate tears down the native runtime, waiting for in flight disposals.
func (e *env) terminate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.terminated = true
	e.be.Terminate()
}

// dispose releases raw, false when the runtime was already terminated.
func dispose[R ref](e *env, k *kind[R], raw R) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.terminated {
		return false
	}
	k.dispose(e.be, raw)
	return true
}

// kind is the validity predicate and disposal call of one native object kind.
type kind[R ref] struct {
	name    string
	valid   func(native.Backend, R) bool
	dispose func(native.Backend, R)
}

// handle owns the disposal obligation of one native handle.
//
// Exactly one handle exists per wrapper and wrappers are only handed out as
// pointers, so copying a wrapper never duplicates the obligation. close
// disposes once; a cleanup disposes handles that become unreachable without
// being closed, and close cancels it.
type handle[R ref] struct {
	kind     *kind[R]
	env      *env
	raw      R
	disposed bool
	cleanup  runtime.Cleanup
}

func newHandle[R ref](e *env, k *kind[R], raw R) *handle[R] {
	h := &handle[R]{kind: k, env: e, raw: raw}
	h.cleanup = runtime.AddCleanup(h, func(raw R) {
		if !dispose(e, k, raw) {
			e.logger.Debugf("Skipping disposal of unreachable %s handle %p, runtime terminated", k.name, unsafe.Pointer(raw))
			return
		}
		e.logger.Debugf("Disposed unreachable %s handle %p", k.name, unsafe.Pointer(raw))
	}, raw)
	return h
}

// maybeWrap owns raw only when the native side reports it valid. Invalid
// handles are disposed right away and reported as absent.
func maybeWrap[R ref, W any](e *env, k *kind[R], raw R, wrap func(*handle[R]) W) (W, bool) {
	if !k.valid(e.be, raw) {
		dispose(e, k, raw)
		var zero W
		return zero, false
	}
	return wrap(newHandle(e, k, raw)), true
}

// isValid asks the native side every time, a disposed handle is never valid.
func (h *handle[R]) isValid() bool {
	if h.disposed {
		return false
	}
	v := h.kind.valid(h.env.be, h.raw)
	runtime.KeepAlive(h)
	return v
}

func (h *handle[R]) get() R {
	if h.disposed {
		panic(fmt.Sprintf("sbdbg: use of disposed %s", h.kind.name))
	}
	return h.raw
}

func (h *handle[R]) close() {
	if h.disposed {
		return
	}
	h.disposed = true
	h.cleanup.Stop()
	if !dispose(h.env, h.kind, h.raw) {
		h.env.logger.Debugf("Skipping disposal of closed %s handle %p, runtime terminated", h.kind.name, unsafe.Pointer(h.raw))
	}

	var zero R
	h.raw = zero
}

// call runs one native call over the handle. The handle is kept reachable
// until the call returns so its cleanup can't dispose it mid call.
func call[R ref, T any](h *handle[R], fn func(native.Backend, R) T) T {
	v := fn(h.env.be, h.get())
	runtime.KeepAlive(h)
	return v
}

func do[R ref](h *handle[R], fn func(native.Backend, R)) {
	fn(h.env.be, h.get())
	runtime.KeepAlive(h)
}

// wrapChild owns a handle a query over h returned, without checking it.
func wrapChild[R, C ref, W any](h *handle[R], k *kind[C], fn func(native.Backend, R) C, wrap func(*handle[C]) W) W {
	return wrap(newHandle(h.env, k, call(h, fn)))
}

// maybeChild owns a handle a query over h returned only when it is valid.
func maybeChild[R, C ref, W any](h *handle[R], k *kind[C], fn func(native.Backend, R) C, wrap func(*handle[C]) W) (W, bool) {
	return maybeWrap(h.env, k, call(h, fn), wrap)
}

// MalformedTextError is the panic value used when the native side hands back
// text that is contractually well formed but is not valid UTF-8.
type MalformedTextError struct {
	What string
	Data []byte
}

// Error implements the error interface.
func (e *MalformedTextError) Error() string {
	return fmt.Sprintf("sbdbg: native %s is not valid UTF-8: %q", e.What, e.Data)
}

func decodeText(what string, b []byte) string {
	if !utf8.Valid(b) {
		panic(&MalformedTextError{What: what, Data: b})
	}
	return string(b)
}

var (
	debuggerKind = kind[native.DebuggerRef]{
		name:    "Debugger",
		valid:   native.Backend.DebuggerIsValid,
		dispose: native.Backend.DisposeDebugger,
	}
	targetKind = kind[native.TargetRef]{
		name:    "Target",
		valid:   native.Backend.TargetIsValid,
		dispose: native.Backend.DisposeTarget,
	}
	moduleKind = kind[native.ModuleRef]{
		name:    "Module",
		valid:   native.Backend.ModuleIsValid,
		dispose: native.Backend.DisposeModule,
	}
	fileSpecKind = kind[native.FileSpecRef]{
		name:    "FileSpec",
		valid:   native.Backend.FileSpecIsValid,
		dispose: native.Backend.DisposeFileSpec,
	}
	lineEntryKind = kind[native.LineEntryRef]{
		name:    "LineEntry",
		valid:   native.Backend.LineEntryIsValid,
		dispose: native.Backend.DisposeLineEntry,
	}
	addressKind = kind[native.AddressRef]{
		name:    "Address",
		valid:   native.Backend.AddressIsValid,
		dispose: native.Backend.DisposeAddress,
	}
	breakpointKind = kind[native.BreakpointRef]{
		name:    "Breakpoint",
		valid:   native.Backend.BreakpointIsValid,
		dispose: native.Backend.DisposeBreakpoint,
	}
	breakpointLocationKind = kind[native.BreakpointLocationRef]{
		name:    "BreakpointLocation",
		valid:   native.Backend.BreakpointLocationIsValid,
		dispose: native.Backend.DisposeBreakpointLocation,
	}
	streamKind = kind[native.StreamRef]{
		name:    "Stream",
		valid:   native.Backend.StreamIsValid,
		dispose: native.Backend.DisposeStream,
	}
)
