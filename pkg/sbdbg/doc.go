// Package sbdbg is a safe Go layer over the handle based native debugger API
// (liblldb).
//
// Every native object (debugger, target, module, file, line table row,
// address, breakpoint, breakpoint location) is reached through an opaque
// handle the native side hands out and expects back exactly once for
// disposal. This package pairs each handle with a wrapper that owns that
// disposal obligation.
//
// # Quick Start
//
//	if err := sbdbg.Initialize(sbdbg.Config{}); err != nil {
//	    log.Fatal(err)
//	}
//	defer sbdbg.Terminate()
//
//	fmt.Println(sbdbg.Version())
//
//	dbg := sbdbg.Create(false)
//	defer dbg.Close()
//
//	tgt, ok := dbg.CreateTarget("/usr/bin/app")
//	if !ok {
//	    log.Fatal("could not create target")
//	}
//	defer tgt.Close()
//
//	for m := range tgt.Modules().All() {
//	    fmt.Println(m.FileSpec().Path())
//	    m.Close()
//	}
//
// # Lifecycle
//
// [Initialize] and [Terminate] set up and tear down the native runtime for the
// whole process. They must be paired and must surround any other use of the
// package. Calling [Create], [Version] or any Wrap function outside that
// window panics. Re-initializing after Terminate is allowed.
//
// # Ownership and validity
//
// A wrapper owns its handle: Close disposes it exactly once and closing again
// is a no-op. Wrappers that become unreachable without being closed are
// disposed by the garbage collector, use Close to release them in a known
// order, and always before [Terminate]. Once Terminate has run nothing is
// disposed anymore, neither by Close nor by the garbage collector. Using a
// closed wrapper panics, except IsValid that reports false. Raw returns the
// handle without its ownership.
//
// A wrapper is not a proof of liveness. The native side can invalidate the
// object behind it at any time, like deleting a target or unloading a module.
// IsValid asks the native side every time it's called. Queries on invalid
// objects return the native defaults.
//
// Queries that may have no answer return the wrapper and a boolean, the
// native handle is disposed right away when it's invalid. The same applies to
// the MaybeWrap functions used to adopt handles obtained elsewhere.
//
// # Enumeration
//
// Native collections are exposed as an [Enumerator]. It asks the parent for
// its size on every advance, ends when the parent is invalid, and never
// restarts.
//
// # Descriptions
//
// Every wrapper implements [fmt.Stringer] with the native description at the
// brief level. The text is for humans, never parse it. [Dump] renders a
// debugger inventory as a table or JSON.
//
// # Error Handling
//
// Absence is reported with booleans, not errors. Errors are only returned by
// the lifecycle and can be inspected with [errors.Is]:
//
//   - [ErrAlreadyInitialized]: Initialize without a previous Terminate.
//   - [ErrNotInitialized]: Terminate without a previous Initialize.
//   - [ErrNotSupported]: The backend is not available in this build.
//   - [ErrNotValid]: Invalid configuration.
//
// Names, paths and the version must be valid UTF-8, otherwise the call panics
// with a [*MalformedTextError].
//
// # Testing
//
// Use [BackendFake] with a YAML fixture to write tests without a debugger
// installed:
//
//	err := sbdbg.Initialize(sbdbg.Config{
//	    Backend:     sbdbg.BackendFake,
//	    FakeFixture: "testdata/programs.yaml",
//	})
//
// # Thread Safety
//
// The package adds no locking over the native side. Concurrent read only
// queries are as safe as the native side makes them. Callers must serialize
// disposal and mutation of the same wrapper across goroutines.
package sbdbg
