package sbdbg

import (
	"strings"

	"github.com/slok/sbdbg/internal/native"
)

// DescriptionLevel is the verbosity an entity describes itself with.
type DescriptionLevel = native.DescriptionLevel

const (
	// DescriptionLevelBrief is a one line summary.
	DescriptionLevelBrief = native.DescriptionLevelBrief
	// DescriptionLevelFull adds the details a user usually wants.
	DescriptionLevelFull = native.DescriptionLevelFull
	// DescriptionLevelVerbose adds everything the native side knows.
	DescriptionLevelVerbose = native.DescriptionLevelVerbose
	// DescriptionLevelInitial is the terse level the native side logs with.
	DescriptionLevelInitial = native.DescriptionLevelInitial
)

// Stream is a growable native text buffer entities describe themselves into.
//
// Its content is diagnostic output only and is never meant to be parsed.
type Stream struct {
	h *handle[native.StreamRef]
}

// NewStream allocates a new empty stream.
func NewStream() *Stream { return newStream(current()) }

func newStream(e *env) *Stream {
	return &Stream{h: newHandle(e, &streamKind, e.be.CreateStream())}
}

// IsValid asks the native side whether the stream is usable.
func (s *Stream) IsValid() bool { return s.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (s *Stream) Raw() StreamRef { return s.h.get() }

// Close releases the native stream.
func (s *Stream) Close() { s.h.close() }

// Data returns the text written so far. Invalid UTF-8 sequences are replaced.
func (s *Stream) Data() string {
	b := call(s.h, native.Backend.StreamData)
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

// describe renders an entity through a stream allocated for this request only.
func describe[R ref](h *handle[R], fn func(be native.Backend, raw R, s native.StreamRef) bool) string {
	if h.disposed {
		return "disposed"
	}

	s := newStream(h.env)
	defer s.Close()

	call(h, func(be native.Backend, raw R) bool {
		return fn(be, raw, s.h.get())
	})
	return s.Data()
}
