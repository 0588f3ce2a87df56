package sbdbg

import "github.com/slok/sbdbg/internal/native"

// LineEntry is a row of a line table: the address range generated for a
// source line.
//
// Line and column are 1 based, 0 means unknown. A line entry with unknown
// line is still valid.
type LineEntry struct {
	h *handle[native.LineEntryRef]
}

func newLineEntry(h *handle[native.LineEntryRef]) *LineEntry { return &LineEntry{h: h} }

// WrapLineEntry takes the ownership of raw, valid or not. The returned line entry
// disposes it on Close.
func WrapLineEntry(raw LineEntryRef) *LineEntry {
	return newLineEntry(newHandle(current(), &lineEntryKind, raw))
}

// MaybeWrapLineEntry takes the ownership of raw only when it's valid. Otherwise
// raw is disposed right away and false is returned.
func MaybeWrapLineEntry(raw LineEntryRef) (*LineEntry, bool) {
	return maybeWrap(current(), &lineEntryKind, raw, newLineEntry)
}

// IsValid asks the native side whether the line entry is usable.
func (l *LineEntry) IsValid() bool { return l.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (l *LineEntry) Raw() LineEntryRef { return l.h.get() }

// Close disposes the native line entry. Closing twice is a no-op.
func (l *LineEntry) Close() { l.h.close() }

// String describes the row with its address range and source position.
func (l *LineEntry) String() string {
	return describe(l.h, native.Backend.LineEntryGetDescription)
}

// StartAddress returns the first address of the row.
func (l *LineEntry) StartAddress() *Address {
	return wrapChild(l.h, &addressKind, native.Backend.LineEntryGetStartAddress, newAddress)
}

// EndAddress returns the address right after the row.
func (l *LineEntry) EndAddress() *Address {
	return wrapChild(l.h, &addressKind, native.Backend.LineEntryGetEndAddress, newAddress)
}

// FileSpec returns the source file of the row.
func (l *LineEntry) FileSpec() *FileSpec {
	return wrapChild(l.h, &fileSpecKind, native.Backend.LineEntryGetFileSpec, newFileSpec)
}

// Line returns the source line, 0 when unknown.
func (l *LineEntry) Line() uint32 { return call(l.h, native.Backend.LineEntryGetLine) }

// Column returns the source column, 0 when unknown.
func (l *LineEntry) Column() uint32 { return call(l.h, native.Backend.LineEntryGetColumn) }
