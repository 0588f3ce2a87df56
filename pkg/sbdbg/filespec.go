package sbdbg

import (
	"path"

	"github.com/slok/sbdbg/internal/native"
)

// FileSpec is a file path split in directory and filename.
type FileSpec struct {
	h *handle[native.FileSpecRef]
}

func newFileSpec(h *handle[native.FileSpecRef]) *FileSpec { return &FileSpec{h: h} }

// WrapFileSpec takes the ownership of raw, valid or not. The returned file spec
// disposes it on Close.
func WrapFileSpec(raw FileSpecRef) *FileSpec {
	return newFileSpec(newHandle(current(), &fileSpecKind, raw))
}

// MaybeWrapFileSpec takes the ownership of raw only when it's valid. Otherwise
// raw is disposed right away and false is returned.
func MaybeWrapFileSpec(raw FileSpecRef) (*FileSpec, bool) {
	return maybeWrap(current(), &fileSpecKind, raw, newFileSpec)
}

// IsValid asks the native side whether the file spec is usable. A file spec
// for a missing file is still valid.
func (f *FileSpec) IsValid() bool { return f.h.isValid() }

// Raw returns the handle without transferring its ownership.
func (f *FileSpec) Raw() FileSpecRef { return f.h.get() }

// Close disposes the native file spec. Closing twice is a no-op.
func (f *FileSpec) Close() { f.h.close() }

// String describes the file spec. Malformed text is replaced, not rejected.
func (f *FileSpec) String() string {
	return describe(f.h, native.Backend.FileSpecGetDescription)
}

// Exists checks the file on the local file system.
func (f *FileSpec) Exists() bool { return call(f.h, native.Backend.FileSpecExists) }

// Filename returns the last path component.
func (f *FileSpec) Filename() string {
	return decodeText("file name", call(f.h, native.Backend.FileSpecGetFilename))
}

// Directory returns the path without the filename, with no trailing separator.
func (f *FileSpec) Directory() string {
	return decodeText("directory", call(f.h, native.Backend.FileSpecGetDirectory))
}

// Path joins the directory and the filename.
func (f *FileSpec) Path() string {
	dir, name := f.Directory(), f.Filename()
	switch {
	case dir == "":
		return name
	case name == "":
		return dir
	default:
		return path.Join(dir, name)
	}
}
