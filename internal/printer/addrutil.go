package printer

import "fmt"

const invalidAddress = ^uint64(0)

// FormatAddress returns an address in hex, zero padded to 64 bits.
// The invalid address (all bits set) is rendered as "-".
func FormatAddress(addr uint64) string {
	if addr == invalidAddress {
		return "-"
	}
	return fmt.Sprintf("0x%016x", addr)
}

// FormatLine returns "file:line", without the line when it's unknown (0) and
// "-" when there is no file.
func FormatLine(file string, line uint32) string {
	switch {
	case file == "":
		return "-"
	case line == 0:
		return file
	default:
		return fmt.Sprintf("%s:%d", file, line)
	}
}
