package printer

import "github.com/slok/sbdbg/internal/model"

// Printer knows how to print debugger inventories in different formats.
type Printer interface {
	PrintInventory(inv model.Inventory) error
	PrintMessage(msg string) error
}
