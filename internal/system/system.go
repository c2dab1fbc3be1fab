// Package system holds host-level helpers: memory-aware sizing for the
// history stack and a pooled RGBA allocator for export rendering.
package system

import (
	"log"

	"github.com/shirou/gopsutil/v3/mem"
)

// Per-entry cost estimate for history sizing. A snapshot of a board with
// a few hundred nodes serializes to well under this; erring high keeps the
// suggestion conservative on small machines.
const approxEntryBytes = 256 * 1024

// SuggestHistoryDepth picks an undo depth from available memory, clamped
// to [min, max]. Budget: at most 1% of available RAM spent on snapshots.
// Falls back to min when the probe fails (containers without /proc, etc.).
func SuggestHistoryDepth(min, max int) int {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("[!] memory probe failed, history depth %d: %v", min, err)
		return min
	}
	depth := int(vm.Available / 100 / approxEntryBytes)
	if depth < min {
		return min
	}
	if depth > max {
		return max
	}
	return depth
}
