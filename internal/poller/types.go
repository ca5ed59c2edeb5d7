// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/growatt-bridge/internal/growatt"
)

// Read geometry of the two-block register map.
// Geometry only: field semantics live in growatt.
const (
	Block0Addr uint16 = 0
	Block1Addr uint16 = growatt.BlockSize
	BlockQty   uint16 = growatt.BlockSize
)

// BlockSettle is the device turnaround between the two block reads.
const BlockSettle = 10 * time.Millisecond
