package management

import "sync/atomic"

// PurgeLatch records that buffered cells must be dropped until the host collects the request. It
// is the Manager's CellPurger when the host is on the other side of the bridge.
type PurgeLatch struct {
	pending atomic.Uint32
}

// NewPurgeLatch returns an empty latch.
func NewPurgeLatch() *PurgeLatch {
	return &PurgeLatch{}
}

// PurgeBufferedCells marks a purge as pending.
func (p *PurgeLatch) PurgeBufferedCells() {
	p.pending.Add(1)
}

// Take clears the latch and returns how many purges were requested since the last call.
func (p *PurgeLatch) Take() int {
	return int(p.pending.Swap(0))
}
