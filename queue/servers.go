package queue

import "fmt"

// InvalidReleaseError signals an engine bug: a release of a server that was
// not busy. It is never swallowed by the engine.
type InvalidReleaseError struct {
	Server int
}

func (e *InvalidReleaseError) Error() string {
	return fmt.Sprintf("release of idle server %d", e.Server)
}

// ServerPool is a fixed bank of identical, interchangeable servers. It
// tracks which servers are busy and accumulates per-server busy time.
// Servers are observed from simulated time 0, not from first use.
//
// Thread-safety: NOT thread-safe. A pool belongs to a single run.
type ServerPool struct {
	busy       []bool
	assignedAt []float64
	busyTime   []float64
}

// NewServerPool creates a pool of n idle servers with zero busy time.
func NewServerPool(n int) (*ServerPool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("num_servers must be positive, got %d", n)
	}
	return &ServerPool{
		busy:       make([]bool, n),
		assignedAt: make([]float64, n),
		busyTime:   make([]float64, n),
	}, nil
}

// Acquire marks the lowest-numbered idle server busy as of now and returns
// its id. The second return value is false when every server is busy.
func (p *ServerPool) Acquire(now float64) (int, bool) {
	for id := range p.busy {
		if !p.busy[id] {
			p.busy[id] = true
			p.assignedAt[id] = now
			return id, true
		}
	}
	return -1, false
}

// Release marks the server idle and adds the elapsed assignment span to its
// busy-time counter. Releasing a server that is not busy is an engine bug
// and returns an InvalidReleaseError.
func (p *ServerPool) Release(id int, now float64) error {
	if id < 0 || id >= len(p.busy) || !p.busy[id] {
		return &InvalidReleaseError{Server: id}
	}
	p.busy[id] = false
	p.busyTime[id] += now - p.assignedAt[id]
	return nil
}

// WrapUp folds the open assignment span of every still-busy server into
// its busy-time counter as of the given time, closing the books at run
// end. Busy servers stay busy and their assignment clock moves to at, so
// a later Release adds only time beyond the wrap-up point.
func (p *ServerPool) WrapUp(at float64) {
	for id, busy := range p.busy {
		if busy {
			p.busyTime[id] += at - p.assignedAt[id]
			p.assignedAt[id] = at
		}
	}
}

// Size returns the number of servers in the pool.
func (p *ServerPool) Size() int {
	return len(p.busy)
}

// BusyCount returns the number of currently busy servers.
func (p *ServerPool) BusyCount() int {
	n := 0
	for _, b := range p.busy {
		if b {
			n++
		}
	}
	return n
}

// BusyTime returns the accumulated busy time of one server. Time spent in
// a still-open assignment is not included until the matching Release.
func (p *ServerPool) BusyTime(id int) float64 {
	return p.busyTime[id]
}

// Utilisations returns busy-time / totalTime for every server, in server
// id order. totalTime spans the whole run, from time 0. A non-positive
// span means nothing was observed and yields all-zero utilisations.
func (p *ServerPool) Utilisations(totalTime float64) []float64 {
	out := make([]float64, len(p.busyTime))
	if totalTime <= 0 {
		return out
	}
	for id, bt := range p.busyTime {
		out[id] = bt / totalTime
	}
	return out
}
