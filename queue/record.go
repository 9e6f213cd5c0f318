package queue

// Record is an immutable observation of one completed patient episode.
// Records are appended in completion order and never mutated afterwards.
type Record struct {
	Class       int
	ArrivalDate float64
	ExitDate    float64
	Server      int
}

// SystemTime is the total duration the patient spent in the node,
// waiting plus service.
func (r Record) SystemTime() float64 {
	return r.ExitDate - r.ArrivalDate
}
