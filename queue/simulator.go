// queue/simulator.go
package queue

import (
	"container/heap"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
)

// ErrEmptySchedule is returned by popNext when no events remain. Together
// with the horizon check it forms the run's termination condition.
var ErrEmptySchedule = errors.New("empty schedule")

// scheduledEvent pairs an event with its insertion sequence number. The
// sequence breaks timestamp ties so that simultaneous events are processed
// in original scheduling order, never re-ordered by type.
type scheduledEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// ties broken by insertion sequence.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []scheduledEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(scheduledEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// classState holds one class's samplers for the duration of a run.
type classState struct {
	arrival Sampler
	service Sampler
}

// Simulator is the core object that holds simulation time, system state,
// and the event loop for one run.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventQueue holds all pending arrival and service-completion events
	EventQueue EventQueue
	// WaitQ holds customers waiting for a free server, FCFS
	WaitQ   *WaitQueue
	Servers *ServerPool
	// Records accumulates one entry per completed customer, in
	// completion order
	Records []Record
	// TotalArrivals counts customers created by arrival events
	TotalArrivals int
	// EndTime is the observed span of the run, set by Run: the horizon
	// when the run terminates there, else the clock at schedule drain
	EndTime float64

	classes map[int]*classState
	rng     *ScenarioRNG
	seq     uint64
}

// NewSimulator validates the scenario configuration, builds the server
// pool and per-class samplers, and pre-schedules one arrival per class.
// All parameter validation happens here; a constructed Simulator runs to
// completion unconditionally.
func NewSimulator(cfg ScenarioConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := NewServerPool(cfg.NumServers)
	if err != nil {
		return nil, err
	}

	sim := &Simulator{
		Clock:      0,
		Horizon:    cfg.MaxTime,
		EventQueue: make(EventQueue, 0),
		WaitQ:      &WaitQueue{},
		Servers:    pool,
		classes:    make(map[int]*classState),
		rng:        NewScenarioRNG(cfg.Seed),
	}

	// Classes are initialised in id order so that seed derivation and the
	// initial arrival bootstrap are independent of map iteration order.
	ids := make([]int, 0, len(cfg.Classes))
	for id := range cfg.Classes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		p := cfg.Classes[id]
		arrival, err := NewExponential(p.ArrivalRate, sim.rng.Stream(ArrivalStream(id)))
		if err != nil {
			return nil, err
		}
		service, err := NewShiftedExponential(p.ServiceRate, p.MinimumShift, sim.rng.Stream(ServiceStream(id)))
		if err != nil {
			return nil, err
		}
		sim.classes[id] = &classState{arrival: arrival, service: service}
		sim.Schedule(&ArrivalEvent{time: arrival.Sample(), Class: id})
	}

	return sim, nil
}

// Schedule pushes an event into the simulator's EventQueue, stamping it
// with the next insertion sequence number.
func (sim *Simulator) Schedule(ev Event) {
	sim.seq++
	heap.Push(&sim.EventQueue, scheduledEvent{ev: ev, seq: sim.seq})
}

// Run executes the event loop: repeatedly pop the earliest event, stop
// without processing it once its time exceeds the horizon, otherwise
// advance the clock and execute it. The schedule cannot drain before the
// horizon in steady operation since every arrival reschedules itself; the
// drain path only fires for degenerate scenarios.
func (sim *Simulator) Run() {
	for {
		ev, err := sim.popNext()
		if err != nil {
			sim.EndTime = sim.Clock
			// servers still mid-service keep their busy span up to the
			// end of the observed run
			sim.Servers.WrapUp(sim.EndTime)
			logrus.Debugf("[%.4f days] Schedule drained, simulation ended", sim.Clock)
			return
		}
		if ev.Timestamp() > sim.Horizon {
			sim.EndTime = sim.Horizon
			sim.Servers.WrapUp(sim.EndTime)
			logrus.Debugf("[%.4f days] Horizon reached, simulation ended", sim.Horizon)
			return
		}
		// advance the clock
		sim.Clock = ev.Timestamp()
		ev.Execute(sim)
	}
}

// popNext removes and returns the earliest-scheduled event, or
// ErrEmptySchedule when none remain.
func (sim *Simulator) popNext() (Event, error) {
	if len(sim.EventQueue) == 0 {
		return nil, ErrEmptySchedule
	}
	se := heap.Pop(&sim.EventQueue).(scheduledEvent)
	return se.ev, nil
}

// startService assigns the customer to a server and schedules its
// completion after a freshly drawn service duration.
func (sim *Simulator) startService(c *Customer, server int, now float64) {
	c.State = StateInService
	c.Server = server
	c.ServiceStart = now
	duration := sim.classes[c.Class].service.Sample()
	sim.Schedule(&ServiceCompletionEvent{
		time:     now + duration,
		Server:   server,
		Customer: c,
	})
}
