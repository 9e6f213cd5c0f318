package queue

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (absolute simulated days) and an Execute
// method that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents the arrival of a new customer of one class.
type ArrivalEvent struct {
	time  float64
	Class int
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute creates the arriving customer, schedules the class's next
// arrival, and either starts service immediately or queues the customer.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Arrival: class %d at %.4f days", e.Class, e.time)

	c := &Customer{
		Class:       e.Class,
		ArrivalDate: e.time,
		Server:      -1,
		State:       StateWaiting,
	}
	sim.TotalArrivals++

	// Each class reschedules its own next arrival, so the schedule never
	// empties before the horizon is reached.
	cls := sim.classes[e.Class]
	sim.Schedule(&ArrivalEvent{time: e.time + cls.arrival.Sample(), Class: e.Class})

	if id, ok := sim.Servers.Acquire(e.time); ok {
		sim.startService(c, id, e.time)
	} else {
		sim.WaitQ.Enqueue(c)
	}
}

// ServiceCompletionEvent represents the end of one customer's service on
// one server.
type ServiceCompletionEvent struct {
	time     float64
	Server   int
	Customer *Customer
}

// Timestamp returns the scheduled time of the ServiceCompletionEvent.
func (e *ServiceCompletionEvent) Timestamp() float64 {
	return e.time
}

// Execute releases the server, emits the completion Record, and hands the
// freed server to the longest-waiting customer in the same processing
// step, so a freed server is never idle while customers wait.
func (e *ServiceCompletionEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< ServiceCompletion: class %d on server %d at %.4f days",
		e.Customer.Class, e.Server, e.time)

	if err := sim.Servers.Release(e.Server, e.time); err != nil {
		// Only this handler releases servers; a failed release means the
		// engine itself is broken.
		panic(err)
	}

	c := e.Customer
	c.State = StateCompleted
	c.ExitDate = e.time
	sim.Records = append(sim.Records, Record{
		Class:       c.Class,
		ArrivalDate: c.ArrivalDate,
		ExitDate:    c.ExitDate,
		Server:      e.Server,
	})

	if next := sim.WaitQ.Dequeue(); next != nil {
		id, ok := sim.Servers.Acquire(e.time)
		if !ok {
			panic("no idle server immediately after release")
		}
		sim.startService(next, id, e.time)
	}
}
