package queue

// Customer lifecycle states.
const (
	StateWaiting   = "waiting"
	StateInService = "in_service"
	StateCompleted = "completed"
)

// Customer represents one patient moving through the node. It exists from
// the instant its arrival event fires until its completion Record is
// emitted, and is owned exclusively by the Simulator in between.
type Customer struct {
	Class        int
	ArrivalDate  float64 // simulated clock value at arrival
	ServiceStart float64 // set when a server is assigned
	ExitDate     float64 // set at completion
	Server       int     // assigned server id; -1 while waiting
	State        string
}
