package queue

import "fmt"

// ScenarioConfig fully specifies one simulation run. A config plus its
// seed determines the run's output byte-for-byte.
type ScenarioConfig struct {
	NumServers int                 `yaml:"num_servers"`
	MaxTime    float64             `yaml:"max_time"` // horizon in simulated days
	Seed       int64               `yaml:"seed"`
	Classes    map[int]ClassParams `yaml:"classes"`
}

// Validate rejects invalid parameters before simulation starts, naming
// the offending parameter and class.
func (c ScenarioConfig) Validate() error {
	if c.NumServers <= 0 {
		return fmt.Errorf("num_servers must be positive, got %d", c.NumServers)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("max_time must be positive, got %f", c.MaxTime)
	}
	if len(c.Classes) == 0 {
		return fmt.Errorf("at least one customer class is required")
	}
	for id, p := range c.Classes {
		if p.ArrivalRate <= 0 {
			return fmt.Errorf("class %d: arrival_rate must be positive, got %f", id, p.ArrivalRate)
		}
		if p.ServiceRate <= 0 {
			return fmt.Errorf("class %d: service_rate must be positive, got %f", id, p.ServiceRate)
		}
		if p.MinimumShift < 0 {
			return fmt.Errorf("class %d: minimum_shift must be non-negative, got %f", id, p.MinimumShift)
		}
	}
	return nil
}
