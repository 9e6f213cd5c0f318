// Package replicate fans out independent scenario runs across a bounded
// worker pool. Runs share nothing: each task builds its own Simulator with
// its own RNG, schedule, and server pool, so concurrent execution needs no
// synchronization beyond task hand-off.
package replicate

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pathway-sim/pathway-sim/queue"
)

// Task is one fully-specified, self-contained scenario to simulate.
type Task struct {
	Config queue.ScenarioConfig
	// Tags are broadcast onto every result row of this task's run.
	Tags []queue.Tag
}

// Outcome is one task's result tables, in the same position as its task.
type Outcome struct {
	Task    Task
	Results queue.Results
	Err     error // non-nil when the scenario config was rejected
}

// Run executes every task and returns outcomes in task order. workers
// bounds concurrency; values below 1 are treated as 1. A task whose
// configuration fails validation yields an Outcome with Err set; other
// tasks are unaffected.
func Run(tasks []Task, workers int) []Outcome {
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	outcomes := make([]Outcome, len(tasks))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				outcomes[i] = runOne(tasks[i])
			}
		}()
	}

	for i := range tasks {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return outcomes
}

func runOne(task Task) Outcome {
	sim, err := queue.NewSimulator(task.Config)
	if err != nil {
		logrus.Errorf("scenario rejected: %v", err)
		return Outcome{Task: task, Err: err}
	}
	sim.Run()
	return Outcome{Task: task, Results: sim.Results(task.Tags...)}
}
