// Aggregates completed-run output into the two result tables consumed by
// downstream reporting: per-server utilisation and steady-state system
// times.

package queue

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Tag is a constant column broadcast onto every row of a result table,
// e.g. scenario id or server count. Tags keep their insertion order so
// concatenation across scenario runs is stable.
type Tag struct {
	Key   string
	Value string
}

// UtilisationRow is one server's whole-run utilisation, in [0, 1].
type UtilisationRow struct {
	Server      int
	Utilisation float64
	Tags        []Tag
}

// SystemTimeRow is one completed customer's time in the system, restricted
// to the steady-state observation window.
type SystemTimeRow struct {
	SystemTime float64
	Tags       []Tag
}

// Results bundles both tables produced by one run.
type Results struct {
	Utilisations []UtilisationRow
	SystemTimes  []SystemTimeRow
}

// Results builds the two result tables from a finished run, broadcasting
// the supplied tags onto every row.
//
// Utilisation is a whole-run property: busy-time over the full observed
// span, with no window filtering. System times keep only records whose
// arrival falls strictly inside the central 50% of the horizon
// (0.25*max_time < arrival < 0.75*max_time): customers arriving near time
// zero see an artificially empty system and customers arriving near the
// horizon may not have completed, so both tails are discarded outright.
func (sim *Simulator) Results(tags ...Tag) Results {
	var res Results

	for id, u := range sim.Servers.Utilisations(sim.EndTime) {
		res.Utilisations = append(res.Utilisations, UtilisationRow{
			Server:      id,
			Utilisation: u,
			Tags:        tags,
		})
	}

	lo, hi := 0.25*sim.Horizon, 0.75*sim.Horizon
	for _, r := range sim.Records {
		if lo < r.ArrivalDate && r.ArrivalDate < hi {
			res.SystemTimes = append(res.SystemTimes, SystemTimeRow{
				SystemTime: r.SystemTime(),
				Tags:       tags,
			})
		}
	}

	return res
}

// Summary condenses a Results bundle for terminal reporting.
type Summary struct {
	Completed        int // rows in the system-time table
	MeanUtilisation  float64
	MeanSystemTime   float64
	MedianSystemTime float64
	P95SystemTime    float64
}

// Summarize computes aggregate statistics from one run's result tables.
// Safe for empty tables (returns zero-value fields).
func Summarize(res Results) Summary {
	var s Summary

	if len(res.Utilisations) > 0 {
		utils := make([]float64, len(res.Utilisations))
		for i, row := range res.Utilisations {
			utils[i] = row.Utilisation
		}
		s.MeanUtilisation = stat.Mean(utils, nil)
	}

	if len(res.SystemTimes) > 0 {
		times := make([]float64, len(res.SystemTimes))
		for i, row := range res.SystemTimes {
			times[i] = row.SystemTime
		}
		sort.Float64s(times)
		s.Completed = len(times)
		s.MeanSystemTime = stat.Mean(times, nil)
		s.MedianSystemTime = stat.Quantile(0.5, stat.Empirical, times, nil)
		s.P95SystemTime = stat.Quantile(0.95, stat.Empirical, times, nil)
	}

	return s
}

// Print displays the summary at the end of a run.
func (s Summary) Print() {
	fmt.Println("=== Scenario Results ===")
	fmt.Printf("Mean utilisation       : %.4f\n", s.MeanUtilisation)
	fmt.Printf("Steady-state patients  : %d\n", s.Completed)
	if s.Completed > 0 {
		fmt.Printf("Mean system time       : %.2f days\n", s.MeanSystemTime)
		fmt.Printf("Median system time     : %.2f days\n", s.MedianSystemTime)
		fmt.Printf("95th pct system time   : %.2f days\n", s.P95SystemTime)
	}
}
