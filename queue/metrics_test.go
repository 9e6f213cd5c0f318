package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultsFixture builds a finished-run simulator with injected records.
func resultsFixture(t *testing.T, horizon float64, records []Record) *Simulator {
	t.Helper()
	pool, err := NewServerPool(1)
	require.NoError(t, err)
	return &Simulator{
		Horizon: horizon,
		EndTime: horizon,
		Servers: pool,
		Records: records,
	}
}

func TestResults_SteadyStateWindowIsBoundaryExclusive(t *testing.T) {
	// GIVEN records arriving at 10, 100, 200, 300 with max_time 400
	sim := resultsFixture(t, 400, []Record{
		{ArrivalDate: 10, ExitDate: 20},
		{ArrivalDate: 100, ExitDate: 130},
		{ArrivalDate: 200, ExitDate: 250},
		{ArrivalDate: 300, ExitDate: 310},
	})

	// WHEN the system-time table is built
	res := sim.Results()

	// THEN only the arrival strictly inside (100, 300) survives; the
	// records at exactly 100 and 300 are excluded
	require.Len(t, res.SystemTimes, 1)
	assert.Equal(t, 50.0, res.SystemTimes[0].SystemTime)
}

func TestResults_UtilisationIsWholeRun(t *testing.T) {
	// GIVEN one server busy for 30 of 100 days, partly outside the
	// steady-state window
	sim := resultsFixture(t, 100, nil)
	sim.Servers.Acquire(0)
	require.NoError(t, sim.Servers.Release(0, 30))

	res := sim.Results()

	// utilisation ignores the window: whole-run busy share
	require.Len(t, res.Utilisations, 1)
	assert.InDelta(t, 0.3, res.Utilisations[0].Utilisation, 1e-12)
	assert.Equal(t, 0, res.Utilisations[0].Server)
}

func TestResults_BroadcastsTags(t *testing.T) {
	sim := resultsFixture(t, 400, []Record{
		{ArrivalDate: 150, ExitDate: 160},
		{ArrivalDate: 250, ExitDate: 270},
	})

	tags := []Tag{
		{Key: "num_servers", Value: "40"},
		{Key: "sigma", Value: "1"},
	}
	res := sim.Results(tags...)

	require.Len(t, res.SystemTimes, 2)
	for _, row := range res.SystemTimes {
		assert.Equal(t, tags, row.Tags)
	}
	for _, row := range res.Utilisations {
		assert.Equal(t, tags, row.Tags)
	}
}

func TestSummarize(t *testing.T) {
	res := Results{
		Utilisations: []UtilisationRow{
			{Server: 0, Utilisation: 0.2},
			{Server: 1, Utilisation: 0.6},
		},
		SystemTimes: []SystemTimeRow{
			{SystemTime: 1},
			{SystemTime: 2},
			{SystemTime: 3},
			{SystemTime: 10},
		},
	}

	s := Summarize(res)

	assert.Equal(t, 4, s.Completed)
	assert.InDelta(t, 0.4, s.MeanUtilisation, 1e-12)
	assert.InDelta(t, 4.0, s.MeanSystemTime, 1e-12)
	assert.InDelta(t, 2.0, s.MedianSystemTime, 1e-12)
}

func TestSummarize_EmptyResults(t *testing.T) {
	s := Summarize(Results{})

	assert.Equal(t, 0, s.Completed)
	assert.Equal(t, 0.0, s.MeanUtilisation)
	assert.Equal(t, 0.0, s.MeanSystemTime)
}
