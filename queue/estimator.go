package queue

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// StayRecord is one historical observation: when the patient was admitted
// and how long they stayed, in days.
type StayRecord struct {
	AdmissionDate time.Time
	LengthOfStay  float64
}

// ClassParams holds one class's estimated distribution parameters:
// exponential arrivals at ArrivalRate per day, shifted-exponential service
// at ServiceRate per day beyond a guaranteed MinimumShift days.
type ClassParams struct {
	ArrivalRate  float64 `yaml:"arrival_rate"`
	ServiceRate  float64 `yaml:"service_rate"`
	MinimumShift float64 `yaml:"minimum_shift"`
}

// InsufficientDataError reports a class with too few historical records to
// estimate inter-arrival statistics. Fatal for the scenario; not retried.
type InsufficientDataError struct {
	Class int
	Count int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("class %d has %d record(s); at least 2 are needed to estimate inter-arrival times", e.Class, e.Count)
}

// EstimateClassParams converts one class's historical stay records into
// distribution parameters. prop scales mean service time (>0) and sigma
// scales the arrival rate (>0). Pure function over its inputs.
//
// The minimum observed stay becomes the service shift, clamped at zero: a
// negative recorded length of stay is a data anomaly and must not produce
// a negative shift. The clamp is logged so the anomaly stays visible.
func EstimateClassParams(class int, records []StayRecord, prop, sigma float64) (ClassParams, error) {
	if prop <= 0 {
		return ClassParams{}, fmt.Errorf("class %d: prop must be positive, got %f", class, prop)
	}
	if sigma <= 0 {
		return ClassParams{}, fmt.Errorf("class %d: sigma must be positive, got %f", class, sigma)
	}
	if len(records) < 2 {
		return ClassParams{}, &InsufficientDataError{Class: class, Count: len(records)}
	}

	sorted := make([]StayRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AdmissionDate.Before(sorted[j].AdmissionDate)
	})

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].AdmissionDate.Sub(sorted[i-1].AdmissionDate).Hours()/24)
	}
	meanGap := stat.Mean(gaps, nil)
	if meanGap <= 0 {
		return ClassParams{}, fmt.Errorf("class %d: mean inter-arrival gap is %f days; admissions must span more than one instant", class, meanGap)
	}

	minStay := sorted[0].LengthOfStay
	for _, r := range sorted[1:] {
		if r.LengthOfStay < minStay {
			minStay = r.LengthOfStay
		}
	}
	shift := minStay
	if shift < 0 {
		logrus.Warnf("class %d: negative minimum length of stay %f clamped to zero shift", class, minStay)
		shift = 0
	}

	shifted := make([]float64, len(sorted))
	for i, r := range sorted {
		shifted[i] = r.LengthOfStay - shift
	}
	meanShifted := stat.Mean(shifted, nil)
	if meanShifted <= 0 {
		return ClassParams{}, fmt.Errorf("class %d: mean shifted length of stay is %f days; service rate is undefined", class, meanShifted)
	}

	return ClassParams{
		ArrivalRate:  sigma / meanGap,
		ServiceRate:  1 / (meanShifted * prop),
		MinimumShift: shift,
	}, nil
}

// EstimateAll estimates parameters for every class in the dataset. props
// is indexed by class label; sigma applies to all classes.
func EstimateAll(byClass map[int][]StayRecord, props []float64, sigma float64) (map[int]ClassParams, error) {
	out := make(map[int]ClassParams, len(byClass))
	ids := make([]int, 0, len(byClass))
	for id := range byClass {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if id < 0 || id >= len(props) {
			return nil, fmt.Errorf("no prop supplied for class %d (have %d props)", id, len(props))
		}
		params, err := EstimateClassParams(id, byClass[id], props[id], sigma)
		if err != nil {
			return nil, err
		}
		out[id] = params
	}
	return out, nil
}
