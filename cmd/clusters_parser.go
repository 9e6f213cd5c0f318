package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pathway-sim/pathway-sim/queue"
)

// dateLayouts are tried in order when parsing admission dates.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// LoadClusteredRecords reads a clustered patient-flow CSV and partitions
// its records by cluster label. The file must carry admission_date,
// true_los and cluster columns; rows with an empty cluster label are
// dropped, matching how the upstream dataset is cleaned.
func LoadClusteredRecords(path string) (map[int][]queue.StayRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clustered records CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read clustered records CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("clustered records CSV empty or missing header")
	}

	dateCol, losCol, clusterCol := -1, -1, -1
	for i, name := range rows[0] {
		switch name {
		case "admission_date":
			dateCol = i
		case "true_los":
			losCol = i
		case "cluster":
			clusterCol = i
		}
	}
	if dateCol < 0 || losCol < 0 || clusterCol < 0 {
		return nil, fmt.Errorf("clustered records CSV must have admission_date, true_los and cluster columns, got %v", rows[0])
	}

	byClass := make(map[int][]queue.StayRecord)
	dropped := 0
	for i, row := range rows[1:] {
		if row[clusterCol] == "" {
			// unlabelled admission, excluded from every class
			dropped++
			continue
		}
		// cluster labels may be serialized as floats ("3.0") when the
		// column carried missing values upstream
		label, err := strconv.ParseFloat(row[clusterCol], 64)
		if err != nil {
			return nil, fmt.Errorf("clustered records CSV row %d: invalid cluster: %w", i+2, err)
		}
		los, err := strconv.ParseFloat(row[losCol], 64)
		if err != nil {
			return nil, fmt.Errorf("clustered records CSV row %d: invalid true_los: %w", i+2, err)
		}
		date, err := parseAdmissionDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("clustered records CSV row %d: %w", i+2, err)
		}
		byClass[int(label)] = append(byClass[int(label)], queue.StayRecord{
			AdmissionDate: date,
			LengthOfStay:  los,
		})
	}

	logrus.Infof("Loaded %s: %d classes, %d unlabelled rows dropped", path, len(byClass), dropped)
	return byClass, nil
}

func parseAdmissionDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid admission_date %q", s)
}
