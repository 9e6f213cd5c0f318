package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pathway-sim/pathway-sim/queue"
)

// WriteUtilisations writes utilisation rows as CSV: server, utilisation,
// then one column per tag. All rows must carry the same tag keys, which
// holds for tables produced by Simulator.Results.
func WriteUtilisations(w io.Writer, rows []queue.UtilisationRow) error {
	cw := csv.NewWriter(w)

	header := []string{"server", "utilisation"}
	if len(rows) > 0 {
		for _, tag := range rows[0].Tags {
			header = append(header, tag.Key)
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write utilisations header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Server),
			strconv.FormatFloat(row.Utilisation, 'f', -1, 64),
		}
		for _, tag := range row.Tags {
			record = append(record, tag.Value)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write utilisation row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSystemTimes writes system-time rows as CSV: system_time, then one
// column per tag.
func WriteSystemTimes(w io.Writer, rows []queue.SystemTimeRow) error {
	cw := csv.NewWriter(w)

	header := []string{"system_time"}
	if len(rows) > 0 {
		for _, tag := range rows[0].Tags {
			header = append(header, tag.Key)
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write system times header: %w", err)
	}

	for _, row := range rows {
		record := []string{strconv.FormatFloat(row.SystemTime, 'f', -1, 64)}
		for _, tag := range row.Tags {
			record = append(record, tag.Value)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write system time row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
