// Package export renders entry listings as CSV documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/foamtrack/foamtrack-backend/internal/entries/domain"
)

var header = []string{
	"Date", "Foam", "Fuel", "Test Type", "Air Temp",
	"Wind", "Fuel Temp", "Solution Temp", "Control", "Extinguishment",
}

// CSV renders entries in listing order. Fields are quoted only when
// they contain a comma, quote or newline, with inner quotes doubled.
func CSV(entries []domain.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.Date, e.Foam, e.Fuel, e.TestType, e.AirTemp,
			e.Wind, e.FuelTemp, e.SolutionTemp, e.ControlTime, e.ExtinguishmentTime,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
