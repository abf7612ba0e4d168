package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteSeriesCSV writes a per-step series (e.g. ensemble MSD) with columns step,<name>.
func WriteSeriesCSV(w io.Writer, name string, values []float64) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"step", name}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, v := range values {
		if err := writer.Write([]string{strconv.Itoa(i + 1), formatFloat(v)}); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
