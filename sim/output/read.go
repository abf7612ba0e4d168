package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/lattice-kmc/kmc-sim/sim"
)

// ReadHopCSV parses a file written by WriteHopCSV.
func ReadHopCSV(r io.Reader) ([]sim.Position, error) {
	rows, err := readRows(r, HopColumns)
	if err != nil {
		return nil, err
	}
	trajectory := make([]sim.Position, len(rows))
	for i, row := range rows {
		x, y, err := parseXY(row, i)
		if err != nil {
			return nil, err
		}
		trajectory[i] = sim.Position{X: x, Y: y}
	}
	return trajectory, nil
}

// ReadHopRotateCSV parses a file written by WriteHopRotateCSV.
// Orientations outside {0, 1, 2, 3} are rejected.
func ReadHopRotateCSV(r io.Reader) ([]sim.State, error) {
	rows, err := readRows(r, HopRotateColumns)
	if err != nil {
		return nil, err
	}
	trajectory := make([]sim.State, len(rows))
	for i, row := range rows {
		x, y, err := parseXY(row, i)
		if err != nil {
			return nil, err
		}
		o, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing orientation: %w", i+1, err)
		}
		orientation := sim.Orientation(o)
		if !orientation.Valid() {
			return nil, fmt.Errorf("row %d: orientation %d outside {0, 1, 2, 3}", i+1, o)
		}
		trajectory[i] = sim.State{X: x, Y: y, Orientation: orientation}
	}
	return trajectory, nil
}

func readRows(r io.Reader, columns []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(columns)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trajectory CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("trajectory CSV is empty")
	}
	if !slices.Equal(records[0], columns) {
		return nil, fmt.Errorf("unexpected CSV columns %v, want %v", records[0], columns)
	}
	return records[1:], nil
}

func parseXY(row []string, i int) (float64, float64, error) {
	x, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("row %d: parsing x: %w", i+1, err)
	}
	y, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("row %d: parsing y: %w", i+1, err)
	}
	return x, y, nil
}
