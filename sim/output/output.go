// Package output writes trajectories in the layout plotting tools consume:
// a YAML header describing the run and a CSV file with one row per step.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/lattice-kmc/kmc-sim/sim"
)

// HeaderVersion is written into every exported header.
const HeaderVersion = 1

// TrajectoryHeader captures metadata for an exported trajectory.
type TrajectoryHeader struct {
	Version   int          `yaml:"trajectory_version"`
	RunID     string       `yaml:"run_id,omitempty"` // shared by all members of one ensemble
	Model     string       `yaml:"model"`
	Seed      int64        `yaml:"seed"`
	Member    *int         `yaml:"member,omitempty"` // ensemble member index
	Initial   []float64    `yaml:"initial"`
	Gamma1    float64      `yaml:"gamma_1"`
	Gamma2    float64      `yaml:"gamma_2"`
	Lattice   *LatticeInfo `yaml:"lattice,omitempty"`
	Steps     int          `yaml:"steps"`
	Columns   []string     `yaml:"columns"`
	CreatedAt string       `yaml:"created_at,omitempty"`

	// DataChecksum is the xxhash64 of the CSV file, set by Export.
	DataChecksum string `yaml:"data_xxhash64,omitempty"`
}

// LatticeInfo records the Model 2 lattice constants and derived hop distance.
type LatticeInfo struct {
	A           float64 `yaml:"a"`
	B           float64 `yaml:"b"`
	HopDistance float64 `yaml:"d1"`
}

// CSV column headers.
var (
	HopColumns       = []string{"step", "x", "y"}
	HopRotateColumns = []string{"step", "x", "y", "orientation"}
)

// NewLatticeInfo builds LatticeInfo from a lattice configuration.
func NewLatticeInfo(l sim.LatticeConfig) *LatticeInfo {
	return &LatticeInfo{A: l.A, B: l.B, HopDistance: l.HopDistance()}
}

// formatFloat uses the shortest representation that parses back to the same value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteHopCSV writes a Model 1 trajectory. Step numbers start at 1.
func WriteHopCSV(w io.Writer, trajectory []sim.Position) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(HopColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, p := range trajectory {
		row := []string{strconv.Itoa(i + 1), formatFloat(p.X), formatFloat(p.Y)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteHopRotateCSV writes a Model 2 trajectory. Step numbers start at 1.
func WriteHopRotateCSV(w io.Writer, trajectory []sim.State) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(HopRotateColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, s := range trajectory {
		row := []string{
			strconv.Itoa(i + 1),
			formatFloat(s.X),
			formatFloat(s.Y),
			strconv.Itoa(int(s.Orientation)),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteHeader marshals header as YAML to w.
func WriteHeader(w io.Writer, header *TrajectoryHeader) error {
	data, err := yaml.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshaling trajectory header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing trajectory header: %w", err)
	}
	return nil
}

// Export writes the data (CSV) and then the header (YAML) to separate files.
// The header's DataChecksum is set to the xxhash64 of the bytes written, so a
// nil header is only allowed together with an empty headerPath.
// writeData receives the open data file; if it fails the file is removed.
func Export(header *TrajectoryHeader, headerPath, dataPath string, writeData func(io.Writer) error) error {
	file, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating trajectory data file: %w", err)
	}
	digest := xxhash.New()
	if err := writeData(io.MultiWriter(file, digest)); err != nil {
		_ = file.Close()
		_ = os.Remove(dataPath)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing trajectory data file: %w", err)
	}

	if header == nil {
		return nil
	}
	header.DataChecksum = formatChecksum(digest.Sum64())
	if headerPath == "" {
		return nil
	}
	headerData, err := yaml.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshaling trajectory header: %w", err)
	}
	if err := os.WriteFile(headerPath, headerData, 0644); err != nil {
		return fmt.Errorf("writing trajectory header: %w", err)
	}
	return nil
}

// DataChecksum returns the xxhash64 digest of r in the header's format.
func DataChecksum(r io.Reader) (string, error) {
	digest := xxhash.New()
	if _, err := io.Copy(digest, r); err != nil {
		return "", fmt.Errorf("hashing trajectory data: %w", err)
	}
	return formatChecksum(digest.Sum64()), nil
}

func formatChecksum(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
