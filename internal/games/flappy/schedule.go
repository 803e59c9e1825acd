package flappy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/ghostbird/internal/config"
)

// ErrEmptySchedule is returned when a schedule has a header but no pipes.
var ErrEmptySchedule = errors.New("schedule has no pipes")

// Pipe is one schedule record: a gap and the time it appears.
// Malformed fields are kept as NaN rather than rejected.
type Pipe struct {
	GapY      float64 // Gap centre, fraction of field height
	GapHeight float64 // Gap size, fraction of field height
	Time      float64 // Seconds after run start
}

// Delay returns the spawn offset. Non-finite or negative times spawn
// immediately; times beyond the Duration range saturate.
func (p Pipe) Delay() time.Duration {
	if math.IsNaN(p.Time) || math.IsInf(p.Time, 0) || p.Time <= 0 {
		return 0
	}
	ns := p.Time * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// SpawnedPipe is a Pipe whose timer has fired. Its horizontal position is a
// function of the time elapsed since SpawnedAt.
type SpawnedPipe struct {
	Pipe
	SpawnedAt time.Time
}

// ParseSchedule reads a CSV schedule: a header line, then one
// "gap_y,gap_height,time" record per line. Surrounding whitespace of the whole
// input is ignored, so the header is the first non-blank line. Rows are never
// dropped: a blank row inside the schedule is a pipe like any other.
func ParseSchedule(r io.Reader) ([]Pipe, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("flappy: read schedule: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	pipes := make([]Pipe, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(strings.TrimSpace(line), ",")
		pipes = append(pipes, Pipe{
			GapY:      fieldAt(fields, 0),
			GapHeight: fieldAt(fields, 1),
			Time:      fieldAt(fields, 2),
		})
	}
	return pipes, nil
}

// fieldAt parses one numeric field: empty is 0, missing or malformed is NaN.
func fieldAt(fields []string, i int) float64 {
	if i >= len(fields) {
		return math.NaN()
	}
	s := strings.TrimSpace(fields[i])
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// LoadSchedule reads the schedule at path, or the embedded default map when
// path is empty. Any failure here is fatal to startup.
func LoadSchedule(path string) ([]Pipe, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data = config.DefaultMap()
	} else {
		path, err = config.ExpandHome(path)
		if err != nil {
			return nil, err
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("flappy: load schedule: %w", err)
		}
	}

	pipes, err := ParseSchedule(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(pipes) == 0 {
		return nil, fmt.Errorf("flappy: load schedule %q: %w", path, ErrEmptySchedule)
	}
	return pipes, nil
}
