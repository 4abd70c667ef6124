package curve

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoPoints is returned by ReadCSV when the input contains no data rows.
var ErrNoPoints = errors.New("curve: no frequency points found")

// ReadCSV reads a frequency response in the AutoEq CSV layout: a
// "frequency,raw" style header followed by rows of frequency and gain. Only
// the first two columns are used. Non-numeric rows before the first data
// row are treated as headers; comment lines start with '#'.
func ReadCSV(r io.Reader) ([]Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var points []Point
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("curve: reading csv: %w", err)
		}
		if len(rec) < 2 {
			continue
		}

		freq, ferr := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		gain, gerr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if ferr != nil || gerr != nil {
			if len(points) == 0 {
				continue
			}

			return nil, fmt.Errorf("curve: line %d: invalid row %q", line, strings.Join(rec, ","))
		}
		if freq <= 0 {
			continue
		}
		points = append(points, Point{Freq: freq, Gain: gain})
	}

	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	return points, nil
}
