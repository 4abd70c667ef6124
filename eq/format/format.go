package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-autoeq/eq/curve"
	"github.com/cwbudde/algo-autoeq/eq/peq"
)

// ErrInvalidFormat is wrapped by every parse error.
var ErrInvalidFormat = errors.New("invalid equalizer profile format")

var (
	preampRegex = regexp.MustCompile(`^Preamp:\s*([-+]?\d+\.?\d*)\s*dB`)
	filterRegex = regexp.MustCompile(
		`^Filter\s*(\d+):\s*(ON|OFF)\s+([A-Z]+)\s+Fc\s+([-+]?\d+\.?\d*)\s*Hz` +
			`(?:\s+Gain\s+([-+]?\d+\.?\d*)\s*dB)?(?:\s+Q\s+([-+]?\d+\.?\d*))?`)
	graphicPrefix = "GraphicEQ:"
)

// ParseParametric reads a ParametricEQ profile. Filters switched OFF are
// skipped. Lines that are neither a preamp nor a filter line are ignored, so
// comments and blank lines are allowed. A missing Gain or Q is left at zero,
// which makes the filter inert.
func ParseParametric(r io.Reader) (peq.Set, error) {
	var set peq.Set
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		if m := preampRegex.FindStringSubmatch(text); m != nil {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return peq.Set{}, fmt.Errorf("%w: line %d: invalid preamp %q", ErrInvalidFormat, line, m[1])
			}
			set.PreampDB = v
			continue
		}

		m := filterRegex.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		f, err := parseFilter(m)
		if err != nil {
			return peq.Set{}, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, line, err)
		}
		if m[2] == "ON" {
			set.Filters = append(set.Filters, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return peq.Set{}, fmt.Errorf("reading profile: %w", err)
	}

	return set, nil
}

func parseFilter(m []string) (peq.Filter, error) {
	typ, err := peq.ParseType(m[3])
	if err != nil {
		return peq.Filter{}, err
	}

	f := peq.Filter{Type: typ}
	for _, field := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"frequency", m[4], &f.Freq},
		{"gain", m[5], &f.Gain},
		{"Q", m[6], &f.Q},
	} {
		if field.raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(field.raw, 64)
		if err != nil {
			return peq.Filter{}, fmt.Errorf("invalid %s %q", field.name, field.raw)
		}
		*field.dst = v
	}

	return f, nil
}

// WriteParametric writes set as a ParametricEQ profile at the precision of
// peq.Filter.Rounded.
func WriteParametric(w io.Writer, set peq.Set) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Preamp: %.1f dB\n", set.PreampDB)
	for i, f := range set.Filters {
		fmt.Fprintf(bw, "Filter %d: ON %s Fc %s Hz Gain %.1f dB Q %.2f\n",
			i+1, f.Type, strconv.FormatFloat(f.Freq, 'f', -1, 64), f.Gain, f.Q)
	}

	return bw.Flush()
}

// ParseGraphic parses a single-line GraphicEQ profile.
func ParseGraphic(s string) (curve.Curve, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, graphicPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrInvalidFormat, graphicPrefix)
	}

	var out curve.Curve
	for i, pair := range strings.Split(rest, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: point %d: %q", ErrInvalidFormat, i+1, pair)
		}
		freq, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: invalid frequency %q", ErrInvalidFormat, i+1, fields[0])
		}
		gain, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: invalid gain %q", ErrInvalidFormat, i+1, fields[1])
		}
		out = append(out, curve.Point{Freq: freq, Gain: gain})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrInvalidFormat)
	}

	return out, nil
}

// FormatGraphic renders points as a single GraphicEQ line with gains at
// 0.1 dB precision.
func FormatGraphic(points curve.Curve) string {
	var b strings.Builder
	b.WriteString(graphicPrefix)
	for i, p := range points {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, " %s %.1f", strconv.FormatFloat(p.Freq, 'f', -1, 64), p.Gain)
	}

	return b.String()
}
