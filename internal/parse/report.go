// Package parse reads scanner reports into local-frame scanners.
//
// A report is a sequence of blocks. Each block starts with a header line
// "--- scanner N ---" followed by one "x,y,z" line per beacon and ends at a
// blank line or end of input.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/beaconmap/internal/registration"
)

// ErrMalformedReport is wrapped by every input-format error.
var ErrMalformedReport = errors.New("malformed scanner report")

const (
	headerPrefix = "--- scanner "
	headerSuffix = " ---"
)

// ParseReport parses a full report. Scanners are returned in file order with
// IDs taken from their headers.
func ParseReport(r io.Reader) ([]registration.Scanner, error) {
	var (
		scanners []registration.Scanner
		points   []registration.Position
		current  = -1
		inBlock  bool
		seen     = make(map[int]bool)
	)
	flush := func() {
		if inBlock {
			scanners = append(scanners, registration.NewScanner(current, points))
		}
		points, inBlock = nil, false
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "---"):
			flush()
			id, err := parseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if seen[id] {
				return nil, fmt.Errorf("line %d: %w: duplicate scanner %d", lineNo, ErrMalformedReport, id)
			}
			seen[id] = true
			current, inBlock = id, true
		default:
			if !inBlock {
				return nil, fmt.Errorf("line %d: %w: beacon %q outside a scanner block", lineNo, ErrMalformedReport, line)
			}
			p, err := ParsePosition(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			points = append(points, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	flush()
	return scanners, nil
}

func parseHeader(line string) (int, error) {
	if !strings.HasPrefix(line, headerPrefix) || !strings.HasSuffix(line, headerSuffix) || len(line) <= len(headerPrefix)+len(headerSuffix) {
		return 0, fmt.Errorf("%w: bad header %q", ErrMalformedReport, line)
	}
	raw := strings.TrimSpace(line[len(headerPrefix) : len(line)-len(headerSuffix)])
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad scanner id in header %q: %v", ErrMalformedReport, line, err)
	}
	return id, nil
}

// ParsePosition parses a single "x,y,z" beacon line.
func ParsePosition(s string) (registration.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return registration.Position{}, fmt.Errorf("%w: beacon %q has %d fields, want 3", ErrMalformedReport, s, len(parts))
	}
	var v [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return registration.Position{}, fmt.Errorf("%w: beacon %q: %v", ErrMalformedReport, s, err)
		}
		v[i] = n
	}
	return registration.Position{X: v[0], Y: v[1], Z: v[2]}, nil
}
