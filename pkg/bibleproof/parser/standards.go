package parser

import (
	"bufio"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Standards are the acceptable span x-coordinates for a layout.
type Standards struct {
	AcceptableX []float64
	Variance    float64
}

var plainNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)

// LoadStandards reads a standards file. Numbers after an "Acceptable X"
// line are acceptable coordinates; the number after "Acceptable Variance"
// is the variance. Other lines are ignored.
func LoadStandards(path string) (*Standards, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := &Standards{}
	readingCoords := false

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.Contains(line, "Acceptable X"):
			readingCoords = true
			continue
		case strings.Contains(line, "Acceptable Variance"):
			readingCoords = false
			continue
		}

		if readingCoords {
			if v, err := strconv.ParseFloat(line, 64); err == nil {
				s.AcceptableX = append(s.AcceptableX, v)
			}
			continue
		}
		if strings.HasPrefix(line, ".") || plainNumber.MatchString(line) {
			if v, err := strconv.ParseFloat(line, 64); err == nil {
				s.Variance = v
			}
		}
	}
	return s, sc.Err()
}

// Check returns "Yes" when x lies within Variance of an acceptable
// coordinate and "Error" otherwise, including when x is missing.
func (s *Standards) Check(x float64, ok bool) string {
	if !ok {
		return "Error"
	}
	for _, c := range s.AcceptableX {
		if math.Abs(x-c) <= s.Variance {
			return "Yes"
		}
	}
	return "Error"
}

// FirstX returns the first element of a bbox tuple such as
// "(72.0, 96.4, 210.3, 108.1)". A bare number is not a tuple.
func FirstX(bbox string) (float64, bool) {
	s := strings.TrimSpace(bbox)
	if len(s) < 2 {
		return 0, false
	}
	lead, tail := s[0], s[len(s)-1]
	if !(lead == '(' && tail == ')') && !(lead == '[' && tail == ']') {
		return 0, false
	}
	first, _, _ := strings.Cut(s[1:len(s)-1], ",")
	v, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
