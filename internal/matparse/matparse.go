// Package matparse reads whitespace-separated numeric blocks and writes them
// back in bracket notation.
package matparse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrTooFewBlocks = errors.New("matparse: too few blocks")
	ErrEmpty        = errors.New("matparse: no numeric rows")
	ErrRagged       = errors.New("matparse: rows have different lengths")
	ErrBracket      = errors.New("matparse: malformed bracket matrix")
)

// Matrix is a list of numeric rows. Rows may differ in length until checked
// with Rectangular.
type Matrix [][]float64

// ParseBlock converts text into rows. Lines that are blank or start with '#'
// are skipped, and a row holding any non-numeric or non-finite token (NaN,
// Inf) is dropped whole.
func ParseBlock(text string) Matrix {
	var m Matrix
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if row, ok := parseRow(strings.Fields(line)); ok {
			m = append(m, row)
		}
	}
	return m
}

func parseRow(tokens []string) ([]float64, bool) {
	row := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		row = append(row, v)
	}
	return row, true
}

// SplitBlocks splits text on blank lines and returns the non-empty blocks.
// A run of blank lines separates blocks once. Fewer than n blocks is an
// error wrapping ErrTooFewBlocks.
func SplitBlocks(text string, n int) ([]string, error) {
	var (
		blocks  []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	if len(blocks) < n {
		return blocks, fmt.Errorf("%w: need %d separated by blank lines, found %d", ErrTooFewBlocks, n, len(blocks))
	}
	return blocks, nil
}

// Rectangular checks that m is non-empty with rows of equal length and
// returns its dimensions.
func Rectangular(m Matrix) (rows, cols int, err error) {
	if len(m) == 0 {
		return 0, 0, ErrEmpty
	}
	cols = len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row 1 has %d values, row %d has %d", ErrRagged, cols, i+1, len(row))
		}
	}
	return len(m), cols, nil
}

// Column returns column j as a slice.
func (m Matrix) Column(j int) []float64 {
	col := make([]float64, 0, len(m))
	for _, row := range m {
		if j < len(row) {
			col = append(col, row[j])
		}
	}
	return col
}

// Flatten returns all values in row-major order.
func (m Matrix) Flatten() []float64 {
	var out []float64
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}

// FormatNumber writes v in the shortest form that reads back exactly.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatBracket renders m as "[1 2 3; 4 5 6]".
func FormatBracket(m Matrix) string {
	return FormatWith(m, FormatNumber)
}

// FormatWith renders m in bracket notation using format for each value.
func FormatWith(m Matrix, format func(float64) string) string {
	rows := make([]string, len(m))
	for i, row := range m {
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = format(v)
		}
		rows[i] = strings.Join(vals, " ")
	}
	return "[" + strings.Join(rows, "; ") + "]"
}

// ParseBracket reads the output of FormatBracket.
func ParseBracket(s string) (Matrix, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: %q is not enclosed in brackets", ErrBracket, s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return Matrix{}, nil
	}
	var m Matrix
	for i, part := range strings.Split(body, ";") {
		row, ok := parseRow(strings.Fields(part))
		if !ok {
			return nil, fmt.Errorf("%w: row %d %q", ErrBracket, i+1, strings.TrimSpace(part))
		}
		m = append(m, row)
	}
	return m, nil
}
