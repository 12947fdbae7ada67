// Package parser turns free-form temperature log text into samples.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"coretemp/internal/models"
)

// ErrRead is returned when the input cannot be opened or read.
var ErrRead = errors.New("read temperature input")

// numberRE matches a run of digits, optionally followed by a fractional part.
// Everything it does not match delimits tokens.
var numberRE = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// Tokenize returns the numeric readings found in line, left to right.
// Tokens that do not parse as a finite float64 are dropped.
func Tokenize(line string) []float64 {
	tokens := numberRE.FindAllString(line, -1)
	readings := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		readings = append(readings, v)
	}
	return readings
}

// ReadSamples reads r to EOF and returns one sample per line, in input order.
// Line i gets TimeStep i*interval.
func ReadSamples(r io.Reader, interval int64) ([]models.Sample, error) {
	br := bufio.NewReader(r)
	var samples []models.Sample

	for idx := 0; ; idx++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: line %d: %w", ErrRead, idx+1, err)
		}
		// a trailing newline does not start another line
		if line == "" && err != nil {
			break
		}

		line = strings.TrimRight(line, "\r\n")
		samples = append(samples, models.Sample{
			Line:     idx,
			TimeStep: int64(idx) * interval,
			Readings: Tokenize(line),
		})

		if err != nil {
			break
		}
	}

	return samples, nil
}

// ReadFile opens path and parses it with ReadSamples.
func ReadFile(path string, interval int64) ([]models.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	samples, err := ReadSamples(f, interval)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}
