// Package render writes fitted lines as fixed-width text, one file per channel.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"coretemp/internal/models"
)

// lineFormat is "x_lo <= x <= x_hi ; y = intercept + slope x ; label".
const lineFormat = "%6s <= x <= %6s ; y = %10.4f + %10.4f x ; %s\n"

// formatX renders a time bound without exponent or trailing zeros.
func formatX(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Line renders a single fitted line, including the trailing newline.
func Line(l models.FitLine) string {
	return fmt.Sprintf(lineFormat, formatX(l.XLo), formatX(l.XHi), l.Intercept, l.Slope, l.Kind)
}

// WriteChannel writes every line of fit to w in output order.
func WriteChannel(w io.Writer, fit models.ChannelFit) error {
	bw := bufio.NewWriter(w)
	for _, l := range fit.Lines() {
		if _, err := bw.WriteString(Line(l)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// OutputPath names the output file of channel for the given input file:
// <dir>/<input-stem>-core-0N.txt.
func OutputPath(dir, input string, channel int) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(dir, fmt.Sprintf("%s-core-%02d.txt", stem, channel))
}

// WriteFile creates (or truncates) path and writes fit into it.
func WriteFile(path string, fit models.ChannelFit) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output %q: %w", path, cerr)
		}
	}()

	if err := WriteChannel(f, fit); err != nil {
		return fmt.Errorf("write output %q: %w", path, err)
	}
	return nil
}
