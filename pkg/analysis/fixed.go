package analysis

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed fixed_points.txt
var defaultFixedPoints []byte

// DefaultFixedPoints returns the embedded fixed point list.
func DefaultFixedPoints() []string {
	fp, _ := ReadFixedPoints(bytes.NewReader(defaultFixedPoints))
	return fp
}

// LoadFixedPoints reads a newline-separated fixed point file. Blank lines
// and lines starting with # are skipped; entries are lowercased.
func LoadFixedPoints(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixed points: %w", err)
	}
	defer f.Close()
	return ReadFixedPoints(f)
}

// ReadFixedPoints is LoadFixedPoints over any reader.
func ReadFixedPoints(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.ToLower(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read fixed points: %w", err)
	}
	return out, nil
}
