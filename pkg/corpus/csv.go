package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// CSVSource reads one ingredient per row, grouped by a basket id column.
type CSVSource struct {
	Path      string
	Delimiter string // default ","
	Encoding  string // any WHATWG label; default utf-8
	HasHeader bool
	// Column names, resolved against the header. Without a header the
	// basket id is column 0 and the ingredient column 1.
	BasketColumn     string // default "basket_id"
	IngredientColumn string // default "ingredient"
}

// Baskets reads the whole file. Rows with an empty ingredient are skipped.
func (s *CSVSource) Baskets(ctx context.Context) ([][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	// Transcode non-UTF-8 encodings.
	var reader io.Reader = f
	if enc := s.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if s.Delimiter != "" {
		r.Comma = []rune(s.Delimiter)[0]
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	basketIdx, ingIdx := 0, 1
	if s.HasHeader {
		header, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if basketIdx, err = columnIndex(header, s.BasketColumn, "basket_id"); err != nil {
			return nil, err
		}
		if ingIdx, err = columnIndex(header, s.IngredientColumn, "ingredient"); err != nil {
			return nil, err
		}
	}

	g := newGrouper()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if basketIdx >= len(record) || ingIdx >= len(record) {
			continue
		}
		ing := strings.TrimSpace(record[ingIdx])
		if ing == "" {
			continue
		}
		g.add(strings.TrimSpace(record[basketIdx]), ing)
	}
	return g.baskets(), nil
}

func columnIndex(header []string, name, fallback string) (int, error) {
	if name == "" {
		name = fallback
	}
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, header)
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
