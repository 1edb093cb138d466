// CLAUDE:SUMMARY Basket sources feeding the analysis pipeline: CSV files (any declared encoding) and SQLite tables.
package corpus

import (
	"context"
	"fmt"
)

// Source yields raw ingredient baskets.
type Source interface {
	Baskets(ctx context.Context) ([][]string, error)
}

// Open returns a Source for the given kind ("csv" or "sqlite").
// The caller closes sqlite sources through io.Closer.
func Open(kind, path string) (Source, error) {
	switch kind {
	case "csv", "":
		return &CSVSource{Path: path, HasHeader: true}, nil
	case "sqlite":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown corpus kind %q", kind)
	}
}

// grouper collects ingredients per basket id in order of first appearance.
type grouper struct {
	order []string
	items map[string][]string
}

func newGrouper() *grouper {
	return &grouper{items: make(map[string][]string)}
}

func (g *grouper) add(id, ingredient string) {
	if _, ok := g.items[id]; !ok {
		g.order = append(g.order, id)
	}
	g.items[id] = append(g.items[id], ingredient)
}

func (g *grouper) baskets() [][]string {
	out := make([][]string, len(g.order))
	for i, id := range g.order {
		out[i] = g.items[id]
	}
	return out
}
