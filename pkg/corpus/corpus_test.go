package corpus

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCSVSource(t *testing.T) {
	path := writeFile(t, "baskets.csv", []byte(
		"basket_id,ingredient\n"+
			"r1,Tomatoes\n"+
			"r2,beef stew\n"+
			"r1,Basil\n"+
			"r2,\n"+
			"r3,olive oil\n"))

	src := &CSVSource{Path: path, HasHeader: true}
	got, err := src.Baskets(context.Background())
	if err != nil {
		t.Fatalf("Baskets: %v", err)
	}
	want := [][]string{{"Tomatoes", "Basil"}, {"beef stew"}, {"olive oil"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Baskets = %v, want %v", got, want)
	}
}

func TestCSVSource_CustomColumnsAndDelimiter(t *testing.T) {
	path := writeFile(t, "baskets.csv", []byte("name;recipe\nleek;a\nonion;a\n"))

	src := &CSVSource{Path: path, Delimiter: ";", HasHeader: true, BasketColumn: "recipe", IngredientColumn: "name"}
	got, err := src.Baskets(context.Background())
	if err != nil {
		t.Fatalf("Baskets: %v", err)
	}
	if want := [][]string{{"leek", "onion"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Baskets = %v, want %v", got, want)
	}
}

func TestCSVSource_NoHeader(t *testing.T) {
	path := writeFile(t, "baskets.csv", []byte("1,kale\n1,lemon\n"))

	got, err := (&CSVSource{Path: path}).Baskets(context.Background())
	if err != nil {
		t.Fatalf("Baskets: %v", err)
	}
	if want := [][]string{{"kale", "lemon"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Baskets = %v, want %v", got, want)
	}
}

func TestCSVSource_Latin1(t *testing.T) {
	// "jalapeño" with ñ encoded as 0xF1 in ISO-8859-1.
	path := writeFile(t, "latin1.csv", []byte("basket_id,ingredient\nx,jalape\xf1o\n"))

	src := &CSVSource{Path: path, HasHeader: true, Encoding: "iso-8859-1"}
	got, err := src.Baskets(context.Background())
	if err != nil {
		t.Fatalf("Baskets: %v", err)
	}
	if len(got) != 1 || got[0][0] != "jalapeño" {
		t.Errorf("Baskets = %q, want [[jalapeño]]", got)
	}
}

func TestCSVSource_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := (&CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}).Baskets(ctx); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeFile(t, "bad.csv", []byte("id,item\n1,kale\n"))
	if _, err := (&CSVSource{Path: path, HasHeader: true}).Baskets(ctx); err == nil {
		t.Error("expected error for missing basket_id column")
	}

	if _, err := (&CSVSource{Path: path, Encoding: "no-such-encoding"}).Baskets(ctx); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestSQLiteSource(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "corpus.db")

	w, err := CreateSQLite(ctx, path)
	if err != nil {
		t.Fatalf("CreateSQLite: %v", err)
	}
	if err := w.Insert(ctx, "r2", []string{"leek", "beef"}); err != nil {
		t.Fatalf("Insert r2: %v", err)
	}
	if err := w.Insert(ctx, "r1", []string{"tomato", "basil", "olive oil"}); err != nil {
		t.Fatalf("Insert r1: %v", err)
	}
	// Same basket and position twice violates the primary key.
	if err := w.Insert(ctx, "r1", []string{"dup"}); err == nil {
		t.Error("expected primary key violation")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	src, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer src.Close()

	got, err := src.Baskets(ctx)
	if err != nil {
		t.Fatalf("Baskets: %v", err)
	}
	want := [][]string{{"leek", "beef"}, {"tomato", "basil", "olive oil"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Baskets = %v, want %v", got, want)
	}

	if err := src.Insert(ctx, "r3", []string{"kale"}); err == nil {
		t.Error("expected write to fail on a read-only source")
	}
}

func TestOpenSQLite_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.db")
	if _, err := OpenSQLite(path); err == nil {
		t.Fatal("expected error for missing database")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("OpenSQLite created %s (stat err %v)", path, err)
	}
}

func TestOpen(t *testing.T) {
	src, err := Open("csv", "x.csv")
	if err != nil {
		t.Fatalf("Open csv: %v", err)
	}
	if _, ok := src.(*CSVSource); !ok {
		t.Errorf("Open csv returned %T", src)
	}

	dbPath := filepath.Join(t.TempDir(), "c.db")
	w, err := CreateSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("CreateSQLite: %v", err)
	}
	w.Close()

	src, err = Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	if c, ok := src.(io.Closer); ok {
		c.Close()
	} else {
		t.Errorf("sqlite source should implement io.Closer")
	}

	if _, err := Open("parquet", "x"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
