package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	lex := Default()
	if lex.Manifest.ID != "vegan10k-en" {
		t.Errorf("ID = %q, want vegan10k-en", lex.Manifest.ID)
	}
	info := lex.Info()
	if info.Categories[Meat] != 63 {
		t.Errorf("meat terms = %d, want 63", info.Categories[Meat])
	}
	if info.Categories[Other] != 1 {
		t.Errorf("other terms = %d, want 1", info.Categories[Other])
	}
	if info.Exact != 9 {
		t.Errorf("exact = %d, want 9", info.Exact)
	}
	if info.Symbols != 13 {
		t.Errorf("symbols = %d, want 13", info.Symbols)
	}
	if Default() != lex {
		t.Error("Default should return the same instance")
	}
}

func TestForbiddenSubstring(t *testing.T) {
	lex := Default()
	tests := []struct {
		input    string
		wantCat  Category
		wantTerm string
		wantOK   bool
	}{
		{"beef stew", Meat, "beef", true},
		{"chicken broth", Meat, "chicken", true},
		{"canned tuna", Fish, "tuna", true},
		{"grated parmesan", Dairy, "parmesan", true},
		// honey is listed under fish before other.
		{"honey", Fish, "honey", true},
		{"pork sausages", Meat, "pork", true},
		{"shampoo", "", "", false},
		{"tomato", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		cat, term, ok := lex.ForbiddenSubstring(tt.input)
		if ok != tt.wantOK || cat != tt.wantCat || term != tt.wantTerm {
			t.Errorf("ForbiddenSubstring(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.input, cat, term, ok, tt.wantCat, tt.wantTerm, tt.wantOK)
		}
	}
}

func TestIsExactForbidden(t *testing.T) {
	lex := Default()
	for _, s := range []string{"ham", "egg", "cod", "sole"} {
		if !lex.IsExactForbidden(s) {
			t.Errorf("IsExactForbidden(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"shampoo", "eggplant", "codfish ", "Ham", ""} {
		if lex.IsExactForbidden(s) {
			t.Errorf("IsExactForbidden(%q) = true, want false", s)
		}
	}
}

func TestAdjectivesOrder(t *testing.T) {
	adj := Default().Adjectives()
	if adj[0] != "american" || adj[len(adj)-1] != "extra" {
		t.Errorf("adjectives order changed: first=%q last=%q", adj[0], adj[len(adj)-1])
	}
	adj[0] = "mutated"
	if Default().Adjectives()[0] != "american" {
		t.Error("Adjectives must return a copy")
	}
	if !Default().IsAdjective("all purpose") {
		t.Error("IsAdjective(all purpose) = false, want true")
	}
}

func TestParse_Lowercases(t *testing.T) {
	lex, err := Parse([]byte(`id: custom
categories:
  meat: [BEEF, ""]
exact: [HAM]
adjectives: [Fresh]
symbols: ["1", ""]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, term, ok := lex.ForbiddenSubstring("beef"); !ok || term != "beef" {
		t.Errorf("expected lowercased beef, got %q %v", term, ok)
	}
	if _, _, ok := lex.ForbiddenSubstring("anything"); ok {
		t.Error("empty entry must not match")
	}
	if !lex.IsExactForbidden("ham") {
		t.Error("expected lowercased exact token")
	}
	if got := lex.Symbols(); len(got) != 1 || got[0] != "1" {
		t.Errorf("Symbols = %v, want [1]", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "categories:\n  meat: [beef]\n"},
		{"no categories", "id: x\n"},
		{"unknown category", "id: x\ncategories:\n  insects: [cricket]\n"},
		{"bad yaml", "id: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	os.WriteFile(path, []byte("id: file-lex\nversion: \"2\"\ncategories:\n  dairy: [ghee]\n"), 0o644)

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lex.Info().Version != "2" {
		t.Errorf("Version = %q, want 2", lex.Info().Version)
	}
	if cat, _, ok := lex.ForbiddenSubstring("ghee"); !ok || cat != Dairy {
		t.Errorf("ghee should be dairy, got %q %v", cat, ok)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
