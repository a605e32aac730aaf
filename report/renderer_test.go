package report

import "testing"

func TestSpeciesFile(t *testing.T) {
	tests := []struct {
		id   string
		ext  string
		want string
	}{
		{"pikachu", ".html", "pikachu.html"},
		{"porygon2", ".json", "porygon2.json"},
		{"index", ".html", "_index.html"},
		{"index", ".json", "_index.json"},
		{"", ".json", "_.json"},
		{"indexer", ".html", "indexer.html"},
	}
	for _, tt := range tests {
		if got := SpeciesFile(tt.id, tt.ext); got != tt.want {
			t.Errorf("SpeciesFile(%q, %q) = %q, want %q", tt.id, tt.ext, got, tt.want)
		}
	}
}
