package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "matrix name", content: "imdb20"},
		{name: "empty string", content: ""},
		{name: "long content", content: "imdb_window20-flat.csv.gz with a much longer suffix attached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)
			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	if IDFromContent("imdb5") == IDFromContent("imdb20") {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestLexiconEntry_Value(t *testing.T) {
	entry := LexiconEntry{Word: "happy", Valence: 8.47, Arousal: 6.05, Dominance: 7.21}

	tests := []struct {
		dim    Dimension
		want   float64
		wantOK bool
	}{
		{DimensionValence, 8.47, true},
		{DimensionArousal, 6.05, true},
		{DimensionDominance, 7.21, true},
		{Dimension("Concreteness"), 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.dim), func(t *testing.T) {
			got, ok := entry.Value(tt.dim)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Value(%s) = (%v, %v), want (%v, %v)", tt.dim, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
