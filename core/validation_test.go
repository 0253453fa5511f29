package core

import (
	"errors"
	"testing"
)

func TestValidateSeeds(t *testing.T) {
	tests := []struct {
		name    string
		seeds   []string
		wantErr error
	}{
		{name: "single seed", seeds: []string{"good"}, wantErr: nil},
		{name: "several seeds", seeds: []string{"good", "nice", "excellent"}, wantErr: nil},
		{name: "duplicates allowed", seeds: []string{"good", "good"}, wantErr: nil},
		{name: "nil seeds", seeds: nil, wantErr: ErrNoSeeds},
		{name: "empty seeds", seeds: []string{}, wantErr: ErrNoSeeds},
		{name: "empty term", seeds: []string{"good", ""}, wantErr: ErrEmptyTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeeds(tt.seeds)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSeeds() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSeeds() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidSeeds) {
				t.Errorf("ValidateSeeds() error should wrap ErrInvalidSeeds, got %v", err)
			}
		})
	}
}

func TestValidateManifest(t *testing.T) {
	tests := []struct {
		name     string
		manifest *MatrixManifest
		wantErr  error
	}{
		{
			name:     "valid manifest",
			manifest: &MatrixManifest{Name: "imdb5", Columns: []string{"a", "b"}, Rows: 2},
		},
		{
			name:     "valid manifest with zero rows",
			manifest: &MatrixManifest{Name: "empty", Columns: []string{"a"}},
		},
		{
			name:     "nil manifest",
			manifest: nil,
			wantErr:  ErrInvalidManifest,
		},
		{
			name:     "empty name",
			manifest: &MatrixManifest{Columns: []string{"a"}},
			wantErr:  ErrEmptyMatrixName,
		},
		{
			name:     "no columns",
			manifest: &MatrixManifest{Name: "imdb5"},
			wantErr:  ErrNoColumns,
		},
		{
			name:     "negative rows",
			manifest: &MatrixManifest{Name: "imdb5", Columns: []string{"a"}, Rows: -1},
			wantErr:  ErrInvalidManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifest(tt.manifest)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateManifest() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateManifest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
