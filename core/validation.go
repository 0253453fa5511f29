// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
)

// ValidateSeeds validates a flat seed set.
//
// Validation rules:
//   - At least one term must be present
//   - No term may be empty
//
// Duplicate terms are allowed; they collapse to a single score entry.
func ValidateSeeds(seeds []string) error {
	if len(seeds) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSeeds, ErrNoSeeds)
	}
	for i, s := range seeds {
		if s == "" {
			return fmt.Errorf("%w: %w (position %d)", ErrInvalidSeeds, ErrEmptyTerm, i)
		}
	}
	return nil
}

// ValidateMatrixName validates a matrix name used as a storage key.
func ValidateMatrixName(name string) error {
	if name == "" {
		return ErrEmptyMatrixName
	}
	return nil
}

// ValidateManifest validates a MatrixManifest according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - At least one column label
//   - Rows must not be negative
//
// NOT validated:
//   - ID (derived from Name when stored)
func ValidateManifest(manifest *MatrixManifest) error {
	if manifest == nil {
		return fmt.Errorf("%w: manifest is nil", ErrInvalidManifest)
	}

	if err := ValidateMatrixName(manifest.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if len(manifest.Columns) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, ErrNoColumns)
	}

	if manifest.Rows < 0 {
		return fmt.Errorf("%w: negative row count %d", ErrInvalidManifest, manifest.Rows)
	}

	return nil
}
